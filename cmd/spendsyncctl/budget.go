package main

import (
	"github.com/spf13/cobra"

	"github.com/spendsync/backend/internal/application/usecase/budget"
	"github.com/spendsync/backend/internal/domain/valueobject"
	"github.com/spendsync/backend/internal/integration/entrypoint/dto"
)

func newBudgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Inspect budgets",
	}
	cmd.AddCommand(newBudgetSummaryCmd())
	return cmd
}

func newBudgetSummaryCmd() *cobra.Command {
	var (
		userID string
		month  string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show a user's monthly budget, spend and percentage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := budget.GetSummaryInput{ActorID: userID, IsAdmin: true, TargetUserID: &userID}
			if month != "" {
				m, err := valueobject.ParseMonth(month)
				if err != nil {
					return err
				}
				input.Month = &m
			}

			a, err := openApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.close()

			output, err := a.injector.Summary.Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			resp := dto.ToSummaryResponse(output.UserID, output.Summary)
			resp.BudgetDisplay = a.injector.Formatter.Format(cmd.Context(), output.Summary.Budget)
			resp.SpentDisplay = a.injector.Formatter.Format(cmd.Context(), output.Summary.Spent)
			resp.RemainingDisplay = a.injector.Formatter.Format(cmd.Context(), output.Summary.Remaining)
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Discord user ID")
	cmd.Flags().StringVar(&month, "month", "", "Month as YYYY-MM (default: current month)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

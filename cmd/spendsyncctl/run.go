package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spendsync/backend/internal/application/usecase/job"
	"github.com/spendsync/backend/internal/domain/entity"
	"github.com/spendsync/backend/internal/integration/entrypoint/dto"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "run <recurring|alerts|reset-reminder|upcoming-bills|daily>",
		Short:     "Run a scheduled pass now",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"recurring", "alerts", "reset-reminder", "upcoming-bills", job.DailyAlias},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.close()

			var runs []*entity.JobRun
			if args[0] == job.DailyAlias {
				output, err := a.injector.RunDaily.Execute(ctx)
				if output != nil {
					runs = output.Runs
				}
				if err != nil && output == nil {
					return err
				}
			} else {
				output, err := a.injector.RunJob.Execute(ctx, job.RunJobInput{Job: job.ResolveName(args[0])})
				if output == nil {
					return err
				}
				runs = append(runs, output.Run)
			}

			resp := make([]dto.JobRunResponse, len(runs))
			failed := 0
			for i, run := range runs {
				resp[i] = dto.ToJobRunResponse(run, true)
				failed += run.Failed
			}
			if err := printJSON(cmd.OutOrStdout(), resp); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d items failed", failed)
			}
			return nil
		},
	}
}

func newRunsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent pass runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.close()

			output, err := a.injector.ListRuns.Execute(cmd.Context(), job.ListRunsInput{Limit: limit})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dto.ToJobRunListResponse(output.Runs, output.Latest))
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show")
	return cmd
}

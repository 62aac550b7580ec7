package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spendsync/backend/config"
	"github.com/spendsync/backend/internal/integration/adapters"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage API tokens",
	}
	cmd.AddCommand(newTokenIssueCmd())
	return cmd
}

func newTokenIssueCmd() *cobra.Command {
	var (
		userID   string
		username string
	)

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue an access token for a Discord user",
		Long:  "Issue an access token for a Discord user. Admin rights come from ADMIN_USER_IDS when the token is used.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			clock := adapters.NewSystemClock(cfg.Scheduler.Location())
			tokens := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.Admin.IsAdmin, clock)

			if username == "" {
				username = userID
			}
			token, err := tokens.IssueAccessToken(cmd.Context(), userID, username)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Discord user ID")
	cmd.Flags().StringVar(&username, "username", "", "Display name (default: the user ID)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

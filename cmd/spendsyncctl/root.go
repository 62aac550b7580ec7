package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/spendsync/backend/config"
	"github.com/spendsync/backend/internal/infra/db"
	"github.com/spendsync/backend/internal/infra/dependency"
	"github.com/spendsync/backend/internal/integration/discord"
)

var (
	flagDatabaseURL string
	flagVerbose     bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "spendsyncctl",
		Short:         "Operate the SpendSync ledger",
		Long:          "Run scheduled passes by hand, inspect budgets and issue API tokens.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if flagVerbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}

	root.PersistentFlags().StringVar(&flagDatabaseURL, "database-url", "", "Ledger store URL (overrides DATABASE_URL)")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output to stderr")

	root.AddCommand(newRunCmd(), newRunsCmd(), newBudgetCmd(), newTokenCmd())
	return root
}

// app is the wired application behind one command invocation.
type app struct {
	cfg      *config.Config
	injector *dependency.Injector
	closers  []func() error
}

func openApp(ctx context.Context, withNotifier bool) (*app, error) {
	cfg := config.Load()
	if flagDatabaseURL != "" {
		cfg.Database.URL = flagDatabaseURL
	}

	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, closers: []func() error{database.Close}}

	if err := database.Migrate(); err != nil {
		a.close()
		return nil, err
	}

	opts := dependency.Options{DBHealthCheck: database.HealthCheck}
	if client, err := dependency.NewRedisClient(ctx, cfg.Redis); err != nil {
		slog.Warn("Redis unavailable, exchange rates will not be cached", "error", err)
	} else if client != nil {
		opts.Redis = client
		a.closers = append(a.closers, client.Close)
	}

	if withNotifier {
		session, err := discord.NewSession(cfg.Discord.BotToken)
		if err != nil {
			slog.Warn("Discord session failed, notifications disabled", "error", err)
		} else if session != nil {
			opts.Discord = session
			a.closers = append(a.closers, session.Close)
		}
	}

	injector, err := dependency.NewInjector(cfg, database.DB(), opts)
	if err != nil {
		a.close()
		return nil, err
	}
	a.injector = injector
	return a, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			slog.Warn("Failed to close resource", "error", err)
		}
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

package main

import (
	"log/slog"

	"github.com/Veraticus/fraudshield/internal/storage"
	"github.com/Veraticus/fraudshield/internal/tui"
	"github.com/Veraticus/fraudshield/internal/tui/themes"
	"github.com/spf13/cobra"
)

func consoleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "console",
		Short:       "Open the interactive operator console (default)",
		Annotations: map[string]string{interactiveAnnotation: "true"},
		RunE:        runConsole,
	}
	addViewFlag(cmd)
	return cmd
}

func runConsole(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, client, err := loadClient()
	if err != nil {
		return err
	}

	viewName, _ := cmd.Flags().GetString("view")
	start, err := parseView(viewName)
	if err != nil {
		return err
	}

	opts := []tui.Option{
		tui.WithClient(client),
		tui.WithTheme(themes.GetTheme(cfg.Theme)),
		tui.WithLocation(cfg.Location),
		tui.WithAlertLimit(cfg.AlertLimit),
		tui.WithStartView(start),
	}

	// The console still works without a journal; only the session card is lost.
	journal, err := storage.OpenSessionJournal(ctx)
	if err != nil {
		slog.Warn("Session journal unavailable", "error", err)
	} else {
		defer func() {
			if err := journal.Close(); err != nil {
				slog.Warn("Failed to close session journal", "error", err)
			}
		}()
		opts = append(opts, tui.WithJournal(journal))
	}

	slog.Info("Starting console",
		"base_url", client.BaseURL(),
		"timeout", cfg.Timeout,
		"view", start.String())

	return tui.Run(ctx, opts...)
}

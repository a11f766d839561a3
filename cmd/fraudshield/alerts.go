package main

import (
	"fmt"

	"github.com/Veraticus/fraudshield/internal/cli"
	"github.com/Veraticus/fraudshield/internal/tui/viewmodel"
	"github.com/spf13/cobra"
)

func alertsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "List recent fraud alerts",
		Args:  cobra.NoArgs,
		RunE:  runAlerts,
	}
	cmd.Flags().Int("limit", 0, "how many alerts to request (default: alerts.limit)")
	return cmd
}

func runAlerts(cmd *cobra.Command, _ []string) error {
	cfg, client, err := loadClient()
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		limit = cfg.AlertLimit
	}

	alerts, err := client.FetchAlerts(cmd.Context(), limit)
	if err != nil {
		return serviceError("Failed to load alerts", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderAlerts(viewmodel.BuildAlertFeed(alerts), cfg.Location))
	return nil
}

package main

import (
	"fmt"

	"github.com/Veraticus/fraudshield/internal/cli"
	"github.com/Veraticus/fraudshield/internal/tui/viewmodel"
	"github.com/spf13/cobra"
)

func metricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Show the scoring model's evaluation metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, client, err := loadClient()
			if err != nil {
				return err
			}

			snapshot, err := client.FetchMetrics(cmd.Context())
			if err != nil {
				return serviceError("Failed to load metrics", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderMetrics(viewmodel.BuildMetrics(snapshot)))
			return nil
		},
	}
}

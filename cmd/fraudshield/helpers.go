package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/fraudshield/internal/common"
	"github.com/Veraticus/fraudshield/internal/config"
	"github.com/Veraticus/fraudshield/internal/scoring"
	"github.com/Veraticus/fraudshield/internal/tui"
	"github.com/spf13/cobra"
)

// loadClient reads the configuration and builds the scoring client from it.
func loadClient() (config.Console, *scoring.HTTPClient, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Console{}, nil, common.NewUserError("Configuration is invalid", err)
	}

	client, err := scoring.NewHTTPClient(cfg.BaseURL, scoring.WithTimeout(cfg.Timeout))
	if err != nil {
		return config.Console{}, nil, common.NewUserError("Scoring service URL is invalid", err)
	}
	return cfg, client, nil
}

// serviceError turns a scoring failure into an operator-facing error.
func serviceError(action string, err error) error {
	if common.IsTransient(err) {
		return common.NewUserError(fmt.Sprintf("%s: scoring service unreachable (%v)", action, err), err)
	}
	return common.NewUserError(fmt.Sprintf("%s: %v", action, err), err)
}

func addViewFlag(cmd *cobra.Command) {
	cmd.Flags().String("view", "analyze", "view to open first (analyze, overview, alerts, metrics)")
}

func parseView(name string) (tui.View, error) {
	for _, v := range tui.Views {
		if strings.EqualFold(v.String(), name) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown view %q", common.ErrInvalidConfig, name)
}

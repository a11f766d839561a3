package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/fraudshield/internal/batch"
	"github.com/Veraticus/fraudshield/internal/cli"
	"github.com/Veraticus/fraudshield/internal/common"
	"github.com/Veraticus/fraudshield/internal/model"
	"github.com/Veraticus/fraudshield/internal/ofx"
	"github.com/Veraticus/fraudshield/internal/storage"
	"github.com/Veraticus/fraudshield/internal/tui/viewmodel"
	"github.com/spf13/cobra"
)

func scoreOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score-ofx [files...]",
		Short: "Score every transaction of OFX/QFX statements",
		Long: `Score every transaction in one or more OFX or QFX statements exported
from a bank, one request at a time, and print a summary table.

Each statement line becomes a transaction: the amount is the absolute
TRNAMT, hour and weekday come from DTPOSTED, ATM and POS lines keep their
channel and everything else uses --channel. The statement's account id is
used as the customer id unless --customer is given.

Examples:
  # Score a single statement
  fraudshield score-ofx ~/Downloads/chase_jan_2026.qfx

  # Score every statement in a directory, one account only
  fraudshield score-ofx ~/Downloads/*.qfx --account 1234567890`,
		Args: cobra.MinimumNArgs(1),
		RunE: runScoreOFX,
	}

	cmd.Flags().String("customer", "", "customer id for every line (default: statement account id)")
	cmd.Flags().String("channel", string(model.DefaultChannel), "channel for lines that are neither ATM nor POS")
	cmd.Flags().Int("account-age", model.DefaultAccountAgeDays, "account age in days")
	cmd.Flags().Bool("kyc", true, "customer passed KYC verification")
	cmd.Flags().String("account", "", "only score this account id")
	cmd.Flags().Bool("no-progress", false, "hide the progress bar")

	return cmd
}

func runScoreOFX(cmd *cobra.Command, args []string) error {
	opts, err := ofxOptions(cmd)
	if err != nil {
		return err
	}

	files, err := expandFiles(args)
	if err != nil {
		return err
	}

	entries, err := parseStatements(cmd, files, opts)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return common.NewUserError("No transactions found in the given statements", common.ErrNoTransactions)
	}

	_, client, err := loadClient()
	if err != nil {
		return err
	}

	interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := interrupts.HandleInterrupts(cmd.Context(), true)

	journal, err := storage.OpenSessionJournal(ctx)
	if err != nil {
		return fmt.Errorf("failed to open session journal: %w", err)
	}
	defer func() { _ = journal.Close() }()

	runnerOpts := []batch.Option{batch.WithWriter(cmd.ErrOrStderr()), batch.WithRecorder(journal)}
	if noProgress, _ := cmd.Flags().GetBool("no-progress"); noProgress {
		runnerOpts = append(runnerOpts, batch.WithoutProgress())
	}

	drafts := make([]model.Draft, 0, len(entries))
	payees := make(map[string]string, len(entries))
	for _, e := range entries {
		drafts = append(drafts, e.Draft)
		payees[e.Draft.TransactionID] = e.Payee
	}

	report, runErr := batch.NewRunner(client, runnerOpts...).Run(ctx, drafts)
	if runErr != nil && !interrupts.WasInterrupted() {
		slog.Warn("Batch scoring stopped early", "error", runErr)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.RenderBatchReport(report, payees))

	// Still summarize after an interrupt.
	if summary, err := journal.Summary(context.WithoutCancel(ctx)); err == nil && summary.Submitted > 0 {
		session := viewmodel.PresentSession(summary)
		fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Fraud rate %s, average risk %d%%",
			session.FraudRate, session.AverageRiskPercent)))
	}

	if runErr != nil {
		return runErr
	}
	if report.Scored() == 0 {
		return common.NewUserError("No transaction could be scored", report.Failures()[0].Err)
	}
	return nil
}

func ofxOptions(cmd *cobra.Command) (ofx.Options, error) {
	opts := ofx.DefaultOptions()

	channel, _ := cmd.Flags().GetString("channel")
	c, err := model.ParseChannel(channel)
	if err != nil {
		return ofx.Options{}, common.NewUserError(fmt.Sprintf("--channel: %v", err), err)
	}
	opts.DefaultChannel = c

	opts.CustomerID, _ = cmd.Flags().GetString("customer")
	opts.Account, _ = cmd.Flags().GetString("account")
	opts.KYCVerified, _ = cmd.Flags().GetBool("kyc")
	opts.AccountAgeDays, _ = cmd.Flags().GetInt("account-age")
	if opts.AccountAgeDays < 0 {
		return ofx.Options{}, common.NewUserError("--account-age must not be negative", common.ErrInvalidConfig)
	}

	return opts, nil
}

// expandFiles resolves glob patterns, keeping plain paths that exist.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) > 0 {
			files = append(files, matches...)
			continue
		}
		if _, err := os.Stat(pattern); err == nil {
			files = append(files, pattern)
		} else {
			slog.Warn("No files found matching pattern", "pattern", pattern)
		}
	}

	if len(files) == 0 {
		return nil, common.NewUserError("No statement files found", errors.New("no files matched"))
	}
	return files, nil
}

// parseStatements parses every file and drops lines already seen in an
// earlier file.
func parseStatements(cmd *cobra.Command, files []string, opts ofx.Options) ([]ofx.Entry, error) {
	parser := ofx.NewParser()
	seen := make(map[string]bool)

	var entries []ofx.Entry
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			slog.Error("Failed to open file", "file", path, "error", err)
			continue
		}
		parsed, err := parser.ParseDrafts(cmd.Context(), f, opts)
		_ = f.Close()
		if err != nil {
			if cmd.Context().Err() != nil {
				return nil, err
			}
			slog.Error("Failed to parse OFX file", "file", path, "error", err)
			continue
		}

		added := 0
		for _, e := range parsed {
			if seen[e.Draft.TransactionID] {
				continue
			}
			seen[e.Draft.TransactionID] = true
			entries = append(entries, e)
			added++
		}
		slog.Info("Processed file",
			"file", filepath.Base(path),
			"transactions_found", len(parsed),
			"added", added,
			"duplicates", len(parsed)-added)
	}
	return entries, nil
}

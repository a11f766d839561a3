// Package batch scores many drafts against the scoring service, one at a time.
package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/Veraticus/fraudshield/internal/model"
	"github.com/Veraticus/fraudshield/internal/scoring"
	"github.com/schollz/progressbar/v3"
)

// Recorder persists each successfully scored draft.
type Recorder interface {
	Record(ctx context.Context, draft model.Draft, verdict model.Verdict) error
}

// Result is the outcome of scoring one draft. Exactly one of Verdict and Err
// is meaningful.
type Result struct {
	Err     error
	Draft   model.Draft
	Verdict model.Verdict
}

// OK reports whether the draft was scored.
func (r Result) OK() bool { return r.Err == nil }

// Report collects the results of a run in submission order.
type Report struct {
	Results  []Result
	Duration time.Duration
}

// Scored returns how many drafts received a verdict.
func (r Report) Scored() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}
	return n
}

// Flagged returns how many verdicts predicted fraud.
func (r Report) Flagged() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() && res.Verdict.Prediction.IsFraud() {
			n++
		}
	}
	return n
}

// Failures returns the drafts that could not be scored.
func (r Report) Failures() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// Runner submits drafts sequentially. Each draft gets a single attempt.
type Runner struct {
	client       scoring.Client
	recorder     Recorder
	writer       io.Writer
	showProgress bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithWriter sets where the progress bar is drawn.
func WithWriter(w io.Writer) Option {
	return func(r *Runner) {
		r.writer = w
	}
}

// WithRecorder journals every verdict.
func WithRecorder(rec Recorder) Option {
	return func(r *Runner) {
		r.recorder = rec
	}
}

// WithoutProgress disables the progress bar.
func WithoutProgress() Option {
	return func(r *Runner) {
		r.showProgress = false
	}
}

// NewRunner creates a runner that scores through client.
func NewRunner(client scoring.Client, opts ...Option) *Runner {
	r := &Runner{
		client:       client,
		writer:       os.Stderr,
		showProgress: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run scores every draft in order. Scoring failures are collected in the
// report; the returned error is non-nil only when ctx ends the run early, in
// which case the report holds the drafts processed so far.
func (r *Runner) Run(ctx context.Context, drafts []model.Draft) (Report, error) {
	start := time.Now()
	report := Report{Results: make([]Result, 0, len(drafts))}
	bar := r.newProgressBar(len(drafts))

	for _, draft := range drafts {
		if err := ctx.Err(); err != nil {
			report.Duration = time.Since(start)
			return report, fmt.Errorf("batch scoring stopped after %d of %d drafts: %w",
				len(report.Results), len(drafts), err)
		}

		res := Result{Draft: draft}
		res.Verdict, res.Err = r.client.SubmitTransaction(ctx, draft)
		if res.Err != nil {
			slog.Warn("Failed to score draft",
				"transaction_id", draft.TransactionID,
				"error", res.Err)
		} else if r.recorder != nil {
			if err := r.recorder.Record(ctx, draft, res.Verdict); err != nil {
				slog.Warn("Failed to journal verdict",
					"transaction_id", draft.TransactionID,
					"error", err)
			}
		}
		report.Results = append(report.Results, res)

		if bar != nil {
			if err := bar.Add(1); err != nil {
				slog.Warn("Failed to update progress bar", "error", err)
			}
		}
	}

	report.Duration = time.Since(start)
	slog.Info("Batch scoring complete",
		"drafts", len(drafts),
		"scored", report.Scored(),
		"flagged", report.Flagged(),
		"duration", report.Duration)

	return report, nil
}

func (r *Runner) newProgressBar(total int) *progressbar.ProgressBar {
	if !r.showProgress || total == 0 {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Scoring transactions...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(r.writer); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/fraudshield/internal/model"
)

// Entry is one journaled verdict together with the draft that produced it.
type Entry struct {
	RecordedAt time.Time
	Draft      model.Draft
	Verdict    model.Verdict
}

// Summary aggregates every verdict recorded this session.
type Summary struct {
	LastRecorded time.Time
	Submitted    int
	Flagged      int
	AverageRisk  float64
}

// Record appends a verdict to the journal.
func (j *SessionJournal) Record(ctx context.Context, draft model.Draft, verdict model.Verdict) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateVerdict(verdict); err != nil {
		return err
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO verdicts (
			transaction_id, customer_id, channel, amount,
			prediction, risk_score, reason, recorded_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		verdict.TransactionID,
		draft.CustomerID,
		string(draft.Channel),
		draft.TransactionAmount,
		string(verdict.Prediction),
		verdict.RiskScore,
		verdict.Reason,
		j.now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to record verdict: %w", err)
	}
	return nil
}

// Summary returns session totals.
func (j *SessionJournal) Summary(ctx context.Context) (Summary, error) {
	if err := validateContext(ctx); err != nil {
		return Summary{}, err
	}

	var (
		s    Summary
		last int64
	)
	err := j.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN prediction = ? THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(risk_score), 0),
			COALESCE(MAX(recorded_at), 0)
		FROM verdicts`,
		string(model.PredictionFraud),
	).Scan(&s.Submitted, &s.Flagged, &s.AverageRisk, &last)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to summarize journal: %w", err)
	}

	if last > 0 {
		s.LastRecorded = time.Unix(0, last)
	}
	return s, nil
}

// Recent returns up to limit entries, most recent first.
func (j *SessionJournal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return []Entry{}, nil
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT transaction_id, customer_id, channel, amount,
			prediction, risk_score, COALESCE(reason, ''), recorded_at
		FROM verdicts
		ORDER BY recorded_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := []Entry{}
	for rows.Next() {
		var (
			e          Entry
			channel    string
			prediction string
			recorded   int64
		)
		if err := rows.Scan(
			&e.Verdict.TransactionID,
			&e.Draft.CustomerID,
			&channel,
			&e.Draft.TransactionAmount,
			&prediction,
			&e.Verdict.RiskScore,
			&e.Verdict.Reason,
			&recorded,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		e.Draft.TransactionID = e.Verdict.TransactionID
		e.Draft.Channel = model.Channel(channel)
		e.Verdict.Prediction = model.Prediction(prediction)
		e.RecordedAt = time.Unix(0, recorded)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate journal: %w", err)
	}
	return entries, nil
}

package components

import (
	"context"
	"sync"

	"github.com/Veraticus/fraudshield/internal/model"
	"github.com/Veraticus/fraudshield/internal/storage"
)

// fakeClient records every call and answers from canned results.
type fakeClient struct {
	submitErr  error
	metricsErr error
	alertsErr  error
	healthErr  error
	verdict    model.Verdict
	health     string
	submitted  []model.Draft
	alertLims  []int
	alerts     []model.AlertRecord
	metrics    model.MetricsSnapshot
	mu         sync.Mutex
	metricsN   int
	healthN    int
}

func (f *fakeClient) SubmitTransaction(_ context.Context, draft model.Draft) (model.Verdict, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, draft)
	if f.submitErr != nil {
		return model.Verdict{}, f.submitErr
	}
	v := f.verdict
	if v.TransactionID == "" {
		v.TransactionID = draft.TransactionID
	}
	return v, nil
}

func (f *fakeClient) FetchMetrics(_ context.Context) (model.MetricsSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.metricsN++
	if f.metricsErr != nil {
		return model.MetricsSnapshot{}, f.metricsErr
	}
	return f.metrics, nil
}

func (f *fakeClient) FetchAlerts(_ context.Context, limit int) ([]model.AlertRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alertLims = append(f.alertLims, limit)
	if f.alertsErr != nil {
		return nil, f.alertsErr
	}
	return f.alerts, nil
}

func (f *fakeClient) Health(_ context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.healthN++
	if f.healthErr != nil {
		return "", f.healthErr
	}
	return f.health, nil
}

func (f *fakeClient) submitCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.submitted)
}

type fakeJournal struct {
	err     error
	recent  []storage.Entry
	summary storage.Summary
	calls   int
	limits  []int
}

func (j *fakeJournal) Summary(_ context.Context) (storage.Summary, error) {
	j.calls++
	return j.summary, j.err
}

func (j *fakeJournal) Recent(_ context.Context, limit int) ([]storage.Entry, error) {
	j.limits = append(j.limits, limit)
	if len(j.recent) > limit {
		return j.recent[:limit], nil
	}
	return j.recent, nil
}

package components

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/fraudshield/internal/common"
	"github.com/Veraticus/fraudshield/internal/model"
	"github.com/Veraticus/fraudshield/internal/scoring"
	tuitest "github.com/Veraticus/fraudshield/internal/tui/testing"
	"github.com/Veraticus/fraudshield/internal/tui/themes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activateMetrics(t *testing.T, m MetricsModel) MetricsModel {
	t.Helper()
	cmd := m.Activate()
	require.NotNil(t, cmd)
	require.True(t, m.State().IsPending())

	msg, ok := tuitest.Find[MetricsLoadedMsg](tuitest.Collect(cmd))
	require.True(t, ok)
	m, _ = m.Update(msg)
	return m
}

func TestMetricsModel_Success(t *testing.T) {
	client := &fakeClient{metrics: model.MetricsSnapshot{
		Accuracy: 0.95, Precision: 0.875, Recall: 0.8, F1Score: 0.84, AUC: 0.91,
	}}
	m := activateMetrics(t, NewMetricsModel(context.Background(), client, themes.Default))

	require.True(t, m.State().IsSuccess())
	view := tuitest.PlainView(m.View())
	assert.True(t, tuitest.ContainsInOrder(view, "Accuracy", "95.0%", "Precision", "87.5%", "Recall", "80.0%"), view)
	assert.True(t, tuitest.ContainsInOrder(view, "F1 Score", "84.0%", "AUC", "91.0%"), view)
}

func TestMetricsModel_NetworkFailureThenReactivation(t *testing.T) {
	client := &fakeClient{
		metricsErr: &scoring.NetworkError{Op: "metrics", Err: errors.New("connection refused")},
		alerts:     threeAlerts(),
	}
	metrics := NewMetricsModel(context.Background(), client, themes.Default)
	feed := newTestFeed(client)

	metrics = activateMetrics(t, metrics)
	require.True(t, metrics.State().IsFailed())
	assert.ErrorIs(t, metrics.State().Err(), common.ErrNetwork)
	assert.Contains(t, tuitest.PlainView(metrics.View()), "Failed to load metrics: scoring service unreachable")

	// Visiting the feed does not touch the metrics state.
	feed = activateFeed(t, feed)
	assert.True(t, feed.State().IsSuccess())
	assert.True(t, metrics.State().IsFailed())
	assert.Equal(t, 1, client.metricsN)

	client.metricsErr = nil
	metrics = activateMetrics(t, metrics)
	assert.True(t, metrics.State().IsSuccess())
	assert.Equal(t, 2, client.metricsN)
}

func TestMetricsModel_ActivateWhilePendingIsNoOp(t *testing.T) {
	client := &fakeClient{}
	m := NewMetricsModel(context.Background(), client, themes.Default)

	first := m.Activate()
	require.NotNil(t, first)
	assert.Nil(t, m.Activate())
	tuitest.Collect(first)
	assert.Equal(t, 1, client.metricsN)
}

func TestMetricsModel_DropsStaleResults(t *testing.T) {
	m := NewMetricsModel(context.Background(), &fakeClient{}, themes.Default)

	m, _ = m.Update(MetricsLoadedMsg{Ticket: Ticket{Owner: MetricsOwner, Seq: 0}})
	assert.True(t, m.State().IsIdle(), "result with no fetch in flight")
}

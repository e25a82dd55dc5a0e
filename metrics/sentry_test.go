package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledMetricsAreNoOps(t *testing.T) {
	m, err := NewSentryMetrics("")
	require.NoError(t, err)
	assert.False(t, m.Enabled())

	ctx := context.Background()
	got, finish := m.StartTransaction(ctx, "search")
	assert.Equal(t, ctx, got)
	finish()

	m.RecordSearch(ctx, "00-04-07", 3, time.Millisecond)
	m.CaptureError(errors.New("boom"))
	m.Flush()
}

func TestNilMetrics(t *testing.T) {
	var m *SentryMetrics
	assert.False(t, m.Enabled())
	m.CaptureError(errors.New("boom"))
}

func TestBadDSN(t *testing.T) {
	_, err := NewSentryMetrics("not a dsn")
	assert.Error(t, err)
}

package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryMetrics reports search timings and handler errors to Sentry. A zero DSN leaves
// it disabled and every method becomes a no-op.
type SentryMetrics struct {
	enabled bool
}

func NewSentryMetrics(dsn string) (*SentryMetrics, error) {
	if dsn == "" {
		return &SentryMetrics{}, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		EnableTracing:    true,
		TracesSampleRate: 1.0,
	})
	if err != nil {
		return nil, fmt.Errorf("sentry init failed: %w", err)
	}
	return &SentryMetrics{enabled: true}, nil
}

func (m *SentryMetrics) Enabled() bool {
	return m != nil && m.enabled
}

// StartTransaction returns ctx unchanged and a no-op finish func when disabled.
func (m *SentryMetrics) StartTransaction(ctx context.Context, name string) (context.Context, func()) {
	if !m.Enabled() {
		return ctx, func() {}
	}
	transaction := sentry.StartTransaction(ctx, name)
	return transaction.Context(), transaction.Finish
}

// RecordSearch records one chord-key lookup.
func (m *SentryMetrics) RecordSearch(ctx context.Context, key string, numMatches int, duration time.Duration) {
	if !m.Enabled() {
		return
	}

	span := sentry.StartSpan(ctx, "search.lookup")
	defer span.Finish()

	span.SetTag("key", key)
	span.SetData("num_matches", numMatches)
	span.SetData("duration_ms", duration.Milliseconds())
	span.Status = sentry.SpanStatusOK
	span.Description = fmt.Sprintf("Search: %s", key)
}

func (m *SentryMetrics) CaptureError(err error) {
	if !m.Enabled() || err == nil {
		return
	}
	sentry.CaptureException(err)
}

func (m *SentryMetrics) Flush() {
	if !m.Enabled() {
		return
	}
	sentry.Flush(2 * time.Second)
}

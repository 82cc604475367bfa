package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventflow/internal/lib/logger/handlers/slogdiscard"
)

type stubAccessor struct {
	err error
}

func (s *stubAccessor) RecordHit(_ context.Context, _ Hit) error { return s.err }

func (s *stubAccessor) GetViewCounts(_ context.Context, paths []string) (map[string]int64, error) {
	if s.err != nil {
		return nil, s.err
	}
	counts := make(map[string]int64, len(paths))
	for _, p := range paths {
		counts[p] = 10
	}
	return counts, nil
}

func (s *stubAccessor) GetViewCount(_ context.Context, _ int64) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return 10, nil
}

func TestEventPath(t *testing.T) {
	assert.Equal(t, "/events/42", EventPath(42))
}

func TestFallback_RecordHitSwallowsFailures(t *testing.T) {
	fb := NewFallback(&stubAccessor{err: errors.New("connection refused")}, slogdiscard.NewDiscardLogger())

	err := fb.RecordHit(context.Background(), Hit{
		App:       "event-service",
		URI:       "/events/42",
		IP:        "10.0.0.1",
		Timestamp: time.Now(),
	})
	assert.NoError(t, err)
}

func TestFallback_GetViewCountsDegradesToEmpty(t *testing.T) {
	fb := NewFallback(&stubAccessor{err: errors.New("connection refused")}, slogdiscard.NewDiscardLogger())

	counts, err := fb.GetViewCounts(context.Background(), []string{"/events/1", "/events/2"})
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestFallback_GetViewCountDegradesToZero(t *testing.T) {
	fb := NewFallback(&stubAccessor{err: errors.New("connection refused")}, slogdiscard.NewDiscardLogger())

	count, err := fb.GetViewCount(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestFallback_PassesThroughOnSuccess(t *testing.T) {
	fb := NewFallback(&stubAccessor{}, slogdiscard.NewDiscardLogger())

	count, err := fb.GetViewCount(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(10), count)
}

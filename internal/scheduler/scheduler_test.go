package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibeckermayer/syndicate/internal/logging"
)

func TestNewRejectsUnknownTimezone(t *testing.T) {
	_, err := New("Mars/Olympus", logging.Discard())
	require.Error(t, err)
}

func TestAddJobRejectsBadSchedule(t *testing.T) {
	s, err := New("", logging.Discard())
	require.NoError(t, err)
	require.Error(t, s.AddJob("bad", "not a schedule", func(context.Context) error { return nil }))
	assert.Empty(t, s.ListJobs())
}

func TestListAndRemoveJobs(t *testing.T) {
	s, err := New("UTC", logging.Discard())
	require.NoError(t, err)

	noop := func(context.Context) error { return nil }
	require.NoError(t, s.AddJob("a", "@every 1h", noop))
	require.NoError(t, s.AddJob("b", "0 7 * * *", noop))
	// re-adding replaces the entry
	require.NoError(t, s.AddJob("a", "@every 2h", noop))

	names := map[string]bool{}
	for _, j := range s.ListJobs() {
		names[j.Name] = true
	}
	assert.Equal(t, map[string]bool{"a": true, "b": true}, names)

	s.RemoveJob("a")
	require.Len(t, s.ListJobs(), 1)
	assert.Equal(t, "b", s.ListJobs()[0].Name)
}

func TestRunNowReturnsJobError(t *testing.T) {
	s, err := New("UTC", logging.Discard())
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.RunNow(context.Background(), "x", func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		assert.True(t, ok)
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestFlushJobRuns(t *testing.T) {
	s, err := New("UTC", logging.Discard())
	require.NoError(t, err)

	var calls atomic.Int32
	require.NoError(t, s.AddFlushJob("session-flush", "@every 1s", func() error {
		calls.Add(1)
		return nil
	}))

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool { return calls.Load() > 0 }, 5*time.Second, 50*time.Millisecond)
}

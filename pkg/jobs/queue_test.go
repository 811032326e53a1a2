package jobs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueDrainsOnStop(t *testing.T) {
	var mu sync.Mutex
	var seen []interface{}
	q := NewQueue("test", func(ctx context.Context, job Job) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, job.Payload)
		return nil
	}, QueueConfig{Workers: 2, BufferSize: 10})

	q.Start()
	for i := 0; i < 5; i++ {
		require.NoError(t, q.Enqueue(Job{Kind: "n", Payload: i}))
	}
	require.NoError(t, q.Stop(context.Background()))

	assert.ElementsMatch(t, []interface{}{0, 1, 2, 3, 4}, seen)
	assert.ErrorIs(t, q.Enqueue(Job{Kind: "late"}), ErrQueueClosed)
}

func TestQueueRetriesFailedJobs(t *testing.T) {
	var calls int32
	q := NewQueue("retry", func(ctx context.Context, job Job) error {
		if atomic.AddInt32(&calls, 1) < 3 {
			return errors.New("transient")
		}
		return nil
	}, QueueConfig{MaxRetries: 3, RetryDelay: time.Millisecond})

	q.Start()
	require.NoError(t, q.Enqueue(Job{Kind: "flaky"}))
	require.NoError(t, q.Stop(context.Background()))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestQueueGivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	q := NewQueue("broken", func(ctx context.Context, job Job) error {
		atomic.AddInt32(&calls, 1)
		return errors.New("permanent")
	}, QueueConfig{MaxRetries: 2, RetryDelay: time.Millisecond})

	q.Start()
	require.NoError(t, q.Enqueue(Job{Kind: "broken"}))
	require.NoError(t, q.Stop(context.Background()))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestQueueRejectsWhenFull(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	q := NewQueue("full", func(ctx context.Context, job Job) error {
		started <- struct{}{}
		<-release
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 1})

	q.Start()
	require.NoError(t, q.Enqueue(Job{Kind: "a"}))
	<-started
	require.NoError(t, q.Enqueue(Job{Kind: "b"}))
	assert.ErrorIs(t, q.Enqueue(Job{Kind: "c"}), ErrQueueFull)

	close(release)
	require.NoError(t, q.Stop(context.Background()))
}

func TestEnqueueBeforeStart(t *testing.T) {
	q := NewQueue("idle", func(ctx context.Context, job Job) error { return nil }, QueueConfig{})
	assert.ErrorIs(t, q.Enqueue(Job{}), ErrQueueClosed)
	assert.NoError(t, q.Stop(context.Background()))
}

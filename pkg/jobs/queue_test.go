package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueStopDrainsBufferedJobs(t *testing.T) {
	var handled int32
	gate := make(chan struct{})
	q := NewQueue("test", func(ctx context.Context, job Job) error {
		<-gate
		atomic.AddInt32(&handled, 1)
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 4})

	q.Start(context.Background())
	require.NoError(t, q.Enqueue(Job{ID: "a", Type: "save"}))
	require.NoError(t, q.Enqueue(Job{ID: "b", Type: "save"}))

	close(gate)
	q.Stop()

	assert.EqualValues(t, 2, atomic.LoadInt32(&handled))
}

func TestQueueSurvivesCallerCancellation(t *testing.T) {
	var handled int32
	q := NewQueue("test", func(ctx context.Context, job Job) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		atomic.AddInt32(&handled, 1)
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 4})

	ctx, cancel := context.WithCancel(context.Background())
	q.Start(ctx)
	cancel()

	require.NoError(t, q.Enqueue(Job{ID: "a", Type: "save"}))
	q.Stop()

	assert.EqualValues(t, 1, atomic.LoadInt32(&handled))
}

func TestQueueEnqueueAfterStop(t *testing.T) {
	q := NewQueue("test", func(ctx context.Context, job Job) error {
		return nil
	}, QueueConfig{Workers: 1})

	q.Start(context.Background())
	q.Stop()

	assert.Error(t, q.Enqueue(Job{ID: "a"}))
}

func TestQueueEnqueueBeforeStart(t *testing.T) {
	q := NewQueue("test", nil, QueueConfig{})
	assert.Error(t, q.Enqueue(Job{ID: "a"}))
}

func TestQueueRetriesUntilLimit(t *testing.T) {
	var attempts int32
	q := NewQueue("test", func(ctx context.Context, job Job) error {
		atomic.AddInt32(&attempts, 1)
		return errors.New("boom")
	}, QueueConfig{Workers: 1, MaxRetries: 2, RetryDelay: time.Millisecond})

	q.Start(context.Background())
	require.NoError(t, q.Enqueue(Job{ID: "a", Type: "save"}))

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&attempts) >= 3
	}, 2*time.Second, 10*time.Millisecond)

	q.Stop()
	assert.EqualValues(t, 3, atomic.LoadInt32(&attempts))
}

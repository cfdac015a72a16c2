package render

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolRunsJobAndReturnsResult(t *testing.T) {
	p := NewPool(Options{Workers: 1, QueueSize: 4})
	defer p.Close()

	ran := false
	err := p.Do(context.Background(), "encode", func(context.Context) error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestPoolPropagatesJobError(t *testing.T) {
	p := NewPool(Options{Workers: 1, QueueSize: 4})
	defer p.Close()

	boom := errors.New("boom")
	err := p.Do(context.Background(), "encode", func(context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, uint64(1), p.ErrorCount())
}

func TestPoolBoundsConcurrency(t *testing.T) {
	p := NewPool(Options{Workers: 2, QueueSize: 16})
	defer p.Close()

	var mu sync.Mutex
	active, peak := 0, 0

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = p.Do(context.Background(), "encode", func(context.Context) error {
				mu.Lock()
				active++
				if active > peak {
					peak = active
				}
				mu.Unlock()

				time.Sleep(20 * time.Millisecond)

				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, peak, 2)
}

func TestPoolJobTimeout(t *testing.T) {
	p := NewPool(Options{Workers: 1, QueueSize: 4, MaxDuration: 30 * time.Millisecond})
	defer p.Close()

	err := p.Do(context.Background(), "encode", func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Second):
			return nil
		}
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPoolRejectsAfterClose(t *testing.T) {
	p := NewPool(Options{Workers: 1, QueueSize: 4})
	p.Close()

	err := p.Do(context.Background(), "encode", func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestPoolReleasesCallerOnContextCancel(t *testing.T) {
	p := NewPool(Options{Workers: 1, QueueSize: 1})
	defer p.Close()

	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = p.Do(context.Background(), "slow", func(context.Context) error {
			<-release
			return nil
		})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := p.Do(ctx, "waiting", func(context.Context) error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	wg.Wait()
}

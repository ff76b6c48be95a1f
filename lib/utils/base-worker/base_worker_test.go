package baseworker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBaseWorker(t *testing.T) {
	t.Run(`runs by schedule and survives panic`, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		var calls int32
		worker := NewInstance("test", time.Millisecond, 5*time.Millisecond)
		go worker.Run(ctx, func(ctx context.Context) {
			if atomic.AddInt32(&calls, 1) == 1 {
				panic("first run failed")
			}
		})
		require.Eventually(t, func() bool {
			return atomic.LoadInt32(&calls) >= 3
		}, time.Second, time.Millisecond)
	})

	t.Run(`wake runs job before interval`, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		done := make(chan struct{}, 1)
		worker := NewInstance("test", time.Hour, time.Hour)
		go worker.Run(ctx, func(ctx context.Context) {
			done <- struct{}{}
		})
		worker.Wake()
		worker.Wake()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("job was not started by wake")
		}
	})

	t.Run(`stops on context cancel`, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		stopped := make(chan struct{})
		worker := NewInstance("test", time.Hour, time.Hour)
		go func() {
			worker.Run(ctx, func(ctx context.Context) {})
			close(stopped)
		}()
		cancel()
		select {
		case <-stopped:
		case <-time.After(time.Second):
			t.Fatal("worker was not stopped")
		}
	})
}

package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

type countingLimiter struct {
	mu    sync.Mutex
	calls int
}

func (l *countingLimiter) Allow() error {
	l.mu.Lock()
	l.calls++
	l.mu.Unlock()
	return nil
}

func (l *countingLimiter) ReportResult(error) {}

func (l *countingLimiter) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

func TestDispatcher_PacesPollingWhenQueueUnreachable(t *testing.T) {
	mockRedis := miniredis.RunT(t)
	addr := mockRedis.Addr()
	mockRedis.Close()

	limiter := &countingLimiter{}
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Limiter:     limiter,
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	wp := &WorkerPool{
		Redis:      client,
		WorkerNum:  1,
		JobChannel: make(chan string, 1),
		DLQConfig:  DefaultDLQConfig(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 600*time.Millisecond)
	defer cancel()

	wp.Start(ctx)
	<-ctx.Done()
	wp.Wait()

	// Every poll attempt is one Redis command. A dispatcher that sleeps
	// between failed polls fits at most a couple of attempts in 600ms; a
	// spinning one fits thousands.
	assert.LessOrEqual(t, limiter.count(), 3, "failed polls must back off, not spin")
}

package pipeline

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"econoshorts/config"
)

// RetryPolicy bounds retries for a flaky operation: a fixed delay between
// attempts plus up to 20% jitter.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// PolicyFromConfig converts config retry settings, falling back to a single
// attempt when unset.
func PolicyFromConfig(cfg config.RetryConfig) RetryPolicy {
	p := RetryPolicy{
		MaxAttempts: cfg.MaxAttempts,
		Delay:       time.Duration(cfg.DelaySeconds * float64(time.Second)),
	}
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	return p
}

// Do runs fn until it succeeds, attempts run out, or ctx ends.
func (p RetryPolicy) Do(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == p.MaxAttempts {
			break
		}
		delay := p.Delay
		if delay > 0 {
			delay += time.Duration(rand.Int63n(int64(delay)/5 + 1))
		}
		log.Printf("[retry] %s attempt %d/%d failed: %v (retrying in %s)", name, attempt, p.MaxAttempts, lastErr, delay)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("%s failed after %d attempts: %w", name, p.MaxAttempts, lastErr)
}

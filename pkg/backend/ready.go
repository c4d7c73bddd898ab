package backend

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-pkgz/repeater/v2"
)

// HealthChecker is the health part of the client
type HealthChecker interface {
	Health(ctx context.Context) error
}

// WaitReady polls the health endpoint with backoff until it succeeds, attempts are exhausted
// or ctx is canceled. Used on startup only, news fetches are never retried.
func WaitReady(ctx context.Context, hc HealthChecker, attempts int, initialDelay time.Duration) error {
	if attempts < 1 {
		attempts = 1
	}
	retrier := repeater.NewBackoff(attempts, initialDelay, repeater.WithMaxDelay(10*time.Second))

	attempt := 0
	err := retrier.Do(ctx, func() error {
		attempt++
		if err := hc.Health(ctx); err != nil {
			log.Printf("[DEBUG] news service not ready, attempt %d/%d: %v", attempt, attempts, err)
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("wait for news service: %w", err)
	}
	log.Printf("[INFO] news service is ready")
	return nil
}

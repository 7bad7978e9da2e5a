package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrCatalogUnavailable is returned when the host tables never became ready.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// Readiness polling defaults.
const (
	DefaultWaitAttempts = 5
	DefaultWaitDelay    = time.Second
)

// RetryPolicy bounds how long WaitForTables polls.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// DefaultRetryPolicy polls five times, one second apart.
var DefaultRetryPolicy = RetryPolicy{Attempts: DefaultWaitAttempts, Delay: DefaultWaitDelay}

// WaitForTables polls provider until it returns tables with an item map,
// sleeping policy.Delay between attempts without blocking the host beyond
// this goroutine. After policy.Attempts failures it returns an error
// wrapping ErrCatalogUnavailable and the last provider error.
func WaitForTables(ctx context.Context, provider TablesProvider, policy RetryPolicy) (*Tables, error) {
	attempts := policy.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			timer := time.NewTimer(policy.Delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			}
		}

		tables, err := provider.Tables()
		if err == nil && tables != nil && tables.Items != nil {
			return tables, nil
		}
		if err == nil {
			err = ErrNotReady
		}
		lastErr = err
	}

	return nil, fmt.Errorf("%w after %d attempts: %w", ErrCatalogUnavailable, attempts, lastErr)
}

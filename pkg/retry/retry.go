// Package retry governs generation calls against quota-limited services.
package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/madetect-tw/madetect-engine/pkg/llm"
)

// RateLimitDocsURL points callers hitting quota exhaustion at the
// provider's rate-limit documentation.
const RateLimitDocsURL = "https://ai.google.dev/gemini-api/docs/rate-limits"

// SleepFunc waits for the given duration, honoring context cancellation.
// Injectable so policy behavior is testable without real timing.
type SleepFunc func(ctx context.Context, d time.Duration) error

// RetryableError is an interface for errors that explicitly declare their
// retryability. llm errors implement it.
type RetryableError interface {
	error
	IsRetryable() bool
}

// Policy defines retry behavior for quota-limited generation calls.
// Only quota failures are retried; every other error propagates
// immediately.
type Policy struct {
	MaxAttempts  int           // Total attempts, including the first
	DefaultDelay time.Duration // Wait when the provider gives no hint
	Buffer       time.Duration // Safety margin added to every wait
	Sleep        SleepFunc     // Defaults to a context-aware time.After
}

// DefaultPolicy returns the production policy: 3 attempts total, 60s
// default wait plus a 1s buffer.
func DefaultPolicy() *Policy {
	return &Policy{
		MaxAttempts:  3,
		DefaultDelay: 60 * time.Second,
		Buffer:       time.Second,
	}
}

// QuotaExhaustedError reports that all attempts failed on quota errors.
// It is distinguishable from a generic API error and carries the last
// wait hint the provider suggested.
type QuotaExhaustedError struct {
	Attempts   int
	RetryAfter time.Duration
	LastErr    error
}

// Error implements the error interface.
func (e *QuotaExhaustedError) Error() string {
	return fmt.Sprintf("generation quota exhausted after %d attempts, retry after %s (see %s): %v",
		e.Attempts, e.RetryAfter, RateLimitDocsURL, e.LastErr)
}

// Unwrap returns the last underlying error.
func (e *QuotaExhaustedError) Unwrap() error {
	return e.LastErr
}

// Generate invokes the client once per attempt, retrying only on quota
// failures. Each wait is the provider's hint (or DefaultDelay when absent)
// plus Buffer. Non-quota errors propagate unmodified with zero sleeps.
func (p *Policy) Generate(ctx context.Context, client llm.Client, prompt string) (string, error) {
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var lastErr error
	var lastDelay time.Duration

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		text, err := client.GenerateText(ctx, prompt)
		if err == nil {
			return text, nil
		}

		classified := llm.ClassifyError(err)
		if !classified.Retryable {
			return "", err
		}

		lastErr = err
		lastDelay = classified.RetryAfter
		if lastDelay <= 0 {
			lastDelay = p.DefaultDelay
		}

		if attempt == p.MaxAttempts {
			break
		}

		if err := sleep(ctx, lastDelay+p.Buffer); err != nil {
			return "", err
		}
	}

	return "", &QuotaExhaustedError{
		Attempts:   p.MaxAttempts,
		RetryAfter: lastDelay,
		LastErr:    lastErr,
	}
}

// sleepContext waits for d, returning early with the context's error when
// it is canceled.
func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

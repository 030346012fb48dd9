// Package config holds the retry policies for the operations that leave the
// process: spreadsheet reads from the Google Sheets API and dataset uploads
// to the publish host.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Retry configuration constants
const (
	// Spreadsheet read retry configuration
	SpreadsheetReadMaxAttempts       = 3
	SpreadsheetReadInitialWait       = 500 * time.Millisecond
	SpreadsheetReadMaxWait           = 5 * time.Second
	SpreadsheetReadBackoffMultiplier = 2.0
	SpreadsheetReadTimeout           = 30 * time.Second

	// Publish retry configuration
	PublishMaxAttempts       = 3
	PublishInitialWait       = 1 * time.Second
	PublishMaxWait           = 10 * time.Second
	PublishBackoffMultiplier = 2.0
	PublishTimeout           = 60 * time.Second
)

// RetryConfig defines retry behavior for operations
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
	Timeout     time.Duration
}

// ResilienceConfig contains all retry configurations
type ResilienceConfig struct {
	SpreadsheetRead RetryConfig
	Publish         RetryConfig
}

// DefaultResilienceConfig provides sensible defaults
var DefaultResilienceConfig = ResilienceConfig{
	SpreadsheetRead: RetryConfig{
		MaxAttempts: SpreadsheetReadMaxAttempts,
		InitialWait: SpreadsheetReadInitialWait,
		MaxWait:     SpreadsheetReadMaxWait,
		Multiplier:  SpreadsheetReadBackoffMultiplier,
		Timeout:     SpreadsheetReadTimeout,
	},
	Publish: RetryConfig{
		MaxAttempts: PublishMaxAttempts,
		InitialWait: PublishInitialWait,
		MaxWait:     PublishMaxWait,
		Multiplier:  PublishBackoffMultiplier,
		Timeout:     PublishTimeout,
	},
}

// Run executes fn under this retry policy: each attempt gets its own timeout,
// failed attempts wait with exponential backoff capped at MaxWait, and the
// last error is returned once the attempts are exhausted. A canceled parent
// context stops the retries immediately.
func (c RetryConfig) Run(ctx context.Context, logger zerolog.Logger, operation string, fn func(context.Context) error) error {
	wait := c.InitialWait
	var lastErr error

	for attempt := 1; attempt <= c.MaxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, c.Timeout)
		err := fn(attemptCtx)
		cancel()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == c.MaxAttempts {
			break
		}

		logger.Warn().
			Err(err).
			Str("operation", operation).
			Int("attempt", attempt).
			Dur("wait", wait).
			Msg("Operation failed, retrying")

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return fmt.Errorf("%s canceled while retrying: %w", operation, ctx.Err())
		}

		wait = time.Duration(float64(wait) * c.Multiplier)
		if wait > c.MaxWait {
			wait = c.MaxWait
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operation, c.MaxAttempts, lastErr)
}

package llm

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Retry policy for transient provider failures. Attempts are spaced with
// exponential backoff: 2s, 4s, capped at 10s.
const (
	defaultMaxAttempts = 3
	backoffInitial     = 2 * time.Second
	backoffMax         = 10 * time.Second
	backoffMultiplier  = 2
)

// RetryingClient decorates a Client with bounded retries on connectivity
// and timeout errors. Application-level failures (bad prompts, blocked
// content, empty candidates) are never retried.
type RetryingClient struct {
	inner       Client
	log         *zap.Logger
	maxAttempts int
	sleep       func(context.Context, time.Duration) error
}

// WithRetry wraps a client with the default retry policy.
func WithRetry(inner Client, log *zap.Logger) *RetryingClient {
	return &RetryingClient{
		inner:       inner,
		log:         log,
		maxAttempts: defaultMaxAttempts,
		sleep:       sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *RetryingClient) do(ctx context.Context, op string, call func() (string, error)) (string, error) {
	backoff := backoffInitial
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		result, err := call()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsRetryable(err) || attempt == c.maxAttempts {
			break
		}

		c.log.Warn("transient LLM failure, retrying",
			zap.String("op", op),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err))

		if err := c.sleep(ctx, backoff); err != nil {
			return "", err
		}
		backoff *= backoffMultiplier
		if backoff > backoffMax {
			backoff = backoffMax
		}
	}
	return "", lastErr
}

// GenerateContent implements Client.
func (c *RetryingClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.do(ctx, "generate_content", func() (string, error) {
		return c.inner.GenerateContent(ctx, prompt, tier)
	})
}

// GenerateCreative implements Client.
func (c *RetryingClient) GenerateCreative(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.do(ctx, "generate_creative", func() (string, error) {
		return c.inner.GenerateCreative(ctx, prompt, tier)
	})
}

// GenerateJSON implements Client.
func (c *RetryingClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.do(ctx, "generate_json", func() (string, error) {
		return c.inner.GenerateJSON(ctx, prompt, tier)
	})
}

// GetModel implements Client.
func (c *RetryingClient) GetModel(tier ModelTier) string {
	return c.inner.GetModel(tier)
}

// Close implements Client.
func (c *RetryingClient) Close() error {
	return c.inner.Close()
}

// retryableFragments mark transport-level failures in provider error
// strings that arrive without a typed cause.
var retryableFragments = []string{
	"connection refused",
	"connection reset",
	"broken pipe",
	"timeout",
	"deadline exceeded",
	"unavailable",
	"temporarily",
	"eof",
	"429",
	"503",
}

// IsRetryable classifies an error as a transient connectivity or timeout
// failure worth retrying.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	// Caller cancellation is final.
	if errors.Is(err, context.Canceled) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, fragment := range retryableFragments {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}

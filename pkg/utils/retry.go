package utils

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// RetryPolicy describes how an outbound call is retried: at most MaxAttempts
// tries, waiting BaseDelay + Step*n before retry n, and only when the call
// failed at the transport level or RetryableStatus accepts the status code.
type RetryPolicy struct {
	Name            string
	MaxAttempts     int
	BaseDelay       time.Duration
	Step            time.Duration
	RetryableStatus func(code int) bool
}

// DefaultRetryPolicy waits 2s, 4s, ... between three attempts and retries
// rate limiting and gateway errors.
func DefaultRetryPolicy(name string) RetryPolicy {
	return RetryPolicy{
		Name:            name,
		MaxAttempts:     3,
		BaseDelay:       2 * time.Second,
		Step:            2 * time.Second,
		RetryableStatus: IsRetryableStatus,
	}
}

func IsRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

type linearBackOff struct {
	base, step time.Duration
	n          int
}

func (b *linearBackOff) NextBackOff() time.Duration {
	d := b.base + time.Duration(b.n)*b.step
	b.n++
	return d
}

func (b *linearBackOff) Reset() { b.n = 0 }

// Do performs call under the policy. A response with a non-retryable status is
// returned to the caller as-is; the caller owns its body.
func (p RetryPolicy) Do(ctx context.Context, call func(ctx context.Context) (*http.Response, error)) (*http.Response, error) {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	retryable := p.RetryableStatus
	if retryable == nil {
		retryable = IsRetryableStatus
	}

	var resp *http.Response
	op := func() error {
		r, err := call(ctx)
		if err != nil {
			return err
		}
		if retryable(r.StatusCode) {
			_, _ = io.Copy(io.Discard, r.Body)
			r.Body.Close()
			return fmt.Errorf("retryable status %s", r.Status)
		}
		resp = r
		return nil
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(&linearBackOff{base: p.BaseDelay, step: p.Step}, uint64(attempts-1)),
		ctx,
	)
	notify := func(err error, wait time.Duration) {
		zap.L().Warn("retrying outbound call",
			zap.String("policy", p.Name),
			zap.Duration("wait", wait),
			zap.Error(err))
	}

	if err := backoff.RetryNotify(op, b, notify); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", p.Name, ErrUpstreamUnavailable, err)
	}
	return resp, nil
}

package gemini

import (
	"context"
	"fmt"
	"time"
)

// Default retry budget for outbound generative calls.
const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = time.Second
)

// Failure records one failed attempt. StatusCode and Body are set when the
// service answered with a non-2xx status; Cause is set for transport and
// encoding errors.
type Failure struct {
	StatusCode int
	Body       string
	Cause      error
}

// ServiceError is the terminal error after the retry budget is exhausted.
// It carries the last observed status code and raw body text.
type ServiceError struct {
	Endpoint   string
	Attempts   int
	StatusCode int
	Body       string
	Cause      error
}

func (e *ServiceError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("gemini: %s failed after %d attempts: status %d: %s", e.Endpoint, e.Attempts, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("gemini: %s failed after %d attempts: %v", e.Endpoint, e.Attempts, e.Cause)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// RetryPolicy drives the bounded exponential-backoff loop around one network
// call. Every failure is treated as retryable until the budget runs out;
// classification of permanent 4xx errors is deliberately not attempted.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Sleep       func(time.Duration) // overridable for tests; nil means time.Sleep
}

// DefaultRetryPolicy returns the standard 3-attempt policy with 1s base delay.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: DefaultMaxAttempts, BaseDelay: DefaultBaseDelay}
}

// Delay returns the pause before the given attempt (1-indexed): no delay
// before the first attempt, then base, 2*base, 4*base, ...
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}
	base := p.BaseDelay
	if base <= 0 {
		base = DefaultBaseDelay
	}
	return base << (attempt - 2)
}

// Do runs op up to MaxAttempts times, sleeping per Delay between attempts.
// It returns op's payload on the first success, or a *ServiceError holding
// the last failure once the budget is exhausted.
func (p RetryPolicy) Do(ctx context.Context, endpoint string, op func(context.Context) ([]byte, *Failure)) ([]byte, error) {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	var last *Failure
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("gemini: %s aborted: %w", endpoint, err)
		}
		if d := p.Delay(attempt); d > 0 {
			sleep(d)
		}

		body, failure := op(ctx)
		if failure == nil {
			return body, nil
		}
		last = failure
	}

	return nil, &ServiceError{
		Endpoint:   endpoint,
		Attempts:   attempts,
		StatusCode: last.StatusCode,
		Body:       last.Body,
		Cause:      last.Cause,
	}
}

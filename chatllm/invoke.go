package chatllm

import (
	"context"
	"math"
	"time"
)

// RetryPolicy configures the Agent Invoker's retry/backoff behavior
// (§4.5). MaxRetries counts retries after the initial attempt.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  float64 // seconds
	Timeout    float64 // seconds, bounds a single attempt

	// OnAttemptStart/OnAttemptEnd bracket every attempt, including
	// retries, so the caller can drive the thinking indicator's
	// lifecycle (started strictly after input is accepted, stopped
	// strictly before any further output, per §5).
	OnAttemptStart func(attempt int)
	OnAttemptEnd   func(attempt int)

	// OnRetry is called after a retryable failure, before the backoff
	// sleep, with the delay about to be slept.
	OnRetry func(err *AgentError, attempt int, delay time.Duration)
}

// DefaultRetryPolicy returns the §6 defaults: 3 retries, 2.0s base
// delay, 120s per-attempt timeout.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 3, BaseDelay: 2.0, Timeout: 120.0}
}

// delay computes retry_delay * 2^attempt (attempt counted from 0),
// doubling the base for a rate-limited failure per §4.5. Unlike the
// teacher's RetryPolicy.Delay, no jitter is applied: §8's scenarios
// pin exact backoff durations for test determinism.
func (p RetryPolicy) delay(attempt int, category Category) time.Duration {
	base := p.BaseDelay
	if category == CategoryRateLimited {
		base *= 2
	}
	seconds := base * math.Pow(2, float64(attempt))
	return time.Duration(seconds * float64(time.Second))
}

// Invoke performs one agent turn: at most MaxRetries+1 attempts, each
// bounded by Timeout, retrying only categories that classify as
// retryable, with exponential backoff between attempts. It returns the
// Response on success or the terminal classified *AgentError.
//
// At most one agent call is ever in flight: Invoke does not return
// until the current attempt (or its backoff sleep) has completed.
func Invoke(ctx context.Context, agent Agent, prompt string, policy RetryPolicy) (Response, *AgentError) {
	for attempt := 0; ; attempt++ {
		resp, err := attemptOnce(ctx, agent, prompt, policy, attempt)
		if err == nil {
			return resp, nil
		}
		if !err.Category.Retryable() || attempt >= policy.MaxRetries {
			return Response{}, err
		}

		delay := policy.delay(attempt, err.Category)
		if policy.OnRetry != nil {
			policy.OnRetry(err, attempt+1, delay)
		}

		select {
		case <-ctx.Done():
			return Response{}, &AgentError{Category: CategoryCancelled, Message: "cancelled during retry backoff", Cause: ctx.Err()}
		case <-time.After(delay):
		}
	}
}

func attemptOnce(ctx context.Context, agent Agent, prompt string, policy RetryPolicy, attempt int) (Response, *AgentError) {
	if policy.OnAttemptStart != nil {
		policy.OnAttemptStart(attempt)
	}
	defer func() {
		if policy.OnAttemptEnd != nil {
			policy.OnAttemptEnd(attempt)
		}
	}()

	attemptCtx := ctx
	var cancel context.CancelFunc
	if policy.Timeout > 0 {
		attemptCtx, cancel = context.WithTimeout(ctx, time.Duration(policy.Timeout*float64(time.Second)))
		defer cancel()
	}

	resp, err := agent.Invoke(attemptCtx, prompt)
	if err == nil {
		return resp, nil
	}

	if attemptCtx.Err() == context.DeadlineExceeded {
		return Response{}, &AgentError{Category: CategoryTimeout, Message: "agent call timed out", Cause: err}
	}
	if ctx.Err() == context.Canceled {
		return Response{}, &AgentError{Category: CategoryCancelled, Message: "agent call cancelled", Cause: err}
	}

	return Response{}, Classify(err)
}

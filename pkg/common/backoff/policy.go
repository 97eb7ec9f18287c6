// Copyright (c) 2019 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package backoff

import (
	"context"
	"time"
)

// Done is the delay returned once no attempt is left.
const Done time.Duration = -1

// Retrier is interface for managing backoff.
type Retrier interface {
	NextBackOff() time.Duration
}

// NewRetrier is used for creating a new instance of Retrier
func NewRetrier(policy RetryPolicy) Retrier {
	return &retrierImpl{
		policy:         policy,
		currentAttempt: 1,
	}
}

type retrierImpl struct {
	policy         RetryPolicy
	currentAttempt int
}

// NextBackOff returns the next delay interval, or Done.
func (r *retrierImpl) NextBackOff() time.Duration {
	nextInterval := r.policy.CalculateNextDelay(r.currentAttempt)

	r.currentAttempt++
	return nextInterval
}

// RetryPolicy is interface for defining retry policy.
type RetryPolicy interface {
	CalculateNextDelay(attempts int) time.Duration
}

// NewRetryPolicy returns a policy allowing maxAttempts attempts. The first
// retry waits retryInterval and every further one doubles the wait, capped
// at maxInterval when it is positive.
func NewRetryPolicy(maxAttempts int, retryInterval, maxInterval time.Duration) RetryPolicy {
	return &retryPolicy{
		maxAttempts:   maxAttempts,
		retryInterval: retryInterval,
		maxInterval:   maxInterval,
	}
}

type retryPolicy struct {
	maxAttempts   int
	retryInterval time.Duration
	maxInterval   time.Duration
}

// CalculateNextDelay returns next delay.
func (p *retryPolicy) CalculateNextDelay(attempts int) time.Duration {
	if attempts >= p.maxAttempts {
		return Done
	}
	delay := p.retryInterval
	for i := 1; i < attempts; i++ {
		delay *= 2
		if p.maxInterval > 0 && delay >= p.maxInterval {
			return p.maxInterval
		}
	}
	return delay
}

// Retry calls fn until it succeeds, the policy gives up or ctx is done,
// and returns the last error.
func Retry(ctx context.Context, policy RetryPolicy, fn func(ctx context.Context) error) error {
	r := NewRetrier(policy)
	for {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		delay := r.NextBackOff()
		if delay == Done {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
	}
}

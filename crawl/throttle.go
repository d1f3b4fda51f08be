// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package crawl

import (
	"context"
	"log/slog"
	"time"
)

const (
	// DefaultRequestLimit is the number of requests allowed before a cooldown.
	DefaultRequestLimit = 100

	// DefaultCooldown is the pause taken once the request limit is reached.
	DefaultCooldown = 60 * time.Second

	// DefaultPageDelay is the pause taken after every processed page.
	DefaultPageDelay = 700 * time.Millisecond
)

// SleepFunc pauses for d or until ctx is done, whichever comes first.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Throttle keeps the crawl under the API's request ceiling with two fixed
// pauses: a cooldown after every limit requests and a short delay after
// every page. It is owned by a single crawl loop and is not thread-safe.
type Throttle struct {
	limit     int
	cooldown  time.Duration
	pageDelay time.Duration
	requests  int
	sleep     SleepFunc
	logger    *slog.Logger
}

// ThrottleOption configures a Throttle.
type ThrottleOption func(*Throttle)

// WithRequestLimit sets how many requests trigger a cooldown. Default is 100.
func WithRequestLimit(n int) ThrottleOption {
	return func(t *Throttle) {
		if n > 0 {
			t.limit = n
		}
	}
}

// WithCooldown sets the pause taken at the request limit. Default is 60s.
func WithCooldown(d time.Duration) ThrottleOption {
	return func(t *Throttle) {
		t.cooldown = d
	}
}

// WithPageDelay sets the pause after each page. Default is 0.7s.
func WithPageDelay(d time.Duration) ThrottleOption {
	return func(t *Throttle) {
		t.pageDelay = d
	}
}

// WithSleep replaces the sleep function, mainly for tests.
func WithSleep(fn SleepFunc) ThrottleOption {
	return func(t *Throttle) {
		if fn != nil {
			t.sleep = fn
		}
	}
}

// WithThrottleLogger sets a custom logger.
func WithThrottleLogger(logger *slog.Logger) ThrottleOption {
	return func(t *Throttle) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewThrottle creates a throttle with the default limits.
func NewThrottle(opts ...ThrottleOption) *Throttle {
	t := &Throttle{
		limit:     DefaultRequestLimit,
		cooldown:  DefaultCooldown,
		pageDelay: DefaultPageDelay,
		sleep:     Sleep,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.With("component", "throttle")
	return t
}

// AfterRequest counts one request. When the count reaches the limit it
// sleeps for the cooldown and resets the count.
func (t *Throttle) AfterRequest(ctx context.Context) error {
	t.requests++
	if t.requests < t.limit {
		return nil
	}

	t.logger.Info("request limit reached, cooling down",
		"requests", t.requests, "cooldown", t.cooldown)
	t.requests = 0
	return t.sleep(ctx, t.cooldown)
}

// AfterPage sleeps for the page delay.
func (t *Throttle) AfterPage(ctx context.Context) error {
	return t.sleep(ctx, t.pageDelay)
}

// Requests returns the number of requests counted since the last cooldown.
func (t *Throttle) Requests() int {
	return t.requests
}

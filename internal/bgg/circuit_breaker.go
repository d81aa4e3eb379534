// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package bgg

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/ludothek/internal/config"
	"github.com/tomtom215/ludothek/internal/logging"
	"github.com/tomtom215/ludothek/internal/metrics"
	"github.com/tomtom215/ludothek/internal/models"
)

// CircuitBreakerClient wraps Client with the circuit breaker pattern.
//
// The breaker uses real time for its interval and timeout; tests that need
// deterministic behavior should exercise Client directly.
type CircuitBreakerClient struct {
	client *Client
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

// NewCircuitBreakerClient creates a BoardGameGeek client with circuit breaker.
// Circuit breaker configuration:
// - Max 1 request in half-open state
// - 1 minute measurement window
// - 2 minute timeout before attempting recovery
// - Opens after 60% failure rate with minimum 5 requests
func NewCircuitBreakerClient(cfg *config.BGGConfig) (*CircuitBreakerClient, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return wrapWithBreaker(client, "bgg-api"), nil
}

func wrapWithBreaker(client *Client, cbName string) *CircuitBreakerClient {
	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		// A queued response is the upstream working as intended.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotReady) || errors.Is(err, ErrLoginFailed) ||
				errors.Is(err, context.Canceled)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := metrics.StateLabel(from.String())
			toStr := metrics.StateLabel(to.String())
			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &CircuitBreakerClient{client: client, cb: cb, name: cbName}
}

// execute wraps an upstream call with circuit breaker protection
func (cbc *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := cbc.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
			return nil, fmt.Errorf("%s: %w: %w", cbc.name, ErrUnavailable, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "failure").Inc()
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "success").Inc()
	return result, nil
}

// castResult safely type-casts the circuit breaker result with error checking
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// State returns the current breaker state name.
func (cbc *CircuitBreakerClient) State() string {
	return metrics.StateLabel(cbc.cb.State().String())
}

// FetchCollection fetches collection XML with circuit breaker protection
func (cbc *CircuitBreakerClient) FetchCollection(ctx context.Context, username string, private bool) ([]byte, error) {
	return castResult[[]byte](cbc.execute(func() (interface{}, error) {
		return cbc.client.FetchCollection(ctx, username, private)
	}))
}

// FetchDetails fetches thing details with circuit breaker protection
func (cbc *CircuitBreakerClient) FetchDetails(ctx context.Context, ids []int) (map[int]*models.Details, error) {
	return castResult[map[int]*models.Details](cbc.execute(func() (interface{}, error) {
		return cbc.client.FetchDetails(ctx, ids)
	}))
}

// FetchTags fetches crowd tags with circuit breaker protection
func (cbc *CircuitBreakerClient) FetchTags(ctx context.Context, id int) ([]string, error) {
	return castResult[[]string](cbc.execute(func() (interface{}, error) {
		return cbc.client.FetchTags(ctx, id)
	}))
}

// Login opens a session with circuit breaker protection
func (cbc *CircuitBreakerClient) Login(ctx context.Context, username, password string) error {
	_, err := cbc.execute(func() (interface{}, error) {
		return nil, cbc.client.Login(ctx, username, password)
	})
	return err
}

var (
	_ Upstream = (*Client)(nil)
	_ Upstream = (*CircuitBreakerClient)(nil)
)

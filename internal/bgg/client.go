// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package bgg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/ludothek/internal/config"
	"github.com/tomtom215/ludothek/internal/logging"
	"github.com/tomtom215/ludothek/internal/metrics"
	"github.com/tomtom215/ludothek/internal/models"
)

// maxErrorBodySize limits the maximum amount of response body read for error reporting
const maxErrorBodySize = 64 * 1024 // 64KB

// maxResponseSize caps successful bodies; large collections stay well below it.
const maxResponseSize = 64 * 1024 * 1024

// defaultUserAgent identifies the client when none is configured.
const defaultUserAgent = "ludothek/1.0 (+https://github.com/tomtom215/ludothek)"

// CollectionSource fetches a user's collection XML.
type CollectionSource interface {
	FetchCollection(ctx context.Context, username string, private bool) ([]byte, error)
}

// DetailSource fetches per-game details for a batch of ids.
type DetailSource interface {
	FetchDetails(ctx context.Context, ids []int) (map[int]*models.Details, error)
}

// TagSource fetches the raw crowd tags of one game.
type TagSource interface {
	FetchTags(ctx context.Context, id int) ([]string, error)
}

// Authenticator opens a session for the private collection.
type Authenticator interface {
	Login(ctx context.Context, username, password string) error
}

// Upstream is everything the import pipeline needs from BoardGameGeek.
type Upstream interface {
	CollectionSource
	DetailSource
	TagSource
	Authenticator
}

// Client handles communication with BoardGameGeek.
//
// Thread Safety: safe for concurrent use. Session cookies are shared through
// the cookie jar.
type Client struct {
	baseURL   string
	userAgent string
	apiToken  string
	client    *http.Client
	limiter   *rate.Limiter
	logger    zerolog.Logger
}

// NewClient creates a client with a cookie jar and a request limiter.
func NewClient(cfg *config.BGGConfig) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: ua,
		apiToken:  cfg.APIToken,
		client: &http.Client{
			Timeout: cfg.Timeout,
			Jar:     jar,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		logger:  logging.WithComponent("bgg"),
	}, nil
}

// readBodyForError reads the response body for error reporting (max 64KB)
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// do sends one request through the limiter. A 429 is retried once after
// Retry-After; a second 429 returns ErrRateLimited.
func (c *Client) do(ctx context.Context, endpoint string, newReq func() (*http.Request, error)) (*http.Response, error) {
	for attempt := 0; attempt < 2; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}

		req, err := newReq()
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		if c.apiToken != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiToken)
		}

		start := time.Now()
		resp, err := c.client.Do(req)
		if err != nil {
			metrics.RecordUpstreamRequest(endpoint, "error", time.Since(start))
			return nil, fmt.Errorf("%s: HTTP request failed: %w: %w", endpoint, ErrUnavailable, err)
		}
		metrics.RecordUpstreamRequest(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		_ = resp.Body.Close() // Explicitly ignore error - will retry anyway
		if attempt == 1 {
			break
		}

		delay := retryAfter(resp.Header.Get("Retry-After"))
		c.logger.Warn().Str("endpoint", endpoint).Dur("delay", delay).Msg("Rate limited, retrying once")
		metrics.RecordUpstreamRetry(endpoint)
		if err := SleepContext(ctx, delay); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%s: %w", endpoint, ErrRateLimited)
}

// retryAfter parses a Retry-After header given in seconds.
func retryAfter(v string) time.Duration {
	if v != "" {
		if seconds, err := time.ParseDuration(v + "s"); err == nil && seconds >= 0 {
			if seconds > time.Minute {
				return time.Minute
			}
			return seconds
		}
	}
	return 5 * time.Second
}

// get performs a GET and returns the body of a ready 200 response.
// 202 and <message> bodies map to ErrNotReady.
func (c *Client) get(ctx context.Context, endpoint, url string, queued bool) ([]byte, error) {
	resp, err := c.do(ctx, endpoint, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if queued && resp.StatusCode == http.StatusAccepted {
		return nil, fmt.Errorf("%s: %w", endpoint, ErrNotReady)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%s: %w: status %d: %s", endpoint, ErrUnavailable, resp.StatusCode, readBodyForError(resp.Body))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status %d: %s", endpoint, resp.StatusCode, readBodyForError(resp.Body))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read response: %w", endpoint, err)
	}
	if queued && bytes.Contains(body, []byte("<message>")) {
		return nil, fmt.Errorf("%s: %w", endpoint, ErrNotReady)
	}
	return body, nil
}

// SleepContext waits for d or until ctx is done.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

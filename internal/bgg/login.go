// Ludothek - Board Game Library Inventory Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludothek

package bgg

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
)

type loginRequest struct {
	Credentials struct {
		Username string `json:"username"`
		Password string `json:"password"`
	} `json:"credentials"`
}

// Login opens a session. The session cookies land in the client's jar and
// are sent with every later request.
func (c *Client) Login(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", ErrLoginFailed)
	}

	var payload loginRequest
	payload.Credentials.Username = username
	payload.Credentials.Password = password
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("login: failed to encode request: %w", err)
	}

	resp, err := c.do(ctx, "login", func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login/api/v1", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d: %s", ErrLoginFailed, resp.StatusCode, readBodyForError(resp.Body))
	}

	c.logger.Info().Str("username", username).Msg("Logged in to BoardGameGeek")
	return nil
}

// Package api is the HTTP client for the BiteDash backend. Every call sends
// the stored bearer token; a 401 clears it so the app can force re-login.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// CredentialStore hands out the stored bearer token. The client never cares
// where the token lives, only that 401 means it must be cleared.
type CredentialStore interface {
	Token() (string, error)
	Clear() error
}

// StaticCredentials is a CredentialStore for a token held in memory.
type StaticCredentials struct{ token string }

func NewStaticCredentials(token string) *StaticCredentials {
	return &StaticCredentials{token: token}
}
func (s *StaticCredentials) Token() (string, error) { return s.token, nil }
func (s *StaticCredentials) Clear() error           { s.token = ""; return nil }

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Creds   CredentialStore
}

func NewClient(baseURL string, creds CredentialStore) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		Creds:   creds,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Creds != nil {
		tok, err := c.Creds.Token()
		if err == nil && tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	if res.StatusCode >= 400 {
		apiErr := decodeError(res.StatusCode, raw)
		if res.StatusCode == http.StatusUnauthorized && c.Creds != nil {
			// Stored credential is dead; drop it so the app re-authenticates.
			_ = c.Creds.Clear()
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNoBaseURL is an exported constant or variable used by the backend client.
var ErrNoBaseURL = errors.New("backend base URL not configured")

// StatusError reports a non-2xx backend response. ErrorCode carries the
// machine-readable error_code field when the body provides one.
type StatusError struct {
	Code      int
	ErrorCode string
	Body      string
}

// Error is an exported method of StatusError.
func (e *StatusError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("backend status %d (%s)", e.Code, e.ErrorCode)
	}
	return fmt.Sprintf("backend status %d", e.Code)
}

// IsStatus reports whether err is a StatusError with the given HTTP code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

// Client defines a public type used by backend API calls.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a backend client rooted at baseURL. The supplied
// http.Client normally carries a [Transport] so calls are authenticated;
// passing nil uses a default client with no token injection.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// Me fetches the authenticated identity from GET /auth/me. The payload is
// returned raw; normalization into session types happens in the caller because
// backend field casing is not stable.
func (c *Client) Me(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	if c.baseURL == "" {
		return ErrNoBaseURL
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) *StatusError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))

	se := &StatusError{Code: resp.StatusCode, Body: string(raw)}

	var envelope struct {
		ErrorCode string `json:"error_code"`
		Code      string `json:"code"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		se.ErrorCode = envelope.ErrorCode
		if se.ErrorCode == "" {
			se.ErrorCode = envelope.Code
		}
	}
	return se
}

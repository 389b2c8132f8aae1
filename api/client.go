// Package api is the typed HTTP client for the blood-donation coordination
// backend. Every domain operation in the portal goes through here as a plain
// HTTPS JSON call against a configurable base URL.
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

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	apperrors "github.com/lifelinkhq/donor-portal/internal/errors"
)

// Client calls the coordination backend. Construct once and share; it is
// safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption modifies a Client during construction.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client (primarily for testing).
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a backend client rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, options ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// ServerError is a non-2xx response from the backend. Message carries the
// body's "message" field when one could be parsed, else a generic
// status-code message.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

func (e *ServerError) Unwrap() error {
	return apperrors.ErrServer
}

// postJSON issues a POST with a JSON body and decodes a JSON response into
// out (which may be nil). bearer, when non-empty, is sent as the
// Authorization header token.
func (c *Client) postJSON(ctx context.Context, path string, body any, out any, bearer string) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "[api.postJSON] marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "[api.postJSON] build request")
	}
	req.Header.Set("Content-Type", "application/json")
	setBearer(req, bearer)

	return c.do(req, out)
}

// getJSON issues a GET and decodes a JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, out any, bearer string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "[api.getJSON] build request")
	}
	setBearer(req, bearer)

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Fetch rejection: offline, timeout, DNS. Surfaced to the user as a
		// generic "check your connection" failure.
		return errors.Wrap(apperrors.ErrNetwork, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ServerError{StatusCode: resp.StatusCode, Message: serverMessage(resp)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "[api.do] decode response")
	}
	return nil
}

// serverMessage extracts the error body's "message" field. Missing or
// non-JSON bodies degrade to a generic status-code message rather than
// failing the flow.
func serverMessage(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err == nil && len(body) > 0 {
		var parsed struct {
			Message string `json:"message"`
		}
		if jsonErr := json.Unmarshal(body, &parsed); jsonErr == nil && parsed.Message != "" {
			return parsed.Message
		}
	}
	log.Debug().Int("status", resp.StatusCode).Msg("backend error response without message body")
	return fmt.Sprintf("request failed with status %d", resp.StatusCode)
}

// setBearer applies the Authorization header convention: every authenticated
// request carries "Bearer <token>" where token is exactly the opaque string
// produced by login.
func setBearer(req *http.Request, bearer string) {
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
}

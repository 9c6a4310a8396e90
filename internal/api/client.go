// Package api provides the HTTP transport for the TaskMaster REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"
)

// RequestTimeout is the per-request timeout.
const RequestTimeout = 10 * time.Second

// Client is a JSON HTTP client bound to a base URL. When constructed with a
// token, every request carries it as a bearer credential.
type Client struct {
	base string
	http *http.Client
	log  hclog.Logger
}

// New creates a client for the API at baseURL. token may be nil for
// unauthenticated use (login, register, password reset).
func New(baseURL string, token *oauth2.Token, log hclog.Logger) *Client {
	if log == nil {
		log = hclog.NewNullLogger()
	}

	httpClient := &http.Client{}
	if token != nil {
		httpClient = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(token))
	}
	httpClient.Timeout = RequestTimeout

	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: httpClient,
		log:  log,
	}
}

// Get issues a GET request. query may be nil. The response body is decoded
// into out unless out is nil.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST request with a JSON body. body and out may be nil.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debug("api request", "method", method, "url", u)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug("api response", "method", method, "url", u, "status", resp.StatusCode)

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeError maps an error response to *Error, preserving the server's
// detail message when the body carries one.
func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}

	var envelope struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil {
		apiErr.Detail = envelope.Detail
	}
	return apiErr
}

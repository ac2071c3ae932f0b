package userrecord

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fetcher loads the complete user list in a single call.
type Fetcher interface {
	FetchUsers(ctx context.Context) ([]UserRecord, error)
}

// maxBodyBytes bounds how much of a user list response is read.
const maxBodyBytes = 10 << 20

// Client fetches users from a fixed endpoint URL.
type Client struct {
	endpoint     string
	httpClient   *http.Client
	maxBodyBytes int64
}

// NewClient creates a Client for endpoint. A zero timeout leaves requests
// unbounded, so only context cancellation ends a hung request.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint:     endpoint,
		httpClient:   &http.Client{Timeout: timeout},
		maxBodyBytes: maxBodyBytes,
	}
}

// NewClientWithHTTP creates a Client using the given http.Client.
func NewClientWithHTTP(endpoint string, httpClient *http.Client) *Client {
	return &Client{
		endpoint:     endpoint,
		httpClient:   httpClient,
		maxBodyBytes: maxBodyBytes,
	}
}

// usersResponse is the expected top-level document. Results is a pointer so
// a missing field can be told apart from an empty array.
type usersResponse struct {
	Results *[]UserRecord `json:"results"`
}

// FetchUsers issues one GET to the endpoint and decodes the "results" array.
// Transport failures and non-2xx statuses wrap ErrNetwork; undecodable bodies
// and a missing "results" field wrap ErrParse.
func (c *Client) FetchUsers(ctx context.Context) ([]UserRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, c.maxBodyBytes))
		return nil, fmt.Errorf("%w: unexpected status %d", ErrNetwork, resp.StatusCode)
	}

	// Read one byte past the limit to tell a full body from a truncated one.
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrNetwork, err)
	}
	if int64(len(body)) > c.maxBodyBytes {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrParse, c.maxBodyBytes)
	}

	var doc usersResponse
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if doc.Results == nil {
		return nil, fmt.Errorf("%w: missing results field", ErrParse)
	}

	return *doc.Results, nil
}

package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nextapp/fleetview/config"
)

// Client talks to the fleet backend. One instance is shared by all
// views; it holds no per-request state.
type Client struct {
	baseURL       string
	authPath      string
	vehiclesPath  string
	positionsPath string
	clientID      string
	httpClient    *http.Client
}

// NewClient builds a client from the server configuration. clientID is
// a persisted per-installation identifier sent on every request.
func NewClient(cfg config.ServerConfig, clientID string) *Client {
	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		authPath:      cfg.AuthPath,
		vehiclesPath:  cfg.VehiclesPath,
		positionsPath: cfg.PositionsPath,
		clientID:      clientID,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if c.clientID != "" {
		req.Header.Set("X-Client-Id", c.clientID)
	}
	return req, nil
}

// do performs a single attempt. No retries: a failed call is reported
// immediately and the caller decides whether to fall back.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	// The backend answers 200 or 201 on success.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, newStatusError(resp.StatusCode, body)
	}
	return body, nil
}

func (c *Client) getJSON(ctx context.Context, path, token string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) postJSON(ctx context.Context, path string, payload []byte) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodPost, path, "", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

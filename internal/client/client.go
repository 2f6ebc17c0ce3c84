// Copyright (c) 2025 Tinkerhaus Labs
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package client implements the HTTP client for the Crema Panel API.
package client

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

	"github.com/tinkerhaus/crema/internal/endpoint"
	"github.com/tinkerhaus/crema/internal/models"
)

const (
	defaultUserAgent = "crema-panel/0.1"
	requestTimeout   = 5 * time.Second
)

// Client talks to the panel backend API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

// Client is usable as the resolver's LAN-IP probe.
var _ endpoint.Prober = (*Client)(nil)

// NewClient builds a Client for the given backend base URL.
// A bare host:port is accepted.
func NewClient(baseURL string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// NetworkIP probes the backend for the host machine's LAN address.
func (c *Client) NetworkIP(ctx context.Context) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	var payload models.NetworkInfo
	if err := c.get(ctx, "/api/network-ip", &payload); err != nil {
		return "", err
	}
	return strings.TrimSpace(payload.IP), nil
}

// GetSettings retrieves the panel settings, including the greeting name.
func (c *Client) GetSettings(ctx context.Context) (*models.Settings, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload models.Settings
	if err := c.get(ctx, "/api/settings", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// SendCommand posts a machine command. body may be nil for commands without
// parameters. Non-2xx responses are translated into a failed CommandResult
// carrying the backend's detail message or the HTTP status text; only
// transport and encoding failures surface as errors.
func (c *Client) SendCommand(ctx context.Context, path string, body interface{}) (*models.CommandResult, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode command body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	rel := &url.URL{Path: "/api/machine/command" + path}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &models.CommandResult{
			Success: false,
			Message: failureMessage(data, resp.StatusCode),
		}, nil
	}

	var result models.CommandResult
	if len(data) > 0 {
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, fmt.Errorf("decode command result: %w", err)
		}
	} else {
		result.Success = true
	}
	return &result, nil
}

// failureMessage extracts a detail message from an error response body,
// falling back to the status text.
func failureMessage(body []byte, statusCode int) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return http.StatusText(statusCode)
}

func (c *Client) get(ctx context.Context, path string, dest any) error {
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, fmt.Errorf("base url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

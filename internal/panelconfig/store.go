// Copyright (c) 2025 Tinkerhaus Labs
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package panelconfig loads the panel's deploy-time configuration resource.
//
// The resource is a small JSON document at a well-known path on the panel's
// origin. It is optional: a missing, unreachable or malformed resource
// degrades to defaults, never to an error. The Store fetches it at most once
// per process and memoizes the result.
package panelconfig

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/tinkerhaus/crema/internal/pkg/logger"
)

// ResourcePath is the well-known path of the configuration resource.
const ResourcePath = "/config.json"

const fetchTimeout = 5 * time.Second

// Configuration is the panel's deploy-time configuration.
// The zero value is the default configuration.
type Configuration struct {
	// ServerURL is the operator-supplied backend base URL for deployments
	// where the frontend is not served from the backend's origin.
	// Empty means same-origin.
	ServerURL string `json:"serverUrl"`
}

// Store owns the process-wide configuration cache: populated once by the
// first read, then read-only. Construct one at startup and pass it by handle.
type Store struct {
	origin *url.URL
	http   *http.Client
	log    logger.Logger

	mu     sync.Mutex
	loaded bool
	cfg    Configuration
}

// NewStore creates a Store that fetches the resource from the given origin.
// A bare host:port is accepted; path, query and fragment are stripped.
func NewStore(origin string, log logger.Logger) (*Store, error) {
	base, err := parseOrigin(origin)
	if err != nil {
		return nil, err
	}
	return &Store{
		origin: base,
		http:   &http.Client{Timeout: fetchTimeout},
		log:    log,
	}, nil
}

// NewStaticStore creates a pre-populated Store that never fetches.
// Used for in-process wiring where the configuration is already known.
func NewStaticStore(cfg Configuration) *Store {
	return &Store{
		loaded: true,
		cfg:    cfg,
	}
}

// GetConfiguration returns the memoized configuration, fetching the resource
// on first use. All fetch failures degrade to the default configuration;
// this method never fails. Concurrent first calls serialize on the store's
// mutex, so the resource is fetched at most once.
func (s *Store) GetConfiguration(ctx context.Context) Configuration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.cfg
	}

	s.cfg = s.fetch(ctx)
	s.loaded = true
	return s.cfg
}

// GetServerURL returns the configured backend base URL, or "" when unset.
func (s *Store) GetServerURL(ctx context.Context) string {
	return s.GetConfiguration(ctx).ServerURL
}

// fetch retrieves and parses the resource, returning defaults on any failure.
func (s *Store) fetch(ctx context.Context) Configuration {
	var defaults Configuration

	resourceURL := s.origin.ResolveReference(&url.URL{Path: ResourcePath})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resourceURL.String(), nil)
	if err != nil {
		s.log.Debug("config resource: create request: %v", err)
		return defaults
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		s.log.Debug("config resource unavailable, using defaults: %v", err)
		return defaults
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.log.Debug("config resource returned status %d, using defaults", resp.StatusCode)
		return defaults
	}

	// A catch-all SPA route answers every path with index.html and a 200.
	// Only a JSON content type counts as the real resource.
	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		s.log.Debug("config resource has content type %q, using defaults", contentType)
		return defaults
	}

	// Decode over a copy of the defaults: present fields override, missing
	// fields keep their default values.
	cfg := defaults
	if err := json.NewDecoder(resp.Body).Decode(&cfg); err != nil {
		s.log.Debug("config resource did not parse, using defaults: %v", err)
		return defaults
	}
	return cfg
}

// parseOrigin normalizes an origin string into a scheme://host URL.
func parseOrigin(origin string) (*url.URL, error) {
	trimmed := strings.TrimSpace(origin)
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, err
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

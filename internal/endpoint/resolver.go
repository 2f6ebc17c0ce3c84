// Copyright (c) 2025 Tinkerhaus Labs
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package endpoint decides which URLs the panel should use: the backend base
// for API calls, and a network-reachable variant of the panel's own URL for
// sharing with other devices (QR code, "open on your phone").
package endpoint

import (
	"context"
	"net"
	"net/url"
	"strings"

	"github.com/tinkerhaus/crema/internal/pkg/logger"
)

// Prober answers the LAN-IP probe: the host machine's auto-detected network
// address. Implemented by client.Client against a remote backend and by
// service.NetworkService in-process.
type Prober interface {
	NetworkIP(ctx context.Context) (string, error)
}

// ServerURLSource supplies the configured backend base URL, or "" when unset.
// Implemented by panelconfig.Store.
type ServerURLSource interface {
	GetServerURL(ctx context.Context) string
}

// loopbackHosts are the exact literals treated as loopback.
var loopbackHosts = map[string]struct{}{
	"localhost": {},
	"127.0.0.1": {},
	"::1":       {},
}

// IsLoopbackHost reports whether hostname is exactly one of the loopback
// literals localhost, 127.0.0.1 or ::1. Matching is deliberately narrow:
// case-sensitive, no subnet logic, no bracketed IPv6 form. This classifies
// shareability of an address, it is not a security check.
func IsLoopbackHost(hostname string) bool {
	_, ok := loopbackHosts[hostname]
	return ok
}

// Resolver resolves panel URLs from three partially-reliable sources: the
// live probe, the deploy-time configuration and the current URL itself.
type Resolver struct {
	prober Prober
	config ServerURLSource
	log    logger.Logger
}

// NewResolver creates a Resolver. Either dependency may be nil, in which
// case its tier simply yields no candidate.
func NewResolver(prober Prober, config ServerURLSource, log logger.Logger) *Resolver {
	return &Resolver{
		prober: prober,
		config: config,
		log:    log,
	}
}

// ResolveNetworkURL computes a variant of current that other devices on the
// LAN can reach. A non-loopback current URL is already reachable and is
// returned as-is without any I/O. Otherwise candidate hostnames are taken
// from an ordered list of fallback tiers, freshest first: the live LAN-IP
// probe, then the configured server URL. Only the hostname is substituted;
// scheme, port, path and query are preserved. When no tier yields a
// candidate the loopback URL is returned unchanged, so the result is best
// effort and never an error.
func (r *Resolver) ResolveNetworkURL(ctx context.Context, current *url.URL) *url.URL {
	if !IsLoopbackHost(current.Hostname()) {
		return cloneURL(current)
	}

	tiers := []func(context.Context) string{
		r.probedHost,
		r.configuredHost,
	}
	for _, tier := range tiers {
		if host := tier(ctx); host != "" {
			return replaceHost(current, host)
		}
	}

	return cloneURL(current)
}

// ResolveAPIBase computes the backend base URL for API calls: the configured
// server URL when present and parseable, else the current page's own origin.
func (r *Resolver) ResolveAPIBase(ctx context.Context, current *url.URL) *url.URL {
	if r.config != nil {
		if raw := r.config.GetServerURL(ctx); raw != "" {
			if u, err := url.Parse(raw); err == nil && u.Host != "" {
				return u
			}
			r.log.Debug("configured server url %q is not usable, falling back to origin", raw)
		}
	}
	return &url.URL{Scheme: current.Scheme, Host: current.Host}
}

// probedHost asks the backend for the machine's LAN address. Any probe
// failure, empty answer or loopback answer yields no candidate.
func (r *Resolver) probedHost(ctx context.Context) string {
	if r.prober == nil {
		return ""
	}
	ip, err := r.prober.NetworkIP(ctx)
	if err != nil {
		r.log.Debug("lan ip probe failed: %v", err)
		return ""
	}
	ip = strings.TrimSpace(ip)
	if ip == "" || IsLoopbackHost(ip) {
		return ""
	}
	return ip
}

// configuredHost extracts a usable hostname from the configured server URL.
// A malformed, empty or loopback value yields no candidate.
func (r *Resolver) configuredHost(ctx context.Context) string {
	if r.config == nil {
		return ""
	}
	raw := r.config.GetServerURL(ctx)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		r.log.Debug("configured server url %q did not parse: %v", raw, err)
		return ""
	}
	host := u.Hostname()
	if host == "" || IsLoopbackHost(host) {
		return ""
	}
	return host
}

// replaceHost returns a copy of u with the hostname swapped, keeping the port.
func replaceHost(u *url.URL, host string) *url.URL {
	out := *u
	if port := u.Port(); port != "" {
		out.Host = net.JoinHostPort(host, port)
	} else {
		out.Host = host
	}
	return &out
}

func cloneURL(u *url.URL) *url.URL {
	out := *u
	return &out
}

// Copyright (c) 2025 Tinkerhaus Labs
// Licensed under the MIT License. See LICENSE file in the project root for details.

package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tinkerhaus/crema/internal/endpoint"
	"github.com/tinkerhaus/crema/internal/pkg/logger"
)

// ShareHandler handles HTTP requests for network-reachable share URLs.
type ShareHandler struct {
	resolver *endpoint.Resolver
	log      logger.Logger
}

// NewShareHandler creates a new share handler.
func NewShareHandler(resolver *endpoint.Resolver, log logger.Logger) *ShareHandler {
	return &ShareHandler{
		resolver: resolver,
		log:      log,
	}
}

// GetShareURL resolves a network-reachable variant of the panel URL, for QR
// codes and "open on your phone" links. The current URL comes from the
// `current` query parameter; without it, the request's own origin is used.
// GET /api/share-url
func (h *ShareHandler) GetShareURL(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("current"))
	var current *url.URL
	if raw != "" {
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "current must be an absolute URL"})
			return
		}
		current = u
	} else {
		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		current = &url.URL{Scheme: scheme, Host: c.Request.Host, Path: "/"}
	}

	resolved := h.resolver.ResolveNetworkURL(c.Request.Context(), current)
	c.JSON(http.StatusOK, gin.H{"url": resolved.String()})
}

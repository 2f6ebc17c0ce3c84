// Copyright (c) 2025 Tinkerhaus Labs
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package handler implements the HTTP handlers of the panel API.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tinkerhaus/crema/internal/models"
	"github.com/tinkerhaus/crema/internal/pkg/logger"
	"github.com/tinkerhaus/crema/internal/service"
)

// NetworkHandler handles HTTP requests for the LAN-IP probe.
type NetworkHandler struct {
	networkService *service.NetworkService
	log            logger.Logger
}

// NewNetworkHandler creates a new network handler.
func NewNetworkHandler(networkService *service.NetworkService, log logger.Logger) *NetworkHandler {
	return &NetworkHandler{
		networkService: networkService,
		log:            log,
	}
}

// GetNetworkIP returns the machine's auto-detected LAN address.
// GET /api/network-ip
func (h *NetworkHandler) GetNetworkIP(c *gin.Context) {
	ip, err := h.networkService.DetectLANIP()
	if err != nil {
		h.log.Warn("LAN IP detection failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.NetworkInfo{IP: ip})
}

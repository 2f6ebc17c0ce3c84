// Copyright (c) 2025 Tinkerhaus Labs
// Licensed under the MIT License. See LICENSE file in the project root for details.

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tinkerhaus/crema/internal/models"
	"github.com/tinkerhaus/crema/internal/pkg/logger"
	"github.com/tinkerhaus/crema/internal/service"
)

// SettingsHandler handles HTTP requests for panel settings and tags.
type SettingsHandler struct {
	settingsService *service.SettingsService
	log             logger.Logger
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(settingsService *service.SettingsService, log logger.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		log:             log,
	}
}

// GetSettings retrieves the current panel settings.
// GET /api/settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings()
	if err != nil {
		h.log.Error("Failed to get settings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings replaces the panel settings.
// PUT /api/settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var settings models.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.settingsService.UpdateSettings(&settings); err != nil {
		h.log.Error("Failed to update settings: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings updated successfully"})
}

// GetTags returns the tag taxonomy for the panel's tag pickers.
// GET /api/tags
func (h *SettingsHandler) GetTags(c *gin.Context) {
	groups, err := h.settingsService.GetTagGroups()
	if err != nil {
		h.log.Error("Failed to get tag groups: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tagGroups": groups})
}

// Copyright (c) 2025 Tinkerhaus Labs
// Licensed under the MIT License. See LICENSE file in the project root for details.

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tinkerhaus/crema/internal/pkg/logger"
	"github.com/tinkerhaus/crema/internal/service"
)

// CommandHandler handles HTTP requests for machine commands.
type CommandHandler struct {
	commandService *service.CommandService
	log            logger.Logger
}

// NewCommandHandler creates a new command handler.
func NewCommandHandler(commandService *service.CommandService, log logger.Logger) *CommandHandler {
	return &CommandHandler{
		commandService: commandService,
		log:            log,
	}
}

// Send forwards a machine command to the controller. The body is an
// optional JSON object passed through unchanged. Command failures are
// reported in-band with a 200 and success=false.
// POST /api/machine/command/*path
func (h *CommandHandler) Send(c *gin.Context) {
	path := c.Param("path")

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(body) > 0 && !json.Valid(body) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "command body must be valid JSON"})
		return
	}

	result := h.commandService.Execute(c.Request.Context(), path, body)
	c.JSON(http.StatusOK, result)
}

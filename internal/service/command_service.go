// Copyright (c) 2025 Tinkerhaus Labs
// Licensed under the MIT License. See LICENSE file in the project root for details.

package service

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

	"github.com/google/uuid"

	"github.com/tinkerhaus/crema/internal/models"
	"github.com/tinkerhaus/crema/internal/pkg/logger"
)

const defaultCommandTimeout = 10 * time.Second

// CommandService forwards machine commands to the appliance controller.
// Failures never surface as errors: every outcome is a CommandResult, so
// the panel can render "command failed" in-band instead of breaking.
type CommandService struct {
	controllerURL *url.URL // nil when no controller is configured
	http          *http.Client
	log           logger.Logger
}

// NewCommandService creates a new command service. An empty controllerURL is
// allowed; commands then fail with a configuration message.
func NewCommandService(controllerURL string, timeout time.Duration, log logger.Logger) (*CommandService, error) {
	if timeout <= 0 {
		timeout = defaultCommandTimeout
	}

	s := &CommandService{
		http: &http.Client{Timeout: timeout},
		log:  log,
	}

	trimmed := strings.TrimSpace(controllerURL)
	if trimmed != "" {
		if !strings.Contains(trimmed, "://") {
			trimmed = "http://" + trimmed
		}
		u, err := url.Parse(trimmed)
		if err != nil {
			return nil, fmt.Errorf("parse controller url %q: %w", controllerURL, err)
		}
		s.controllerURL = u
	}

	return s, nil
}

// Execute forwards the command at path (e.g. "/brew/start") to the machine
// controller with an optional JSON body. The returned result always carries
// a request ID for correlating with controller logs.
func (s *CommandService) Execute(ctx context.Context, path string, body []byte) *models.CommandResult {
	requestID := uuid.New().String()

	if s.controllerURL == nil {
		return &models.CommandResult{
			Success:   false,
			Message:   "machine controller is not configured",
			RequestID: requestID,
		}
	}

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	reqURL := s.controllerURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), reader)
	if err != nil {
		return s.failure(requestID, path, fmt.Sprintf("invalid command request: %v", err))
	}
	req.Header.Set("Accept", "application/json")
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return s.failure(requestID, path, fmt.Sprintf("machine controller unreachable: %v", err))
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return s.failure(requestID, path, fmt.Sprintf("failed to read controller response: %v", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := controllerMessage(data)
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return s.failure(requestID, path, message)
	}

	result := models.CommandResult{Success: true}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &result); err != nil {
			// Controller answered 2xx with a non-JSON body; the command ran.
			s.log.Debug("controller response for %s did not parse: %v", path, err)
			result = models.CommandResult{Success: true}
		}
	}
	result.RequestID = requestID

	s.log.Info("Command %s completed (success: %v, request: %s)", path, result.Success, requestID)
	return &result
}

// failure logs and wraps a failed command outcome.
func (s *CommandService) failure(requestID, path, message string) *models.CommandResult {
	s.log.Warn("Command %s failed (request: %s): %s", path, requestID, message)
	return &models.CommandResult{
		Success:   false,
		Message:   message,
		RequestID: requestID,
	}
}

// controllerMessage extracts a detail message from a controller error body.
func controllerMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

// Copyright (c) 2025 Tinkerhaus Labs
// Licensed under the MIT License. See LICENSE file in the project root for details.

package models

// NetworkInfo is the response body of the LAN-IP probe endpoint.
type NetworkInfo struct {
	IP string `json:"ip"` // Auto-detected LAN address of the host machine
}

// CommandResult is the outcome of a machine command. Failures are reported
// in-band: Success false with a human-readable Message, never an HTTP error.
type CommandResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"requestId,omitempty"` // Correlates panel requests with controller logs
}

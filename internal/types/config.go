// Copyright (c) 2025 Tinkerhaus Labs
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package types defines configuration types for the Crema Panel server.
package types

import "time"

// Config represents the complete application configuration.
type Config struct {
	Server  ServerConfig  // HTTP server configuration
	Machine MachineConfig // Machine controller configuration
	Panel   PanelConfig   // Panel frontend configuration
	CORS    CORSConfig    // CORS policy configuration
	Storage StorageConfig // Storage configuration
}

// ServerConfig defines HTTP server listening configuration.
type ServerConfig struct {
	Host string // Server listening address (e.g., "0.0.0.0", "127.0.0.1")
	Port int    // Server listening port (e.g., 8080)
}

// MachineConfig defines how machine commands reach the appliance controller.
type MachineConfig struct {
	ControllerURL  string        // Base URL of the machine controller (empty = not configured)
	CommandTimeout time.Duration // Per-command HTTP timeout (default: 10s)
}

// PanelConfig defines what the panel frontend is told about its backend.
type PanelConfig struct {
	// ServerURL is advertised in /config.json as the backend base URL for
	// split-origin deployments (frontend statically hosted elsewhere).
	// Empty means same-origin.
	ServerURL string
}

// CORSConfig defines Cross-Origin Resource Sharing policy.
type CORSConfig struct {
	AllowedOrigins []string // Allowed origins (e.g., ["*"], ["https://panel.example.com"])
}

// StorageConfig defines storage configuration.
type StorageConfig struct {
	DataDir string // Base data directory for panel settings (default: "/data")
}

// Copyright (c) 2025 Tinkerhaus Labs
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package repository provides file-backed storage for panel data.
package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tinkerhaus/crema/internal/models"
)

// SettingsRepository defines the interface for settings storage operations.
type SettingsRepository interface {
	// Load retrieves the stored settings, or defaults when none exist
	Load() (*models.Settings, error)
	// Save persists the settings
	Save(settings *models.Settings) error
}

// FileSettingsRepository implements SettingsRepository using file system storage.
type FileSettingsRepository struct {
	baseDir string       // Base data directory
	mu      sync.RWMutex // Mutex for thread-safe operations
}

// NewFileSettingsRepository creates a new file-based settings repository.
func NewFileSettingsRepository(baseDir string) (*FileSettingsRepository, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &FileSettingsRepository{
		baseDir: baseDir,
	}, nil
}

// settingsPath returns the path to the settings file.
func (r *FileSettingsRepository) settingsPath() string {
	return filepath.Join(r.baseDir, "settings.json")
}

// Load retrieves the stored settings. A missing file yields defaults.
func (r *FileSettingsRepository) Load() (*models.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.settingsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return models.DefaultSettings(), nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	var settings models.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	return &settings, nil
}

// Save persists the settings.
func (r *FileSettingsRepository) Save(settings *models.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(r.settingsPath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	return nil
}

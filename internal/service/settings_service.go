// Copyright (c) 2025 Tinkerhaus Labs
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package service implements the panel's business logic.
package service

import (
	"fmt"

	"github.com/tinkerhaus/crema/internal/models"
	"github.com/tinkerhaus/crema/internal/pkg/logger"
	"github.com/tinkerhaus/crema/internal/repository"
)

// SettingsService manages panel settings and the tag taxonomy.
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	log          logger.Logger
}

// NewSettingsService creates a new settings service.
func NewSettingsService(settingsRepo repository.SettingsRepository, log logger.Logger) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		log:          log,
	}
}

// GetSettings retrieves the current panel settings.
func (s *SettingsService) GetSettings() (*models.Settings, error) {
	settings, err := s.settingsRepo.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	return settings, nil
}

// UpdateSettings validates and persists new panel settings.
func (s *SettingsService) UpdateSettings(settings *models.Settings) error {
	settings.Normalize()
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := s.settingsRepo.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	s.log.Info("Settings updated (display name: %q)", settings.DisplayName)
	return nil
}

// GetTagGroups returns the tag taxonomy: built-in groups overlaid with the
// user's custom groups from settings.
func (s *SettingsService) GetTagGroups() ([]models.TagGroup, error) {
	settings, err := s.GetSettings()
	if err != nil {
		return nil, err
	}

	return models.MergeTagGroups(models.DefaultTagGroups(), settings.TagGroups), nil
}

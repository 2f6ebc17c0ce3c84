// Copyright (c) 2025 Tinkerhaus Labs
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package models defines the data types exchanged through the panel API.
package models

import (
	"fmt"
	"strings"
)

// maxDisplayNameLen bounds the greeting display name.
const maxDisplayNameLen = 64

// Settings holds user-facing panel settings.
type Settings struct {
	DisplayName string     `json:"displayName"`         // Name used in the panel greeting (empty = generic greeting)
	Language    string     `json:"language"`            // BCP 47 language tag for panel text (e.g., "en", "de")
	TagGroups   []TagGroup `json:"tagGroups,omitempty"` // User-defined tag groups, merged over the built-in taxonomy
}

// DefaultSettings returns settings used before the user has saved anything.
func DefaultSettings() *Settings {
	return &Settings{
		DisplayName: "",
		Language:    "en",
	}
}

// Normalize trims whitespace and applies defaults to zero-value fields.
func (s *Settings) Normalize() {
	s.DisplayName = strings.TrimSpace(s.DisplayName)
	s.Language = strings.TrimSpace(s.Language)
	if s.Language == "" {
		s.Language = "en"
	}
}

// Validate checks field constraints before persisting.
func (s *Settings) Validate() error {
	if len(s.DisplayName) > maxDisplayNameLen {
		return fmt.Errorf("display name too long: %d characters (max %d)", len(s.DisplayName), maxDisplayNameLen)
	}
	for _, g := range s.TagGroups {
		if strings.TrimSpace(g.Name) == "" {
			return fmt.Errorf("tag group with empty name")
		}
	}
	return nil
}

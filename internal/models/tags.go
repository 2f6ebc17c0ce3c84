// Copyright (c) 2025 Tinkerhaus Labs
// Licensed under the MIT License. See LICENSE file in the project root for details.

package models

// TagGroup is one group of the tag taxonomy shown in the panel's tag pickers.
type TagGroup struct {
	Name string   `json:"name"` // Group label (e.g., "Roast")
	Tags []string `json:"tags"` // Tags in display order
}

// DefaultTagGroups returns the built-in tag taxonomy.
// User-defined groups from Settings override groups with the same name.
func DefaultTagGroups() []TagGroup {
	return []TagGroup{
		{
			Name: "Roast",
			Tags: []string{"light", "medium", "medium-dark", "dark"},
		},
		{
			Name: "Process",
			Tags: []string{"washed", "natural", "honey", "anaerobic"},
		},
		{
			Name: "Flavor",
			Tags: []string{"chocolate", "nutty", "fruity", "floral", "caramel", "citrus"},
		},
		{
			Name: "Result",
			Tags: []string{"balanced", "sour", "bitter", "channeling", "dialed-in"},
		},
	}
}

// MergeTagGroups overlays custom groups onto the defaults. A custom group
// whose name matches a default replaces it; new names are appended.
func MergeTagGroups(defaults, custom []TagGroup) []TagGroup {
	merged := make([]TagGroup, len(defaults))
	copy(merged, defaults)

	for _, c := range custom {
		replaced := false
		for i, d := range merged {
			if d.Name == c.Name {
				merged[i] = c
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, c)
		}
	}

	return merged
}

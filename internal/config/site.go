// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

//go:embed site_default.toml
var defaultSiteConfig []byte

type (
	// SiteConfig is the display/filter/selectable configuration embedded into
	// the generated bootstrap script. The JSON tags define the shape the
	// front-end script receives.
	SiteConfig struct {
		Displays    []string     `toml:"displays" json:"Displays"`
		Filters     []Filter     `toml:"filters" json:"Filters"`
		Selectables []Selectable `toml:"selectables" json:"Selectables"`
	}

	// Filter is one filterable property with its allowed values.
	Filter struct {
		ID     string   `toml:"id" json:"ID"`
		Name   string   `toml:"name" json:"Name"`
		Values []string `toml:"values" json:"Values"`
	}

	// Selectable is one per-module link the page can offer (manual, PDF, ...).
	Selectable struct {
		ID   string `toml:"id" json:"ID"`
		Name string `toml:"name" json:"Name"`
		Icon string `toml:"icon" json:"Icon"`
	}
)

// LoadSite returns the site configuration: the file at path when given,
// otherwise the embedded defaults.
func LoadSite(path string) (*SiteConfig, error) {
	data := defaultSiteConfig
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading site config: %w", err)
		}
		data = fileData
	}

	var site SiteConfig
	if err := toml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("decoding site config: %w", err)
	}
	return &site, nil
}

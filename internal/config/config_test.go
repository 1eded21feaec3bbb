// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_ExplicitFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
module_dir = "/srv/modules"
icon_dir = "/srv/icons"
time_mode_feed_url = "https://feeds.example/timemode"
consistency_check = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ModuleDir != "/srv/modules" || cfg.IconDir != "/srv/icons" {
		t.Errorf("directories not loaded: %+v", cfg)
	}
	if cfg.TimeModeFeedURL != "https://feeds.example/timemode" {
		t.Errorf("TimeModeFeedURL = %q", cfg.TimeModeFeedURL)
	}
	if !cfg.ConsistencyCheck {
		t.Error("ConsistencyCheck should be true")
	}
	// Unset fields keep their defaults.
	if cfg.ManualDir != "data/HTML" || cfg.PDFDir != "data/PDF" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("an explicitly named config file must exist")
	}
}

func TestValidate_ReportsAllFieldErrors(t *testing.T) {
	t.Parallel()

	cfg := &Config{ModuleDir: "  ", IconDir: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error should wrap ErrInvalidConfig, got %v", err)
	}

	var invalid *InvalidConfigError
	if !errors.As(err, &invalid) {
		t.Fatalf("error should be *InvalidConfigError, got %T", err)
	}
	if len(invalid.FieldErrors) != 2 {
		t.Errorf("expected 2 field errors, got %v", invalid.FieldErrors)
	}
	if !strings.Contains(err.Error(), "module_dir") || !strings.Contains(err.Error(), "icon_dir") {
		t.Errorf("message should name both fields: %v", err)
	}
}

func TestValidate_DefaultsAreValid(t *testing.T) {
	t.Parallel()

	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadSite_EmbeddedDefaults(t *testing.T) {
	t.Parallel()

	site, err := LoadSite("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(site.Displays) == 0 {
		t.Error("embedded defaults should define displays")
	}
	if len(site.Selectables) == 0 {
		t.Error("embedded defaults should define selectables")
	}
}

func TestLoadSite_FileOverride(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "site.toml")
	content := `
displays = ["Name"]

[[filters]]
id = "origin"
name = "Origin"
values = ["Assigned", "Community"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing site config: %v", err)
	}

	site, err := LoadSite(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(site.Displays) != 1 || site.Displays[0] != "Name" {
		t.Errorf("Displays = %v", site.Displays)
	}
	if len(site.Filters) != 1 || site.Filters[0].ID != "origin" || len(site.Filters[0].Values) != 2 {
		t.Errorf("Filters = %+v", site.Filters)
	}
}

func TestLoadSite_MissingOverrideFails(t *testing.T) {
	t.Parallel()

	if _, err := LoadSite(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("an explicitly named site config file must exist")
	}
}

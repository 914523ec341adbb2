package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.SiteDir != "site" {
		t.Errorf("expected default site_dir %q, got %q", "site", cfg.SiteDir)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.Theme != ThemeAuto {
		t.Errorf("expected default theme %q, got %q", ThemeAuto, cfg.Theme)
	}
	if !cfg.Inject {
		t.Error("expected inject enabled by default")
	}
	if !cfg.Serve.Reload {
		t.Error("expected live reload enabled by default")
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.pagelet.yml")

	original := DefaultConfig()
	original.SiteDir = "public"
	original.Port = 9999
	original.Theme = ThemeDark
	original.Include = []string{"**/*.html"}
	original.StorePath = "state/prefs.db"

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify round-trip.
	if loaded.SiteDir != original.SiteDir {
		t.Errorf("site_dir: got %q, want %q", loaded.SiteDir, original.SiteDir)
	}
	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.Theme != original.Theme {
		t.Errorf("theme: got %q, want %q", loaded.Theme, original.Theme)
	}
	if loaded.StorePath != original.StorePath {
		t.Errorf("store_path: got %q, want %q", loaded.StorePath, original.StorePath)
	}
	if len(loaded.Include) != len(original.Include) {
		t.Errorf("include length: got %d, want %d", len(loaded.Include), len(original.Include))
	}
	for i, v := range loaded.Include {
		if v != original.Include[i] {
			t.Errorf("include[%d]: got %q, want %q", i, v, original.Include[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.SiteDir != "site" {
		t.Errorf("expected default site_dir, got %q", cfg.SiteDir)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Override the theme via env var.
	os.Setenv("PAGELET_THEME", "dark")
	defer os.Unsetenv("PAGELET_THEME")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Theme != ThemeDark {
		t.Errorf("env override failed: got %q, want %q", loaded.Theme, ThemeDark)
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateEmptySiteDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SiteDir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty site_dir")
	}
}

func TestValidatePortRange(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := DefaultConfig()
		cfg.Port = port
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected validation error for port %d", port)
		}
	}
}

func TestValidateInvalidTheme(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Theme = "sepia"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid theme")
	}
}

func TestValidateEmptyInclude(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Include = nil
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty include")
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"**/*.html", []string{"**/*.html"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}

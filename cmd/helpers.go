package cmd

import (
	"fmt"

	"pagelet/internal/ambient"
	"pagelet/internal/config"
	"pagelet/internal/page"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `pagelet init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// probeFromConfig turns the configured default theme into a color-scheme
// probe: auto asks the operating system, light and dark are pinned.
func probeFromConfig(cfg *config.Config) page.ColorSchemeProbe {
	switch cfg.Theme {
	case config.ThemeDark:
		return ambient.Fixed(true)
	case config.ThemeLight:
		return ambient.Fixed(false)
	default:
		return ambient.System{}
	}
}

package config

// DefaultExcludes are glob patterns skipped during enhancement by default.
var DefaultExcludes = []string{
	".git/**",
	"node_modules/**",
	".pagelet/**",
	"**/*.min.html",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SiteDir:   "site",
		Port:      8080,
		Theme:     ThemeAuto,
		StorePath: ".pagelet/prefs.db",
		Include:   []string{"**/*.html", "**/*.htm"},
		Exclude:   DefaultExcludes,
		Inject:    true,
		Serve: ServeConfig{
			Reload: true,
			Open:   false,
		},
	}
}

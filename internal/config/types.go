package config

// ThemeDefault controls which theme a page gets when the reader has never
// picked one. "auto" follows the host's color-scheme preference.
type ThemeDefault string

const (
	ThemeAuto  ThemeDefault = "auto"
	ThemeLight ThemeDefault = "light"
	ThemeDark  ThemeDefault = "dark"
)

// Config is the top-level pagelet configuration, corresponding to
// .pagelet.yml.
type Config struct {
	SiteDir   string       `yaml:"site_dir" koanf:"site_dir"`
	Port      int          `yaml:"port" koanf:"port"`
	Theme     ThemeDefault `yaml:"theme" koanf:"theme"`
	StorePath string       `yaml:"store_path" koanf:"store_path"`
	Include   []string     `yaml:"include" koanf:"include"`
	Exclude   []string     `yaml:"exclude" koanf:"exclude"`
	Inject    bool         `yaml:"inject" koanf:"inject"`
	Serve     ServeConfig  `yaml:"serve" koanf:"serve"`
}

// ServeConfig holds preview-server settings.
type ServeConfig struct {
	Reload bool `yaml:"reload" koanf:"reload"`
	Open   bool `yaml:"open" koanf:"open"`
}

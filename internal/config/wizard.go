package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// siteDirCandidates are directory names static site generators commonly
// build into, in detection order.
var siteDirCandidates = []string{"site", "public", "_site", "book", "dist", "out"}

// detectSiteDir looks for a built site in the current directory.
func detectSiteDir() string {
	for _, dir := range siteDirCandidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return ""
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .pagelet.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to pagelet! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	// Detect a built site.
	detected := detectSiteDir()
	if detected != "" {
		fmt.Printf("Detected site directory: %s\n\n", detected)
	} else {
		detected = cfg.SiteDir
	}

	// 1. Site directory.
	sitePrompt := promptui.Prompt{
		Label:   "Directory of the built site",
		Default: detected,
	}
	siteDir, err := sitePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site directory: %w", err)
	}
	cfg.SiteDir = siteDir

	// 2. Default theme.
	themePrompt := promptui.Select{
		Label: "Default theme when a reader has no saved choice",
		Items: []string{
			"auto  — follow the OS color scheme",
			"light — always start light",
			"dark  — always start dark",
		},
	}
	themeIdx, _, err := themePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("theme selection: %w", err)
	}
	themes := []ThemeDefault{ThemeAuto, ThemeLight, ThemeDark}
	cfg.Theme = themes[themeIdx]

	// 3. Preview port.
	portPrompt := promptui.Prompt{
		Label:   "Preview server port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("port must be a number between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 4. Extra exclude patterns.
	excludePrompt := promptui.Prompt{
		Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	if excludeStr != "" {
		cfg.Exclude = append(cfg.Exclude, splitAndTrim(excludeStr)...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Save to .pagelet.yml.
	if err := cfg.Save(DefaultPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", DefaultPath)
	return cfg, nil
}

// splitAndTrim splits a comma-separated list and drops empty entries.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

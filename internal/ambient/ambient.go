// Package ambient answers one question about the host: does it prefer a
// dark color scheme? It stands in for the media query a browser would
// evaluate, so pages rendered ahead of time can still pick a sensible
// default theme.
package ambient

import "strings"

// System reports the operating system's appearance setting. Detection is
// best-effort; hosts without a readable setting report light.
type System struct{}

// PrefersDark reports whether the OS is set to a dark appearance.
func (System) PrefersDark() bool {
	return detectDark()
}

// Fixed is a probe pinned to one answer, for configuration overrides and
// tests.
type Fixed bool

// PrefersDark reports the pinned preference.
func (f Fixed) PrefersDark() bool {
	return bool(f)
}

// appleStyleIsDark interprets `defaults read -g AppleInterfaceStyle`. The
// key only exists in dark mode, so any output naming it counts.
func appleStyleIsDark(out string) bool {
	return strings.Contains(strings.ToLower(out), "dark")
}

// registryValueIsDark interprets `reg query ... /v AppsUseLightTheme`: a
// zero DWORD means dark.
func registryValueIsDark(out string) bool {
	for _, f := range strings.Fields(out) {
		if v, ok := strings.CutPrefix(strings.ToLower(f), "0x"); ok {
			return strings.TrimLeft(v, "0") == ""
		}
	}
	return false
}

// gnomeSchemeIsDark interprets `gsettings get org.gnome.desktop.interface
// color-scheme`.
func gnomeSchemeIsDark(out string) bool {
	return strings.Contains(out, "prefer-dark")
}

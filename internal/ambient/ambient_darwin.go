//go:build darwin

package ambient

import "os/exec"

func detectDark() bool {
	// The global key is only present when dark mode is on; the command
	// fails in light mode.
	out, err := exec.Command("defaults", "read", "-g", "AppleInterfaceStyle").Output()
	if err != nil {
		return false
	}
	return appleStyleIsDark(string(out))
}

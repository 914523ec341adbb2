//go:build !darwin && !windows

package ambient

import "os/exec"

func detectDark() bool {
	out, err := exec.Command("gsettings", "get",
		"org.gnome.desktop.interface", "color-scheme").Output()
	if err != nil {
		return false
	}
	return gnomeSchemeIsDark(string(out))
}

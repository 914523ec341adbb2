//go:build windows

package ambient

import "os/exec"

func detectDark() bool {
	out, err := exec.Command("reg", "query",
		`HKCU\Software\Microsoft\Windows\CurrentVersion\Themes\Personalize`,
		"/v", "AppsUseLightTheme").Output()
	if err != nil {
		return false
	}
	return registryValueIsDark(string(out))
}

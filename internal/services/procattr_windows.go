//go:build windows

package services

import (
	"os/exec"
	"syscall"
)

// configureProcess keeps yt-dlp from flashing a console window when launched from a GUI or service.
func configureProcess(cmd *exec.Cmd, hideWindow bool) {
	if hideWindow {
		cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
	}
}

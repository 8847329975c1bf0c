//go:build !windows

package services

import "os/exec"

func configureProcess(cmd *exec.Cmd, hideWindow bool) {}

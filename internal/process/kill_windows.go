//go:build windows

// Package process stops browser process trees left behind by the PDF
// renderer.
package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup terminates pid and its child processes with taskkill
// (/T walks the tree, /F forces). Errors are ignored; the launcher's own
// Kill runs afterwards.
func KillProcessGroup(pid int) {
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}

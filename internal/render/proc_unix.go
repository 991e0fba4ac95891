//go:build !windows

package render

import (
	"os/exec"
	"syscall"
)

// setProcGroup places the renderer in its own process group so termination
// reaches any children it spawns.
func setProcGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// killProc forcibly terminates the renderer's whole process group. Render
// jobs are not expected to clean up, so there is no graceful signal first.
func killProc(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	if pgid, err := syscall.Getpgid(cmd.Process.Pid); err == nil {
		_ = syscall.Kill(-pgid, syscall.SIGKILL)
		return
	}
	_ = cmd.Process.Kill()
}

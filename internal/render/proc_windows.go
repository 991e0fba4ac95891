//go:build windows

package render

import "os/exec"

func setProcGroup(cmd *exec.Cmd) {
	// Windows has no process groups in the POSIX sense; Kill below targets
	// the renderer process directly.
}

func killProc(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	_ = cmd.Process.Kill()
}

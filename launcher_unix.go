//go:build !windows

package pylaunch

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// detachAttrs places the child in a new session so it has no controlling
// terminal and outlives the launcher.
func detachAttrs() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}

// canExecute verifies that the current process may execute path.
func canExecute(path string) error {
	return unix.Access(path, unix.X_OK)
}

// setExtraFiles attaches extra files to the command and returns their fd
// numbers in the child. On Unix, extra files start at fd 3 (after stdin=0,
// stdout=1, stderr=2).
func setExtraFiles(cmd *exec.Cmd, extraFiles []*os.File) []string {
	cmd.ExtraFiles = extraFiles
	retv := make([]string, len(extraFiles))
	for i := range extraFiles {
		retv[i] = fmt.Sprintf("%d", i+3)
	}
	return retv
}

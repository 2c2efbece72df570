//go:build windows

package pylaunch

import (
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// detachAttrs detaches the child from the launcher's console and process
// group.
func detachAttrs() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		CreationFlags: windows.DETACHED_PROCESS | windows.CREATE_NEW_PROCESS_GROUP,
	}
}

// canExecute only checks existence; Windows has no execute-permission probe
// worth trusting.
func canExecute(path string) error {
	_, err := os.Stat(path)
	return err
}

// setExtraFiles returns nil: os/exec does not support ExtraFiles on Windows,
// so manifest handoff is unavailable here.
func setExtraFiles(cmd *exec.Cmd, extraFiles []*os.File) []string {
	return nil
}

package pylaunch

import (
	"bufio"
	"os/exec"
	"strings"
)

// RunReadCombined executes a command and returns its combined stdout/stderr,
// trimmed of surrounding whitespace. This is a blocking call that waits for
// the command to complete.
func RunReadCombined(command string, args ...string) (string, error) {
	cmd := exec.Command(command, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return strings.TrimSpace(string(output)), err
	}
	return strings.TrimSpace(string(output)), nil
}

// RunReadStdout executes a command and returns only its stdout, line by line.
// This is a blocking call that waits for the command to complete.
func RunReadStdout(command string, args ...string) (string, error) {
	cmd := exec.Command(command, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", err
	}
	defer stdout.Close()

	if err := cmd.Start(); err != nil {
		return "", err
	}

	retv := ""
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		retv += scanner.Text() + "\n"
	}

	if err := cmd.Wait(); err != nil {
		return strings.TrimSpace(retv), err
	}
	return strings.TrimSpace(retv), nil
}

package pylaunch

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// ErrHandoffNotSupported is returned when a manifest is requested on a
// platform where inherited descriptors are unavailable (Windows).
var ErrHandoffNotSupported = errors.New("manifest handoff is not supported on this platform")

// LaunchOptions configures a detached launch. A nil *LaunchOptions is
// equivalent to the zero value.
type LaunchOptions struct {
	// Env contains additional environment variables appended to the
	// bootstrapped child environment.
	Env map[string]string

	// Manifest, if non-nil, is written to the child over an inherited
	// descriptor after the child starts. See LaunchManifest.
	Manifest *LaunchManifest
}

// LaunchedProcess describes a child that has been started and released.
// The launcher keeps no other handle to the child: it cannot be waited on,
// signaled, or observed through this value.
type LaunchedProcess struct {
	// PID is the operating system process ID of the child.
	PID int

	// Interpreter is the executable the child is running.
	Interpreter string

	// EntryPoint is the single argument the child was started with.
	EntryPoint string
}

// Launch starts the interpreter on entryPoint as a detached background
// process and returns immediately.
//
// The child receives exactly one argument (the entry-point path) and the
// bootstrapped environment built from the launcher's own os.Environ()
// snapshot, so the LD_LIBRARY_PATH/PYTHONPATH rewrite is always inherited
// regardless of platform spawn semantics. Standard output and error pass
// through to the launcher's streams; standard input is not connected.
//
// On Unix the child runs in its own session; on Windows it runs detached in
// a new process group. After a successful start the process handle is
// released: the launcher does not wait on the child, collect its exit code,
// or manage its lifecycle.
//
// Every failure is a fatal *LaunchError: a missing entry point, a
// non-executable interpreter, or a spawn error. There is no retry.
func (env *RuntimeEnvironment) Launch(entryPoint string, opts *LaunchOptions) (*LaunchedProcess, error) {
	cmd, handoff, err := env.newLaunchCommand(entryPoint, opts)
	if err != nil {
		return nil, err
	}

	if err := cmd.Start(); err != nil {
		handoff.close()
		return nil, &LaunchError{Op: "launch", Path: env.PythonPath, Err: err}
	}

	if handoff != nil {
		// The child holds its own copy of the read end now.
		handoff.reader.Close()
		manifest := opts.Manifest
		go func() {
			// Fire and forget: the child may never read, and a write error
			// must not surface after the launch already succeeded.
			defer handoff.writer.Close()
			_ = WriteManifest(handoff.writer, manifest)
		}()
	}

	proc := &LaunchedProcess{
		PID:         cmd.Process.Pid,
		Interpreter: env.PythonPath,
		EntryPoint:  entryPoint,
	}
	// Release the handle so no Wait is ever expected on the child.
	_ = cmd.Process.Release()
	return proc, nil
}

// handoffPipe holds both ends of the manifest pipe between command
// construction and start.
type handoffPipe struct {
	reader *os.File
	writer *os.File
}

func (h *handoffPipe) close() {
	if h == nil {
		return
	}
	h.reader.Close()
	h.writer.Close()
}

// newLaunchCommand builds the exec.Cmd for a launch without starting it.
// Split out from Launch so the argv, environment, and detach attributes can
// be inspected in tests.
func (env *RuntimeEnvironment) newLaunchCommand(entryPoint string, opts *LaunchOptions) (*exec.Cmd, *handoffPipe, error) {
	if opts == nil {
		opts = &LaunchOptions{}
	}

	if _, err := os.Stat(entryPoint); err != nil {
		return nil, nil, &LaunchError{Op: "launch", Path: entryPoint, Err: err}
	}
	if err := canExecute(env.PythonPath); err != nil {
		return nil, nil, &LaunchError{Op: "launch", Path: env.PythonPath, Err: err}
	}

	// The entry point is the only argument the child receives.
	cmd := exec.Command(env.PythonPath, entryPoint)
	cmd.Env = env.Environ(os.Environ())
	for key, value := range opts.Env {
		cmd.Env = append(cmd.Env, key+"="+value)
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.SysProcAttr = detachAttrs()

	var handoff *handoffPipe
	if opts.Manifest != nil {
		reader, writer, err := os.Pipe()
		if err != nil {
			return nil, nil, &LaunchError{Op: "launch", Err: err}
		}
		fds := setExtraFiles(cmd, []*os.File{reader})
		if fds == nil {
			reader.Close()
			writer.Close()
			return nil, nil, &LaunchError{Op: "launch", Path: env.PythonPath, Err: ErrHandoffNotSupported}
		}
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", ManifestFDVar, fds[0]))
		handoff = &handoffPipe{reader: reader, writer: writer}
	}

	return cmd, handoff, nil
}

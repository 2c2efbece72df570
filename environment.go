package pylaunch

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// Default layout of the bundled runtime and extension layers. The paths are
// provided by the deployment environment; pylaunch never creates them.
const (
	// DefaultRuntimeRoot is the root of the bundled Python runtime layer.
	DefaultRuntimeRoot = "/opt/python-runtime"

	// DefaultModulesDir is the root of the extension modules layer.
	DefaultModulesDir = "/opt/extension-python-modules"

	// defaultInterpreter is the interpreter name the runtime layer ships.
	defaultInterpreter = "python3.7"
)

// Runtime defines common operations for any launchable runtime environment.
// The launcher binary works against this interface so its runtime sources
// (bundled layer, system interpreter) are interchangeable.
type Runtime interface {
	// Name returns the runtime identifier.
	Name() string

	// Root returns the runtime root directory.
	Root() string

	// Interpreter returns the path to the interpreter executable.
	Interpreter() string

	// Environ returns a copy of base with the bootstrap rewrite applied.
	Environ(base []string) []string

	// ProbeVersion runs the interpreter once and reports its version.
	ProbeVersion() (Version, error)

	// Launch starts the interpreter on entryPoint as a detached background
	// process.
	Launch(entryPoint string, opts *LaunchOptions) (*LaunchedProcess, error)
}

var _ Runtime = (*RuntimeEnvironment)(nil)

// RuntimeEnvironment represents a located Python runtime with all paths the
// launcher needs. It is produced by DiscoverRuntime for bundled layer layouts
// or NewRuntimeFromInterpreter for an arbitrary interpreter.
type RuntimeEnvironment struct {
	// EnvironmentName is the identifier for this runtime (e.g., "layer", "system").
	EnvironmentName string

	// RootDir is the runtime root directory.
	RootDir string

	// BinDir is the directory containing the interpreter executable.
	BinDir string

	// LibDir is the shared library directory appended to LD_LIBRARY_PATH.
	// Empty if the runtime has no bundled libraries.
	LibDir string

	// RuntimeDir is the runtime support module directory appended to
	// PYTHONPATH. Empty for system interpreters.
	RuntimeDir string

	// ModulesDir is the extension modules directory appended to PYTHONPATH.
	// Empty for system interpreters.
	ModulesDir string

	// PythonPath is the full path to the interpreter executable.
	PythonPath string

	// PythonVersion is the interpreter version, populated by ProbeVersion.
	PythonVersion Version
}

// Name returns the runtime identifier.
// Implements the Runtime interface.
func (env *RuntimeEnvironment) Name() string {
	return env.EnvironmentName
}

// Root returns the runtime root directory.
// Implements the Runtime interface.
func (env *RuntimeEnvironment) Root() string {
	return env.RootDir
}

// Interpreter returns the path to the interpreter executable.
// Implements the Runtime interface.
func (env *RuntimeEnvironment) Interpreter() string {
	return env.PythonPath
}

// DiscoverRuntime locates a bundled runtime layer and returns its path
// inventory. Empty arguments select the default layout (DefaultRuntimeRoot,
// DefaultModulesDir).
//
// The expected layout under rootDir is:
//
//	var/lang/bin/python3.x   the interpreter
//	var/lang/lib             shared libraries
//	var/runtime              runtime support modules
//
// modulesDir is validated but otherwise opaque. The interpreter is resolved
// by exact name first (python3.7), then by scanning bin for any python3*
// executable. DiscoverRuntime does not run the interpreter; call ProbeVersion
// to confirm it starts.
//
// Any missing directory or executable is a fatal startup error.
func DiscoverRuntime(rootDir string, modulesDir string) (*RuntimeEnvironment, error) {
	if rootDir == "" {
		rootDir = DefaultRuntimeRoot
	}
	if modulesDir == "" {
		modulesDir = DefaultModulesDir
	}

	env := &RuntimeEnvironment{
		EnvironmentName: "layer",
		RootDir:         rootDir,
		BinDir:          filepath.Join(rootDir, "var", "lang", "bin"),
		LibDir:          filepath.Join(rootDir, "var", "lang", "lib"),
		RuntimeDir:      filepath.Join(rootDir, "var", "runtime"),
		ModulesDir:      modulesDir,
	}

	for _, dir := range []string{env.RootDir, env.BinDir, env.LibDir, env.RuntimeDir, env.ModulesDir} {
		if err := statDir(dir); err != nil {
			return nil, &LaunchError{Op: "discover", Path: dir, Err: err}
		}
	}

	pythonPath, err := findInterpreter(env.BinDir)
	if err != nil {
		return nil, &LaunchError{Op: "discover", Path: env.BinDir, Err: err}
	}
	env.PythonPath = pythonPath

	if err := canExecute(env.PythonPath); err != nil {
		return nil, &LaunchError{Op: "discover", Path: env.PythonPath, Err: err}
	}

	return env, nil
}

// findInterpreter resolves the interpreter executable within binDir.
// The exact bundled name wins; otherwise the lexically first python3* entry
// is used so python3.10 beats python3.9 only when both are versioned the
// same width, which is acceptable for single-interpreter layers.
func findInterpreter(binDir string) (string, error) {
	exact := filepath.Join(binDir, defaultInterpreter)
	if _, err := os.Stat(exact); err == nil {
		return exact, nil
	}

	entries, err := os.ReadDir(binDir)
	if err != nil {
		return "", err
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "python3") {
			candidates = append(candidates, name)
		}
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no python3 interpreter in %s", binDir)
	}
	sort.Strings(candidates)
	return filepath.Join(binDir, candidates[0]), nil
}

// statDir verifies that path exists and is a directory.
func statDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

// FindSystemInterpreter returns the path of the system Python installation,
// searching for "python3" then "python" on PATH. It is the development-time
// fallback for hosts without the bundled layer.
func FindSystemInterpreter() (string, error) {
	pythonPath, err := exec.LookPath("python3")
	if err != nil {
		pythonPath, err = exec.LookPath("python")
		if err != nil {
			return "", fmt.Errorf("python not found: %v", err)
		}
	}
	return pythonPath, nil
}

// NewRuntimeFromInterpreter creates a RuntimeEnvironment from an existing
// interpreter executable. The runtime root is assumed to be two levels above
// the executable (the usual prefix/bin/python layout). The lib directory is
// included only if it exists; the modules and runtime support directories are
// left empty, so Environ extends LD_LIBRARY_PATH but not PYTHONPATH for
// system runtimes.
//
// The interpreter is probed immediately; an interpreter that cannot report
// its version is a fatal startup error.
func NewRuntimeFromInterpreter(pythonPath string) (*RuntimeEnvironment, error) {
	if err := canExecute(pythonPath); err != nil {
		return nil, &LaunchError{Op: "discover", Path: pythonPath, Err: err}
	}

	env := &RuntimeEnvironment{
		EnvironmentName: "system",
		RootDir:         filepath.Dir(filepath.Dir(pythonPath)),
		BinDir:          filepath.Dir(pythonPath),
		PythonPath:      pythonPath,
	}

	libDir := filepath.Join(env.RootDir, "lib")
	if err := statDir(libDir); err == nil {
		env.LibDir = libDir
	}

	if _, err := env.ProbeVersion(); err != nil {
		return nil, err
	}

	return env, nil
}

// ProbeVersion runs the interpreter once with --version, parses the result,
// and records it on the environment. Old interpreters print the version to
// stderr, so combined output is parsed.
func (env *RuntimeEnvironment) ProbeVersion() (Version, error) {
	out, err := RunReadCombined(env.PythonPath, "--version")
	if err != nil {
		return Version{}, &LaunchError{Op: "probe", Path: env.PythonPath, Err: err}
	}
	version, err := ParsePythonVersion(out)
	if err != nil {
		return Version{}, &LaunchError{Op: "probe", Path: env.PythonPath, Err: err}
	}
	env.PythonVersion = version
	return version, nil
}

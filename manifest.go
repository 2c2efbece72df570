package pylaunch

import (
	"io"
)

// ManifestFDVar is the environment variable set in the child's environment
// to the number of the file descriptor carrying the launch manifest.
const ManifestFDVar = "PYLAUNCH_MANIFEST_FD"

// LaunchManifest is the startup handoff record optionally written to the
// child over an inherited descriptor. It tells the entry point where its
// runtime lives without requiring it to re-discover the layer layout, and
// carries caller key/value pairs for extension configuration.
//
// The manifest is written exactly once, after the child starts, and the
// writing side of the descriptor is closed immediately afterward. The
// launcher never reads from the child.
type LaunchManifest struct {
	// Name identifies the launching program (used by the child for logging).
	Name string `msgpack:"name"`

	// EntryPoint is the path of the program the child is executing.
	EntryPoint string `msgpack:"entry_point"`

	// Interpreter is the path of the interpreter running the child.
	Interpreter string `msgpack:"interpreter"`

	// LibraryDir is the runtime shared library directory, if any.
	LibraryDir string `msgpack:"library_dir,omitempty"`

	// ModulesDir is the extension modules directory, if any.
	ModulesDir string `msgpack:"modules_dir,omitempty"`

	// RuntimeDir is the runtime support module directory, if any.
	RuntimeDir string `msgpack:"runtime_dir,omitempty"`

	// KVPairs contains caller-supplied key/value data for the entry point.
	KVPairs map[string]interface{} `msgpack:"kv_pairs,omitempty"`
}

// NewLaunchManifest builds a manifest describing a launch of entryPoint with
// this runtime. Callers may attach KVPairs before passing it to Launch.
func (env *RuntimeEnvironment) NewLaunchManifest(entryPoint string) *LaunchManifest {
	return &LaunchManifest{
		Name:        env.EnvironmentName,
		EntryPoint:  entryPoint,
		Interpreter: env.PythonPath,
		LibraryDir:  env.LibDir,
		ModulesDir:  env.ModulesDir,
		RuntimeDir:  env.RuntimeDir,
	}
}

// WriteManifest encodes m and writes it to w as a single frame.
func WriteManifest(w io.Writer, m *LaunchManifest) error {
	data, err := MsgpackSerializer{}.Marshal(m)
	if err != nil {
		return err
	}
	return NewFrameTransport(nil, w).Send(data)
}

// ReadManifest reads a single frame from r and decodes it. It is the Go-side
// counterpart of the child's decoder, used by tests and by Go entry points.
func ReadManifest(r io.Reader) (*LaunchManifest, error) {
	data, err := NewFrameTransport(r, nil).Receive()
	if err != nil {
		return nil, err
	}
	var m LaunchManifest
	if err := (MsgpackSerializer{}).Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

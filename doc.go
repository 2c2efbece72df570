// Package pylaunch prepares the process environment for a bundled Python
// runtime and launches an extension entry point as a detached background
// process.
//
// The package targets runtimes shipped as read-only layers under /opt, the
// layout used by serverless extension deployments: the interpreter and its
// shared libraries live under <root>/var/lang, the runtime support modules
// under <root>/var/runtime, and the extension code under a separate modules
// layer. pylaunch never creates or modifies that layout; it discovers it,
// rewrites the child environment so the interpreter can find its libraries,
// and hands off control.
//
// # Environment Bootstrap
//
// The bootstrap rewrites two variables in the child environment:
//
//   - LD_LIBRARY_PATH gains the runtime's lib directory
//   - PYTHONPATH gains the extension modules and runtime support directories
//
// The rewrite is guarded by a marker check: if LD_LIBRARY_PATH already
// contains the substring "python" anywhere in its value, both variables are
// left untouched. Because the appended lib directory itself contains the
// marker, applying the bootstrap twice yields the same result as applying it
// once. Existing path segments are never truncated or reordered.
//
// # Runtime Discovery
//
// A runtime is located rather than hard-coded:
//
//	rt, err := pylaunch.DiscoverRuntime("", "")
//
// DiscoverRuntime validates the layer layout under the default root
// (/opt/python-runtime) and resolves the bundled python3.x executable. For
// local development, FindSystemInterpreter falls back to whatever python3 is
// on PATH:
//
//	path, err := pylaunch.FindSystemInterpreter()
//	rt, err := pylaunch.NewRuntimeFromInterpreter(path)
//
// ProbeVersion runs the interpreter once to confirm it starts and to report
// its version.
//
// # Detached Launch
//
// Launch starts the interpreter with exactly one argument, the entry-point
// path, in a new session (Unix) or detached process group (Windows). The
// launcher does not wait for the child, does not collect its exit code, and
// keeps no handle to it beyond the returned PID:
//
//	proc, err := rt.Launch("/opt/extension-python-modules/extension/main.py", nil)
//
// Any failure before or during the spawn is a fatal startup error; there is
// no retry and no cleanup.
//
// # Startup Handoff
//
// Optionally, a LaunchManifest can be passed to the child over an inherited
// file descriptor. The manifest is msgpack-encoded with a 4-byte length
// prefix and written after the child starts, without ever blocking on or
// observing the child:
//
//	opts := &pylaunch.LaunchOptions{Manifest: rt.NewLaunchManifest(entry)}
//	proc, err := rt.Launch(entry, opts)
//
// The child finds the descriptor number in the PYLAUNCH_MANIFEST_FD
// environment variable.
//
// # Layer Registry
//
// The package embeds the table of regional layer identifiers the runtime is
// published under. LayerForRegion answers which versioned layer backs a given
// deployment region; the table is informational and never consulted during a
// launch.
package pylaunch

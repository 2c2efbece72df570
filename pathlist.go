package pylaunch

import (
	"os"
	"slices"
	"strings"
)

// LibraryPathMarker is the substring checked in LD_LIBRARY_PATH to decide
// whether the bootstrap rewrite is needed. The runtime lib directory itself
// contains the marker, which is what makes the rewrite idempotent.
const LibraryPathMarker = "python"

// Environment variable names rewritten by the bootstrap.
const (
	envLibraryPath = "LD_LIBRARY_PATH"
	envPythonPath  = "PYTHONPATH"
)

// NeedsRuntimeLibraries reports whether the bootstrap rewrite should be
// applied to an environment whose LD_LIBRARY_PATH has the given value.
func NeedsRuntimeLibraries(ldLibraryPath string) bool {
	return !strings.Contains(ldLibraryPath, LibraryPathMarker)
}

// appendPathList appends segments to a list-valued variable, preserving the
// existing value as a prefix. Appending to an empty value produces a leading
// empty segment (":/opt/..."), matching shell-style $VAR:"suffix" expansion.
// Empty segments are skipped.
func appendPathList(value string, segments ...string) string {
	sep := string(os.PathListSeparator)
	var b strings.Builder
	b.WriteString(value)
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		b.WriteString(sep)
		b.WriteString(segment)
	}
	return b.String()
}

// containsSegment reports whether value, split on the list separator, has a
// segment equal to segment.
func containsSegment(value, segment string) bool {
	if segment == "" {
		return false
	}
	return slices.Contains(strings.Split(value, string(os.PathListSeparator)), segment)
}

// lookupEnviron returns the value of key in an environ slice of KEY=value
// entries. The last entry wins, matching os/exec semantics.
func lookupEnviron(environ []string, key string) string {
	prefix := key + "="
	value := ""
	for _, kv := range environ {
		if strings.HasPrefix(kv, prefix) {
			value = kv[len(prefix):]
		}
	}
	return value
}

// Environ returns a copy of base with the bootstrap rewrite applied.
//
// If LD_LIBRARY_PATH in base already contains the marker substring, or the
// runtime's lib directory already appears in it as a segment, the copy is
// returned unmodified. Otherwise LD_LIBRARY_PATH gains the runtime lib
// directory and PYTHONPATH gains the modules and runtime support directories,
// each preserving any pre-existing value as a prefix. PYTHONPATH is extended
// regardless of its own prior content; only LD_LIBRARY_PATH is consulted for
// the marker.
//
// base itself is never mutated, and reapplying the rewrite is a no-op: the
// bundled lib directory carries the marker, and a lib directory without the
// marker (a system runtime's, say) is caught by the segment check.
func (env *RuntimeEnvironment) Environ(base []string) []string {
	libraryPath := lookupEnviron(base, envLibraryPath)
	if !NeedsRuntimeLibraries(libraryPath) || containsSegment(libraryPath, env.LibDir) {
		return slices.Clone(base)
	}

	pythonPath := lookupEnviron(base, envPythonPath)

	out := slices.DeleteFunc(slices.Clone(base), func(kv string) bool {
		return strings.HasPrefix(kv, envLibraryPath+"=") || strings.HasPrefix(kv, envPythonPath+"=")
	})
	out = append(out, envLibraryPath+"="+appendPathList(libraryPath, env.LibDir))
	out = append(out, envPythonPath+"="+appendPathList(pythonPath, env.ModulesDir, env.RuntimeDir))
	return out
}

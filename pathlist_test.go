package pylaunch

import (
	"os"
	"slices"
	"testing"
)

// defaultLayoutRuntime returns a RuntimeEnvironment with the fixed /opt
// layout, bypassing discovery.
func defaultLayoutRuntime() *RuntimeEnvironment {
	return &RuntimeEnvironment{
		EnvironmentName: "layer",
		RootDir:         "/opt/python-runtime",
		BinDir:          "/opt/python-runtime/var/lang/bin",
		LibDir:          "/opt/python-runtime/var/lang/lib",
		RuntimeDir:      "/opt/python-runtime/var/runtime",
		ModulesDir:      "/opt/extension-python-modules",
		PythonPath:      "/opt/python-runtime/var/lang/bin/python3.7",
	}
}

func TestNeedsRuntimeLibraries(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", true},
		{"/usr/lib64", true},
		{"/usr/lib/python3.8", false},
		{"/opt/python-runtime/var/lang/lib", false},
		{"/a:/b/pythons:/c", false},
		{"/usr/lib/Python3.8", true}, // marker check is case-sensitive
	}
	for _, tt := range tests {
		if got := NeedsRuntimeLibraries(tt.value); got != tt.want {
			t.Errorf("NeedsRuntimeLibraries(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestEnvironEmptyLibraryPath(t *testing.T) {
	rt := defaultLayoutRuntime()
	sep := string(os.PathListSeparator)

	base := []string{"HOME=/root", "LD_LIBRARY_PATH="}
	got := rt.Environ(base)

	want := sep + "/opt/python-runtime/var/lang/lib"
	if v := lookupEnviron(got, "LD_LIBRARY_PATH"); v != want {
		t.Errorf("LD_LIBRARY_PATH = %q, want %q", v, want)
	}
	wantPy := sep + "/opt/extension-python-modules" + sep + "/opt/python-runtime/var/runtime"
	if v := lookupEnviron(got, "PYTHONPATH"); v != wantPy {
		t.Errorf("PYTHONPATH = %q, want %q", v, wantPy)
	}
}

func TestEnvironUnsetVariables(t *testing.T) {
	rt := defaultLayoutRuntime()
	sep := string(os.PathListSeparator)

	got := rt.Environ([]string{"HOME=/root"})

	if v := lookupEnviron(got, "LD_LIBRARY_PATH"); v != sep+"/opt/python-runtime/var/lang/lib" {
		t.Errorf("LD_LIBRARY_PATH = %q", v)
	}
	if v := lookupEnviron(got, "HOME"); v != "/root" {
		t.Errorf("HOME = %q, unrelated variables must pass through", v)
	}
}

func TestEnvironMarkerPresentLeavesBothUntouched(t *testing.T) {
	rt := defaultLayoutRuntime()

	base := []string{
		"LD_LIBRARY_PATH=/usr/lib/python3.8",
		"PYTHONPATH=/var/task",
	}
	got := rt.Environ(base)

	if !slices.Equal(got, base) {
		t.Errorf("Environ() = %v, want base unchanged %v", got, base)
	}
}

func TestEnvironExtendsPreservingPrefix(t *testing.T) {
	rt := defaultLayoutRuntime()
	sep := string(os.PathListSeparator)

	base := []string{
		"LD_LIBRARY_PATH=/usr/lib64" + sep + "/lib64",
		"PYTHONPATH=/var/task",
	}
	got := rt.Environ(base)

	wantLD := "/usr/lib64" + sep + "/lib64" + sep + "/opt/python-runtime/var/lang/lib"
	if v := lookupEnviron(got, "LD_LIBRARY_PATH"); v != wantLD {
		t.Errorf("LD_LIBRARY_PATH = %q, want %q", v, wantLD)
	}

	// PYTHONPATH is extended regardless of its own content; only
	// LD_LIBRARY_PATH is consulted for the marker.
	wantPy := "/var/task" + sep + "/opt/extension-python-modules" + sep + "/opt/python-runtime/var/runtime"
	if v := lookupEnviron(got, "PYTHONPATH"); v != wantPy {
		t.Errorf("PYTHONPATH = %q, want %q", v, wantPy)
	}
}

func TestEnvironIdempotent(t *testing.T) {
	rt := defaultLayoutRuntime()

	once := rt.Environ([]string{"LD_LIBRARY_PATH=/usr/lib64"})
	twice := rt.Environ(once)

	if !slices.Equal(once, twice) {
		t.Errorf("second application changed the environment:\nonce:  %v\ntwice: %v", once, twice)
	}
}

func TestEnvironIdempotentWithoutMarker(t *testing.T) {
	// A system runtime's lib dir need not contain the marker substring; the
	// segment check keeps repeated application from accumulating it.
	rt := &RuntimeEnvironment{
		EnvironmentName: "system",
		LibDir:          "/usr/local/lib",
	}

	once := rt.Environ([]string{"LD_LIBRARY_PATH=/usr/lib64"})
	twice := rt.Environ(once)

	if !slices.Equal(once, twice) {
		t.Errorf("second application changed the environment:\nonce:  %v\ntwice: %v", once, twice)
	}
}

func TestEnvironDoesNotMutateBase(t *testing.T) {
	rt := defaultLayoutRuntime()

	base := []string{"LD_LIBRARY_PATH=/usr/lib64", "PYTHONPATH=/var/task"}
	orig := slices.Clone(base)
	_ = rt.Environ(base)

	if !slices.Equal(base, orig) {
		t.Errorf("base mutated: %v", base)
	}
}

func TestEnvironSkipsEmptyDirs(t *testing.T) {
	// System runtimes have no modules or runtime support dirs; PYTHONPATH
	// must not gain empty segments for them.
	rt := &RuntimeEnvironment{
		EnvironmentName: "system",
		LibDir:          "/usr/local/lib",
	}
	sep := string(os.PathListSeparator)

	got := rt.Environ([]string{"PYTHONPATH=/var/task"})

	if v := lookupEnviron(got, "LD_LIBRARY_PATH"); v != sep+"/usr/local/lib" {
		t.Errorf("LD_LIBRARY_PATH = %q", v)
	}
	if v := lookupEnviron(got, "PYTHONPATH"); v != "/var/task" {
		t.Errorf("PYTHONPATH = %q, want unchanged /var/task", v)
	}
}

func TestAppendPathList(t *testing.T) {
	sep := string(os.PathListSeparator)
	tests := []struct {
		value    string
		segments []string
		want     string
	}{
		{"", []string{"/a"}, sep + "/a"},
		{"/a", []string{"/b"}, "/a" + sep + "/b"},
		{"/a", []string{"/b", "/c"}, "/a" + sep + "/b" + sep + "/c"},
		{"/a", []string{"", "/c"}, "/a" + sep + "/c"},
		{"/a", nil, "/a"},
	}
	for _, tt := range tests {
		if got := appendPathList(tt.value, tt.segments...); got != tt.want {
			t.Errorf("appendPathList(%q, %v) = %q, want %q", tt.value, tt.segments, got, tt.want)
		}
	}
}

func TestLookupEnviron(t *testing.T) {
	environ := []string{"A=1", "B=", "A=2", "AB=3"}
	if v := lookupEnviron(environ, "A"); v != "2" {
		t.Errorf("lookupEnviron(A) = %q, want last entry to win", v)
	}
	if v := lookupEnviron(environ, "B"); v != "" {
		t.Errorf("lookupEnviron(B) = %q", v)
	}
	if v := lookupEnviron(environ, "C"); v != "" {
		t.Errorf("lookupEnviron(C) = %q", v)
	}
}

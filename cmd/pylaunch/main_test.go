package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRuntime_Layer(t *testing.T) {
	// Arrange
	rootDir := t.TempDir()
	modulesDir := t.TempDir()
	binDir := filepath.Join(rootDir, "var", "lang", "bin")
	for _, dir := range []string{
		binDir,
		filepath.Join(rootDir, "var", "lang", "lib"),
		filepath.Join(rootDir, "var", "runtime"),
	} {
		require.NoError(t, os.MkdirAll(dir, 0o755))
	}
	script := "#!/bin/sh\necho 'Python 3.7.10'\n"
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "python3.7"), []byte(script), 0o755))

	cfg := &Config{RuntimeRoot: rootDir, ModulesDir: modulesDir}

	// Act
	rt, err := resolveRuntime(cfg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "layer", rt.Name())
	assert.Equal(t, rootDir, rt.Root())
	assert.Equal(t, filepath.Join(binDir, "python3.7"), rt.Interpreter())
}

func TestResolveRuntime_LayerMissing(t *testing.T) {
	// Arrange
	cfg := &Config{
		RuntimeRoot: filepath.Join(t.TempDir(), "nope"),
		ModulesDir:  t.TempDir(),
	}

	// Act
	rt, err := resolveRuntime(cfg)

	// Assert
	require.Error(t, err)
	assert.Nil(t, rt)
}

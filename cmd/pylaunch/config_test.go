package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// Arrange
	clearEnvVars(t)

	// Act
	cfg, err := loadConfig()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/opt/python-runtime", cfg.RuntimeRoot)
	assert.Equal(t, "/opt/extension-python-modules", cfg.ModulesDir)
	assert.Equal(t, "/opt/extension-python-modules/extension/main.py", cfg.EntryPoint)
	assert.Empty(t, cfg.SwitchOff)
	assert.False(t, cfg.Disabled())
	assert.False(t, cfg.UseSystem)
}

func TestLoadConfig_Overrides(t *testing.T) {
	// Arrange
	setEnvVars(t, map[string]string{
		"PYLAUNCH_RUNTIME_ROOT": "/srv/runtime",
		"PYLAUNCH_MODULES_DIR":  "/srv/modules",
		"PYLAUNCH_ENTRYPOINT":   "/srv/modules/boot.py",
		"PYLAUNCH_USE_SYSTEM":   "true",
		"AWS_REGION":            "eu-west-1",
	})

	// Act
	cfg, err := loadConfig()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/srv/runtime", cfg.RuntimeRoot)
	assert.Equal(t, "/srv/modules", cfg.ModulesDir)
	assert.Equal(t, "/srv/modules/boot.py", cfg.EntryPoint)
	assert.True(t, cfg.UseSystem)
	assert.Equal(t, "eu-west-1", cfg.Region)
}

func TestConfig_Disabled(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{"True", true},
		{"", false},
		{"false", false},
		{"1", false},
		{"yes", false},
	}

	for _, tt := range tests {
		t.Run("value_"+tt.value, func(t *testing.T) {
			cfg := &Config{SwitchOff: tt.value}
			assert.Equal(t, tt.want, cfg.Disabled())
		})
	}
}

func TestLoadConfig_SwitchOffFromEnv(t *testing.T) {
	// Arrange
	setEnvVars(t, map[string]string{"PYLAUNCH_SWITCH_OFF": "true"})

	// Act
	cfg, err := loadConfig()

	// Assert
	require.NoError(t, err)
	assert.True(t, cfg.Disabled())
}

// Helpers

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	keys := []string{
		"PYLAUNCH_RUNTIME_ROOT",
		"PYLAUNCH_MODULES_DIR",
		"PYLAUNCH_ENTRYPOINT",
		"PYLAUNCH_SWITCH_OFF",
		"PYLAUNCH_USE_SYSTEM",
		"AWS_REGION",
	}
	for _, k := range keys {
		old, ok := os.LookupEnv(k)
		if ok {
			t.Cleanup(func() { _ = os.Setenv(k, old) })
		}
		_ = os.Unsetenv(k)
	}
}

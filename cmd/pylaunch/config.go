package main

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the launcher's runtime configuration, read entirely from
// environment variables. Defaults match the fixed layer layout the bundled
// runtime is deployed with.
type Config struct {
	// RuntimeRoot is the root of the bundled Python runtime layer.
	RuntimeRoot string `env:"PYLAUNCH_RUNTIME_ROOT" envDefault:"/opt/python-runtime"`

	// ModulesDir is the root of the extension modules layer.
	ModulesDir string `env:"PYLAUNCH_MODULES_DIR" envDefault:"/opt/extension-python-modules"`

	// EntryPoint is the program the interpreter is launched against.
	EntryPoint string `env:"PYLAUNCH_ENTRYPOINT" envDefault:"/opt/extension-python-modules/extension/main.py"`

	// SwitchOff is the kill switch: the literal value "true" (any case)
	// disables the launcher entirely.
	SwitchOff string `env:"PYLAUNCH_SWITCH_OFF"`

	// UseSystem selects the system interpreter on PATH instead of the
	// bundled layer. Local development only.
	UseSystem bool `env:"PYLAUNCH_USE_SYSTEM"`

	// Region is the deployment region, used only to report which published
	// layer backs this runtime.
	Region string `env:"AWS_REGION"`
}

// loadConfig populates a Config from the process environment.
func loadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}
	return cfg, nil
}

// Disabled reports whether the kill switch is engaged. Only the exact value
// "true", compared case-insensitively, disables the launcher.
func (c *Config) Disabled() bool {
	return strings.ToLower(c.SwitchOff) == "true"
}

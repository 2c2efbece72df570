// Command pylaunch bootstraps the bundled Python runtime environment and
// starts the extension entry point as a detached background process.
//
// It runs once per container start: read configuration from the environment,
// locate the runtime layer, rewrite LD_LIBRARY_PATH/PYTHONPATH for the child,
// spawn the interpreter against the entry point, and exit. Any failure along
// the way is fatal and aborts with a non-zero status; there is no retry.
package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/calobozan/pylaunch"
)

var (
	buildVersion string
	buildCommit  string
)

func main() {
	log := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if cfg.Disabled() {
		log.Info().Msg("kill switch engaged, not launching")
		return
	}

	rt, err := resolveRuntime(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("error discovering runtime")
	}

	version, err := rt.ProbeVersion()
	if err != nil {
		log.Fatal().Err(err).Msg("error probing interpreter")
	}
	log.Debug().
		Str("runtime", rt.Name()).
		Str("interpreter", rt.Interpreter()).
		Str("version", version.String()).
		Msg("runtime discovered")

	if cfg.Region != "" {
		if arn, ok := pylaunch.LayerForRegion(cfg.Region); ok {
			log.Debug().Str("region", cfg.Region).Str("layer", arn).Msg("published layer for region")
		}
	}

	proc, err := rt.Launch(cfg.EntryPoint, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("error launching entry point")
	}

	log.Info().
		Int("pid", proc.PID).
		Str("entry_point", proc.EntryPoint).
		Msg("entry point launched")
}

// resolveRuntime picks the runtime source: the bundled layer by default, or
// the system interpreter on PATH when PYLAUNCH_USE_SYSTEM is set (local
// development).
func resolveRuntime(cfg *Config) (pylaunch.Runtime, error) {
	if cfg.UseSystem {
		path, err := pylaunch.FindSystemInterpreter()
		if err != nil {
			return nil, err
		}
		return pylaunch.NewRuntimeFromInterpreter(path)
	}
	return pylaunch.DiscoverRuntime(cfg.RuntimeRoot, cfg.ModulesDir)
}

// newLogger builds the launcher's JSON logger. Output goes to stdout so the
// deployment environment's log collector picks it up alongside the child's.
func newLogger() zerolog.Logger {
	ctx := zerolog.New(os.Stdout).With().
		Str("role", "pylaunch").
		Timestamp()
	if buildVersion != "" {
		ctx = ctx.Str("build", buildVersion+"/"+buildCommit)
	}
	return ctx.Logger()
}

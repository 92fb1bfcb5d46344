// Package installer implements the provisioning pipeline: create an
// isolated Python environment, install pipx into it, and export the pipx
// executable onto the user's search path.
package installer

import (
	"errors"

	"install-pipx/internal/config"
	"install-pipx/internal/logging"
	"install-pipx/internal/pathutil"
)

// ErrNoBinDir is returned when the symlink export is requested but no bin
// directory was supplied or could be discovered.
var ErrNoBinDir = errors.New("could not determine a bin directory: specify --bin-dir or pass --no-export-bin")

// Run executes the whole pipeline against the given configuration,
// strictly in sequence: resolve the export location, create the
// environment, optionally upgrade core dependencies, install pipx, then
// make it reachable via ensurepath and/or a symlink. The first failure
// aborts the remaining steps; nothing already done is rolled back.
func Run(cfg config.Config) error {
	return run(cfg, NewRunner())
}

func run(cfg config.Config, r Runner) error {
	log := logging.Logger("installer")

	// Bin-dir resolvability is a configuration error, surfaced before any
	// mutation so that dry-run catches it too.
	if cfg.ExportBin {
		if cfg.BinDir == "" {
			cfg.BinDir = pathutil.DiscoverBinDir(cfg.Env.Path, cfg.Env.Home, "pipx")
		}
		if cfg.BinDir == "" {
			return ErrNoBinDir
		}
		log.Debug().Str("path", cfg.BinDir).Msg("bin dir resolved")
	}

	if err := CreateEnv(r, cfg); err != nil {
		return err
	}
	if cfg.UpgradeDeps {
		if err := UpgradeCoreDeps(r, cfg); err != nil {
			return err
		}
	}
	if err := InstallPipx(r, cfg); err != nil {
		return err
	}

	if cfg.EnsurePath {
		if err := EnsurePath(r, cfg); err != nil {
			return err
		}
	}
	if cfg.ExportBin {
		if err := ExportBin(cfg); err != nil {
			return err
		}
	} else {
		log.Debug().Msg("skipping pipx executable symlink")
	}

	return nil
}

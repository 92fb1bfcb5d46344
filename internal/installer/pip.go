package installer

import (
	"fmt"

	"install-pipx/internal/config"
	"install-pipx/internal/logging"
)

// coreDeps are the packages upgraded ahead of the pipx install when
// --upgrade-deps is set, so the environment's own installer is current
// before it is used to install more software.
var coreDeps = []string{"pip", "setuptools"}

// UpgradeCoreDeps upgrades the environment's package manager and build
// tooling. It runs strictly before InstallPipx.
func UpgradeCoreDeps(r Runner, cfg config.Config) error {
	log := logging.Logger("pip")
	pip := PipPath(cfg.InstallDir)

	log.Info().Strs("packages", coreDeps).Msg("upgrading core dependencies")
	if cfg.DryRun {
		log.Info().Str("command", pip).Msg("dry-run: skipping core dependency upgrade")
		return nil
	}
	args := append([]string{"install", "--upgrade"}, coreDeps...)
	if err := r.Run(pip, args...); err != nil {
		return fmt.Errorf("upgrading core dependencies: %w", err)
	}
	return nil
}

// InstallPipx installs pipx into the environment using the environment's
// own pip. A non-zero exit status is fatal and propagated without retry;
// the environment already created stays on disk.
func InstallPipx(r Runner, cfg config.Config) error {
	log := logging.Logger("pip")
	pip := PipPath(cfg.InstallDir)

	log.Info().Str("path", cfg.InstallDir).Msg("installing pipx")
	if cfg.DryRun {
		log.Info().Str("command", pip).Msg("dry-run: skipping pipx install")
		return nil
	}
	if err := r.Run(pip, "install", "pipx"); err != nil {
		return fmt.Errorf("installing pipx: %w", err)
	}
	return nil
}

package installer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"install-pipx/internal/config"
	"install-pipx/internal/logging"
)

// ErrExportCollision is returned when something already exists at the
// symlink location and --force was not given.
var ErrExportCollision = errors.New("export target already exists")

// EnsurePath invokes `pipx ensurepath`, which edits shell profile files so
// the pipx bin directory ends up on the user's search path. A non-zero
// exit status is fatal.
func EnsurePath(r Runner, cfg config.Config) error {
	log := logging.Logger("export")
	pipx := PipxPath(cfg.InstallDir)

	log.Info().Msg("calling pipx ensurepath")
	if cfg.DryRun {
		log.Info().Str("command", pipx).Msg("dry-run: skipping pipx ensurepath")
		return nil
	}
	if err := r.Run(pipx, "ensurepath"); err != nil {
		return fmt.Errorf("pipx ensurepath: %w", err)
	}
	return nil
}

// ExportBin creates the symlink <bin-dir>/pipx pointing at the pipx
// executable inside the environment. cfg.BinDir must already be resolved.
//
// Collisions follow the same policy as the install dir: an existing entry
// at the link location is fatal without --force, and removed first with
// it. The collision check runs under dry-run too, so a dry run surfaces
// the same error a real run would.
func ExportBin(cfg config.Config) error {
	log := logging.Logger("export")

	target := PipxPath(cfg.InstallDir)
	link := filepath.Join(cfg.BinDir, exeName("pipx"))

	if _, err := os.Lstat(link); err == nil {
		if !cfg.Force {
			return fmt.Errorf("%w: %s (use --force to overwrite)", ErrExportCollision, link)
		}
		log.Info().Str("path", link).Msg("removing pre-existing export target")
		if !cfg.DryRun {
			if err := os.Remove(link); err != nil {
				return fmt.Errorf("removing pre-existing export target: %w", err)
			}
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking export target: %w", err)
	}

	log.Info().Str("path", link).Str("target", target).Msg("creating symlink")
	if cfg.DryRun {
		log.Info().Msg("dry-run: skipping symlink creation")
		return nil
	}
	if err := os.MkdirAll(cfg.BinDir, 0o755); err != nil {
		return fmt.Errorf("creating bin dir: %w", err)
	}
	if err := os.Symlink(target, link); err != nil {
		return fmt.Errorf("creating symlink: %w", err)
	}
	return nil
}

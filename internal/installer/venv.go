package installer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"install-pipx/internal/config"
	"install-pipx/internal/logging"
)

// ErrTargetExists is returned when the install dir is already populated
// and --force was not given.
var ErrTargetExists = errors.New("target location already exists")

// CreateEnv creates the isolated Python environment at cfg.InstallDir by
// invoking `<python> -m venv` with flags derived from the run options.
//
// If the target path is occupied (anything other than missing or an empty
// directory), it fails with ErrTargetExists unless cfg.Force is set, in
// which case the pre-existing path is removed recursively first. Under
// dry-run every decision is made and logged but nothing is removed and no
// subprocess is spawned.
func CreateEnv(r Runner, cfg config.Config) error {
	log := logging.Logger("venv")

	free, err := pathFree(cfg.InstallDir)
	if err != nil {
		return fmt.Errorf("checking install dir: %w", err)
	}
	if !free {
		if !cfg.Force {
			return fmt.Errorf("%w: %s (use --force to overwrite)", ErrTargetExists, cfg.InstallDir)
		}
		log.Info().Str("path", cfg.InstallDir).Msg("removing pre-existing target")
		if !cfg.DryRun {
			if err := removePath(cfg.InstallDir); err != nil {
				return fmt.Errorf("removing pre-existing target: %w", err)
			}
		}
	}

	args := venvArgs(cfg)
	log.Info().Str("path", cfg.InstallDir).Msg("creating venv")
	if cfg.DryRun {
		log.Info().Str("command", cfg.Python).Strs("args", args).Msg("dry-run: skipping venv creation")
		return nil
	}
	if err := r.Run(cfg.Python, args...); err != nil {
		return fmt.Errorf("creating venv: %w", err)
	}
	return nil
}

// venvArgs translates the run configuration into `python -m venv` flags.
func venvArgs(cfg config.Config) []string {
	args := []string{"-m", "venv"}
	if cfg.SystemSitePackages {
		args = append(args, "--system-site-packages")
	}
	if cfg.Clear {
		args = append(args, "--clear")
	}
	switch cfg.LinkMode {
	case config.LinkCopies:
		args = append(args, "--copies")
	default:
		args = append(args, "--symlinks")
	}
	if cfg.Prompt != "" {
		args = append(args, "--prompt", cfg.Prompt)
	}
	if cfg.UpgradeDeps {
		args = append(args, "--upgrade-deps")
	}
	return append(args, cfg.InstallDir)
}

// pathFree reports whether target can be used as a fresh install dir:
// it does not exist, or it is an empty directory. A symlink at the target
// counts as occupied even when broken, since os.Stat would miss it.
func pathFree(target string) (bool, error) {
	info, err := os.Lstat(target)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return false, nil
	}
	if info.IsDir() {
		entries, err := os.ReadDir(target)
		if err != nil {
			return false, err
		}
		return len(entries) == 0, nil
	}
	return false, nil
}

// removePath deletes target, recursively for directories.
func removePath(target string) error {
	info, err := os.Lstat(target)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return os.RemoveAll(target)
	}
	return os.Remove(target)
}

// scriptsDir returns the environment's executable directory: bin on POSIX,
// Scripts on Windows.
func scriptsDir(envDir string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(envDir, "Scripts")
	}
	return filepath.Join(envDir, "bin")
}

// exeName appends the platform executable suffix.
func exeName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

// PipPath returns the package-manager entry point inside the environment.
func PipPath(envDir string) string {
	return filepath.Join(scriptsDir(envDir), exeName("pip"))
}

// PipxPath returns the installed pipx executable inside the environment.
func PipxPath(envDir string) string {
	return filepath.Join(scriptsDir(envDir), exeName("pipx"))
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"

	"install-pipx/internal/pathutil"
)

// EnvBinDirVar is the environment variable that overrides the bin directory
// used for the pipx symlink when --bin-dir is not given.
const EnvBinDirVar = "PIPX_BIN_DIR"

// LinkMode selects how the venv module populates the environment:
// symlinks back to the base interpreter, or full copies.
type LinkMode string

const (
	LinkSymlinks LinkMode = "symlinks"
	LinkCopies   LinkMode = "copies"
)

// Env is a snapshot of the process environment taken once at startup.
// Every discovery heuristic reads from this snapshot rather than calling
// os.Getenv later, so defaults are deterministic and tests can inject state.
type Env struct {
	Home           string   // user home directory
	Path           []string // entries of the search path, in order
	DataHome       string   // XDG data directory, parent of the default install dir
	BinDirOverride string   // value of PIPX_BIN_DIR
}

// CaptureEnv reads the environment variables the installer consumes.
func CaptureEnv() Env {
	home := os.Getenv("HOME")
	if home == "" {
		if h, err := os.UserHomeDir(); err == nil {
			home = h
		}
	}
	return Env{
		Home:           home,
		Path:           filepath.SplitList(os.Getenv("PATH")),
		DataHome:       xdg.DataHome,
		BinDirOverride: os.Getenv(EnvBinDirVar),
	}
}

// Options carries the raw flag values exactly as parsed by the CLI.
type Options struct {
	InstallDir         string
	BinDir             string
	Python             string
	Prompt             string
	Force              bool
	DryRun             bool
	NoExportBin        bool
	NoEnsurePath       bool
	SystemSitePackages bool
	Clear              bool
	UpgradeDeps        bool
	Symlinks           bool
	Copies             bool
}

// Config is the immutable run configuration passed through to every
// pipeline step. It is built once by New after argument parsing.
type Config struct {
	InstallDir string // absolute path of the venv to create
	BinDir     string // explicit symlink directory; empty means discover at run time
	Python     string // base interpreter used to create the venv
	Prompt     string
	LinkMode   LinkMode

	Force              bool
	DryRun             bool
	ExportBin          bool
	EnsurePath         bool
	SystemSitePackages bool
	Clear              bool
	UpgradeDeps        bool

	Env Env
}

// New builds the run configuration from parsed flags and the environment
// snapshot. Paths are tilde-expanded and made absolute here; bin-dir
// discovery is deferred to the pipeline so that its absence is only an
// error when the symlink export is actually requested.
func New(opts Options, env Env) (Config, error) {
	installDir := opts.InstallDir
	if installDir == "" {
		installDir = filepath.Join(env.DataHome, "pipx-venv")
	}
	installDir, err := pathutil.Absolutize(installDir, env.Home)
	if err != nil {
		return Config{}, fmt.Errorf("resolving install dir: %w", err)
	}

	binDir := opts.BinDir
	if binDir == "" {
		binDir = env.BinDirOverride
	}
	if binDir != "" {
		binDir, err = pathutil.Absolutize(binDir, env.Home)
		if err != nil {
			return Config{}, fmt.Errorf("resolving bin dir: %w", err)
		}
	}

	python := strings.TrimSpace(opts.Python)
	if python == "" {
		python = defaultPython()
	}

	return Config{
		InstallDir:         installDir,
		BinDir:             binDir,
		Python:             python,
		Prompt:             opts.Prompt,
		LinkMode:           linkMode(opts),
		Force:              opts.Force,
		DryRun:             opts.DryRun,
		ExportBin:          !opts.NoExportBin,
		EnsurePath:         !opts.NoEnsurePath,
		SystemSitePackages: opts.SystemSitePackages,
		Clear:              opts.Clear,
		UpgradeDeps:        opts.UpgradeDeps,
		Env:                env,
	}, nil
}

// linkMode applies the platform default when neither --symlinks nor --copies
// was given: symlinks on POSIX, copies on Windows. The flags themselves are
// marked mutually exclusive by the CLI.
func linkMode(opts Options) LinkMode {
	switch {
	case opts.Symlinks:
		return LinkSymlinks
	case opts.Copies:
		return LinkCopies
	case runtime.GOOS == "windows":
		return LinkCopies
	default:
		return LinkSymlinks
	}
}

func defaultPython() string {
	if runtime.GOOS == "windows" {
		return "python"
	}
	return "python3"
}

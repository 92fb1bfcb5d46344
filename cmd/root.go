package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"install-pipx/internal/config"
	"install-pipx/internal/installer"
	"install-pipx/internal/logging"
)

// Flag values bound by init. They are only raw CLI input; the immutable
// run configuration is built from them in RunE.
var (
	opts      config.Options
	logConfig string
	verbose   int
	quiet     int
)

var success = color.New(color.FgGreen).PrintfFunc()

// rootCmd is the single command of the CLI; install-pipx has no
// subcommands, one invocation is one provisioning run.
var rootCmd = &cobra.Command{
	Use:   "install-pipx",
	Short: "Install pipx into an isolated Python environment and make it globally available",
	Long: `install-pipx creates a Python virtual environment, installs pipx into it,
and makes the pipx executable reachable from your shell via "pipx ensurepath"
and a symlink into a bin directory on your PATH.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if logConfig != "" {
			return logging.SetupFromFile(logConfig)
		}
		logging.Setup(verbose, quiet)
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New(opts, config.CaptureEnv())
		if err != nil {
			return err
		}
		if err := installer.Run(cfg); err != nil {
			return err
		}
		if cfg.DryRun {
			success("Dry run complete, nothing was changed.\n")
		} else {
			success("pipx installed to %s\n", cfg.InstallDir)
		}
		return nil
	},
}

// Execute parses arguments, runs the pipeline, and maps the first fatal
// error to a non-zero exit status.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.Flags()

	f.StringVarP(&opts.InstallDir, "install-dir", "i", "",
		"Directory for the pipx venv (default: $XDG_DATA_HOME/pipx-venv)")
	f.BoolVarP(&opts.Force, "force", "f", false,
		"Overwrite an existing install dir and export symlink")
	f.BoolVar(&opts.DryRun, "dry-run", false,
		"Log what would be done without touching anything")

	f.StringVarP(&opts.BinDir, "bin-dir", "b", "",
		"Directory for the pipx symlink (default: discovered; env: "+config.EnvBinDirVar+")")
	f.BoolVar(&opts.NoExportBin, "no-export-bin", false,
		"Skip creating a symlink to the pipx executable")
	f.BoolVar(&opts.NoEnsurePath, "no-ensure-path", false,
		"Do not call pipx ensurepath after installation")

	f.StringVar(&opts.Python, "python", "",
		"Base Python interpreter used to create the venv (default: python3)")
	f.BoolVar(&opts.Symlinks, "symlinks", false,
		"Create the venv with symlinks to the interpreter")
	f.BoolVar(&opts.Copies, "copies", false,
		"Create the venv with copies of the interpreter")
	f.BoolVar(&opts.SystemSitePackages, "system-site-packages", false,
		"Give the venv access to the system site-packages")
	f.BoolVar(&opts.Clear, "clear", false,
		"Delete the venv contents if it already exists before creation")
	f.StringVar(&opts.Prompt, "prompt", "",
		"Prompt prefix for the venv")
	f.BoolVar(&opts.UpgradeDeps, "upgrade-deps", false,
		"Upgrade pip and setuptools before installing pipx")

	f.StringVar(&logConfig, "log-config", "",
		"Path to a JSON, YAML, or TOML logging configuration file")
	f.CountVarP(&verbose, "verbose", "v", "Increase logging verbosity (repeatable)")
	f.CountVarP(&quiet, "quiet", "q", "Decrease logging verbosity (repeatable)")

	rootCmd.MarkFlagsMutuallyExclusive("bin-dir", "no-export-bin")
	rootCmd.MarkFlagsMutuallyExclusive("symlinks", "copies")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	rootCmd.MarkFlagsMutuallyExclusive("log-config", "verbose")
	rootCmd.MarkFlagsMutuallyExclusive("log-config", "quiet")
}

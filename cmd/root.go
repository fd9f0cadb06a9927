package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/PolarWolf314/pwmn/internal/configs"
	"github.com/PolarWolf314/pwmn/internal/crypto"
	"github.com/PolarWolf314/pwmn/internal/hardening"
	logger "github.com/PolarWolf314/pwmn/internal/logging"
	"github.com/PolarWolf314/pwmn/internal/ui"
	"github.com/PolarWolf314/pwmn/internal/utils"
	"github.com/PolarWolf314/pwmn/internal/workflows"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose  bool
	debug    bool
	rootFlag string

	// Logger is the console logger of the running command.
	Logger logger.Logger

	// vaultRoot is the resolved root vault directory of the running command.
	vaultRoot string

	fileSink *logger.FileSink

	// Test hooks. See SetPasswordReader and SetKDFSuite.
	passwordReader utils.PasswordReader
	kdfSuite       *crypto.Suite

	RootCmd = &cobra.Command{
		Use:   "pwmn",
		Short: "pwmn - a local, file-backed password vault",
		Long: `pwmn keeps passwords in encrypted registers under a root vault directory.

Each register is sealed with a key derived from its own password (Argon2id)
and encrypted with ChaCha20-Poly1305. Register names never appear on disk.

Run 'pwmn shell' for an interactive session, or 'pwmn help <command>' for
details on a specific command.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeFileSink()
		},
	}
)

func init() {
	flags := RootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&debug, "debug", "d", false, "enable debug output")
	flags.StringVar(&rootFlag, "root", "", "root vault directory (default $PWMN_ROOT, config vault.root or ~/.pwmn)")
	flags.SetNormalizeFunc(normalizeFlags)

	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(createCmd)
	RootCmd.AddCommand(connectCmd)
	RootCmd.AddCommand(dropCmd)
	RootCmd.AddCommand(statusCmd)
	RootCmd.AddCommand(logCmd)
	RootCmd.AddCommand(shellCmd)
	RootCmd.AddCommand(ConfigCmd)
}

// normalizeFlags accepts --vault-root as an alias of --root.
func normalizeFlags(f *pflag.FlagSet, name string) pflag.NormalizedName {
	if name == "vault-root" {
		name = "root"
	}
	return pflag.NormalizedName(name)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		if !errors.Is(err, errSilent) {
			fmt.Fprintln(os.Stderr, ui.Error.Sprint("Error:")+" "+err.Error())
		}
		os.Exit(1)
	}
}

// setup loads settings and configuration, resolves the root vault and
// builds the logger shared by every command.
func setup(cmd *cobra.Command, args []string) error {
	Logger = logger.Logger{
		Verbose: verbose,
		Debug:   debug,
	}

	if err := configs.InitSettings(); err != nil {
		return Logger.ErrorfAndReturn("failed to initialize settings: %v", err)
	}

	config, err := configs.LoadConfig()
	if err != nil {
		return Logger.ErrorfAndReturn("%v", err)
	}
	configs.GlobalConfig = config

	vaultRoot, err = configs.ResolveRoot(rootFlag, config)
	if err != nil {
		return Logger.ErrorfAndReturn("failed to resolve root vault: %v", err)
	}

	if config.Log.File != "" {
		path, err := utils.ExpandHome(config.Log.File)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve log file: %v", err)
		}
		sink, err := logger.OpenFile(logger.FileConfig{
			Path:       path,
			Level:      config.Log.Level,
			MaxSizeMB:  config.Log.MaxSizeMB,
			MaxBackups: config.Log.MaxBackups,
		})
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open log file: %v", err)
		}
		fileSink = sink
		Logger.Sink = &sink.Logger
	}

	if err := hardening.DisableCoreDumps(); err != nil {
		Logger.Warnf("Could not disable core dumps: %v", err)
	}
	if !crypto.KeysLocked() {
		Logger.Debugf("Key memory could not be locked, keys may be swapped to disk")
	}

	Logger.Debugf("Running %s with verbose=%t, debug=%t, root=%s", cmd.Name(), verbose, debug, vaultRoot)
	return nil
}

func closeFileSink() {
	if fileSink == nil {
		return
	}
	if err := fileSink.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
	}
	fileSink = nil
}

// newRuntime builds the workflow runtime for the resolved root vault.
func newRuntime() *workflows.Runtime {
	rt := workflows.NewRuntime(vaultRoot)
	rt.Log = Logger
	if passwordReader != nil {
		rt.Password = passwordReader
	}
	if kdfSuite != nil {
		rt.Suite = *kdfSuite
	}
	return rt
}

// Helper functions for testing

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	rootFlag = ""
	vaultRoot = ""
	Logger = logger.Logger{}
	passwordReader = nil
	kdfSuite = nil
	closeFileSink()
	resetLogCommandState()
	resetConnectCommandState()
	resetStatusCommandState()
	resetConfigShowState()
	resetConfigInitState()
	shellNoBanner = false
}

// SetVerbose sets the verbose flag for testing.
func SetVerbose(v bool) {
	verbose = v
}

// SetDebug sets the debug flag for testing.
func SetDebug(d bool) {
	debug = d
}

// SetPasswordReader replaces the terminal prompt for testing.
func SetPasswordReader(read utils.PasswordReader) {
	passwordReader = read
}

// SetKDFSuite replaces the Argon2id parameters for testing.
func SetKDFSuite(s crypto.Suite) {
	kdfSuite = &s
}

package cmd

import (
	"os"

	"github.com/PolarWolf314/pwmn/internal/configs"
	"github.com/PolarWolf314/pwmn/internal/ui"

	"github.com/spf13/cobra"
)

var (
	configInitForce   bool
	configInitLogFile string
)

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing configuration file")
	configInitCmd.Flags().StringVar(&configInitLogFile, "log-file", "", "path of a rotating log file")
}

// resetConfigInitState resets the config init command's global state for testing.
func resetConfigInitState() {
	configInitForce = false
	configInitLogFile = ""
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the defaults",
	Long: `Writes the default configuration to the configuration file.

The current --root, if given, is stored as vault.root. An existing file is
kept unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config init command")
		spinner, cleanup := startSpinner("Writing configuration...")
		defer cleanup()

		path := configs.Settings.ConfigPath
		if _, err := os.Stat(path); err == nil && !configInitForce {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " A configuration file already exists at " + ui.Path.Sprint(path) + "\n" +
				ui.Info.Sprint("→") + " Use " + ui.Flag.Sprint("--force") + " to overwrite it"
			return nil
		}

		config := configs.DefaultConfig()
		config.Vault.Root = rootFlag
		config.Log.File = configInitLogFile

		if err := configs.SaveConfig(config); err != nil {
			return Logger.ErrorfAndReturn("failed to write configuration: %v", err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Configuration written to " + ui.Path.Sprint(path)
		return nil
	},
}

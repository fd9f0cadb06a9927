package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage pwmn configuration",
	Long: `Provides commands for managing the user configuration file.

The file lives at ~/.config/pwmn/config.toml unless $PWMN_CONFIG points
elsewhere. It can set the default root vault, a rotating log file and
whether the audit log is written.

Examples:
  # Write a configuration file with the defaults
  pwmn config init

  # Show the effective configuration
  pwmn config show`,
}

func init() {
	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}

// ResetConfigState resets all config command global variables to their default values for testing.
func ResetConfigState() {
	resetConfigShowState()
	resetConfigInitState()
	resetCobraFlagState(ConfigCmd)
}

// resetCobraFlagState clears the Changed mark of every flag under c to prevent test pollution.
func resetCobraFlagState(c *cobra.Command) {
	reset := func(flag *pflag.Flag) {
		flag.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetCobraFlagState(sub)
	}
}

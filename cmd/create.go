package cmd

import (
	"context"

	"github.com/PolarWolf314/pwmn/internal/ui"
	"github.com/PolarWolf314/pwmn/internal/workflows"

	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Creates a new register",
	Long: `Creates a register protected by its own password.

The register name must be at least 5 characters and the password at least 8.
Names are case-insensitive and never stored in clear on disk: the register
directory is named after a hash of the lowercased name.

Examples:
  pwmn create personal
  pwmn create "work accounts"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting create command")
		spinner, cleanup := startSpinner("Creating register...")
		defer cleanup()

		result, err := workflows.Create(context.Background(), runtimeWithSpinner(spinner), workflows.CreateOptions{Name: args[0]})
		if err != nil {
			return failure(spinner, err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Register " + ui.Highlight.Sprint(result.Name) + " created " +
			ui.Muted.Sprint(result.AddressPrefix) + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("pwmn shell") + " and " + ui.Code.Sprint("connect "+result.Name) + " to add entries"
		return nil
	},
}

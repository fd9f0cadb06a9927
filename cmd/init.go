package cmd

import (
	"context"

	"github.com/PolarWolf314/pwmn/internal/ui"
	"github.com/PolarWolf314/pwmn/internal/workflows"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initializes the root vault",
	Long: `Creates the root vault directory that holds every register.

The directory is created with mode 0700. Running init again on an existing
root vault fails and leaves it untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")
		spinner, cleanup := startSpinner("Initializing root vault...")
		defer cleanup()

		result, err := workflows.Init(context.Background(), newRuntime())
		if err != nil {
			return failure(spinner, err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Root vault initialized at " + ui.Path.Sprint(result.Root) + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("pwmn create <name>") + " to add your first register"
		return nil
	},
}

package cmd

import (
	"context"

	"github.com/PolarWolf314/pwmn/internal/ui"
	"github.com/PolarWolf314/pwmn/internal/workflows"

	"github.com/spf13/cobra"
)

var dropCmd = &cobra.Command{
	Use:   "drop <name>",
	Short: "Deletes a register and everything in it",
	Long: `Deletes a register after its password has been verified.

The register directory is removed recursively. This cannot be undone.
To delete a single entry, connect in 'pwmn shell' and run 'drop entry <id>'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting drop command")
		spinner, cleanup := startSpinner("Dropping register...")
		defer cleanup()

		result, err := workflows.DropRegister(context.Background(), runtimeWithSpinner(spinner), workflows.DropRegisterOptions{Name: args[0]})
		if err != nil {
			return failure(spinner, err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Register " + ui.Highlight.Sprint(result.Name) + " dropped " +
			ui.Muted.Sprint(result.AddressPrefix)
		return nil
	},
}

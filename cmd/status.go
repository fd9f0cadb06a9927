package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/pwmn/internal/ui"
	"github.com/PolarWolf314/pwmn/internal/workflows"

	"github.com/spf13/cobra"
)

var statusJSONOutput bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSONOutput, "json", false, "output in JSON format")
}

func resetStatusCommandState() {
	statusJSONOutput = false
}

type statusOutput struct {
	Root        string `json:"root"`
	Initialized bool   `json:"initialized"`
	Registers   int    `json:"registers"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Shows the root vault location and register count",
	Long: `Shows where the root vault lives, whether it has been initialized and
how many registers it holds. Register names are never listed: they are not
stored on disk.

Use --json for machine-readable output.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting status command")

		result, err := workflows.Status(context.Background(), newRuntime())
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read status: %v", err)
		}

		if statusJSONOutput {
			data, err := json.MarshalIndent(statusOutput{
				Root:        result.Root,
				Initialized: result.Initialized,
				Registers:   result.Registers,
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal status to JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		if !result.Initialized {
			fmt.Println(ui.Error.Sprint("✗") + " No root vault at " + ui.Path.Sprint(result.Root))
			fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("pwmn init") + " first")
			return nil
		}

		fmt.Println(ui.Success.Sprint("✓") + " Root vault at " + ui.Path.Sprint(result.Root))
		fmt.Printf("%s %d register(s)\n", ui.Info.Sprint("→"), result.Registers)
		return nil
	},
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/PolarWolf314/pwmn/internal/configs"
	"github.com/PolarWolf314/pwmn/internal/ui"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

type configShowOutput struct {
	ConfigPath string          `json:"config_path"`
	FileExists bool            `json:"file_exists"`
	Root       string          `json:"root"`
	Config     *configs.Config `json:"config"`
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Displays the configuration pwmn runs with: the values from the
configuration file over the defaults, and the root vault they resolve to.

Examples:
  pwmn config show
  pwmn config show --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")

		path := configs.Settings.ConfigPath
		_, statErr := os.Stat(path)
		exists := statErr == nil
		Logger.Debugf("Config path %s exists=%t", path, exists)

		config := configs.GlobalConfig
		if config == nil {
			config = configs.DefaultConfig()
		}

		if configShowJSON {
			data, err := json.MarshalIndent(configShowOutput{
				ConfigPath: path,
				FileExists: exists,
				Root:       vaultRoot,
				Config:     config,
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal config to JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		if exists {
			fmt.Println(ui.Info.Sprint("→") + " Configuration file: " + ui.Path.Sprint(path))
		} else {
			fmt.Println(ui.Info.Sprint("→") + " No configuration file at " + ui.Path.Sprint(path) + " " + ui.Muted.Sprint("defaults"))
		}
		fmt.Println(ui.Info.Sprint("→") + " Root vault: " + ui.Path.Sprint(vaultRoot))
		fmt.Println()

		if err := toml.NewEncoder(os.Stdout).Encode(config); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		return nil
	},
}

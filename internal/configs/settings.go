package configs

import (
	"log"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/pwmn/internal/utils"
)

// Environment variables read by InitSettings and ResolveRoot.
const (
	EnvConfig = "PWMN_CONFIG"
	EnvRoot   = "PWMN_ROOT"
)

// DefaultRootName is the root vault directory created under the home directory.
const DefaultRootName = ".pwmn"

type UserSettings struct {
	ConfigPath  string
	DefaultRoot string
	Username    string
	Hostname    string
}

var Settings *UserSettings

func init() {
	if err := InitSettings(); err != nil {
		log.Fatalf("error initializing settings: %s", err)
	}
}

// InitSettings recomputes Settings from the environment. Commands call it
// again at startup so overrides set after process start are honoured.
func InitSettings() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configPath := os.Getenv(EnvConfig)
	if configPath == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return err
		}
		configPath = filepath.Join(configDir, "pwmn", "config.toml")
	}

	username, err := utils.GetUsername()
	if err != nil {
		username = "unknown"
	}

	// Audit entries omit the host when it is unknown.
	hostname, _ := utils.GetHostname()

	Settings = &UserSettings{
		ConfigPath:  configPath,
		DefaultRoot: filepath.Join(homeDir, DefaultRootName),
		Username:    username,
		Hostname:    hostname,
	}
	return nil
}

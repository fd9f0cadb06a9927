package configs

import (
	"fmt"
	"os"
	"strings"

	"github.com/PolarWolf314/pwmn/internal/utils"
)

type Config struct {
	Vault VaultConfig `toml:"vault"`
	Log   LogConfig   `toml:"log"`
	Audit AuditConfig `toml:"audit"`
}

type VaultConfig struct {
	Root string `toml:"root"`
}

type LogConfig struct {
	File       string `toml:"file"`
	Level      string `toml:"level"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

type AuditConfig struct {
	Enabled bool `toml:"enabled"`
}

// GlobalConfig is the configuration loaded by the running command, if any.
var GlobalConfig *Config

var validLevels = []string{"debug", "info", "warn", "error"}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
		Audit: AuditConfig{Enabled: true},
	}
}

// LoadConfig loads the user configuration from Settings.ConfigPath.
// A missing file yields DefaultConfig.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(Settings.ConfigPath)
}

// LoadConfigFrom loads and validates the configuration at path over the defaults.
func LoadConfigFrom(path string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(path, config); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return config, nil
}

// SaveConfig saves the user configuration to Settings.ConfigPath.
func SaveConfig(config *Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	if err := SaveTOML(Settings.ConfigPath, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// Validate rejects values the logger or vault cannot use.
func (c *Config) Validate() error {
	level := strings.ToLower(c.Log.Level)
	valid := false
	for _, l := range validLevels {
		if level == l {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("log.level must be one of %s, got %q", strings.Join(validLevels, ", "), c.Log.Level)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
		return fmt.Errorf("log.max_size_mb and log.max_backups must not be negative")
	}
	return nil
}

// ResolveRoot picks the root vault directory. The first non-empty value wins:
// flagRoot, $PWMN_ROOT, config vault.root, then $HOME/.pwmn.
func ResolveRoot(flagRoot string, config *Config) (string, error) {
	root := flagRoot
	if root == "" {
		root = os.Getenv(EnvRoot)
	}
	if root == "" && config != nil {
		root = config.Vault.Root
	}
	if root == "" {
		return Settings.DefaultRoot, nil
	}
	return utils.ExpandHome(root)
}

// AuditEnabled reports whether the loaded configuration allows audit logging.
func AuditEnabled() bool {
	return GlobalConfig == nil || GlobalConfig.Audit.Enabled
}

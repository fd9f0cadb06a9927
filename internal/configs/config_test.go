package configs

import (
	"os"
	"path/filepath"
	"testing"
)

func withSettings(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvConfig, filepath.Join(home, "cfg", "config.toml"))
	t.Setenv(EnvRoot, "")

	original := Settings
	originalConfig := GlobalConfig
	if err := InitSettings(); err != nil {
		t.Fatalf("InitSettings failed: %v", err)
	}
	t.Cleanup(func() {
		Settings = original
		GlobalConfig = originalConfig
	})
	return home
}

func TestInitSettings(t *testing.T) {
	home := withSettings(t)

	if Settings.ConfigPath != filepath.Join(home, "cfg", "config.toml") {
		t.Errorf("Expected config path from %s, got %q", EnvConfig, Settings.ConfigPath)
	}
	if Settings.DefaultRoot != filepath.Join(home, ".pwmn") {
		t.Errorf("Expected default root under home, got %q", Settings.DefaultRoot)
	}
	if Settings.Username == "" {
		t.Error("Expected non-empty username")
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	withSettings(t)

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Log.Level != "info" || !config.Audit.Enabled || config.Log.MaxSizeMB != 5 {
		t.Errorf("Unexpected defaults: %+v", config)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	withSettings(t)

	config := DefaultConfig()
	config.Vault.Root = "~/vaults/pwmn"
	config.Log.File = "/tmp/pwmn.log"
	config.Log.Level = "debug"
	config.Audit.Enabled = false

	if err := SaveConfig(config); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	info, err := os.Stat(Settings.ConfigPath)
	if err != nil {
		t.Fatalf("Config file was not created: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected mode 0600, got %v", info.Mode().Perm())
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if *loaded != *config {
		t.Errorf("Expected %+v, got %+v", config, loaded)
	}
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	withSettings(t)

	if err := os.MkdirAll(filepath.Dir(Settings.ConfigPath), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(Settings.ConfigPath, []byte("[vault]\nroot = \"/srv/pwmn\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Vault.Root != "/srv/pwmn" {
		t.Errorf("Expected root from file, got %q", config.Vault.Root)
	}
	if config.Log.Level != "info" || !config.Audit.Enabled {
		t.Errorf("Expected untouched defaults, got %+v", config)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"MalformedTOML", "[vault\nroot ="},
		{"UnknownLevel", "[log]\nlevel = \"chatty\"\n"},
		{"NegativeSize", "[log]\nmax_size_mb = -1\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfigFrom(path); err == nil {
				t.Fatal("Expected error, got nil")
			}
		})
	}
}

func TestResolveRoot(t *testing.T) {
	home := withSettings(t)
	fromConfig := &Config{Vault: VaultConfig{Root: "~/from-config"}}

	tests := []struct {
		name     string
		flag     string
		env      string
		config   *Config
		expected string
	}{
		{"Default", "", "", nil, filepath.Join(home, ".pwmn")},
		{"ConfigWinsOverDefault", "", "", fromConfig, filepath.Join(home, "from-config")},
		{"EnvWinsOverConfig", "", "/env/root", fromConfig, "/env/root"},
		{"FlagWinsOverAll", "/flag/root", "/env/root", fromConfig, "/flag/root"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(EnvRoot, tc.env)
			got, err := ResolveRoot(tc.flag, tc.config)
			if err != nil {
				t.Fatalf("ResolveRoot failed: %v", err)
			}
			if got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestAuditEnabled(t *testing.T) {
	withSettings(t)

	GlobalConfig = nil
	if !AuditEnabled() {
		t.Error("Audit should default to enabled")
	}

	GlobalConfig = DefaultConfig()
	GlobalConfig.Audit.Enabled = false
	if AuditEnabled() {
		t.Error("Audit should follow the loaded config")
	}
}

func TestSaveTOMLCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.toml")
	if err := SaveTOML(path, DefaultConfig()); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	var loaded Config
	if err := LoadTOML(path, &loaded); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}
	if loaded.Log.MaxBackups != 3 {
		t.Errorf("Expected max_backups 3, got %d", loaded.Log.MaxBackups)
	}
}

// Package configs manages the pwmn user configuration.
//
// Configuration is a TOML file at $PWMN_CONFIG, or at
// <UserConfigDir>/pwmn/config.toml when the variable is unset:
//
//	[vault]
//	root = "~/.pwmn"
//
//	[log]
//	file = ""          # empty disables the file sink
//	level = "info"
//	max_size_mb = 5
//	max_backups = 3
//
//	[audit]
//	enabled = true
//
// Missing keys keep their defaults. The file holds no secrets, but it is
// written with mode 0600 like everything else pwmn creates.
//
// # Settings
//
// Settings is initialized at startup with the config path, the default
// root vault ($HOME/.pwmn) and the current username. Call InitSettings
// again after changing $HOME or $PWMN_CONFIG.
//
// # Root Resolution
//
// ResolveRoot picks the root vault from, in order, the --root flag,
// $PWMN_ROOT, vault.root in the config file, and the default.
package configs

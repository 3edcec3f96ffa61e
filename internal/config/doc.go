// Package config provides user configuration management for the dl2xx tool.
//
// This package manages a YAML-based configuration file that stores user-defined
// metadata for data loggers, including nicknames, last-seen timestamps, and
// application preferences. The configuration follows OS-specific conventions
// for storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/dl2xx/config.yaml or $HOME/.config/dl2xx/config.yaml
//   - macOS: $HOME/.config/dl2xx/config.yaml
//   - Windows: %LOCALAPPDATA%\dl2xx\config.yaml
//
// # Usage Example
//
//	// Load the global registry
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Record a successful connection
//	registry.UpdateDeviceLastSeen("DL_210T123456789", "V1.0.1.170906")
//	registry.SetDeviceNickname("DL_210T123456789", "greenhouse")
//
//	// Save changes atomically
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config

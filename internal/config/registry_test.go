package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	// Should not be empty
	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	// Should contain "dl2xx"
	if !strings.Contains(configDir, "dl2xx") {
		t.Errorf("GetConfigDir() = %v, should contain 'dl2xx'", configDir)
	}

	// Platform-specific checks
	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin", "linux":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("Unix config dir should contain '.config', got: %v", configDir)
		}
	}

	t.Logf("Config directory: %s", configDir)
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	// Should end with config.yaml
	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}

	t.Logf("Config path: %s", configPath)
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	if reg.Version != 1 {
		t.Errorf("NewRegistry().Version = %v, want 1", reg.Version)
	}

	if reg.Devices == nil {
		t.Error("NewRegistry().Devices should not be nil")
	}

	if reg.Preferences == nil {
		t.Error("NewRegistry().Preferences should not be nil")
	}

	if reg.Preferences.DefaultFormat != DefaultFormat {
		t.Errorf("NewRegistry().Preferences.DefaultFormat = %v, want %v",
			reg.Preferences.DefaultFormat, DefaultFormat)
	}

	if reg.Preferences.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Errorf("NewRegistry().Preferences.TimeoutSeconds = %v, want %v",
			reg.Preferences.TimeoutSeconds, DefaultTimeoutSeconds)
	}
}

func TestRegistryEnsureDevice(t *testing.T) {
	reg := NewRegistry()

	// First call should create device
	device1 := reg.EnsureDevice("DL_210T123456789")
	if device1 == nil {
		t.Fatal("EnsureDevice() returned nil")
	}

	// Second call should return same device
	device2 := reg.EnsureDevice("DL_210T123456789")
	if device1 != device2 {
		t.Error("EnsureDevice() should return same instance for same serial")
	}

	// Different serial should create new device
	device3 := reg.EnsureDevice("DL_210T987654321")
	if device1 == device3 {
		t.Error("EnsureDevice() should create new instance for different serial")
	}
}

func TestRegistryUpdateDeviceLastSeen(t *testing.T) {
	reg := NewRegistry()

	before := time.Now()
	reg.UpdateDeviceLastSeen("DL_210T123456789", "V1.0.1.170906")
	after := time.Now()

	device := reg.GetDevice("DL_210T123456789")
	if device == nil {
		t.Fatal("Device should exist after UpdateDeviceLastSeen()")
	}

	if device.LastFirmware != "V1.0.1.170906" {
		t.Errorf("LastFirmware = %v, want V1.0.1.170906", device.LastFirmware)
	}

	if device.LastSeen.Before(before) || device.LastSeen.After(after) {
		t.Errorf("LastSeen = %v, should be between %v and %v", device.LastSeen, before, after)
	}
}

func TestRegistryUpdateDeviceLastSeen_KeepsFirmware(t *testing.T) {
	reg := NewRegistry()

	reg.UpdateDeviceLastSeen("DL_210T123456789", "V1.0.1.170906")
	reg.UpdateDeviceLastSeen("DL_210T123456789", "")

	device := reg.GetDevice("DL_210T123456789")
	if device.LastFirmware != "V1.0.1.170906" {
		t.Errorf("LastFirmware = %v, empty update should not clear it", device.LastFirmware)
	}
}

func TestRegistrySetDeviceNickname(t *testing.T) {
	reg := NewRegistry()

	reg.SetDeviceNickname("DL_210T123456789", "greenhouse")

	device := reg.GetDevice("DL_210T123456789")
	if device == nil {
		t.Fatal("Device should exist after SetDeviceNickname()")
	}

	if device.Nickname != "greenhouse" {
		t.Errorf("Nickname = %v, want 'greenhouse'", device.Nickname)
	}
}

func TestRegistryDisplayName(t *testing.T) {
	reg := NewRegistry()
	reg.SetDeviceNickname("DL_210T123456789", "greenhouse")

	if got := reg.DisplayName("DL_210T123456789"); got != "greenhouse" {
		t.Errorf("DisplayName() = %v, want nickname", got)
	}
	if got := reg.DisplayName("DL_210T000000000"); got != "DL_210T000000000" {
		t.Errorf("DisplayName() = %v, want serial fallback", got)
	}
}

func TestRegistrySaveAndLoad(t *testing.T) {
	// Use a temporary directory for testing
	tmpDir, err := os.MkdirTemp("", "dl2xx-config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	testConfigPath := filepath.Join(tmpDir, "config.yaml")

	// Create and populate registry
	reg := NewRegistry()
	reg.SetDeviceNickname("DL_210T123456789", "greenhouse")
	reg.UpdateDeviceLastSeen("DL_210T123456789", "V1.0.1.170906")

	// Manually save to test path
	data, err := yaml.Marshal(reg)
	if err != nil {
		t.Fatalf("Failed to marshal registry: %v", err)
	}

	if err := os.WriteFile(testConfigPath, data, 0600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	// Load from test path
	raw, err := os.ReadFile(testConfigPath)
	if err != nil {
		t.Fatalf("Failed to read test config: %v", err)
	}
	var loadedReg Registry
	if err := yaml.Unmarshal(raw, &loadedReg); err != nil {
		t.Fatalf("Failed to parse test config: %v", err)
	}

	// Verify loaded data
	device := loadedReg.GetDevice("DL_210T123456789")
	if device == nil {
		t.Fatal("Device should exist in loaded registry")
	}

	if device.Nickname != "greenhouse" {
		t.Errorf("Loaded nickname = %v, want 'greenhouse'", device.Nickname)
	}

	if device.LastFirmware != "V1.0.1.170906" {
		t.Errorf("Loaded firmware = %v, want 'V1.0.1.170906'", device.LastFirmware)
	}
}

// Benchmark tests

func BenchmarkGetConfigDir(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = GetConfigDir()
	}
}

func BenchmarkEnsureDevice(b *testing.B) {
	reg := NewRegistry()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reg.EnsureDevice("DL_210T123456789")
	}
}

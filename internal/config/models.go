package config

import "time"

// Registry represents the entire user configuration file.
// This stores user-defined metadata for loggers and application preferences.
type Registry struct {
	Version     int                `yaml:"version"`
	Devices     map[string]*Device `yaml:"devices,omitempty"` // Keyed by device serial number
	Preferences *Preferences       `yaml:"preferences,omitempty"`
}

// Device represents user-defined metadata for a single data logger.
// This is keyed by the logger's serial number in the Registry. Everything
// here is client-side only; the logger itself stores none of it.
type Device struct {
	Nickname     string    `yaml:"nickname,omitempty"`      // User-friendly name (e.g., "greenhouse")
	LastSeen     time.Time `yaml:"last_seen,omitempty"`     // Last successful connection time
	LastFirmware string    `yaml:"last_firmware,omitempty"` // Firmware version at last connection
	LastDump     time.Time `yaml:"last_dump,omitempty"`     // Last record dump time
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	DefaultFormat  string `yaml:"default_format"`  // Output format when --format is not given
	TimeoutSeconds int    `yaml:"timeout_seconds"` // Response timeout in seconds
}

// Default preference values.
const (
	DefaultFormat         = "detailed"
	DefaultTimeoutSeconds = 1
)

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Devices: make(map[string]*Device),
		Preferences: &Preferences{
			DefaultFormat:  DefaultFormat,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
	}
}

// GetDevice retrieves device metadata by serial number.
// Returns nil if the device doesn't exist in the registry.
func (r *Registry) GetDevice(serial string) *Device {
	return r.Devices[serial]
}

// EnsureDevice ensures a device entry exists in the registry.
// If the device doesn't exist, creates a new entry with default values.
// Returns the device entry (existing or newly created).
func (r *Registry) EnsureDevice(serial string) *Device {
	if r.Devices == nil {
		r.Devices = make(map[string]*Device)
	}

	if device, exists := r.Devices[serial]; exists {
		return device
	}

	device := &Device{}
	r.Devices[serial] = device
	return device
}

// UpdateDeviceLastSeen records a successful connection to a logger,
// refreshing the last-seen timestamp and firmware version.
func (r *Registry) UpdateDeviceLastSeen(serial, firmware string) {
	device := r.EnsureDevice(serial)
	device.LastSeen = time.Now()
	if firmware != "" {
		device.LastFirmware = firmware
	}
}

// UpdateDeviceLastDump records a completed record dump for a logger.
func (r *Registry) UpdateDeviceLastDump(serial string) {
	device := r.EnsureDevice(serial)
	device.LastDump = time.Now()
}

// SetDeviceNickname sets a user-friendly nickname for a logger.
func (r *Registry) SetDeviceNickname(serial, nickname string) {
	device := r.EnsureDevice(serial)
	device.Nickname = nickname
}

// DisplayName returns the nickname for a serial if one is registered,
// otherwise the serial itself.
func (r *Registry) DisplayName(serial string) string {
	if device := r.GetDevice(serial); device != nil && device.Nickname != "" {
		return device.Nickname
	}
	return serial
}

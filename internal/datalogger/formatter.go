package datalogger

import (
	"fmt"
	"strings"
)

// Summary returns a one-line summary of the device status
func (s *DeviceStatus) Summary() string {
	return fmt.Sprintf("%s %s (FW: %s, clock: %s)", s.DeviceType, s.Serial, s.Firmware, s.Clock)
}

// FormatDetailed returns a comprehensive formatted string with all status details
func (s *DeviceStatus) FormatDetailed() string {
	var b strings.Builder

	b.WriteString("=== Device Information ===\n")
	b.WriteString(fmt.Sprintf("Device Type:   %s\n", s.DeviceType))
	b.WriteString(fmt.Sprintf("Serial Number: %s\n", s.Serial))
	b.WriteString(fmt.Sprintf("Firmware:      %s\n", s.Firmware))
	b.WriteString(fmt.Sprintf("Device Clock:  %s\n", s.Clock))
	b.WriteString(fmt.Sprintf("Raw Field A:   0x%02x (meaning unconfirmed)\n", s.BatteryRaw))
	b.WriteString(fmt.Sprintf("Raw Field B:   0x%02x (meaning unconfirmed)\n", s.RecordingRaw))

	return b.String()
}

// FormatCompact returns a compact format suitable for terminal display
func (s *DeviceStatus) FormatCompact() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Device:   %s (S/N: %s)\n", s.DeviceType, s.Serial))
	b.WriteString(fmt.Sprintf("Firmware: %s\n", s.Firmware))
	b.WriteString(fmt.Sprintf("Clock:    %s\n", s.Clock))

	return b.String()
}

// String returns a one-line rendering of the measurement, e.g.
// "24.93 °C  22.35 %RH".
func (m *Measurement) String() string {
	return fmt.Sprintf("%s °C  %s %%RH", m.Temperature, m.Humidity)
}

// FormatDetailed returns a formatted string with the measurement values
func (m *Measurement) FormatDetailed() string {
	var b strings.Builder

	b.WriteString("=== Live Measurement ===\n")
	b.WriteString(fmt.Sprintf("Temperature: %s °C\n", m.Temperature))
	b.WriteString(fmt.Sprintf("Humidity:    %s %%RH\n", m.Humidity))

	return b.String()
}

// FormatCompact returns the one-line measurement with a trailing newline
func (m *Measurement) FormatCompact() string {
	return m.String() + "\n"
}

// FormatDetailed returns a comprehensive formatted string with all
// configuration details
func (c *Configuration) FormatDetailed() string {
	var b strings.Builder

	b.WriteString("=== Logger Configuration ===\n")
	b.WriteString(fmt.Sprintf("Sample Rate:     %d s\n", c.SampleRate))
	b.WriteString(fmt.Sprintf("LED Interval:    %d s\n", c.LEDInterval))
	b.WriteString(fmt.Sprintf("Start Condition: %s\n", c.StartCondition))
	b.WriteString("\n")
	b.WriteString("=== Device State (read-only) ===\n")
	b.WriteString(fmt.Sprintf("Stored Samples: %d\n", c.RecordCount))
	b.WriteString(fmt.Sprintf("Device Clock:   %s\n", c.Clock))

	return b.String()
}

// FormatCompact returns a compact format suitable for terminal display
func (c *Configuration) FormatCompact() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Rate: %ds  LED: %ds  Start: %s\n",
		c.SampleRate, c.LEDInterval, c.StartCondition))
	b.WriteString(fmt.Sprintf("Stored: %d samples  Clock: %s\n", c.RecordCount, c.Clock))

	return b.String()
}

// FormatChanges returns a formatted string showing what will be changed
func (u *ConfigUpdate) FormatChanges() string {
	var b strings.Builder

	b.WriteString("=== Configuration Changes ===\n")

	if u.IsEmpty() {
		b.WriteString("(no changes specified)\n")
		return b.String()
	}
	if u.SampleRate != nil {
		b.WriteString(fmt.Sprintf("Sample Rate:     %d s\n", *u.SampleRate))
	}
	if u.LEDInterval != nil {
		b.WriteString(fmt.Sprintf("LED Interval:    %d s\n", *u.LEDInterval))
	}
	if u.StartCondition != nil {
		b.WriteString(fmt.Sprintf("Start Condition: %s\n", *u.StartCondition))
	}

	return b.String()
}

// CSVHeader is the column header emitted before dumped records.
const CSVHeader = "timestamp,temperature,humidity"

// CSVLine renders one dumped record as a CSV row matching CSVHeader.
func (e RecordEntry) CSVLine() string {
	return fmt.Sprintf("%s,%s,%s", e.Time, e.Temperature, e.Humidity)
}

package datalogger

import (
	"github.com/tmalesinski/dl2xx/internal/protocol"
)

// DeviceStatus is the decoded result of a status query.
//
// BatteryRaw and RecordingRaw have unconfirmed semantics: the positions
// suggest a battery level and a recording-state flag, but the encoding has
// not been verified against the device. They are preserved as opaque values
// so nothing is silently dropped.
type DeviceStatus struct {
	DeviceType   string            `json:"deviceType"`
	Clock        protocol.DateTime `json:"clock"`
	Firmware     string            `json:"firmware"`
	Serial       string            `json:"serial"`
	BatteryRaw   uint8             `json:"batteryRaw"`   // unconfirmed
	RecordingRaw uint8             `json:"recordingRaw"` // unconfirmed
}

// Measurement is one live temperature/humidity sample. Created fresh per
// Measure call and never persisted.
type Measurement struct {
	Temperature protocol.Temperature `json:"temperature"`
	Humidity    protocol.Humidity    `json:"humidity"`
}

// Configuration is the decoded device configuration. RecordCount and Clock
// are device-maintained and read-only; the unexported record keeps the full
// wire form so unspecified fields round-trip bit-identical through an update.
type Configuration struct {
	SampleRate     uint16                  `json:"sampleRate"`  // sampling interval, seconds
	LEDInterval    uint8                   `json:"ledInterval"` // LED flash interval, seconds
	StartCondition protocol.StartCondition `json:"startCondition"`
	RecordCount    uint16                  `json:"recordCount"` // stored samples, read-only
	Clock          protocol.DateTime       `json:"clock"`       // device clock at read time

	record protocol.SettingsRecord
}

// newConfiguration builds a Configuration view over a decoded settings record.
func newConfiguration(rec *protocol.SettingsRecord) *Configuration {
	return &Configuration{
		SampleRate:     rec.SampleRate,
		LEDInterval:    rec.LEDInterval,
		StartCondition: rec.StartCondition,
		RecordCount:    rec.RecordCount,
		Clock:          rec.Clock,
		record:         *rec,
	}
}

// ConfigUpdate carries a partial configuration update. Only non-nil fields
// are written; everything else keeps its current device value.
type ConfigUpdate struct {
	SampleRate     *uint16
	LEDInterval    *uint8
	StartCondition *protocol.StartCondition
}

// IsEmpty reports whether the update touches no fields.
func (u *ConfigUpdate) IsEmpty() bool {
	return u == nil || (u.SampleRate == nil && u.LEDInterval == nil && u.StartCondition == nil)
}

// mergeUpdate overlays the non-nil fields of an update onto a copy of the
// current settings record. Untouched fields, reserved bytes included, are
// bit-identical to the input.
func mergeUpdate(current *protocol.SettingsRecord, u *ConfigUpdate) *protocol.SettingsRecord {
	merged := *current
	if u == nil {
		return &merged
	}
	if u.SampleRate != nil {
		merged.SampleRate = *u.SampleRate
	}
	if u.LEDInterval != nil {
		merged.LEDInterval = *u.LEDInterval
	}
	if u.StartCondition != nil {
		merged.StartCondition = *u.StartCondition
	}
	return &merged
}

// RecordEntry is one stored sample from a dump: the device-clock timestamp
// and the measurement taken at that time. Entries arrive oldest first.
type RecordEntry struct {
	Time        protocol.DateTime    `json:"time"`
	Temperature protocol.Temperature `json:"temperature"`
	Humidity    protocol.Humidity    `json:"humidity"`
}

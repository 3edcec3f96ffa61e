package datalogger

import (
	"strings"
	"testing"

	"github.com/tmalesinski/dl2xx/internal/protocol"
)

func getSampleStatus() *DeviceStatus {
	return &DeviceStatus{
		DeviceType:   "DL-210TH",
		Clock:        protocol.DateTime{Year: 2024, Month: 6, Day: 1, Hour: 12, Minute: 0, Second: 5},
		Firmware:     "V1.0.1.170906",
		Serial:       "DL_210T123456789",
		BatteryRaw:   0x64,
		RecordingRaw: 0x01,
	}
}

func TestDeviceStatus_Summary(t *testing.T) {
	s := getSampleStatus()
	summary := s.Summary()

	// Should be one line
	if strings.Count(summary, "\n") > 0 {
		t.Error("Summary() should return a single line")
	}

	expectedParts := []string{"DL-210TH", "DL_210T123456789", "V1.0.1.170906"}
	for _, part := range expectedParts {
		if !strings.Contains(summary, part) {
			t.Errorf("Summary() missing expected part: %s", part)
		}
	}
}

func TestDeviceStatus_FormatDetailed(t *testing.T) {
	s := getSampleStatus()
	detailed := s.FormatDetailed()

	expectedParts := []string{
		"Device Information",
		"DL-210TH",
		"DL_210T123456789",
		"V1.0.1.170906",
		"2024-06-01 12:00:05",
		"unconfirmed",
	}

	for _, part := range expectedParts {
		if !strings.Contains(detailed, part) {
			t.Errorf("FormatDetailed() missing expected part: %s", part)
		}
	}
}

func TestDeviceStatus_FormatCompact(t *testing.T) {
	s := getSampleStatus()
	compact := s.FormatCompact()

	lines := strings.Split(compact, "\n")
	if len(lines) > 5 {
		t.Errorf("FormatCompact() should be compact, got %d lines", len(lines))
	}

	expectedParts := []string{"DL-210TH", "DL_210T123456789", "V1.0.1.170906"}
	for _, part := range expectedParts {
		if !strings.Contains(compact, part) {
			t.Errorf("FormatCompact() missing expected part: %s", part)
		}
	}
}

func TestMeasurement_String(t *testing.T) {
	m := &Measurement{Temperature: 2493, Humidity: 2235}
	got := m.String()

	if !strings.Contains(got, "24.93") || !strings.Contains(got, "22.35") {
		t.Errorf("String() = %q, want exact fixed-point values", got)
	}
}

func TestMeasurement_String_Negative(t *testing.T) {
	m := &Measurement{Temperature: -550, Humidity: 9900}
	got := m.String()

	if !strings.Contains(got, "-5.50") {
		t.Errorf("String() = %q, want -5.50", got)
	}
}

func TestConfiguration_FormatDetailed(t *testing.T) {
	c := newConfiguration(sampleSettings())
	detailed := c.FormatDetailed()

	expectedParts := []string{
		"Logger Configuration",
		"Sample Rate",
		"30 s",
		"LED Interval",
		"circular",
		"read-only",
		"250",
	}

	for _, part := range expectedParts {
		if !strings.Contains(detailed, part) {
			t.Errorf("FormatDetailed() missing expected part: %s", part)
		}
	}
}

func TestConfiguration_FormatCompact(t *testing.T) {
	c := newConfiguration(sampleSettings())
	compact := c.FormatCompact()

	lines := strings.Split(compact, "\n")
	if len(lines) > 4 {
		t.Errorf("FormatCompact() should be compact, got %d lines", len(lines))
	}
	if !strings.Contains(compact, "Rate: 30s") {
		t.Errorf("FormatCompact() missing sample rate, got: %s", compact)
	}
}

func TestConfigUpdate_FormatChanges(t *testing.T) {
	rate := uint16(60)
	start := protocol.StartScheduled

	tests := []struct {
		name     string
		update   *ConfigUpdate
		contains []string
	}{
		{
			name:     "sample rate change",
			update:   &ConfigUpdate{SampleRate: &rate},
			contains: []string{"Configuration Changes", "Sample Rate", "60 s"},
		},
		{
			name:     "start condition change",
			update:   &ConfigUpdate{StartCondition: &start},
			contains: []string{"Start Condition", "scheduled"},
		},
		{
			name:     "no changes",
			update:   &ConfigUpdate{},
			contains: []string{"no changes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.update.FormatChanges()
			for _, expected := range tt.contains {
				if !strings.Contains(result, expected) {
					t.Errorf("FormatChanges() missing: %s", expected)
				}
			}
		})
	}
}

func TestRecordEntry_CSVLine(t *testing.T) {
	e := RecordEntry{
		Time:        protocol.DateTime{Year: 2024, Month: 5, Day: 10, Hour: 8, Minute: 0, Second: 30},
		Temperature: 2493,
		Humidity:    2235,
	}

	want := "2024-05-10 08:00:30,24.93,22.35"
	if got := e.CSVLine(); got != want {
		t.Errorf("CSVLine() = %q, want %q", got, want)
	}

	// Header and row must have the same number of columns.
	if strings.Count(CSVHeader, ",") != strings.Count(e.CSVLine(), ",") {
		t.Error("CSVLine() column count does not match CSVHeader")
	}
}

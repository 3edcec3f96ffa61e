package datalogger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/tmalesinski/dl2xx/internal/protocol"
)

func TestConfigUpdate_IsEmpty(t *testing.T) {
	rate := uint16(60)
	led := uint8(5)
	start := protocol.StartScheduled

	tests := []struct {
		name   string
		update *ConfigUpdate
		want   bool
	}{
		{"nil update", nil, true},
		{"zero value", &ConfigUpdate{}, true},
		{"sample rate set", &ConfigUpdate{SampleRate: &rate}, false},
		{"led interval set", &ConfigUpdate{LEDInterval: &led}, false},
		{"start condition set", &ConfigUpdate{StartCondition: &start}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.update.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMergeUpdate(t *testing.T) {
	base := sampleSettings()

	t.Run("nil update is identity", func(t *testing.T) {
		merged := mergeUpdate(base, nil)
		if !bytes.Equal(merged.Encode(), base.Encode()) {
			t.Error("merge with nil update changed the record")
		}
	})

	t.Run("empty update is identity", func(t *testing.T) {
		merged := mergeUpdate(base, &ConfigUpdate{})
		if !bytes.Equal(merged.Encode(), base.Encode()) {
			t.Error("merge with empty update changed the record")
		}
	})

	t.Run("partial update touches only named fields", func(t *testing.T) {
		rate := uint16(300)
		merged := mergeUpdate(base, &ConfigUpdate{SampleRate: &rate})

		if merged.SampleRate != 300 {
			t.Errorf("SampleRate = %d, want 300", merged.SampleRate)
		}
		// Everything else, reserved bytes included, must be bit-identical.
		want := *base
		want.SampleRate = 300
		if !bytes.Equal(merged.Encode(), want.Encode()) {
			t.Errorf("merged record = % x, want % x", merged.Encode(), want.Encode())
		}
	})

	t.Run("merge does not mutate the input", func(t *testing.T) {
		led := uint8(99)
		before := base.Encode()
		mergeUpdate(base, &ConfigUpdate{LEDInterval: &led})
		if !bytes.Equal(base.Encode(), before) {
			t.Error("mergeUpdate mutated the current record")
		}
	})
}

func TestMeasurement_JSON(t *testing.T) {
	m := &Measurement{Temperature: 2493, Humidity: 2235}
	out, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	// Fixed-point values render as exact decimals, not floats.
	for _, want := range []string{`"temperature":24.93`, `"humidity":22.35`} {
		if !strings.Contains(string(out), want) {
			t.Errorf("JSON %s missing %s", out, want)
		}
	}
}

func TestDeviceStatus_JSON(t *testing.T) {
	s := &DeviceStatus{
		DeviceType: "DL-210TH",
		Clock:      protocol.DateTime{Year: 2024, Month: 6, Day: 1, Hour: 12, Minute: 0, Second: 5},
		Firmware:   "V1.0.1.170906",
		Serial:     "DL_210T123456789",
	}
	out, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.Contains(string(out), `"clock":"2024-06-01 12:00:05"`) {
		t.Errorf("JSON %s missing formatted clock", out)
	}
}

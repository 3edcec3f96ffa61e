package protocol

import (
	"bytes"
	"testing"
)

// statusBody assembles a 59-byte status body from its fields.
func statusBody(deviceType string, clock DateTime, unknownA byte, firmware, serial string, unknownB byte) []byte {
	body := make([]byte, StatusBodySize)
	copy(body[0:16], deviceType)
	copy(body[16:23], clock.Encode())
	body[23] = unknownA
	copy(body[24:40], firmware)
	copy(body[40:56], serial)
	body[56] = unknownB
	return body
}

func TestDecodeStatus(t *testing.T) {
	t.Run("captured response pattern", func(t *testing.T) {
		clock := DateTime{Year: 2026, Month: 8, Day: 23, Hour: 10, Minute: 15, Second: 30}
		body := statusBody("DL-210TH", clock, 0x64, "V1.0.1.170906", "DL_210T123456789", 0x01)

		got, err := DecodeStatus(body)
		if err != nil {
			t.Fatalf("DecodeStatus() error = %v", err)
		}
		if got.DeviceType != "DL-210TH" {
			t.Errorf("DeviceType = %q, want \"DL-210TH\"", got.DeviceType)
		}
		if got.Firmware != "V1.0.1.170906" {
			t.Errorf("Firmware = %q, want \"V1.0.1.170906\"", got.Firmware)
		}
		if got.Serial != "DL_210T123456789" {
			t.Errorf("Serial = %q, want \"DL_210T123456789\"", got.Serial)
		}
		if got.Clock != clock {
			t.Errorf("Clock = %+v, want %+v", got.Clock, clock)
		}
		// Unconfirmed fields must be preserved, not dropped.
		if got.UnknownA != 0x64 {
			t.Errorf("UnknownA = 0x%02x, want 0x64", got.UnknownA)
		}
		if got.UnknownB != 0x01 {
			t.Errorf("UnknownB = 0x%02x, want 0x01", got.UnknownB)
		}
	})

	t.Run("wrong body length", func(t *testing.T) {
		if _, err := DecodeStatus(make([]byte, StatusBodySize-1)); !IsMalformedResponse(err) {
			t.Errorf("error = %v, want MalformedResponse", err)
		}
	})

	t.Run("invalid clock surfaces decoder error", func(t *testing.T) {
		body := statusBody("DL-210TH", DateTime{Year: 2026, Month: 8, Day: 23}, 0, "V1.0.1.170906", "DL_210T123456789", 0)
		body[18] = 13 // month
		if _, err := DecodeStatus(body); !IsUnrecognizedFieldValue(err) {
			t.Errorf("error = %v, want UnrecognizedFieldValue", err)
		}
	})
}

func validSettings() *SettingsRecord {
	rec := &SettingsRecord{
		StartCondition: StartImmediate,
		LEDInterval:    10,
		RecordCount:    1234,
		SampleRate:     60,
		Clock:          DateTime{Year: 2026, Month: 8, Day: 23, Hour: 10, Minute: 15, Second: 30},
		Tail:           0x5a,
	}
	for i := range rec.Reserved {
		rec.Reserved[i] = byte(0xe0 + i)
	}
	return rec
}

func TestSettingsRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SettingsRecord)
	}{
		{name: "baseline", mutate: func(r *SettingsRecord) {}},
		{name: "scheduled start", mutate: func(r *SettingsRecord) { r.StartCondition = StartScheduled }},
		{name: "zero record count", mutate: func(r *SettingsRecord) { r.RecordCount = 0 }},
		{name: "max sample rate", mutate: func(r *SettingsRecord) { r.SampleRate = 0xffff }},
		{name: "zero reserved", mutate: func(r *SettingsRecord) { r.Reserved = [14]byte{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validSettings()
			tt.mutate(rec)

			encoded := rec.Encode()
			if len(encoded) != SettingsRecordSize {
				t.Fatalf("Encode() length = %d, want %d", len(encoded), SettingsRecordSize)
			}
			decoded, err := DecodeSettings(encoded)
			if err != nil {
				t.Fatalf("DecodeSettings() error = %v", err)
			}
			if *decoded != *rec {
				t.Errorf("round trip = %+v, want %+v", decoded, rec)
			}
			// Re-encoding must reproduce the exact bytes.
			if !bytes.Equal(decoded.Encode(), encoded) {
				t.Errorf("re-encode = % x, want % x", decoded.Encode(), encoded)
			}
		})
	}
}

func TestDecodeSettingsErrors(t *testing.T) {
	t.Run("wrong length", func(t *testing.T) {
		if _, err := DecodeSettings(make([]byte, SettingsRecordSize+1)); !IsMalformedResponse(err) {
			t.Errorf("error = %v, want MalformedResponse", err)
		}
	})

	t.Run("bad start condition", func(t *testing.T) {
		b := validSettings().Encode()
		b[0] = 0x09
		if _, err := DecodeSettings(b); !IsUnrecognizedFieldValue(err) {
			t.Errorf("error = %v, want UnrecognizedFieldValue", err)
		}
	})
}

func TestDecodeSample(t *testing.T) {
	t.Run("exact fixed point", func(t *testing.T) {
		got, err := DecodeSample([]byte{0xbd, 0x09, 0xbb, 0x08})
		if err != nil {
			t.Fatalf("DecodeSample() error = %v", err)
		}
		if got.Temperature != 2493 || got.Humidity != 2235 {
			t.Errorf("sample = %+v, want temperature 2493 humidity 2235", got)
		}
		if got.Temperature.String() != "24.93" || got.Humidity.String() != "22.35" {
			t.Errorf("strings = %q/%q, want \"24.93\"/\"22.35\"",
				got.Temperature.String(), got.Humidity.String())
		}
	})

	t.Run("wrong length", func(t *testing.T) {
		if _, err := DecodeSample([]byte{0xbd, 0x09, 0xbb}); !IsMalformedResponse(err) {
			t.Errorf("error = %v, want MalformedResponse", err)
		}
	})
}

// recordPage assembles a dump page body from stored records.
func recordPage(records ...StoredRecord) []byte {
	body := []byte{byte(len(records))}
	for _, r := range records {
		body = append(body, r.Time.Encode()...)
		body = append(body, byte(uint16(r.Temperature)), byte(uint16(r.Temperature)>>8))
		body = append(body, byte(r.Humidity), byte(r.Humidity>>8))
	}
	return body
}

func TestDecodeRecordPage(t *testing.T) {
	rec1 := StoredRecord{
		Time:        DateTime{Year: 2026, Month: 8, Day: 23, Hour: 10, Minute: 0, Second: 0},
		Temperature: 2493,
		Humidity:    2235,
	}
	rec2 := StoredRecord{
		Time:        DateTime{Year: 2026, Month: 8, Day: 23, Hour: 10, Minute: 1, Second: 0},
		Temperature: -150,
		Humidity:    9999,
	}

	t.Run("full page", func(t *testing.T) {
		got, err := DecodeRecordPage(recordPage(rec1, rec2))
		if err != nil {
			t.Fatalf("DecodeRecordPage() error = %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("len = %d, want 2", len(got))
		}
		if got[0] != rec1 || got[1] != rec2 {
			t.Errorf("records = %+v, want [%+v %+v]", got, rec1, rec2)
		}
	})

	t.Run("end of data page", func(t *testing.T) {
		got, err := DecodeRecordPage([]byte{0x00})
		if err != nil {
			t.Fatalf("DecodeRecordPage() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("len = %d, want 0", len(got))
		}
	})

	t.Run("count exceeds page capacity", func(t *testing.T) {
		body := make([]byte, 1+6*StoredRecordSize)
		body[0] = 6
		if _, err := DecodeRecordPage(body); !IsMalformedResponse(err) {
			t.Errorf("error = %v, want MalformedResponse", err)
		}
	})

	t.Run("truncated page", func(t *testing.T) {
		body := recordPage(rec1)
		if _, err := DecodeRecordPage(body[:len(body)-1]); !IsMalformedResponse(err) {
			t.Errorf("error = %v, want MalformedResponse", err)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		if _, err := DecodeRecordPage(nil); !IsMalformedResponse(err) {
			t.Errorf("error = %v, want MalformedResponse", err)
		}
	})
}

func TestEncodeRecordIndex(t *testing.T) {
	got := EncodeRecordIndex(0x1234)
	if !bytes.Equal(got, []byte{0x34, 0x12}) {
		t.Errorf("EncodeRecordIndex() = % x, want 34 12", got)
	}
}

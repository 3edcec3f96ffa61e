package protocol

import (
	"encoding/binary"
	"fmt"
)

// StatusInfo is the decoded body of a status response.
//
// The two unknown bytes have unconfirmed semantics: UnknownA sits where a
// battery level is suspected and UnknownB where a recording-state flag is
// suspected. They are carried as opaque values, never interpreted.
type StatusInfo struct {
	DeviceType string
	Clock      DateTime
	UnknownA   uint8 // battery level candidate, unconfirmed
	Firmware   string
	Serial     string
	UnknownB   uint8 // recording state candidate, unconfirmed
}

// StatusBodySize is the size of a status body after the opcode echo.
const StatusBodySize = 59

// Status field layout, relative to the start of the echoed-opcode-stripped body.
const (
	statusDeviceTypeOff = 0
	statusClockOff      = 16
	statusUnknownAOff   = 23
	statusFirmwareOff   = 24
	statusSerialOff     = 40
	statusUnknownBOff   = 56
	stringFieldLen      = 16
)

// DecodeStatus decodes a status body (opcode echo already stripped).
func DecodeStatus(body []byte) (*StatusInfo, error) {
	if len(body) != StatusBodySize {
		return nil, NewMalformedResponseError(fmt.Sprintf(
			"status body is %d bytes, expected %d", len(body), StatusBodySize), body)
	}

	deviceType, err := ParseASCII(body[statusDeviceTypeOff : statusDeviceTypeOff+stringFieldLen])
	if err != nil {
		return nil, err
	}
	clock, err := ParseDateTime(body[statusClockOff : statusClockOff+DateTimeSize])
	if err != nil {
		return nil, err
	}
	firmware, err := ParseASCII(body[statusFirmwareOff : statusFirmwareOff+stringFieldLen])
	if err != nil {
		return nil, err
	}
	serial, err := ParseASCII(body[statusSerialOff : statusSerialOff+stringFieldLen])
	if err != nil {
		return nil, err
	}

	return &StatusInfo{
		DeviceType: deviceType,
		Clock:      clock,
		UnknownA:   body[statusUnknownAOff],
		Firmware:   firmware,
		Serial:     serial,
		UnknownB:   body[statusUnknownBOff],
	}, nil
}

// SettingsRecord is the decoded 28-byte settings block. It is the unit of the
// read-modify-write cycle: reserved bytes are preserved verbatim so a partial
// update round-trips every untouched bit.
type SettingsRecord struct {
	StartCondition StartCondition
	LEDInterval    uint8  // LED flash interval, seconds
	RecordCount    uint16 // number of stored samples; read-only, device-maintained
	SampleRate     uint16 // sampling interval, seconds
	Reserved       [14]byte
	Clock          DateTime
	Tail           uint8
}

// SettingsRecordSize is the serialized size of a SettingsRecord in bytes.
const SettingsRecordSize = 28

// Settings field layout.
const (
	settingsStartOff       = 0
	settingsLEDOff         = 1
	settingsRecordCountOff = 2
	settingsSampleRateOff  = 4
	settingsReservedOff    = 6
	settingsClockOff       = 20
	settingsTailOff        = 27
)

// DecodeSettings decodes a settings record (acknowledgement prefix already
// stripped).
func DecodeSettings(body []byte) (*SettingsRecord, error) {
	if len(body) != SettingsRecordSize {
		return nil, NewMalformedResponseError(fmt.Sprintf(
			"settings record is %d bytes, expected %d", len(body), SettingsRecordSize), body)
	}

	start, err := ParseStartCondition(body[settingsStartOff])
	if err != nil {
		return nil, err
	}
	clock, err := ParseDateTime(body[settingsClockOff : settingsClockOff+DateTimeSize])
	if err != nil {
		return nil, err
	}

	rec := &SettingsRecord{
		StartCondition: start,
		LEDInterval:    body[settingsLEDOff],
		RecordCount:    binary.LittleEndian.Uint16(body[settingsRecordCountOff:]),
		SampleRate:     binary.LittleEndian.Uint16(body[settingsSampleRateOff:]),
		Clock:          clock,
		Tail:           body[settingsTailOff],
	}
	copy(rec.Reserved[:], body[settingsReservedOff:settingsClockOff])
	return rec, nil
}

// Encode serializes the settings record into its 28-byte wire form.
// Encode and DecodeSettings are exact inverses for every valid record.
func (r *SettingsRecord) Encode() []byte {
	b := make([]byte, SettingsRecordSize)
	b[settingsStartOff] = byte(r.StartCondition)
	b[settingsLEDOff] = r.LEDInterval
	binary.LittleEndian.PutUint16(b[settingsRecordCountOff:], r.RecordCount)
	binary.LittleEndian.PutUint16(b[settingsSampleRateOff:], r.SampleRate)
	copy(b[settingsReservedOff:settingsClockOff], r.Reserved[:])
	copy(b[settingsClockOff:settingsClockOff+DateTimeSize], r.Clock.Encode())
	b[settingsTailOff] = r.Tail
	return b
}

// Sample is a decoded live measurement.
type Sample struct {
	Temperature Temperature
	Humidity    Humidity
}

// SampleSize is the serialized size of a measurement body after the
// acknowledgement prefix.
const SampleSize = 4

// DecodeSample decodes a live measurement body (acknowledgement prefix
// already stripped).
func DecodeSample(body []byte) (*Sample, error) {
	if len(body) != SampleSize {
		return nil, NewMalformedResponseError(fmt.Sprintf(
			"measurement body is %d bytes, expected %d", len(body), SampleSize), body)
	}
	temp, err := ParseTemperature(body[0:2])
	if err != nil {
		return nil, err
	}
	hum, err := ParseHumidity(body[2:4])
	if err != nil {
		return nil, err
	}
	return &Sample{Temperature: temp, Humidity: hum}, nil
}

// StoredRecord is one stored sample from a dump page: the device-clock
// timestamp followed by the measurement.
type StoredRecord struct {
	Time        DateTime
	Temperature Temperature
	Humidity    Humidity
}

// Stored-record paging constants.
const (
	// StoredRecordSize is the serialized size of one stored sample.
	StoredRecordSize = DateTimeSize + 4

	// MaxRecordsPerPage is how many stored samples fit one response report.
	MaxRecordsPerPage = 5
)

// EncodeRecordIndex builds the payload of a read-records request: the
// little-endian index of the first sample wanted (the device-side paging
// cursor).
func EncodeRecordIndex(index uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, index)
	return b
}

// DecodeRecordPage decodes one page of stored samples (acknowledgement prefix
// already stripped). A page with a zero count is the device's end-of-data
// signal.
func DecodeRecordPage(body []byte) ([]StoredRecord, error) {
	if len(body) < 1 {
		return nil, NewMalformedResponseError("empty record page", body)
	}
	count := int(body[0])
	if count > MaxRecordsPerPage {
		return nil, NewMalformedResponseError(fmt.Sprintf(
			"record page declares %d samples, maximum is %d", count, MaxRecordsPerPage), body)
	}
	if len(body) < 1+count*StoredRecordSize {
		return nil, NewMalformedResponseError(fmt.Sprintf(
			"record page of %d bytes too short for %d samples", len(body), count), body)
	}

	records := make([]StoredRecord, 0, count)
	for i := 0; i < count; i++ {
		off := 1 + i*StoredRecordSize
		ts, err := ParseDateTime(body[off : off+DateTimeSize])
		if err != nil {
			return nil, err
		}
		temp, err := ParseTemperature(body[off+DateTimeSize : off+DateTimeSize+2])
		if err != nil {
			return nil, err
		}
		hum, err := ParseHumidity(body[off+DateTimeSize+2 : off+DateTimeSize+4])
		if err != nil {
			return nil, err
		}
		records = append(records, StoredRecord{Time: ts, Temperature: temp, Humidity: hum})
	}
	return records, nil
}

package protocol

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"
)

// Temperature is a fixed-point temperature in hundredths of a degree Celsius.
// The wire encoding is a signed 16-bit little-endian integer; 2493 is 24.93°C.
// Kept as an integer so decoded values compare exactly.
type Temperature int16

// Float64 returns the temperature in degrees Celsius.
func (t Temperature) Float64() float64 { return float64(t) / 100 }

// String formats the temperature with two decimals and no unit, e.g. "24.93".
func (t Temperature) String() string {
	v := int(t)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Humidity is a fixed-point relative humidity in hundredths of a percent.
// The wire encoding is an unsigned 16-bit little-endian integer; 2235 is 22.35%.
type Humidity uint16

// Float64 returns the relative humidity in percent.
func (h Humidity) Float64() float64 { return float64(h) / 100 }

// String formats the humidity with two decimals and no unit, e.g. "22.35".
func (h Humidity) String() string {
	return fmt.Sprintf("%d.%02d", int(h)/100, int(h)%100)
}

// MarshalJSON encodes the temperature as a plain decimal number, e.g. 24.93.
func (t Temperature) MarshalJSON() ([]byte, error) {
	return []byte(t.String()), nil
}

// ParseTemperature decodes a temperature from two little-endian bytes.
func ParseTemperature(b []byte) (Temperature, error) {
	if len(b) != 2 {
		return 0, NewUnrecognizedFieldValueError("temperature field must be 2 bytes", b)
	}
	return Temperature(int16(binary.LittleEndian.Uint16(b))), nil
}

// MarshalJSON encodes the humidity as a plain decimal number, e.g. 22.35.
func (h Humidity) MarshalJSON() ([]byte, error) {
	return []byte(h.String()), nil
}

// ParseHumidity decodes a relative humidity from two little-endian bytes.
// Values above 100.00% are outside the documented range.
func ParseHumidity(b []byte) (Humidity, error) {
	if len(b) != 2 {
		return 0, NewUnrecognizedFieldValueError("humidity field must be 2 bytes", b)
	}
	v := binary.LittleEndian.Uint16(b)
	if v > 10000 {
		return 0, NewUnrecognizedFieldValueError(fmt.Sprintf(
			"humidity %d.%02d%% is out of range", v/100, v%100), b)
	}
	return Humidity(v), nil
}

// DateTime is the device clock representation: a little-endian 16-bit year
// followed by single bytes for month, day, hour, minute and second.
type DateTime struct {
	Year   uint16
	Month  uint8
	Day    uint8
	Hour   uint8
	Minute uint8
	Second uint8
}

// DateTimeSize is the serialized size of a DateTime in bytes.
const DateTimeSize = 7

// ParseDateTime decodes a device date-time from DateTimeSize bytes.
// Calendar components outside their documented range are rejected.
func ParseDateTime(b []byte) (DateTime, error) {
	if len(b) != DateTimeSize {
		return DateTime{}, NewUnrecognizedFieldValueError(fmt.Sprintf(
			"date-time field is %d bytes, expected %d", len(b), DateTimeSize), b)
	}
	dt := DateTime{
		Year:   binary.LittleEndian.Uint16(b[0:2]),
		Month:  b[2],
		Day:    b[3],
		Hour:   b[4],
		Minute: b[5],
		Second: b[6],
	}
	if dt.Month < 1 || dt.Month > 12 || dt.Day < 1 || dt.Day > 31 ||
		dt.Hour > 23 || dt.Minute > 59 || dt.Second > 59 {
		return DateTime{}, NewUnrecognizedFieldValueError(
			"date-time components out of range", b)
	}
	return dt, nil
}

// Encode serializes the date-time into its 7-byte wire form.
func (dt DateTime) Encode() []byte {
	b := make([]byte, DateTimeSize)
	binary.LittleEndian.PutUint16(b[0:2], dt.Year)
	b[2] = dt.Month
	b[3] = dt.Day
	b[4] = dt.Hour
	b[5] = dt.Minute
	b[6] = dt.Second
	return b
}

// DateTimeFrom converts a host time into the device representation,
// truncating sub-second precision.
func DateTimeFrom(t time.Time) DateTime {
	return DateTime{
		Year:   uint16(t.Year()),
		Month:  uint8(t.Month()),
		Day:    uint8(t.Day()),
		Hour:   uint8(t.Hour()),
		Minute: uint8(t.Minute()),
		Second: uint8(t.Second()),
	}
}

// Time converts the device representation to a host time in the given location.
func (dt DateTime) Time(loc *time.Location) time.Time {
	return time.Date(int(dt.Year), time.Month(dt.Month), int(dt.Day),
		int(dt.Hour), int(dt.Minute), int(dt.Second), 0, loc)
}

// String formats the date-time as "YYYY-MM-DD HH:MM:SS".
func (dt DateTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d",
		dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second)
}

// MarshalJSON encodes the date-time as a quoted "YYYY-MM-DD HH:MM:SS" string.
func (dt DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + dt.String() + `"`), nil
}

// Before reports whether dt is earlier than other.
func (dt DateTime) Before(other DateTime) bool {
	a := [6]uint16{dt.Year, uint16(dt.Month), uint16(dt.Day), uint16(dt.Hour), uint16(dt.Minute), uint16(dt.Second)}
	b := [6]uint16{other.Year, uint16(other.Month), uint16(other.Day), uint16(other.Hour), uint16(other.Minute), uint16(other.Second)}
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// StartCondition is the enumerated device setting controlling how a recording
// session begins.
type StartCondition uint8

const (
	// StartImmediate begins logging immediately into a circular buffer.
	StartImmediate StartCondition = 0
	// StartScheduled begins and ends logging at the configured start/stop times.
	StartScheduled StartCondition = 1
)

// ParseStartCondition decodes a start condition byte, rejecting values
// outside the documented enumeration.
func ParseStartCondition(b byte) (StartCondition, error) {
	switch StartCondition(b) {
	case StartImmediate, StartScheduled:
		return StartCondition(b), nil
	default:
		return 0, NewUnrecognizedFieldValueError(fmt.Sprintf(
			"unknown start condition 0x%02x", b), []byte{b})
	}
}

// ParseStartConditionName parses a user-supplied start condition name.
func ParseStartConditionName(name string) (StartCondition, error) {
	switch strings.ToLower(name) {
	case "immediate", "circular":
		return StartImmediate, nil
	case "scheduled", "start-stop-time":
		return StartScheduled, nil
	default:
		return 0, fmt.Errorf("unknown start condition %q (use circular or scheduled)", name)
	}
}

// String returns the canonical name of the start condition.
func (sc StartCondition) String() string {
	switch sc {
	case StartImmediate:
		return "circular"
	case StartScheduled:
		return "scheduled"
	default:
		return fmt.Sprintf("unknown(0x%02x)", uint8(sc))
	}
}

// MarshalJSON encodes the start condition as its quoted canonical name.
func (sc StartCondition) MarshalJSON() ([]byte, error) {
	return []byte(`"` + sc.String() + `"`), nil
}

// ParseASCII decodes a fixed-width ASCII field, stripping trailing zero
// padding. Non-printable bytes before the padding are rejected.
func ParseASCII(b []byte) (string, error) {
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	for _, c := range b[:end] {
		if c < 0x20 || c > 0x7e {
			return "", NewUnrecognizedFieldValueError(fmt.Sprintf(
				"non-ASCII byte 0x%02x in string field", c), b)
		}
	}
	return string(b[:end]), nil
}

package protocol

import "fmt"

// Report framing constants.
const (
	// ReportSize is the fixed HID report size in both directions.
	ReportSize = 64

	// FrameMarker is the first byte of every request and response report.
	FrameMarker = 0x3f

	// headerSize is marker + length byte + opcode.
	headerSize = 3

	// MaxPayloadSize is the largest command payload that fits a report.
	MaxPayloadSize = ReportSize - headerSize

	// FillerByte pads requests up to the fixed report size.
	FillerByte = 0x00
)

// Command opcodes understood by the logger.
const (
	CmdMeasure        = 0x01 // live temperature/humidity sample
	CmdStartRecording = 0x02 // erase store and begin logging
	CmdWriteSettings  = 0x03 // write the 28-byte settings record
	CmdReadSettings   = 0x04 // read the 28-byte settings record
	CmdReadRecords    = 0x05 // page through stored samples
	CmdStatus         = 0x30 // device identification and clock
)

// EncodeCommand builds a complete outgoing report for the given opcode and
// payload. The report is always exactly ReportSize bytes, padded with
// FillerByte.
//
// Request layout:
//
//	[MARKER][len(payload)+1][OPCODE][PAYLOAD...][FILLER...]
func EncodeCommand(opcode byte, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayloadSize {
		return nil, NewPayloadTooLargeError(fmt.Sprintf(
			"payload of %d bytes exceeds maximum of %d for opcode 0x%02x",
			len(payload), MaxPayloadSize, opcode))
	}

	report := make([]byte, ReportSize)
	report[0] = FrameMarker
	report[1] = byte(len(payload) + 1)
	report[2] = opcode
	copy(report[headerSize:], payload)
	// Remaining bytes are already FillerByte (zero).
	return report, nil
}

// DecodeResponse validates the framing of a received report and returns the
// body bytes. The body still carries the opcode echo or acknowledgement
// prefix; see ExpectEcho and ExpectAck.
//
// Response layout:
//
//	[MARKER][n][BODY(n)][FILLER...]
func DecodeResponse(raw []byte) ([]byte, error) {
	if len(raw) != ReportSize {
		return nil, NewMalformedResponseError(fmt.Sprintf(
			"report is %d bytes, expected %d", len(raw), ReportSize), raw)
	}
	if raw[0] != FrameMarker {
		return nil, NewMalformedResponseError(fmt.Sprintf(
			"invalid frame marker 0x%02x, expected 0x%02x", raw[0], FrameMarker), raw)
	}
	n := int(raw[1])
	if n+2 > len(raw) {
		return nil, NewMalformedResponseError(fmt.Sprintf(
			"body length %d exceeds report capacity", n), raw)
	}
	return raw[2 : 2+n], nil
}

// ExpectEcho strips the leading opcode echo from a status-family body and
// returns the remaining field bytes.
func ExpectEcho(body []byte, opcode byte) ([]byte, error) {
	if len(body) < 1 {
		return nil, NewMalformedResponseError("empty response body", body)
	}
	if body[0] != opcode {
		return nil, NewMalformedResponseError(fmt.Sprintf(
			"response echoes opcode 0x%02x, expected 0x%02x", body[0], opcode), body)
	}
	return body[1:], nil
}

// ExpectAck strips the three-byte acknowledgement prefix (0x00 0x00 opcode)
// from a settings-family body and returns the remaining field bytes.
func ExpectAck(body []byte, opcode byte) ([]byte, error) {
	if len(body) < 3 {
		return nil, NewMalformedResponseError(fmt.Sprintf(
			"acknowledgement body is %d bytes, expected at least 3", len(body)), body)
	}
	if body[0] != 0x00 || body[1] != 0x00 || body[2] != opcode {
		return nil, NewMalformedResponseError(fmt.Sprintf(
			"invalid acknowledgement prefix % x, expected 00 00 %02x", body[:3], opcode), body)
	}
	return body[3:], nil
}

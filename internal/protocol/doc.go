// Package protocol implements the binary wire protocol of the DL-210TH
// USB-HID temperature/humidity data logger.
//
// The device exchanges fixed 64-byte HID reports. A request carries a frame
// marker, a length byte, a one-byte opcode and an opcode-specific payload; the
// response carries the marker, a length byte and a body that either echoes the
// opcode (status family) or starts with a three-byte acknowledgement prefix
// (settings family).
//
// The package is split into three layers:
//   - frame.go: report framing and validation (opcode-agnostic)
//   - fields.go: pure decoders/encoders for individual field encodings
//     (ASCII with padding, little-endian words, date-time, fixed-point
//     temperature and humidity, enumerated start condition)
//   - records.go: the multi-field structures built from those fields
//     (status block, settings record, stored-sample pages)
//
// Nothing in this package performs I/O.
package protocol

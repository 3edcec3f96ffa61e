// Package transport opens and talks to the data logger's USB-HID interface.
//
// The logger exchanges fixed 64-byte reports; Port is the minimal contract
// the protocol layer needs (send a report, receive one with a timeout). The
// hidapi-backed implementation lives in hid.go; session and protocol code
// depend only on the Port interface so tests can substitute a scripted fake.
//
// A device-not-found or disconnect error is distinct from a receive timeout:
// the former is not retryable, the latter may succeed on a whole-command
// retry.
package transport

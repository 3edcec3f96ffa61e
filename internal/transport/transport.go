package transport

import "time"

// USB identifiers of the supported logger model.
const (
	// VendorID is the USB vendor id of the DL-210TH.
	VendorID = 0x2047
	// ProductID is the USB product id of the DL-210TH.
	ProductID = 0x0301
)

// DefaultTimeout is the default receive window for a single report.
const DefaultTimeout = 1 * time.Second

// Port is a request/response channel of fixed-size HID reports. Exactly one
// request may be outstanding at a time; the facade owns the port for the
// duration of a command invocation and closes it on every exit path.
type Port interface {
	// Send writes one outgoing report to the device.
	Send(report []byte) error

	// Receive blocks until the device answers with one report or the
	// timeout elapses. A timeout yields a DeviceUnresponsive error; a
	// disconnect yields TransportUnavailable.
	Receive(timeout time.Duration) ([]byte, error)

	// Close releases the device handle. Safe to call more than once.
	Close() error
}

// DeviceInfo describes one attached logger found during enumeration.
type DeviceInfo struct {
	Path    string // platform device path
	Serial  string // USB serial string, may be empty
	Product string // USB product string, may be empty
}

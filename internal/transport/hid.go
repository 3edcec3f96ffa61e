package transport

import (
	"fmt"
	"sync"
	"time"

	hidapi "github.com/sstallion/go-hid"
	"go.uber.org/zap"

	"github.com/tmalesinski/dl2xx/internal/logging"
	"github.com/tmalesinski/dl2xx/internal/protocol"
)

// hidPort is the hidapi-backed Port implementation.
type hidPort struct {
	dev *hidapi.Device

	mu     sync.Mutex
	closed bool
}

// Open finds the first attached logger and opens its HID interface.
// Returns a TransportUnavailable error if no logger is present or the
// interface cannot be claimed (typically a permissions problem on Linux).
func Open() (Port, error) {
	if err := hidapi.Init(); err != nil {
		return nil, protocol.NewTransportUnavailableError("HID subsystem initialization failed", err)
	}

	dev, err := hidapi.OpenFirst(VendorID, ProductID)
	if err != nil {
		_ = hidapi.Exit()
		return nil, protocol.NewTransportUnavailableError(fmt.Sprintf(
			"data logger %04x:%04x not found or not openable", VendorID, ProductID), err)
	}

	logging.Debug("opened data logger",
		zap.Uint16("vendor_id", VendorID),
		zap.Uint16("product_id", ProductID),
	)
	return &hidPort{dev: dev}, nil
}

// Send writes one fixed-size report to the device.
func (p *hidPort) Send(report []byte) error {
	logging.LogReport("report sent", report)

	n, err := p.dev.Write(report)
	if err != nil {
		return protocol.NewTransportUnavailableError("report write failed", err)
	}
	if n != len(report) {
		return protocol.NewTransportUnavailableError(fmt.Sprintf(
			"short report write: %d of %d bytes", n, len(report)), nil)
	}
	return nil
}

// Receive waits for one report from the device. hidapi signals a timeout as
// a zero-length read, which is mapped to DeviceUnresponsive; read errors mean
// the device went away.
func (p *hidPort) Receive(timeout time.Duration) ([]byte, error) {
	buf := make([]byte, protocol.ReportSize)
	n, err := p.dev.ReadWithTimeout(buf, timeout)
	if err != nil {
		return nil, protocol.NewTransportUnavailableError("report read failed", err)
	}
	if n == 0 {
		return nil, protocol.NewDeviceUnresponsiveError(fmt.Sprintf(
			"no response within %v", timeout))
	}

	logging.LogReport("report received", buf[:n])
	return buf[:n], nil
}

// Close releases the device handle and shuts down the HID subsystem.
func (p *hidPort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	err := p.dev.Close()
	_ = hidapi.Exit()
	if err != nil {
		return protocol.NewTransportUnavailableError("device close failed", err)
	}
	return nil
}

// Enumerate lists every attached logger matching the supported model.
// An empty result is not an error.
func Enumerate() ([]DeviceInfo, error) {
	if err := hidapi.Init(); err != nil {
		return nil, protocol.NewTransportUnavailableError("HID subsystem initialization failed", err)
	}
	defer func() { _ = hidapi.Exit() }()

	var devices []DeviceInfo
	err := hidapi.Enumerate(VendorID, ProductID, func(info *hidapi.DeviceInfo) error {
		devices = append(devices, DeviceInfo{
			Path:    info.Path,
			Serial:  info.SerialNbr,
			Product: info.ProductStr,
		})
		return nil
	})
	if err != nil {
		return nil, protocol.NewTransportUnavailableError("device enumeration failed", err)
	}
	return devices, nil
}

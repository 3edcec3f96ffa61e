package datalogger

import (
	"time"

	"go.uber.org/zap"

	"github.com/tmalesinski/dl2xx/internal/logging"
	"github.com/tmalesinski/dl2xx/internal/protocol"
	"github.com/tmalesinski/dl2xx/internal/transport"
)

// Device is the client facade for one data logger. It owns the transport
// port exclusively; the protocol is strictly request/response with a single
// outstanding exchange at a time, so Device must not be shared between
// goroutines.
type Device struct {
	port    transport.Port
	timeout time.Duration
	now     func() time.Time
}

// Option configures a Device.
type Option func(*Device)

// WithTimeout sets the receive window for each response report.
func WithTimeout(d time.Duration) Option {
	return func(dev *Device) {
		if d > 0 {
			dev.timeout = d
		}
	}
}

// withClock substitutes the host clock source. Used by tests.
func withClock(now func() time.Time) Option {
	return func(dev *Device) { dev.now = now }
}

// New creates a Device over an already-open port. The Device takes ownership
// of the port; Close releases it.
func New(port transport.Port, opts ...Option) *Device {
	dev := &Device{
		port:    port,
		timeout: transport.DefaultTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(dev)
	}
	return dev
}

// Open finds the logger on USB and returns a Device ready for one command
// invocation. The caller must Close it on every exit path.
func Open(opts ...Option) (*Device, error) {
	port, err := transport.Open()
	if err != nil {
		return nil, err
	}
	return New(port, opts...), nil
}

// Close releases the underlying port. Safe to call more than once.
func (d *Device) Close() error {
	return d.port.Close()
}

// roundTrip performs one command exchange: encode, send, receive, validate
// framing. Any error is tagged with the failing operation and returned
// unmodified otherwise.
func (d *Device) roundTrip(op string, opcode byte, payload []byte) ([]byte, error) {
	report, err := protocol.EncodeCommand(opcode, payload)
	if err != nil {
		return nil, tagOp(err, op)
	}
	logging.LogCommand(opcode, len(payload))

	if err := d.port.Send(report); err != nil {
		return nil, tagOp(err, op)
	}
	raw, err := d.port.Receive(d.timeout)
	if err != nil {
		return nil, tagOp(err, op)
	}
	body, err := protocol.DecodeResponse(raw)
	if err != nil {
		return nil, tagOp(err, op)
	}
	return body, nil
}

// commandEcho runs a status-family exchange and strips the opcode echo.
func (d *Device) commandEcho(op string, opcode byte, payload []byte) ([]byte, error) {
	body, err := d.roundTrip(op, opcode, payload)
	if err != nil {
		return nil, err
	}
	fields, err := protocol.ExpectEcho(body, opcode)
	if err != nil {
		return nil, tagOp(err, op)
	}
	return fields, nil
}

// commandAck runs a settings-family exchange and strips the acknowledgement
// prefix.
func (d *Device) commandAck(op string, opcode byte, payload []byte) ([]byte, error) {
	body, err := d.roundTrip(op, opcode, payload)
	if err != nil {
		return nil, err
	}
	fields, err := protocol.ExpectAck(body, opcode)
	if err != nil {
		return nil, tagOp(err, op)
	}
	return fields, nil
}

// commandBareAck runs a settings-family exchange whose acknowledgement must
// carry no fields at all.
func (d *Device) commandBareAck(op string, opcode byte, payload []byte) error {
	fields, err := d.commandAck(op, opcode, payload)
	if err != nil {
		return err
	}
	if len(fields) != 0 {
		return tagOp(protocol.NewMalformedResponseError(
			"unexpected fields in acknowledgement", fields), op)
	}
	return nil
}

// tagOp records the failing operation on a DeviceError without otherwise
// modifying it.
func tagOp(err error, op string) error {
	if devErr, ok := err.(*protocol.DeviceError); ok {
		return devErr.WithOp(op)
	}
	return err
}

// Status queries device identification and the device clock. Single round
// trip.
func (d *Device) Status() (*DeviceStatus, error) {
	const op = "status"

	fields, err := d.commandEcho(op, protocol.CmdStatus, nil)
	if err != nil {
		return nil, err
	}
	info, err := protocol.DecodeStatus(fields)
	if err != nil {
		return nil, tagOp(err, op)
	}

	logging.Info("status decoded",
		zap.String("device_type", info.DeviceType),
		zap.String("serial", info.Serial),
		zap.String("firmware", info.Firmware),
	)
	return &DeviceStatus{
		DeviceType:   info.DeviceType,
		Clock:        info.Clock,
		Firmware:     info.Firmware,
		Serial:       info.Serial,
		BatteryRaw:   info.UnknownA,
		RecordingRaw: info.UnknownB,
	}, nil
}

// Measure reads one live temperature/humidity sample. Single round trip.
func (d *Device) Measure() (*Measurement, error) {
	const op = "measure"

	fields, err := d.commandAck(op, protocol.CmdMeasure, nil)
	if err != nil {
		return nil, err
	}
	sample, err := protocol.DecodeSample(fields)
	if err != nil {
		return nil, tagOp(err, op)
	}
	return &Measurement{Temperature: sample.Temperature, Humidity: sample.Humidity}, nil
}

// ReadConfig reads the current device configuration. Single round trip.
func (d *Device) ReadConfig() (*Configuration, error) {
	return d.readConfig("config read")
}

func (d *Device) readConfig(op string) (*Configuration, error) {
	fields, err := d.commandAck(op, protocol.CmdReadSettings, nil)
	if err != nil {
		return nil, err
	}
	rec, err := protocol.DecodeSettings(fields)
	if err != nil {
		return nil, tagOp(err, op)
	}
	return newConfiguration(rec), nil
}

// writeSettings writes a full settings record and validates the bare
// acknowledgement.
func (d *Device) writeSettings(op string, rec *protocol.SettingsRecord) error {
	return d.commandBareAck(op, protocol.CmdWriteSettings, rec.Encode())
}

// UpdateConfig applies a partial configuration update with read-modify-write
// semantics: the current configuration is read first and only the fields set
// in the update are overwritten. Returns the configuration as written.
func (d *Device) UpdateConfig(update *ConfigUpdate) (*Configuration, error) {
	current, err := d.readConfig("config update: read current")
	if err != nil {
		return nil, err
	}

	merged := mergeUpdate(&current.record, update)
	if err := d.writeSettings("config update: write", merged); err != nil {
		return nil, err
	}

	logging.Info("configuration written",
		zap.Uint16("sample_rate", merged.SampleRate),
		zap.Uint8("led_interval", merged.LEDInterval),
		zap.String("start_condition", merged.StartCondition.String()),
	)
	return newConfiguration(merged), nil
}

// Record-start step names, used to identify the failing step in errors.
// The order of the steps is fixed: the clock must be synchronized and the
// configuration written before the start command is issued.
const (
	stepReadCurrent = "record-start: read current configuration"
	stepWriteConfig = "record-start: write configuration"
	stepIssueStart  = "record-start: issue start"
)

// StartRecording merges the update into the current configuration, stamps
// the host clock into the settings record so the device clock is
// synchronized, writes the record and issues the start command.
//
// The start command is DESTRUCTIVE: the device erases all stored samples and
// begins logging under the new configuration. This side effect cannot be
// undone by the protocol layer; callers must warn the user first.
//
// Any step's failure aborts the whole sequence; a partially applied sequence
// is never reported as success. Returns the configuration as written.
func (d *Device) StartRecording(update *ConfigUpdate) (*Configuration, error) {
	// ReadCurrent
	current, err := d.readConfig(stepReadCurrent)
	if err != nil {
		return nil, err
	}

	// Merge: overlay only caller-specified fields.
	merged := mergeUpdate(&current.record, update)

	// SetClock: stamp the host time so the device clock is synchronized by
	// the settings write that follows.
	merged.Clock = protocol.DateTimeFrom(d.now())

	// WriteConfig
	if err := d.writeSettings(stepWriteConfig, merged); err != nil {
		return nil, err
	}

	// IssueStart + Confirm: the bare acknowledgement is the confirmation.
	if err := d.commandBareAck(stepIssueStart, protocol.CmdStartRecording, nil); err != nil {
		return nil, err
	}

	logging.Info("recording started",
		zap.Uint16("sample_rate", merged.SampleRate),
		zap.String("start_condition", merged.StartCondition.String()),
		zap.String("clock", merged.Clock.String()),
	)
	return newConfiguration(merged), nil
}

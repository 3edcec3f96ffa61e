// Package datalogger provides the high-level client for the DL-210TH
// temperature/humidity data logger.
//
// Device is the single entry point: it owns a transport.Port for the duration
// of a command invocation and exposes the operations the CLI needs, namely
// status, live measurement, configuration read/update, record-start and dump
// of stored samples. Each operation is one or more request/response exchanges
// built and validated by the protocol package.
//
// # Configuration updates
//
// Updates are read-modify-write. ConfigUpdate carries only the fields the
// caller wants changed; everything else, including reserved bytes whose
// meaning is unknown, is read from the device first and written back
// bit-identical:
//
//	rate := uint16(60)
//	cfg, err := dev.UpdateConfig(&datalogger.ConfigUpdate{SampleRate: &rate})
//
// # Starting a recording session
//
// StartRecording runs a fixed step sequence: read current configuration,
// merge the caller's update, stamp the host clock into the record, write it,
// then issue the start command and validate the acknowledgement. The start
// command makes the device ERASE ALL STORED SAMPLES before logging resumes;
// callers must warn the user before invoking it. A failure at any step aborts
// the whole sequence and the returned error names the step.
//
// # Dumping stored samples
//
// Dump pages through the device store oldest-first and streams each entry to
// a callback, so large logs are never buffered whole. Aborting a dump from
// the callback leaves the device's paging cursor in an unknown state; issue
// another command (Status is enough) to resynchronize before dumping again.
//
// # Error handling
//
// All errors crossing this package's boundary are *protocol.DeviceError
// values; they propagate from the protocol and transport layers unmodified
// apart from the failing operation name. Nothing is retried silently.
package datalogger

// Package logging provides structured logging for the dl2xx tool.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the tool. It provides both general logging functions
// and specialized functions for protocol-specific logging needs.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (report hex dumps, command traces)
//   - Info: Normal operations (commands issued, configuration written)
//   - Warn: Non-fatal issues (early end-of-data, preference fallbacks)
//   - Error: Fatal issues (transport failures, protocol desync)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("status decoded",
//	    zap.String("device_type", "DL-210TH"),
//	    zap.String("serial", "DL_210T123456789"),
//	    zap.String("firmware", "V1.0.1.170906"),
//	)
//
// # Specialized Logging
//
// The package provides protocol-specific logging functions:
//
//	logging.LogReport("report sent", report)     // hex + ascii dump
//	logging.LogCommand(opcode, payloadLen)       // one command exchange
//
// # Configuration
//
// Logging is silent by default so CLI output stays clean. Set the
// DL2XX_LOG_LEVEL environment variable to "debug", "info", "warn" or
// "error" to enable it:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging

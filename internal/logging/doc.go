// Package logging provides structured logging for the esclscan tool.
//
// This package wraps zap logger with convenience functions for the logging
// patterns used throughout the tool. Logging is silent by default so that
// CLI output stays clean; set ESCLSCAN_LOG_LEVEL to enable it.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (IPC lines, device requests/responses)
//   - Info: Normal operations (scanners found, jobs created, pages saved)
//   - Warn: Non-fatal issues (capability fetch failures, retries)
//   - Error: Fatal issues (helper spawn failures, aborted sessions)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Scan job created",
//	    zap.String("device", "Canon iR-ADV C3525"),
//	    zap.String("job_id", "1a2b3c"),
//	)
//
// # Specialized Logging
//
// The package provides domain-specific logging functions:
//
//	logging.LogScannerFound(name, host, port)
//	logging.LogHelperLine("received", line)
//	logging.LogDeviceRequest(device, "POST", url)
//	logging.LogDeviceResponse(device, url, statusCode, size)
//
// # Configuration
//
// Initialize logging at startup:
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

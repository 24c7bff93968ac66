package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "ESCLSCAN_LOG_LEVEL"

// Initialize creates a new logger with the specified level.
// If level is empty, it checks ESCLSCAN_LOG_LEVEL environment variable.
// If neither is set, logging is disabled (silent mode).
func Initialize(level string) error {
	// If no level provided, check environment variable
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	// If still no level, use silent mode (nop logger)
	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		// Unknown level - use info as default when explicitly set to something
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	// Customize encoder for better readability
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// InitializeFromEnv initializes the logger from the ESCLSCAN_LOG_LEVEL
// environment variable. This is the recommended way to initialize logging
// for CLI commands that want silent mode by default.
func InitializeFromEnv() error {
	return Initialize("")
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Fallback to silent logger if not initialized
		// This ensures no unexpected log output in CLI commands
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// Fatal logs a fatal message and exits
func Fatal(msg string, fields ...zap.Field) {
	GetLogger().Fatal(msg, fields...)
}

// LogScannerFound logs a scanner discovered on the network
func LogScannerFound(name string, host string, port int) {
	Info("Scanner found",
		zap.String("name", name),
		zap.String("host", host),
		zap.Int("port", port),
	)
}

// LogHelperLine logs a line exchanged with the discovery helper process
func LogHelperLine(direction string, line []byte) {
	Debug("Helper IPC line",
		zap.String("direction", direction),
		zap.Int("length", len(line)),
		zap.ByteString("line", truncateLine(line)),
	)
}

// LogDeviceRequest logs an HTTP request issued to a scanner device
func LogDeviceRequest(device string, method string, url string) {
	Debug("Device request",
		zap.String("device", device),
		zap.String("method", method),
		zap.String("url", url),
	)
}

// LogDeviceResponse logs an HTTP response received from a scanner device
func LogDeviceResponse(device string, url string, statusCode int, size int) {
	Debug("Device response",
		zap.String("device", device),
		zap.String("url", url),
		zap.Int("status_code", statusCode),
		zap.Int("size", size),
	)
}

// truncateLine limits logged IPC lines to keep debug output readable.
// Device lists can run to many kilobytes on busy networks.
func truncateLine(line []byte) []byte {
	if len(line) > 512 {
		return append(append([]byte{}, line[:512]...), []byte("...")...)
	}
	return line
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}

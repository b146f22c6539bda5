// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Structured logging for the translator and the batch driver.

package logger

import (
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Standard field names.
const (
	FieldFile       = "file"
	FieldOutput     = "output"
	FieldError      = "error"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
	FieldBackend    = "backend"
)

var (
	// Logger is the process-wide logger. It is a no-op until Initialize runs.
	Logger *zap.SugaredLogger
	// JSONOutput records whether Initialize selected JSON encoding.
	JSONOutput bool
)

func init() {
	Logger = zap.NewNop().Sugar()
}

// Initialize builds the global logger. Output goes to stderr so translated
// code written to stdout stays clean.
func Initialize(jsonOutput bool, level string) error {
	lvl := zapcore.InfoLevel
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return errors.Wrapf(err, "invalid log level %q", level)
		}
		lvl = parsed
	}

	var (
		zapLogger *zap.Logger
		err       error
	)
	if jsonOutput {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(lvl)
		config.OutputPaths = []string{"stderr"}
		config.ErrorOutputPaths = []string{"stderr"}
		zapLogger, err = config.Build()
	} else {
		encoder := zap.NewDevelopmentEncoderConfig()
		encoder.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder.TimeKey = ""
		zapLogger = zap.New(zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoder),
			zapcore.AddSync(os.Stderr),
			lvl,
		))
	}
	if err != nil {
		return errors.Wrap(err, "build logger")
	}

	JSONOutput = jsonOutput
	Logger = zapLogger.Sugar()
	return nil
}

// ComponentLogger returns a logger named after a subsystem.
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// Cleanup flushes any buffered log entries.
func Cleanup() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

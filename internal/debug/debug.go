// Package debug constructs Drift's structured logger. Unlike the teacher's
// package-level mutable logger, construction is explicit: main wires one
// *zap.Logger into a core.Services value once, and every component receives
// it through that context rather than reaching for a global (SPEC_FULL §10,
// "process-wide state" redesign).
package debug

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the process's root logger. verbose raises the level to
// debug; otherwise info and above are logged. Output always goes to
// stderr so stdout stays reserved for report payloads (text/json/sarif/...).
func NewLogger(verbose bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if verbose || os.Getenv("DRIFT_DEBUG") == "1" {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

// NewNop returns a logger that discards everything, for tests and library
// callers that don't want Drift's log output.
func NewNop() *zap.Logger {
	return zap.NewNop()
}

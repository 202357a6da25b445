package axon

import "github.com/toyz/axonbind/pkg/axon/logging"

// Logger receives the registrar's progress and configuration failures.
// logging.Diagnostics and the zap bridge in package logging implement it.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}

func defaultLogger() Logger {
	return logging.NewDiagnostics(logging.LevelWarn)
}

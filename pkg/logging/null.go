package logging

import "context"

// NullLogger discards every event. It is what components fall back to
// when no logger is configured.
type NullLogger struct{}

var _ Logger = (*NullLogger)(nil)

// NewNullLogger creates a new null logger
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Debug(context.Context, string, Fields) {}
func (l *NullLogger) Info(context.Context, string, Fields) {}
func (l *NullLogger) Warn(context.Context, string, Fields) {}
func (l *NullLogger) Error(context.Context, string, error, Fields) {}

// WithFields returns the same null logger
func (l *NullLogger) WithFields(Fields) Logger {
	return l
}

// Close does nothing
func (l *NullLogger) Close() error {
	return nil
}

package logging

import "context"

// Nop discards every entry. Comparators and the engine fall back to it
// when no logger is configured.
var Nop Logger = nopLogger{}

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, Fields) {}
func (nopLogger) Info(context.Context, string, Fields) {}
func (nopLogger) Warn(context.Context, string, Fields) {}
func (nopLogger) Error(context.Context, string, error, Fields) {}
func (n nopLogger) WithFields(Fields) Logger { return n }
func (nopLogger) Close() error { return nil }

package logging

import (
	"context"
	"io"
	"sync"
)

// WriterLogger writes log entries to an io.Writer such as os.Stderr
type WriterLogger struct {
	out    *writerSink
	fields Fields
}

type writerSink struct {
	mu     sync.Mutex
	w      io.Writer
	format Format
	level  Level
}

// NewWriterLogger creates a logger writing entries at or above level to w
func NewWriterLogger(w io.Writer, format Format, level Level) *WriterLogger {
	return &WriterLogger{
		out: &writerSink{w: w, format: format, level: level},
	}
}

// Debug logs a debug message
func (l *WriterLogger) Debug(ctx context.Context, msg string, fields Fields) {
	l.log(DebugLevel, msg, nil, fields)
}

// Info logs an info message
func (l *WriterLogger) Info(ctx context.Context, msg string, fields Fields) {
	l.log(InfoLevel, msg, nil, fields)
}

// Warn logs a warning message
func (l *WriterLogger) Warn(ctx context.Context, msg string, fields Fields) {
	l.log(WarnLevel, msg, nil, fields)
}

// Error logs an error message
func (l *WriterLogger) Error(ctx context.Context, msg string, err error, fields Fields) {
	l.log(ErrorLevel, msg, err, fields)
}

// WithFields returns a logger sharing the same writer with additional fields
func (l *WriterLogger) WithFields(fields Fields) Logger {
	return &WriterLogger{
		out:    l.out,
		fields: mergeFields(l.fields, fields),
	}
}

// Close does nothing; the writer is owned by the caller
func (l *WriterLogger) Close() error {
	return nil
}

func (l *WriterLogger) log(level Level, msg string, err error, fields Fields) {
	if level < l.out.level {
		return
	}

	line, fmtErr := formatEntry(l.out.format, level, msg, err, mergeFields(l.fields, fields))
	if fmtErr != nil {
		return
	}

	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	l.out.w.Write(line)
}

package models

import (
	"fmt"
)

// FileAccessError reports a missing or unreadable file
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("cannot access file %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// RangeError reports a range whose end bound is not after its start
type RangeError struct {
	Field string // "line" or "column"
	Start int
	End   *int
}

func (e *RangeError) Error() string {
	if e.Start < 0 {
		return fmt.Sprintf("invalid %s range: start %d must not be negative", e.Field, e.Start)
	}
	end := "end"
	if e.End != nil {
		end = fmt.Sprintf("%d", *e.End)
	}
	return fmt.Sprintf("invalid %s range: end %s must be greater than start %d", e.Field, end, e.Start)
}

// ParseError reports content that could not be parsed into the
// structure a comparator expects
type ParseError struct {
	Path   string
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s in %s: %v", e.Format, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ComparisonError reports an unexpected failure during structural comparison
type ComparisonError struct {
	Comparator string
	Err        error
}

func (e *ComparisonError) Error() string {
	return fmt.Sprintf("%s comparison failed: %v", e.Comparator, e.Err)
}

func (e *ComparisonError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

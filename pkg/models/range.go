package models

import (
	"fmt"
	"strings"
)

// Range selects the part of a file taking part in a comparison.
// All bounds are 0-based and inclusive; a nil end means "to the end".
// Binary comparators reinterpret the line bounds as byte offsets and
// ignore the column bounds.
type Range struct {
	StartLine   int
	EndLine     *int
	StartColumn int
	EndColumn   *int
}

// Bound returns a pointer to v, for filling the optional Range ends
func Bound(v int) *int {
	return &v
}

// Validate checks line and column bounds
func (r Range) Validate() error {
	if err := r.ValidateLines(); err != nil {
		return err
	}
	return checkBounds("column", r.StartColumn, r.EndColumn)
}

// ValidateLines checks only the line bounds
func (r Range) ValidateLines() error {
	return checkBounds("line", r.StartLine, r.EndLine)
}

func checkBounds(field string, start int, end *int) error {
	if start < 0 {
		return &RangeError{Field: field, Start: start, End: end}
	}
	if end != nil && *end <= start {
		return &RangeError{Field: field, Start: start, End: end}
	}
	return nil
}

// IsFull reports whether the range selects the whole file
func (r Range) IsFull() bool {
	return r.StartLine == 0 && r.EndLine == nil && r.StartColumn == 0 && r.EndColumn == nil
}

// Describe renders the range as a 1-based suffix such as
// " in lines 2-5, columns 1-3". It returns "" for a full range.
func (r Range) Describe() string {
	var parts []string
	if r.StartLine > 0 || r.EndLine != nil {
		part := fmt.Sprintf("lines %d", r.StartLine+1)
		if r.EndLine != nil {
			part += fmt.Sprintf("-%d", *r.EndLine+1)
		}
		parts = append(parts, part)
	}
	if r.StartColumn > 0 || r.EndColumn != nil {
		part := fmt.Sprintf("columns %d", r.StartColumn+1)
		if r.EndColumn != nil {
			part += fmt.Sprintf("-%d", *r.EndColumn+1)
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return ""
	}
	return " in " + strings.Join(parts, ", ")
}

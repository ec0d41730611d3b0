package models

import (
	"encoding/json"
)

// ComparisonResult represents the outcome of comparing two files.
// It is built by the comparison engine and must not be modified once
// returned.
type ComparisonResult struct {
	File1     string
	File2     string
	File1Size *int64
	File2Size *int64

	// Range is the requested comparison window
	Range Range

	// Identical is nil until the comparison completes
	Identical *bool

	// Differences are kept in discovery order
	Differences []Difference

	// Similarity is only set for binary comparisons that requested it
	Similarity *float64

	// Error holds the message of the failure that aborted the comparison
	Error string
}

// NewComparisonResult creates an empty result for the given files and range
func NewComparisonResult(file1, file2 string, rng Range) *ComparisonResult {
	return &ComparisonResult{
		File1:       file1,
		File2:       file2,
		Range:       rng,
		Differences: []Difference{},
	}
}

// SetOutcome records the comparison outcome. Identical results never
// carry differences.
func (r *ComparisonResult) SetOutcome(identical bool, diffs []Difference) {
	r.Identical = &identical
	if identical || diffs == nil {
		diffs = []Difference{}
	}
	r.Differences = diffs
}

// SetError records a failure; the result is then neither identical nor
// carries any differences
func (r *ComparisonResult) SetError(err error) {
	identical := false
	r.Identical = &identical
	r.Differences = []Difference{}
	r.Similarity = nil
	r.Error = err.Error()
}

// IsIdentical reports whether the comparison completed and found no differences
func (r *ComparisonResult) IsIdentical() bool {
	return r.Identical != nil && *r.Identical
}

// HasError reports whether the comparison failed
func (r *ComparisonResult) HasError() bool {
	return r.Error != ""
}

// Truncated reports whether the difference list ends with the overflow sentinel
func (r *ComparisonResult) Truncated() bool {
	n := len(r.Differences)
	return n > 0 && r.Differences[n-1].IsOverflow()
}

// ExitCode returns the process exit code for this result
func (r *ComparisonResult) ExitCode() int {
	if r.IsIdentical() {
		return 0
	}
	return 1
}

// MarshalJSON produces the field-complete structured form of the result
func (r *ComparisonResult) MarshalJSON() ([]byte, error) {
	var errMsg *string
	if r.Error != "" {
		errMsg = &r.Error
	}
	diffs := r.Differences
	if diffs == nil {
		diffs = []Difference{}
	}
	return json.Marshal(struct {
		File1       string       `json:"file1"`
		File2       string       `json:"file2"`
		File1Size   *int64       `json:"file1_size"`
		File2Size   *int64       `json:"file2_size"`
		Range       jsonRange    `json:"range"`
		Identical   *bool        `json:"identical"`
		Differences []Difference `json:"differences"`
		Similarity  *float64     `json:"similarity"`
		Error       *string      `json:"error"`
	}{
		File1:       r.File1,
		File2:       r.File2,
		File1Size:   r.File1Size,
		File2Size:   r.File2Size,
		Range:       jsonRange(r.Range),
		Identical:   r.Identical,
		Differences: diffs,
		Similarity:  r.Similarity,
		Error:       errMsg,
	})
}

type jsonRange struct {
	StartLine   int  `json:"start_line"`
	EndLine     *int `json:"end_line"`
	StartColumn int  `json:"start_column"`
	EndColumn   *int `json:"end_column"`
}

package compare

import (
	"fmt"
	"unicode/utf8"

	"github.com/ozil111/Compare-File-Tool/pkg/logging"
	"github.com/ozil111/Compare-File-Tool/pkg/models"
)

const (
	// DefaultChunkSize is the binary comparison window in bytes
	DefaultChunkSize = 8192
	// DefaultMaxDiffs caps the differences reported by one comparison
	DefaultMaxDiffs = 10
	// DefaultNumThreads is the similarity worker pool size
	DefaultNumThreads = 4
	// DefaultEncoding is the text encoding used when none is configured
	DefaultEncoding = "utf-8"
)

// JSONMode selects the JSON comparison algorithm
type JSONMode string

const (
	// JSONExact compares arrays by position
	JSONExact JSONMode = "exact"
	// JSONKeyBased matches arrays of objects by key fields
	JSONKeyBased JSONMode = "key-based"
)

// Options is the configuration handed to comparator constructors.
// Each constructor reads only the fields of its own format; the
// registry clears the others before construction.
type Options struct {
	// Common
	Encoding  string
	ChunkSize int
	MaxDiffs  int
	Logger    logging.Logger

	// CSV
	Delimiter string
	QuoteChar string

	// JSON
	CompareMode JSONMode
	KeyFields   []string
	FilterKeys  []string

	// Binary
	Similarity bool
	NumThreads int
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		Encoding:    DefaultEncoding,
		ChunkSize:   DefaultChunkSize,
		MaxDiffs:    DefaultMaxDiffs,
		Delimiter:   ",",
		QuoteChar:   `"`,
		CompareMode: JSONExact,
		NumThreads:  DefaultNumThreads,
	}
}

// forFormat returns a copy of o holding only the fields the given
// format understands
func (o Options) forFormat(tag string) Options {
	filtered := Options{
		Encoding:  o.Encoding,
		ChunkSize: o.ChunkSize,
		MaxDiffs:  o.MaxDiffs,
		Logger:    o.Logger,
	}
	switch tag {
	case "csv":
		filtered.Delimiter = o.Delimiter
		filtered.QuoteChar = o.QuoteChar
	case "json":
		filtered.CompareMode = o.CompareMode
		filtered.KeyFields = append([]string(nil), o.KeyFields...)
		filtered.FilterKeys = append([]string(nil), o.FilterKeys...)
	case "binary":
		filtered.Similarity = o.Similarity
		filtered.NumThreads = o.NumThreads
	}
	return filtered
}

// base holds what every comparator shares
type base struct {
	name     string
	maxDiffs int
	logger   logging.Logger
}

func newBase(name string, opts Options) (base, error) {
	maxDiffs := opts.MaxDiffs
	if maxDiffs == 0 {
		maxDiffs = DefaultMaxDiffs
	}
	if maxDiffs < 0 {
		return base{}, &models.ValidationError{Field: "max_diffs", Message: "must be at least 1"}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop
	}
	return base{
		name:     name,
		maxDiffs: maxDiffs,
		logger:   logger.WithFields(logging.Fields{"comparator": name}),
	}, nil
}

// Name returns the comparator name
func (b base) Name() string {
	return b.name
}

// singleRune validates a one-character option such as a CSV delimiter
func singleRune(field, value string, fallback rune) (rune, error) {
	if value == "" {
		return fallback, nil
	}
	if utf8.RuneCountInString(value) != 1 {
		return 0, &models.ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be a single character, got %q", value),
		}
	}
	r, _ := utf8.DecodeRuneInString(value)
	if r == '\n' || r == '\r' {
		return 0, &models.ValidationError{Field: field, Message: "must not be a line break"}
	}
	return r, nil
}

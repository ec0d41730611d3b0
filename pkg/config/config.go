package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ozil111/Compare-File-Tool/pkg/compare"
	"github.com/ozil111/Compare-File-Tool/pkg/logging"
	"github.com/ozil111/Compare-File-Tool/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Compare CompareConfig `yaml:"compare" toml:"compare"`
	Binary  BinaryConfig  `yaml:"binary" toml:"binary"`
	JSON    JSONConfig    `yaml:"json" toml:"json"`
	CSV     CSVConfig     `yaml:"csv" toml:"csv"`
	Output  OutputConfig  `yaml:"output" toml:"output"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// CompareConfig holds settings shared by every comparator
type CompareConfig struct {
	FileType  string `yaml:"file_type" toml:"file_type"` // "auto" or a registered tag
	Encoding  string `yaml:"encoding" toml:"encoding"`
	ChunkSize int    `yaml:"chunk_size" toml:"chunk_size"`
	MaxDiffs  int    `yaml:"max_diffs" toml:"max_diffs"`
}

// BinaryConfig holds binary comparison settings
type BinaryConfig struct {
	Similarity bool `yaml:"similarity" toml:"similarity"`
	NumThreads int  `yaml:"num_threads" toml:"num_threads"`
	Progress   bool `yaml:"progress" toml:"progress"` // Show a similarity progress bar
}

// JSONConfig holds JSON comparison settings
type JSONConfig struct {
	CompareMode string   `yaml:"compare_mode" toml:"compare_mode"` // "exact" or "key-based"
	KeyFields   []string `yaml:"key_fields" toml:"key_fields"`
	FilterKeys  []string `yaml:"filter_keys" toml:"filter_keys"`
}

// CSVConfig holds the CSV dialect
type CSVConfig struct {
	Delimiter string `yaml:"delimiter" toml:"delimiter"`
	Quote     string `yaml:"quote" toml:"quote"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format  string `yaml:"format" toml:"format"` // "text", "json" or "html"
	NoColor bool   `yaml:"no_color" toml:"no_color"`
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Format     string `yaml:"format" toml:"format"` // "json" or "text"
	Level      string `yaml:"level" toml:"level"`   // "debug", "info", "warn", "error"
	File       string `yaml:"file" toml:"file"`     // Log file path (empty = stderr)
	MaxSize    int64  `yaml:"max_size" toml:"max_size"`
	MaxBackups int    `yaml:"max_backups" toml:"max_backups"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Compare: CompareConfig{
			FileType:  "auto",
			Encoding:  compare.DefaultEncoding,
			ChunkSize: compare.DefaultChunkSize,
			MaxDiffs:  compare.DefaultMaxDiffs,
		},
		Binary: BinaryConfig{
			Similarity: false,
			NumThreads: compare.DefaultNumThreads,
			Progress:   false,
		},
		JSON: JSONConfig{
			CompareMode: string(compare.JSONExact),
		},
		CSV: CSVConfig{
			Delimiter: ",",
			Quote:     `"`,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Logging: LoggingConfig{
			Format:     "text",
			Level:      "warn",
			MaxSize:    10 * 1024 * 1024,
			MaxBackups: 3,
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Compare.FileType) == "" {
		return &models.ValidationError{
			Field:   "compare.file_type",
			Message: "must not be empty",
		}
	}

	if strings.TrimSpace(c.Compare.Encoding) == "" {
		return &models.ValidationError{
			Field:   "compare.encoding",
			Message: "must not be empty",
		}
	}

	if c.Compare.ChunkSize < 1 {
		return &models.ValidationError{
			Field:   "compare.chunk_size",
			Message: "must be at least 1 byte",
		}
	}

	if c.Compare.MaxDiffs < 1 {
		return &models.ValidationError{
			Field:   "compare.max_diffs",
			Message: "must be at least 1",
		}
	}

	if c.Binary.NumThreads < 1 {
		return &models.ValidationError{
			Field:   "binary.num_threads",
			Message: "must be at least 1",
		}
	}

	validModes := map[string]bool{string(compare.JSONExact): true, string(compare.JSONKeyBased): true}
	if !validModes[c.JSON.CompareMode] {
		return &models.ValidationError{
			Field:   "json.compare_mode",
			Message: "must be 'exact' or 'key-based'",
		}
	}

	if utf8.RuneCountInString(c.CSV.Delimiter) != 1 {
		return &models.ValidationError{
			Field:   "csv.delimiter",
			Message: "must be a single character",
		}
	}

	if utf8.RuneCountInString(c.CSV.Quote) != 1 {
		return &models.ValidationError{
			Field:   "csv.quote",
			Message: "must be a single character",
		}
	}

	if c.CSV.Delimiter == c.CSV.Quote {
		return &models.ValidationError{
			Field:   "csv.quote",
			Message: "must differ from the delimiter",
		}
	}

	validFormats := map[string]bool{"text": true, "json": true, "html": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'text', 'json', or 'html'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	if c.Logging.MaxSize < 0 || c.Logging.MaxBackups < 0 {
		return &models.ValidationError{
			Field:   "logging.max_size",
			Message: "rotation limits must not be negative",
		}
	}

	return nil
}

// Options converts the configuration to comparator options
func (c *Config) Options(logger logging.Logger) compare.Options {
	return compare.Options{
		Encoding:    c.Compare.Encoding,
		ChunkSize:   c.Compare.ChunkSize,
		MaxDiffs:    c.Compare.MaxDiffs,
		Logger:      logger,
		Delimiter:   c.CSV.Delimiter,
		QuoteChar:   c.CSV.Quote,
		CompareMode: compare.JSONMode(c.JSON.CompareMode),
		KeyFields:   append([]string(nil), c.JSON.KeyFields...),
		FilterKeys:  append([]string(nil), c.JSON.FilterKeys...),
		Similarity:  c.Binary.Similarity,
		NumThreads:  c.Binary.NumThreads,
	}
}

// String renders a short summary used in debug logs
func (c *Config) String() string {
	return fmt.Sprintf("file_type=%s encoding=%s max_diffs=%d output=%s",
		c.Compare.FileType, c.Compare.Encoding, c.Compare.MaxDiffs, c.Output.Format)
}

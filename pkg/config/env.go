package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable the configuration reads
const EnvPrefix = "COMPAREFILE_"

// LookupFunc returns the value of an environment variable
type LookupFunc func(key string) (string, bool)

// LoadDotEnv loads variables from a .env file into the process
// environment without overriding variables that are already set.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with COMPAREFILE_* variables found by lookup
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	strs := map[string]*string{
		"FILE_TYPE":         &cfg.Compare.FileType,
		"ENCODING":          &cfg.Compare.Encoding,
		"JSON_COMPARE_MODE": &cfg.JSON.CompareMode,
		"CSV_DELIMITER":     &cfg.CSV.Delimiter,
		"CSV_QUOTE":         &cfg.CSV.Quote,
		"OUTPUT_FORMAT":     &cfg.Output.Format,
		"LOG_LEVEL":         &cfg.Logging.Level,
		"LOG_FORMAT":        &cfg.Logging.Format,
		"LOG_FILE":          &cfg.Logging.File,
	}
	for key, dst := range strs {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"CHUNK_SIZE":  &cfg.Compare.ChunkSize,
		"MAX_DIFFS":   &cfg.Compare.MaxDiffs,
		"NUM_THREADS": &cfg.Binary.NumThreads,
	}
	for key, dst := range ints {
		if v, ok := lookup(EnvPrefix + key); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
			}
			*dst = n
		}
	}

	bools := map[string]*bool{
		"SIMILARITY": &cfg.Binary.Similarity,
		"PROGRESS":   &cfg.Binary.Progress,
		"NO_COLOR":   &cfg.Output.NoColor,
	}
	for key, dst := range bools {
		if v, ok := lookup(EnvPrefix + key); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
			}
			*dst = b
		}
	}

	lists := map[string]*[]string{
		"JSON_KEY_FIELD":   &cfg.JSON.KeyFields,
		"JSON_FILTER_KEYS": &cfg.JSON.FilterKeys,
	}
	for key, dst := range lists {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = SplitList(v)
		}
	}

	return nil
}

// SplitList splits a comma-separated list, dropping empty entries
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Resolve loads the configuration the CLI runs with: the file at path
// (or the default location when empty), then .env and environment
// overrides. The result is validated.
func Resolve(path string, lookup LookupFunc) (*Config, error) {
	var cfg *Config
	var err error
	if path == "" {
		cfg, err = LoadDefault()
	} else {
		cfg, err = LoadFromFile(path)
	}
	if err != nil {
		return nil, err
	}

	if err := ApplyEnv(cfg, lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

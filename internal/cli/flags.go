package cli

import (
	"github.com/spf13/cobra"

	"github.com/ozil111/Compare-File-Tool/pkg/config"
)

// GlobalFlags holds global flag values
type GlobalFlags struct {
	ConfigFile string
	EnvFile    string
}

// AddGlobalFlags adds global flags to the root command
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	cmd.PersistentFlags().StringVar(
		&flags.ConfigFile,
		"config",
		"",
		"config file, YAML or TOML (default is $HOME/.config/comparefile/config.yaml)",
	)
	cmd.PersistentFlags().StringVar(
		&flags.EnvFile,
		"env-file",
		".env",
		"dotenv file with COMPAREFILE_* overrides",
	)
}

// CompareFlags holds the flag values of a comparison run.
// Line and column numbers are 1-based; zero means unset.
type CompareFlags struct {
	StartLine   int
	EndLine     int
	StartColumn int
	EndColumn   int

	FileType     string
	Encoding     string
	ChunkSize    int
	MaxDiffs     int
	OutputFormat string
	NoColor      bool

	Verbose bool
	Debug   bool
	LogFile string
	LogFmt  string

	Similarity bool
	NumThreads int
	Progress   bool

	JSONCompareMode string
	JSONKeyField    string
	JSONFilterKeys  string

	CSVDelimiter string
	CSVQuote     string
}

// AddCompareFlags registers the comparison flags on cmd
func AddCompareFlags(cmd *cobra.Command, flags *CompareFlags) {
	defaults := config.Default()
	f := cmd.Flags()

	f.IntVar(&flags.StartLine, "start-line", 1, "first line (or byte for binary files) to compare, 1-based")
	f.IntVar(&flags.EndLine, "end-line", 0, "last line (or byte for binary files) to compare, 1-based")
	f.IntVar(&flags.StartColumn, "start-column", 1, "first column to compare, 1-based")
	f.IntVar(&flags.EndColumn, "end-column", 0, "last column to compare, 1-based")

	f.StringVar(&flags.FileType, "file-type", defaults.Compare.FileType, "file type: auto, text, binary, json, xml, csv")
	f.StringVar(&flags.Encoding, "encoding", defaults.Compare.Encoding, "text encoding")
	f.IntVar(&flags.ChunkSize, "chunk-size", defaults.Compare.ChunkSize, "binary read chunk size in bytes")
	f.IntVar(&flags.MaxDiffs, "max-diffs", defaults.Compare.MaxDiffs, "maximum number of differences to report")
	f.StringVar(&flags.OutputFormat, "output-format", defaults.Output.Format, "output format: text, json, html")
	f.BoolVar(&flags.NoColor, "no-color", false, "disable coloured text output")

	f.BoolVarP(&flags.Verbose, "verbose", "v", false, "log progress at info level")
	f.BoolVar(&flags.Debug, "debug", false, "log at debug level")
	f.StringVar(&flags.LogFile, "log-file", "", "write logs to a rotating file instead of stderr")
	f.StringVar(&flags.LogFmt, "log-format", defaults.Logging.Format, "log format: text, json")

	f.BoolVar(&flags.Similarity, "similarity", false, "compute the similarity index of binary files")
	f.IntVar(&flags.NumThreads, "num-threads", defaults.Binary.NumThreads, "worker count for the similarity index")
	f.BoolVar(&flags.Progress, "progress", false, "show a progress bar while computing similarity")

	f.StringVar(&flags.JSONCompareMode, "json-compare-mode", defaults.JSON.CompareMode, "JSON comparison mode: exact, key-based")
	f.StringVar(&flags.JSONKeyField, "json-key-field", "", "comma-separated key fields identifying list items")
	f.StringVar(&flags.JSONFilterKeys, "json-filter-keys", "", "comma-separated top-level keys to compare")

	f.StringVar(&flags.CSVDelimiter, "csv-delimiter", defaults.CSV.Delimiter, "CSV field delimiter")
	f.StringVar(&flags.CSVQuote, "csv-quote", defaults.CSV.Quote, "CSV quote character")
}

// applyFlagsToConfig overrides cfg with the flags set on the command line
func applyFlagsToConfig(cmd *cobra.Command, flags *CompareFlags, cfg *config.Config) {
	changed := cmd.Flags().Changed

	if changed("file-type") {
		cfg.Compare.FileType = flags.FileType
	}
	if changed("encoding") {
		cfg.Compare.Encoding = flags.Encoding
	}
	if changed("chunk-size") {
		cfg.Compare.ChunkSize = flags.ChunkSize
	}
	if changed("max-diffs") {
		cfg.Compare.MaxDiffs = flags.MaxDiffs
	}
	if changed("output-format") {
		cfg.Output.Format = flags.OutputFormat
	}
	if changed("no-color") {
		cfg.Output.NoColor = flags.NoColor
	}
	if changed("log-file") {
		cfg.Logging.File = flags.LogFile
	}
	if changed("log-format") {
		cfg.Logging.Format = flags.LogFmt
	}
	if flags.Verbose {
		cfg.Logging.Level = "info"
	}
	if flags.Debug {
		cfg.Logging.Level = "debug"
	}
	if changed("similarity") {
		cfg.Binary.Similarity = flags.Similarity
	}
	if changed("num-threads") {
		cfg.Binary.NumThreads = flags.NumThreads
	}
	if changed("progress") {
		cfg.Binary.Progress = flags.Progress
	}
	if changed("json-compare-mode") {
		cfg.JSON.CompareMode = flags.JSONCompareMode
	}
	if changed("json-key-field") {
		cfg.JSON.KeyFields = config.SplitList(flags.JSONKeyField)
	}
	if changed("json-filter-keys") {
		cfg.JSON.FilterKeys = config.SplitList(flags.JSONFilterKeys)
	}
	if changed("csv-delimiter") {
		cfg.CSV.Delimiter = flags.CSVDelimiter
	}
	if changed("csv-quote") {
		cfg.CSV.Quote = flags.CSVQuote
	}
}

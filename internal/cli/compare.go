package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ozil111/Compare-File-Tool/pkg/compare"
	"github.com/ozil111/Compare-File-Tool/pkg/config"
	"github.com/ozil111/Compare-File-Tool/pkg/logging"
	"github.com/ozil111/Compare-File-Tool/pkg/output"
	"github.com/ozil111/Compare-File-Tool/pkg/storage"
)

func runCompare(cmd *cobra.Command, global *GlobalFlags, flags *CompareFlags, file1, file2 string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	backend, err := storage.NewLocal("")
	if err != nil {
		return fmt.Errorf("failed to create storage backend: %w", err)
	}
	defer backend.Close()

	paths, err := validateInputs(ctx, backend, file1, file2)
	if err != nil {
		return err
	}
	file1, file2 = paths[0], paths[1]

	cfg, err := loadConfig(global)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	applyFlagsToConfig(cmd, flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer logger.Close()

	log := logger.WithFields(logging.Fields{"run_id": uuid.NewString()})
	log.Debug(ctx, "configuration resolved", logging.Fields{"config": cfg.String()})

	formatter, err := output.NewFormatter(cfg.Output.Format, !cfg.Output.NoColor && output.IsTerminal(cmd.OutOrStdout()))
	if err != nil {
		return err
	}

	fileType := cfg.Compare.FileType
	if fileType == "auto" {
		fileType = DetectFileType(file1)
		log.Info(ctx, "detected file type", logging.Fields{"file_type": fileType})
	}

	comparator, err := compare.DefaultRegistry().Create(fileType, cfg.Options(log))
	if err != nil {
		return fmt.Errorf("failed to create comparator: %w", err)
	}

	var bar *output.ProgressBar
	if binary, ok := comparator.(*compare.BinaryComparator); ok && cfg.Binary.Similarity && cfg.Binary.Progress {
		bar = output.NewProgressBar(cmd.ErrOrStderr())
		binary.SetProgressCallback(bar.Update)
	}

	result := compare.NewEngine(backend, log).CompareFiles(ctx, comparator, file1, file2, rangeFromFlags(flags))
	if bar != nil {
		bar.Finish()
	}

	if err := formatter.Format(cmd.OutOrStdout(), result); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	if code := result.ExitCode(); code != 0 {
		return &exitError{code: code}
	}
	return nil
}

// loadConfig resolves the configuration file, .env and environment
func loadConfig(global *GlobalFlags) (*config.Config, error) {
	if err := config.LoadDotEnv(global.EnvFile); err != nil {
		return nil, err
	}
	return config.Resolve(global.ConfigFile, os.LookupEnv)
}

// newLogger builds the run logger: a rotating file when a log file is
// configured, stderr otherwise
func newLogger(cfg *config.Config, stderr io.Writer) (logging.Logger, error) {
	format := logging.ParseFormat(cfg.Logging.Format)
	level := logging.ParseLevel(cfg.Logging.Level)

	if cfg.Logging.File != "" {
		logger, err := logging.NewFileLogger(logging.FileLoggerConfig{
			Path:       cfg.Logging.File,
			Format:     format,
			Level:      level,
			MaxSize:    cfg.Logging.MaxSize,
			MaxBackups: cfg.Logging.MaxBackups,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return logger, nil
	}
	return logging.NewWriterLogger(stderr, format, level), nil
}

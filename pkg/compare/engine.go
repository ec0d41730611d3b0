package compare

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ozil111/Compare-File-Tool/pkg/logging"
	"github.com/ozil111/Compare-File-Tool/pkg/models"
	"github.com/ozil111/Compare-File-Tool/pkg/storage"
)

// Engine runs comparisons against a storage backend
type Engine struct {
	backend storage.Backend
	logger  logging.Logger
}

// NewEngine creates an engine. A nil backend reads the local filesystem
// and a nil logger discards output.
func NewEngine(backend storage.Backend, logger logging.Logger) *Engine {
	if backend == nil {
		backend, _ = storage.NewLocal("")
	}
	if logger == nil {
		logger = logging.Nop
	}
	return &Engine{backend: backend, logger: logger}
}

// CompareFiles compares file1 and file2 within rng using c.
// It never fails: every error is recorded on the returned result, which
// is then marked not identical with no differences and no similarity.
func (e *Engine) CompareFiles(ctx context.Context, c Comparator, file1, file2 string, rng models.Range) (result *models.ComparisonResult) {
	result = models.NewComparisonResult(file1, file2, rng)
	log := e.logger.WithFields(logging.Fields{
		"comparator": c.Name(),
		"file1":      file1,
		"file2":      file2,
	})
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err := &models.ComparisonError{Comparator: c.Name(), Err: fmt.Errorf("panic: %v", r)}
			log.Error(ctx, "comparison aborted", err, nil)
			result.SetError(err)
		}
	}()

	log.Info(ctx, "comparing files", logging.Fields{"range": rng.Describe()})

	if err := e.run(ctx, c, result); err != nil {
		log.Error(ctx, "comparison failed", err, nil)
		result.SetError(err)
		return result
	}

	log.Info(ctx, "comparison complete", logging.Fields{
		"identical":   result.IsIdentical(),
		"differences": len(result.Differences),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return result
}

func (e *Engine) run(ctx context.Context, c Comparator, result *models.ComparisonResult) error {
	size1, err := e.size(ctx, result.File1)
	if err != nil {
		return err
	}
	result.File1Size = &size1

	size2, err := e.size(ctx, result.File2)
	if err != nil {
		return err
	}
	result.File2Size = &size2

	content1, err := c.ReadContent(ctx, e.backend, result.File1, result.Range)
	if err != nil {
		return err
	}
	content2, err := c.ReadContent(ctx, e.backend, result.File2, result.Range)
	if err != nil {
		return err
	}

	identical, diffs, err := c.CompareContent(content1, content2)
	if err != nil {
		return asComparisonError(c.Name(), err)
	}

	if scorer, ok := c.(Scorer); ok {
		score, err := scorer.Score(ctx, content1, content2)
		if err != nil {
			return asComparisonError(c.Name(), err)
		}
		result.Similarity = score
	}

	result.SetOutcome(identical, diffs)
	return nil
}

func (e *Engine) size(ctx context.Context, path string) (int64, error) {
	info, err := e.backend.Stat(ctx, path)
	if err != nil {
		return 0, &models.FileAccessError{Path: path, Err: err}
	}
	if info.IsDir {
		return 0, &models.FileAccessError{Path: path, Err: errors.New("is a directory")}
	}
	return info.Size, nil
}

func asComparisonError(name string, err error) error {
	var cmpErr *models.ComparisonError
	if errors.As(err, &cmpErr) {
		return err
	}
	return &models.ComparisonError{Comparator: name, Err: err}
}

// CompareFiles compares two local files with c
func CompareFiles(ctx context.Context, c Comparator, file1, file2 string, rng models.Range) *models.ComparisonResult {
	return NewEngine(nil, nil).CompareFiles(ctx, c, file1, file2, rng)
}

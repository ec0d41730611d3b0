package cli

import (
	"context"
	"fmt"

	"github.com/ozil111/Compare-File-Tool/internal/platform"
	"github.com/ozil111/Compare-File-Tool/pkg/models"
	"github.com/ozil111/Compare-File-Tool/pkg/storage"
)

// validateInputs checks that both files exist before any comparison runs
func validateInputs(ctx context.Context, backend storage.Backend, paths ...string) ([]string, error) {
	normalized := make([]string, 0, len(paths))
	for _, path := range paths {
		path, err := platform.InputPath(path)
		if err != nil {
			return nil, err
		}
		exists, err := backend.Exists(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to access %s: %w", path, err)
		}
		if !exists {
			return nil, fmt.Errorf("file does not exist: %s", path)
		}
		normalized = append(normalized, path)
	}
	return normalized, nil
}

// rangeFromFlags converts 1-based flag values into a 0-based range.
// An end of zero selects everything up to the end of the file.
func rangeFromFlags(flags *CompareFlags) models.Range {
	rng := models.Range{
		StartLine:   max(0, flags.StartLine-1),
		StartColumn: max(0, flags.StartColumn-1),
	}
	if flags.EndLine > 0 {
		rng.EndLine = models.Bound(max(0, flags.EndLine-1))
	}
	if flags.EndColumn > 0 {
		rng.EndColumn = models.Bound(max(0, flags.EndColumn-1))
	}
	return rng
}

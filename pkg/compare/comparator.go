package compare

import (
	"context"

	"github.com/ozil111/Compare-File-Tool/pkg/models"
	"github.com/ozil111/Compare-File-Tool/pkg/storage"
)

// Comparator defines the interface every file format comparator implements.
// The shared orchestration lives in Engine.CompareFiles.
type Comparator interface {
	// ReadContent extracts the range-bounded content of path.
	// It fails with *models.RangeError, *models.FileAccessError or
	// *models.ParseError. The file is closed before it returns.
	ReadContent(ctx context.Context, backend storage.Backend, path string, rng models.Range) (Content, error)

	// CompareContent compares two contents produced by ReadContent.
	// It never touches the filesystem.
	CompareContent(content1, content2 Content) (bool, []models.Difference, error)

	// Name returns the file type tag the comparator handles
	Name() string
}

// Scorer is implemented by comparators able to attach a similarity index
// to a result. A nil score means none was requested.
type Scorer interface {
	Score(ctx context.Context, content1, content2 Content) (*float64, error)
}

// ProgressFunc receives the amount of work done so far out of total.
// It may be called from several goroutines at once.
type ProgressFunc func(done, total int64)

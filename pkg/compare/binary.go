package compare

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ozil111/Compare-File-Tool/pkg/logging"
	"github.com/ozil111/Compare-File-Tool/pkg/models"
	"github.com/ozil111/Compare-File-Tool/pkg/storage"
)

// hexContext is how many bytes around a difference are shown
const hexContext = 8

// BinaryComparator compares files byte-by-byte in fixed size chunks.
// Range line bounds are byte offsets; column bounds are ignored.
type BinaryComparator struct {
	base
	chunkSize      int
	similarity     bool
	numThreads     int
	progressReport ProgressFunc // Optional progress callback for similarity
}

// NewBinaryComparator creates a new chunked byte comparator
func NewBinaryComparator(opts Options) (*BinaryComparator, error) {
	b, err := newBase("binary", opts)
	if err != nil {
		return nil, err
	}

	chunkSize := opts.ChunkSize
	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkSize < 0 {
		return nil, &models.ValidationError{Field: "chunk_size", Message: "must be positive"}
	}

	numThreads := opts.NumThreads
	if numThreads == 0 {
		numThreads = DefaultNumThreads
	}
	if numThreads < 0 {
		return nil, &models.ValidationError{Field: "num_threads", Message: "must be positive"}
	}

	return &BinaryComparator{
		base:       b,
		chunkSize:  chunkSize,
		similarity: opts.Similarity,
		numThreads: numThreads,
	}, nil
}

// SetProgressCallback sets the similarity progress reporting callback
func (c *BinaryComparator) SetProgressCallback(callback ProgressFunc) {
	c.progressReport = callback
}

// ReadContent reads the selected byte window of path
func (c *BinaryComparator) ReadContent(ctx context.Context, backend storage.Backend, path string, rng models.Range) (Content, error) {
	data, err := readBytes(ctx, backend, path, rng)
	if err != nil {
		return nil, err
	}
	return Bytes(data), nil
}

// CompareContent reports a size difference, or the first differing byte
// of every differing chunk
func (c *BinaryComparator) CompareContent(content1, content2 Content) (bool, []models.Difference, error) {
	a, ok1 := content1.(Bytes)
	b, ok2 := content2.(Bytes)
	if !ok1 || !ok2 {
		return false, nil, unexpectedContent(c.name, content1, content2)
	}

	if len(a) != len(b) {
		return false, []models.Difference{{
			Position: "file size",
			Expected: fmt.Sprintf("%d bytes", len(a)),
			Actual:   fmt.Sprintf("%d bytes", len(b)),
			Type:     models.DiffSize,
		}}, nil
	}

	if bytes.Equal(a, b) {
		return true, nil, nil
	}

	diffs := newCollector(c.maxDiffs)
	for offset := 0; offset < len(a) && !diffs.done(); offset += c.chunkSize {
		end := min(offset+c.chunkSize, len(a))
		if bytes.Equal(a[offset:end], b[offset:end]) {
			continue
		}

		// Find exact byte offset where the chunks differ
		for i := offset; i < end; i++ {
			if a[i] != b[i] {
				diffs.add(byteDifference(a, b, i))
				break
			}
		}
	}

	c.logger.Debug(context.Background(), "binary content differs", logging.Fields{
		"bytes":       len(a),
		"differences": len(diffs.result()),
	})
	return false, diffs.result(), nil
}

// Score computes the similarity index when it was requested
func (c *BinaryComparator) Score(ctx context.Context, content1, content2 Content) (*float64, error) {
	if !c.similarity {
		return nil, nil
	}
	a, ok1 := content1.(Bytes)
	b, ok2 := content2.(Bytes)
	if !ok1 || !ok2 {
		return nil, unexpectedContent(c.name, content1, content2)
	}

	score, err := SimilarityIndex(ctx, a, b, c.numThreads, c.progressReport)
	if err != nil {
		return nil, err
	}
	return &score, nil
}

func byteDifference(a, b []byte, pos int) models.Difference {
	start := max(0, pos-hexContext)
	end := min(len(a), pos+hexContext+1)
	return models.Difference{
		Position: fmt.Sprintf("byte %d", pos),
		Expected: hexBytes(a[start:end]),
		Actual:   hexBytes(b[start:end]),
		Type:     models.DiffContent,
	}
}

// hexBytes renders bytes as space separated lowercase hex pairs
func hexBytes(data []byte) string {
	var sb strings.Builder
	for i, v := range data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", v)
	}
	return sb.String()
}

func unexpectedContent(name string, content1, content2 Content) error {
	return &models.ComparisonError{
		Comparator: name,
		Err:        fmt.Errorf("unexpected content types %T and %T", content1, content2),
	}
}

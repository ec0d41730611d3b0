package compare

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozil111/Compare-File-Tool/pkg/models"
	"github.com/ozil111/Compare-File-Tool/pkg/storage"
)

// panicComparator reads bytes and panics on comparison
type panicComparator struct{}

func (panicComparator) Name() string { return "panic" }

func (panicComparator) ReadContent(ctx context.Context, backend storage.Backend, path string, rng models.Range) (Content, error) {
	data, err := readBytes(ctx, backend, path, rng)
	return Bytes(data), err
}

func (panicComparator) CompareContent(content1, content2 Content) (bool, []models.Difference, error) {
	panic("boom")
}

// failingComparator returns a plain error from CompareContent
type failingComparator struct{ panicComparator }

func (failingComparator) CompareContent(content1, content2 Content) (bool, []models.Difference, error) {
	return false, nil, errors.New("unexpected state")
}

func TestEngineCompareFiles(t *testing.T) {
	t.Run("RecordsSizes", func(t *testing.T) {
		h := NewTestHelper(t)
		result := h.Compare(mustCreate(t, "text", Options{}), "abc\n", "abcdef\n", models.Range{})

		require.NotNil(t, result.File1Size)
		require.NotNil(t, result.File2Size)
		assert.Equal(t, int64(4), *result.File1Size)
		assert.Equal(t, int64(7), *result.File2Size)
		assert.Equal(t, "file1", result.File1)
		assert.Equal(t, "file2", result.File2)
	})

	t.Run("MissingFile", func(t *testing.T) {
		h := NewTestHelper(t)
		h.WriteFile("present", []byte("x"))

		result := NewEngine(h.backend, nil).CompareFiles(context.Background(),
			mustCreate(t, "text", Options{}), "present", "absent", models.Range{})

		assert.True(t, result.HasError())
		assert.Contains(t, result.Error, "cannot access file absent")
		require.NotNil(t, result.Identical)
		assert.False(t, *result.Identical)
		assert.Empty(t, result.Differences)
		assert.Equal(t, 1, result.ExitCode())
	})

	t.Run("RangeError", func(t *testing.T) {
		h := NewTestHelper(t)
		rng := models.Range{StartLine: 3, EndLine: models.Bound(3)}
		result := h.Compare(mustCreate(t, "text", Options{}), "a\n", "b\n", rng)

		assert.True(t, result.HasError())
		assert.Contains(t, result.Error, "invalid line range")
		assert.Empty(t, result.Differences)
	})

	t.Run("ColumnRangeError", func(t *testing.T) {
		h := NewTestHelper(t)
		rng := models.Range{StartColumn: 4, EndColumn: models.Bound(2)}
		result := h.Compare(mustCreate(t, "text", Options{}), "a\n", "b\n", rng)

		assert.Contains(t, result.Error, "invalid column range")
	})

	t.Run("PanicIsRecorded", func(t *testing.T) {
		h := NewTestHelper(t)
		result := h.Compare(panicComparator{}, "a", "b", models.Range{})

		assert.True(t, result.HasError())
		assert.Contains(t, result.Error, "panic comparison failed: panic: boom")
		assert.False(t, result.IsIdentical())
		assert.Empty(t, result.Differences)
	})

	t.Run("PlainErrorIsWrapped", func(t *testing.T) {
		h := NewTestHelper(t)
		result := h.Compare(failingComparator{}, "a", "b", models.Range{})

		assert.Equal(t, "panic comparison failed: unexpected state", result.Error)
	})

	t.Run("ParseErrorClearsSimilarity", func(t *testing.T) {
		h := NewTestHelper(t)
		result := h.Compare(mustCreate(t, "json", Options{}), `{"a":`, `{}`, models.Range{})

		assert.Contains(t, result.Error, "invalid JSON in file1")
		assert.Nil(t, result.Similarity)
	})
}

func TestEngineSelfComparison(t *testing.T) {
	inputs := map[string]string{
		"text":   "first line\nsecond line\n",
		"binary": "\x00\x01\x02binary\xff",
		"json":   `{"a": [1, {"b": null}], "c": "d"}`,
		"xml":    `<root a="1"><child>text</child><child/></root>`,
		"csv":    "h1,h2\n1,\"two, three\"\n",
	}

	for tag, content := range inputs {
		t.Run(tag, func(t *testing.T) {
			h := NewTestHelper(t)
			name := h.WriteFile("same", []byte(content))
			c := mustCreate(t, tag, Options{})

			result := NewEngine(h.backend, nil).CompareFiles(context.Background(), c, name, name, models.Range{})

			assertIdentical(t, result)
			assert.Equal(t, 0, result.ExitCode())
		})
	}
}

func TestCompareFilesLocal(t *testing.T) {
	dir := t.TempDir()
	h := &TestHelper{t: t, dir: dir}
	h.WriteFile("a.txt", []byte("same\n"))
	h.WriteFile("b.txt", []byte("same\n"))

	c := mustCreate(t, "text", Options{})
	result := CompareFiles(context.Background(), c,
		filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt"), models.Range{})

	assertIdentical(t, result)
}

func TestCollector(t *testing.T) {
	c := newCollector(3)
	for i := 0; i < 3; i++ {
		assert.True(t, c.add(models.Difference{Type: models.DiffContent}))
	}
	assert.False(t, c.done())

	assert.False(t, c.add(models.Difference{Type: models.DiffContent}))
	assert.True(t, c.done())
	assert.False(t, c.add(models.Difference{Type: models.DiffContent}))

	diffs := c.result()
	require.Len(t, diffs, 4)
	assert.True(t, diffs[3].IsOverflow())
	for _, d := range diffs[:3] {
		assert.False(t, d.IsOverflow())
	}
}

func TestCollectorExactlyAtCap(t *testing.T) {
	c := newCollector(2)
	c.add(models.Difference{Type: models.DiffCell})
	c.add(models.Difference{Type: models.DiffCell})

	assert.False(t, c.done())
	assert.Len(t, c.result(), 2)
	for _, d := range c.result() {
		assert.False(t, strings.Contains(string(d.Type), "not shown"))
	}
}

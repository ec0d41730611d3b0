package compare

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ozil111/Compare-File-Tool/pkg/models"
	"github.com/ozil111/Compare-File-Tool/pkg/storage"
)

// TestHelper provides utilities for comparator tests
type TestHelper struct {
	t       *testing.T
	dir     string
	backend *storage.Local
}

// NewTestHelper creates a test helper backed by a temporary directory
func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()

	dir := t.TempDir()
	backend, err := storage.NewLocal(dir)
	if err != nil {
		t.Fatalf("failed to create backend: %v", err)
	}
	return &TestHelper{t: t, dir: dir, backend: backend}
}

// WriteFile creates a file relative to the helper directory
func (h *TestHelper) WriteFile(name string, content []byte) string {
	h.t.Helper()
	path := filepath.Join(h.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		h.t.Fatalf("failed to create parent dir: %v", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		h.t.Fatalf("failed to write file: %v", err)
	}
	return name
}

// Compare writes both contents and compares them through the engine
func (h *TestHelper) Compare(c Comparator, content1, content2 string, rng models.Range) *models.ComparisonResult {
	h.t.Helper()
	file1 := h.WriteFile("file1", []byte(content1))
	file2 := h.WriteFile("file2", []byte(content2))
	return NewEngine(h.backend, nil).CompareFiles(context.Background(), c, file1, file2, rng)
}

// Read runs ReadContent of c on content
func (h *TestHelper) Read(c Comparator, content string, rng models.Range) (Content, error) {
	h.t.Helper()
	name := h.WriteFile("input", []byte(content))
	return c.ReadContent(context.Background(), h.backend, name, rng)
}

func mustCreate(t *testing.T, tag string, opts Options) Comparator {
	t.Helper()
	c, err := DefaultRegistry().Create(tag, opts)
	if err != nil {
		t.Fatalf("failed to create %s comparator: %v", tag, err)
	}
	return c
}

func assertDifferences(t *testing.T, want, got []models.Difference) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("differences mismatch (-want +got):\n%s", diff)
	}
}

func assertIdentical(t *testing.T, result *models.ComparisonResult) {
	t.Helper()
	if result.HasError() {
		t.Fatalf("unexpected error: %s", result.Error)
	}
	if !result.IsIdentical() {
		t.Errorf("expected identical result, got differences %v", result.Differences)
	}
	if len(result.Differences) != 0 {
		t.Errorf("expected no differences, got %d", len(result.Differences))
	}
}

func assertDifferent(t *testing.T, result *models.ComparisonResult) {
	t.Helper()
	if result.HasError() {
		t.Fatalf("unexpected error: %s", result.Error)
	}
	if result.IsIdentical() {
		t.Error("expected files to differ")
	}
}

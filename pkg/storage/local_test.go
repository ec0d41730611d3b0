package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// TestNewLocal tests the Local backend constructor
func TestNewLocal(t *testing.T) {
	t.Run("ValidDirectory", func(t *testing.T) {
		local, err := NewLocal(t.TempDir())
		if err != nil {
			t.Fatalf("NewLocal() error = %v", err)
		}
		if local == nil {
			t.Fatal("NewLocal() returned nil")
		}
		defer local.Close()
	})

	t.Run("Unrooted", func(t *testing.T) {
		local, err := NewLocal("")
		if err != nil {
			t.Fatalf("NewLocal(\"\") error = %v", err)
		}
		if local.rootPath != "" {
			t.Errorf("rootPath = %q, want empty", local.rootPath)
		}
	})

	t.Run("NonExistentPath", func(t *testing.T) {
		_, err := NewLocal("/nonexistent/path/that/does/not/exist")
		if err == nil {
			t.Error("NewLocal() should fail for non-existent path")
		}
	})

	t.Run("FileNotDirectory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file.txt")
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}

		_, err := NewLocal(path)
		if err == nil {
			t.Error("NewLocal() should fail for file path (not directory)")
		}
	})
}

// TestLocalRead tests the Read method
func TestLocalRead(t *testing.T) {
	tempDir := t.TempDir()
	content := []byte("hello, comparator")
	if err := os.WriteFile(filepath.Join(tempDir, "read.txt"), content, 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	local, err := NewLocal(tempDir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	defer local.Close()

	ctx := context.Background()

	t.Run("RelativeToRoot", func(t *testing.T) {
		reader, err := local.Read(ctx, "read.txt")
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		defer reader.Close()

		data, err := io.ReadAll(reader)
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		if string(data) != string(content) {
			t.Errorf("content = %q, want %q", data, content)
		}
	})

	t.Run("Seekable", func(t *testing.T) {
		reader, err := local.Read(ctx, "read.txt")
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		defer reader.Close()

		seeker, ok := reader.(io.Seeker)
		if !ok {
			t.Fatal("reader does not implement io.Seeker")
		}
		if _, err := seeker.Seek(7, io.SeekStart); err != nil {
			t.Fatalf("Seek() error = %v", err)
		}
		data, _ := io.ReadAll(reader)
		if string(data) != "comparator" {
			t.Errorf("content after seek = %q, want %q", data, "comparator")
		}
	})

	t.Run("AbsolutePathIgnoresRoot", func(t *testing.T) {
		other := filepath.Join(t.TempDir(), "abs.txt")
		if err := os.WriteFile(other, []byte("abs"), 0644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		reader, err := local.Read(ctx, other)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		reader.Close()
	})

	t.Run("NonExistentFile", func(t *testing.T) {
		_, err := local.Read(ctx, "missing.txt")
		if err == nil {
			t.Error("Read() should fail for non-existent file")
		}
	})

	t.Run("CancelledContext", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := local.Read(cctx, "read.txt"); err == nil {
			t.Error("Read() should fail with cancelled context")
		}
	})
}

// TestLocalExists tests the Exists method
func TestLocalExists(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tempDir, "exists.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	local, err := NewLocal(tempDir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	ctx := context.Background()

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"ExistingFile", "exists.txt", true},
		{"MissingFile", "missing.txt", false},
		{"Root", ".", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := local.Exists(ctx, tt.path)
			if err != nil {
				t.Fatalf("Exists() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Exists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

// TestLocalStat tests the Stat method
func TestLocalStat(t *testing.T) {
	tempDir := t.TempDir()
	content := []byte("test content")
	if err := os.WriteFile(filepath.Join(tempDir, "stat.txt"), content, 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	local, err := NewLocal("")
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	ctx := context.Background()

	t.Run("ExistingFile", func(t *testing.T) {
		info, err := local.Stat(ctx, filepath.Join(tempDir, "stat.txt"))
		if err != nil {
			t.Fatalf("Stat() error = %v", err)
		}
		if info.Size != int64(len(content)) {
			t.Errorf("Size = %d, want %d", info.Size, len(content))
		}
		if info.IsDir {
			t.Error("IsDir = true, want false")
		}
		if info.ModTime.IsZero() {
			t.Error("ModTime should not be zero")
		}
	})

	t.Run("NonExistentFile", func(t *testing.T) {
		_, err := local.Stat(ctx, filepath.Join(tempDir, "nonexistent.txt"))
		if err == nil {
			t.Error("Stat() should fail for non-existent file")
		}
	})
}

// TestBackendInterface verifies that Local implements Backend
func TestBackendInterface(t *testing.T) {
	var _ Backend = (*Local)(nil)
}

package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	t.Run("writes content and cleans up", func(t *testing.T) {
		t.Parallel()

		path, cleanup, err := WriteTempFile("<html></html>", "html")
		if err != nil {
			t.Fatal(err)
		}

		if !strings.HasSuffix(path, ".html") {
			t.Errorf("path %q does not end in .html", path)
		}
		data, err := os.ReadFile(path) // #nosec G304 -- temp path from this test
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "<html></html>" {
			t.Errorf("content = %q", data)
		}

		cleanup()
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("cleanup did not remove the file")
		}
	})

	t.Run("rejects empty extension", func(t *testing.T) {
		t.Parallel()

		if _, _, err := WriteTempFile("x", ""); !errors.Is(err, ErrExtensionEmpty) {
			t.Errorf("got %v, want ErrExtensionEmpty", err)
		}
	})

	t.Run("rejects traversal in extension", func(t *testing.T) {
		t.Parallel()

		if _, _, err := WriteTempFile("x", "../evil"); !errors.Is(err, ErrExtensionPathTraversal) {
			t.Errorf("got %v, want ErrExtensionPathTraversal", err)
		}
	})
}

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{"simple extension", "html", nil},
		{"empty", "", ErrExtensionEmpty},
		{"forward slash", "a/b", ErrExtensionPathTraversal},
		{"backslash", `a\b`, ErrExtensionPathTraversal},
		{"null byte", "a\x00b", ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateExtension(tt.extension)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		s    string
		want bool
	}{
		{"unix path", "styles/custom.css", true},
		{"windows path", `styles\custom.css`, true},
		{"bare name", "default", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IsFilePath(tt.s); got != tt.want {
				t.Errorf("IsFilePath(%q) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}

func TestCopyFile(t *testing.T) {
	t.Parallel()

	t.Run("copies content", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := filepath.Join(dir, "src.png")
		dst := filepath.Join(dir, "dst.png")
		if err := os.WriteFile(src, []byte("payload"), 0o600); err != nil {
			t.Fatal(err)
		}

		if err := CopyFile(src, dst); err != nil {
			t.Fatal(err)
		}
		data, err := os.ReadFile(dst) // #nosec G304 -- temp path from this test
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "payload" {
			t.Errorf("content = %q", data)
		}
	})

	t.Run("missing source", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := CopyFile(filepath.Join(dir, "no"), filepath.Join(dir, "dst")); err == nil {
			t.Error("expected error for missing source")
		}
	})

	t.Run("overwrites destination", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := filepath.Join(dir, "src")
		dst := filepath.Join(dir, "dst")
		if err := os.WriteFile(src, []byte("new"), 0o600); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(dst, []byte("old"), 0o600); err != nil {
			t.Fatal(err)
		}

		if err := CopyFile(src, dst); err != nil {
			t.Fatal(err)
		}
		data, _ := os.ReadFile(dst) // #nosec G304 -- temp path from this test
		if string(data) != "new" {
			t.Errorf("content = %q", data)
		}
	})
}

func TestRemoveDirIfEmpty(t *testing.T) {
	t.Parallel()

	t.Run("removes empty directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "empty")
		if err := os.Mkdir(dir, 0o750); err != nil {
			t.Fatal(err)
		}

		if err := RemoveDirIfEmpty(dir); err != nil {
			t.Fatal(err)
		}
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			t.Error("directory still present")
		}
	})

	t.Run("keeps non-empty directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "x"), []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}

		if err := RemoveDirIfEmpty(dir); err != nil {
			t.Fatal(err)
		}
		if _, err := os.Stat(dir); err != nil {
			t.Error("non-empty directory removed")
		}
	})

	t.Run("missing directory is not an error", func(t *testing.T) {
		t.Parallel()

		if err := RemoveDirIfEmpty(filepath.Join(t.TempDir(), "no")); err != nil {
			t.Errorf("got %v", err)
		}
	})
}

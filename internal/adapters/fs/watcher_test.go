package fs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	logAdapter "github.com/bft-labs/labelwatch/internal/adapters/log"
)

func TestDirWatcher_EmitsCreatedFiles(t *testing.T) {
	dir := t.TempDir()

	w, err := NewDirWatcher(dir, logAdapter.NewNoopLogger())
	if err != nil {
		t.Fatalf("NewDirWatcher: %v", err)
	}
	defer w.Close()

	// directories must be ignored
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, "label.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-w.Created():
		want, _ := filepath.Abs(path)
		if got != want {
			t.Fatalf("Created() = %s, want %s", got, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for create event")
	}
}

func TestDirWatcher_NonRecursive(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	w, err := NewDirWatcher(dir, logAdapter.NewNoopLogger())
	if err != nil {
		t.Fatalf("NewDirWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(sub, "deep.png"), []byte("png"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-w.Created():
		t.Fatalf("unexpected event for nested file: %s", got)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestDirWatcher_MissingDir(t *testing.T) {
	_, err := NewDirWatcher(filepath.Join(t.TempDir(), "missing"), logAdapter.NewNoopLogger())
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestDirWatcher_CloseIsIdempotent(t *testing.T) {
	w, err := NewDirWatcher(t.TempDir(), logAdapter.NewNoopLogger())
	if err != nil {
		t.Fatalf("NewDirWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if _, ok := <-w.Created(); ok {
		t.Fatal("Created() should be closed after Close")
	}
}

func TestOSRenamer(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.png")
	if err := os.WriteFile(src, []byte("png"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := NewOSRenamer().Rename(src, src+".done"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if _, err := os.Stat(src + ".done"); err != nil {
		t.Fatalf("renamed file missing: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatalf("source should be gone, stat err = %v", err)
	}
}

func TestModTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := os.Chtimes(path, want, want); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	got, err := ModTime(path)
	if err != nil {
		t.Fatalf("ModTime: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("ModTime = %v, want %v", got, want)
	}

	if _, err := ModTime(path + ".missing"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

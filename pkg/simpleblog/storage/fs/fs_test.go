package fs

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()

	backend, err := New(Config{BaseDir: t.TempDir()})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return backend
}

func TestUploadDownload(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	if err := backend.Upload(ctx, "files/cat.png", strings.NewReader("image-bytes")); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	rc, err := backend.Download(ctx, "files/cat.png")
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Errorf("got %q, want %q", data, "image-bytes")
	}
}

func TestUploadOverwrites(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	if err := backend.Upload(ctx, "files/cat.png", strings.NewReader("old")); err != nil {
		t.Fatalf("first Upload failed: %v", err)
	}
	if err := backend.Upload(ctx, "files/cat.png", strings.NewReader("new")); err != nil {
		t.Fatalf("second Upload failed: %v", err)
	}

	rc, err := backend.Download(ctx, "files/cat.png")
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	defer rc.Close()

	data, _ := io.ReadAll(rc)
	if string(data) != "new" {
		t.Errorf("got %q, want %q", data, "new")
	}
}

func TestDownloadMissing(t *testing.T) {
	backend := newTestBackend(t)

	if _, err := backend.Download(context.Background(), "files/missing.png"); err == nil {
		t.Error("expected error for missing object")
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	if err := backend.Upload(ctx, "files/cat.png", strings.NewReader("x")); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if err := backend.Delete(ctx, "files/cat.png"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := backend.Delete(ctx, "files/cat.png"); err != nil {
		t.Errorf("Delete of absent object should be a no-op, got %v", err)
	}
}

func TestExists(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	exists, err := backend.Exists(ctx, "files/cat.png")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("object should not exist yet")
	}

	if err := backend.Upload(ctx, "files/cat.png", strings.NewReader("x")); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	exists, err = backend.Exists(ctx, "files/cat.png")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("object should exist after upload")
	}
}

func TestNewCreatesBaseDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "content")

	if _, err := New(Config{BaseDir: dir}); err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("base dir not created: %v", err)
	}
}

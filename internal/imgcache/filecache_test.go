package imgcache

import (
	"context"
	"os"
	"sync/atomic"
	"testing"
)

type fakeBackend struct {
	fetches int32
}

func (b *fakeBackend) Name() string { return "fake" }

func (b *fakeBackend) Fetch(_ context.Context, path string) ([]byte, error) {
	atomic.AddInt32(&b.fetches, 1)
	return []byte("contents of " + path), nil
}

func TestFileCacheLoadsSelectedFileAndPrefetchesWindow(t *testing.T) {
	tmp := t.TempDir()
	fc, err := NewFileCache(FileCacheConfig{NPrevImages: 1, NNextImages: 1, NThreads: 2, TmpDir: tmp}, &fakeBackend{})
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer fc.Close()

	files := []string{"1.png", "2.png", "3.png", "4.png"}
	path, err := fc.LoadFromCache(context.Background(), 1, files)
	if err != nil {
		t.Fatalf("LoadFromCache: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading staged file: %v", err)
	}
	if string(data) != "contents of 2.png" {
		t.Errorf("staged contents = %q", data)
	}
}

func TestFileCacheRejectsEmptyFileList(t *testing.T) {
	tmp := t.TempDir()
	fc, err := NewFileCache(DefaultFileCacheConfig(tmp), &fakeBackend{})
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer fc.Close()
	if _, err := fc.LoadFromCache(context.Background(), 0, nil); err == nil {
		t.Error("LoadFromCache with no files should error")
	}
}

func TestFileCacheReusesAlreadyCachedFile(t *testing.T) {
	tmp := t.TempDir()
	b := &fakeBackend{}
	fc, err := NewFileCache(FileCacheConfig{NPrevImages: 0, NNextImages: 0, NThreads: 1, TmpDir: tmp}, b)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer fc.Close()

	files := []string{"only.png"}
	if _, err := fc.LoadFromCache(context.Background(), 0, files); err != nil {
		t.Fatalf("first load: %v", err)
	}
	if _, err := fc.LoadFromCache(context.Background(), 0, files); err != nil {
		t.Fatalf("second load: %v", err)
	}
	if got := atomic.LoadInt32(&b.fetches); got != 1 {
		t.Errorf("backend.Fetch called %d times, want exactly 1", got)
	}
}

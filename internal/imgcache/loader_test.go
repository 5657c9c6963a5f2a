package imgcache

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bertiqwerty/rvimage-sub001/internal/imgcache/backend"
)

func TestLoaderReadImageReturnsStagedPath(t *testing.T) {
	tmp := t.TempDir()
	b := &fakeBackend{}
	newCache := func() (*FileCache, error) {
		return NewFileCache(FileCacheConfig{NPrevImages: 1, NNextImages: 1, NThreads: 2, TmpDir: tmp}, b)
	}
	loader, err := NewLoader(newCache, 1)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	defer loader.Close()

	path, err := loader.ReadImage(context.Background(), 0, []string{"a.png", "b.png"})
	if err != nil {
		t.Fatalf("ReadImage: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading staged file: %v", err)
	}
	if string(data) != "contents of a.png" {
		t.Errorf("staged contents = %q", data)
	}
}

func TestOpenFolderListsSupportedExtensionsOnly(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "keep.png"), nil, 0o644)
	os.WriteFile(filepath.Join(dir, "skip.txt"), nil, 0o644)

	cat, err := OpenFolder(context.Background(), backend.Local{}, dir)
	if err != nil {
		t.Fatalf("OpenFolder: %v", err)
	}
	if cat.LenFiltered() != 1 {
		t.Fatalf("LenFiltered() = %d, want 1", cat.LenFiltered())
	}
	_, label := cat.FilteredIdxFileLabelPairs(0)
	if label != "keep.png" {
		t.Errorf("label = %q, want keep.png", label)
	}
}

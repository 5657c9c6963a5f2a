package backend

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestLocalFetchReadsFileContents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "img.png")
	if err := os.WriteFile(path, []byte("hi"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := Local{}.Fetch(context.Background(), path)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != "hi" {
		t.Errorf("Fetch returned %q", data)
	}
}

func TestLocalListFindsMatchingExtensionsRecursively(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "sub"), 0o755)
	os.WriteFile(filepath.Join(dir, "a.png"), nil, 0o644)
	os.WriteFile(filepath.Join(dir, "b.txt"), nil, 0o644)
	os.WriteFile(filepath.Join(dir, "sub", "c.jpg"), nil, 0o644)

	got, err := Local{}.List(context.Background(), dir, []string{".png", ".jpg"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	sort.Strings(got)
	want := []string{"a.png", "sub/c.jpg"}
	if len(got) != len(want) {
		t.Fatalf("List = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHasSupportedExtension(t *testing.T) {
	if !hasSupportedExtension("img.PNG", []string{".PNG", ".png"}) {
		t.Error("expected .PNG to match")
	}
	if hasSupportedExtension("img.txt", []string{".png"}) {
		t.Error("did not expect .txt to match")
	}
	if !hasSupportedExtension("anything", nil) {
		t.Error("an empty extension list should match everything")
	}
}

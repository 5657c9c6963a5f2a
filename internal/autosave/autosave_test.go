package autosave

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExtractDate(t *testing.T) {
	cases := []struct {
		filename string
		wantOK   bool
		wantStr  string
	}{
		{"filename-autosave_d131214_0.json", true, "131214"},
		{"filename_d131214_0.json", false, ""},
		{"filename_123456.json", false, ""},
		{"filename_d123456.json", false, ""},
		{"filename_d123456_1.json", false, ""},
		{"filename", false, ""},
	}
	for _, c := range cases {
		date, ok := extractDate(c.filename)
		if ok != c.wantOK {
			t.Errorf("extractDate(%q) ok = %v, want %v", c.filename, ok, c.wantOK)
			continue
		}
		if ok && date.Format(dateFormat) != c.wantStr {
			t.Errorf("extractDate(%q) = %v, want %s", c.filename, date, c.wantStr)
		}
	}
}

func TestListFilesFiltersByEndDate(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"flower-autosave_d241215_1.json",
		"flower-autosave_d241217_0.json",
		"flower-not-an-autosave.json",
	}
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	end, _ := time.Parse(dateFormat, "241216")
	got, err := ListFiles(dir, time.Time{}, end)
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(got) != 1 || filepath.Base(got[0]) != "flower-autosave_d241215_1.json" {
		t.Fatalf("ListFiles = %v, want exactly flower-autosave_d241215_1.json", got)
	}
}

func TestAutosaveRotatesAndPrunes(t *testing.T) {
	dir := t.TempDir()
	today := time.Now().Format(dateFormat)

	writeSnapshot := func(n uint8, contents string) {
		path := makeFilepath(dir, "prj", today, n)
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	writeSnapshot(0, "oldest")
	writeSnapshot(1, "newer")

	oldDate := time.Now().AddDate(0, 0, -(KeepNDays + 5)).Format(dateFormat)
	stalePath := filepath.Join(dir, "prj-autosave_d"+oldDate+"_0.json")
	if err := os.WriteFile(stalePath, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	var savedTo string
	err := Autosave(filepath.Join(dir, "prj.json"), dir, 2, func(path string) error {
		savedTo = path
		return os.WriteFile(path, []byte("fresh"), 0o644)
	})
	if err != nil {
		t.Fatalf("Autosave: %v", err)
	}

	if _, err := os.Stat(stalePath); !os.IsNotExist(err) {
		t.Error("stale autosave should have been pruned")
	}

	rotated, err := os.ReadFile(makeFilepath(dir, "prj", today, 0))
	if err != nil {
		t.Fatalf("reading rotated index 0: %v", err)
	}
	if string(rotated) != "newer" {
		t.Errorf("index 0 after rotation = %q, want %q (copied from index 1)", rotated, "newer")
	}

	fresh, err := os.ReadFile(savedTo)
	if err != nil {
		t.Fatalf("reading freshly saved snapshot: %v", err)
	}
	if string(fresh) != "fresh" {
		t.Errorf("newest snapshot contents = %q, want fresh", fresh)
	}
}

func TestAutosaveZeroCountSavesNothing(t *testing.T) {
	dir := t.TempDir()
	called := false
	err := Autosave(filepath.Join(dir, "prj.json"), dir, 0, func(string) error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("Autosave: %v", err)
	}
	if called {
		t.Error("savePrj should not be called when nAutosaves is 0")
	}
}

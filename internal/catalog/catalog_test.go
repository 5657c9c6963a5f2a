package catalog

import "testing"

func relativePaths(c *Catalog) []string {
	out := make([]string, c.LenFiltered())
	for i := range out {
		_, label := c.FilteredIdxFileLabelPairs(i)
		out[i] = label
	}
	return out
}

func TestNaturalCompareOrdersDigitRunsNumerically(t *testing.T) {
	if naturalCompare("img2.png", "img10.png") >= 0 {
		t.Error("img2.png should sort before img10.png under natural order")
	}
	if naturalCompare("img10.png", "img2.png") <= 0 {
		t.Error("img10.png should sort after img2.png under natural order")
	}
	if naturalCompare("img2.png", "img2.png") != 0 {
		t.Error("equal strings must compare equal")
	}
}

func TestNewSortsPathsNaturally(t *testing.T) {
	c := New([]PathPair{
		{Relative: "img10.png"},
		{Relative: "img2.png"},
		{Relative: "img1.png"},
	}, "")
	got := relativePaths(c)
	want := []string{"img1.png", "img2.png", "img10.png"}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestAlphabeticalSortOverridesNaturalOrder(t *testing.T) {
	c := New([]PathPair{
		{Relative: "img10.png"},
		{Relative: "img2.png"},
	}, "")
	c.AlphabeticalSort(false)
	got := relativePaths(c)
	if got[0] != "img10.png" || got[1] != "img2.png" {
		t.Fatalf("alphabetical sort gave %v, want [img10.png img2.png]", got)
	}
}

func TestFilteredFilePathsAndFileSelectedPath(t *testing.T) {
	c := New([]PathPair{
		{Relative: "a.png", Absolute: "/data/a.png"},
		{Relative: "b.png", Absolute: "/data/b.png"},
	}, "")
	c.Filter(func(relative string) bool { return relative == "b.png" })
	if c.LenFiltered() != 1 {
		t.Fatalf("LenFiltered() = %d, want 1", c.LenFiltered())
	}
	pp, ok := c.FileSelectedPath(0)
	if !ok || pp.Absolute != "/data/b.png" {
		t.Fatalf("FileSelectedPath(0) = %v, %v", pp, ok)
	}
	if _, ok := c.FileSelectedPath(5); ok {
		t.Error("FileSelectedPath should report ok=false past the filtered range")
	}
}

func TestIdxOfFileLabel(t *testing.T) {
	c := New([]PathPair{
		{Relative: "dir/a.png"},
		{Relative: "dir/b.png"},
	}, "")
	idx, ok := c.IdxOfFileLabel("b.png")
	if !ok || idx != 1 {
		t.Fatalf("IdxOfFileLabel(b.png) = %d, %v, want 1, true", idx, ok)
	}
	if _, ok := c.IdxOfFileLabel("missing.png"); ok {
		t.Error("IdxOfFileLabel should not find a label that was never in the catalog")
	}
}

func TestMakeFolderLabel(t *testing.T) {
	cases := map[string]string{
		"":                    "no folder selected",
		"/data/images":        "data/images",
		"/images":             "images",
		"data/project/images": "project/images",
	}
	for path, want := range cases {
		if got := makeFolderLabel(path); got != want {
			t.Errorf("makeFolderLabel(%q) = %q, want %q", path, got, want)
		}
	}
}

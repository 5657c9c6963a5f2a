package world

import (
	"testing"

	"github.com/bertiqwerty/rvimage-sub001/internal/geom"
)

func strPtr(s string) *string { return &s }

func worldOfWidth(w uint32, folder *string) World {
	ww := New(Raster{Shape: geom.NewShape(w, w)}, MetaData{OpenedFolder: folder})
	return ww
}

func TestHistoryPushPrevAndFolderDrop(t *testing.T) {
	h := NewHistory()

	h.Push(worldOfWidth(64, nil), "")
	h.Push(worldOfWidth(32, nil), "")
	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}
	if h.records[0].World.Shape().W != 64 || h.records[1].World.Shape().W != 32 {
		t.Fatalf("unexpected record shapes: %+v", h.records)
	}

	if _, _, ok := h.PrevWorld(nil); !ok {
		t.Fatal("PrevWorld should succeed from the tip")
	}

	h.Push(worldOfWidth(16, nil), "")
	if h.Len() != 2 {
		t.Fatalf("Len() after branching push = %d, want 2 (redo branch dropped)", h.Len())
	}
	if h.records[0].World.Shape().W != 64 || h.records[1].World.Shape().W != 16 {
		t.Fatalf("unexpected record shapes after branch: %+v", h.records)
	}

	h.Push(worldOfWidth(16, strPtr("folder1")), "")
	if h.Len() != 1 {
		t.Fatalf("Len() after folder switch = %d, want 1", h.Len())
	}

	h.Push(worldOfWidth(16, strPtr("folder2")), "")
	h.Push(worldOfWidth(16, nil), "")
	h.Push(worldOfWidth(16, strPtr("folder2")), "")

	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}
	wantFolders := []*string{strPtr("folder2"), nil, strPtr("folder2")}
	for i, want := range wantFolders {
		got := h.records[i].OpenedFolder
		if want == nil && got != nil {
			t.Errorf("records[%d].OpenedFolder = %v, want nil", i, *got)
		}
		if want != nil && (got == nil || *got != *want) {
			t.Errorf("records[%d].OpenedFolder = %v, want %v", i, got, *want)
		}
	}
}

func TestHistoryPrevNextAtBoundaryFailsSilently(t *testing.T) {
	h := NewHistory()
	h.Push(worldOfWidth(1, nil), "")

	if _, _, ok := h.PrevWorld(nil); ok {
		t.Error("PrevWorld at the only record should fail")
	}
	if _, _, ok := h.NextWorld(nil); ok {
		t.Error("NextWorld at the tip should fail")
	}
}

func TestHistoryEmptyCurrentRecord(t *testing.T) {
	h := NewHistory()
	if _, ok := h.CurrentRecord(); ok {
		t.Error("CurrentRecord on empty History should fail")
	}
}

package world

import (
	"testing"

	"github.com/bertiqwerty/rvimage-sub001/internal/annotate"
	"github.com/bertiqwerty/rvimage-sub001/internal/geom"
	"github.com/bertiqwerty/rvimage-sub001/internal/toolsdata"
)

func TestNewWorldIsDirtyAndHasDefaultTools(t *testing.T) {
	w := New(Raster{Path: "a.png", Shape: geom.NewShape(10, 20)}, MetaData{})
	if !w.IsDirty() {
		t.Error("a freshly built World should be dirty")
	}
	if _, ok := w.Tools()["bbox"]; !ok {
		t.Error("New should populate the default tools-data map")
	}
	w.ClearDirty()
	if w.IsDirty() {
		t.Error("ClearDirty should clear the dirty bit")
	}
}

func TestSetRasterMarksDirty(t *testing.T) {
	w := New(Raster{Shape: geom.NewShape(1, 1)}, MetaData{})
	w.ClearDirty()
	w.SetRaster(Raster{Path: "b.png", Shape: geom.NewShape(2, 2)})
	if !w.IsDirty() {
		t.Error("SetRaster should mark the World dirty")
	}
	if w.Raster().Path != "b.png" {
		t.Errorf("Raster().Path = %q, want b.png", w.Raster().Path)
	}
}

func TestCloneIsIndependentOfOriginal(t *testing.T) {
	folder := "folder"
	w := New(Raster{Shape: geom.NewShape(1, 1)}, MetaData{OpenedFolder: &folder})
	clone := w.Clone()

	clone.SetToolSpecifics("bbox", toolsdata.BboxSpecifics(toolsdata.NewBboxData()))
	if _, ok := w.Tools()["bbox"]; !ok {
		t.Fatal("original tools map should be unaffected by the clone's mutation source")
	}

	*clone.meta.OpenedFolder = "changed"
	if *w.Meta().OpenedFolder != "folder" {
		t.Error("Clone should deep-copy metadata pointers")
	}
}

func TestRotateOnceRotatesBboxAnnotationsAndAdvancesCounter(t *testing.T) {
	shape := geom.NewShape(20, 10)
	w := New(Raster{Path: "a.png", Shape: shape}, MetaData{})

	box := geom.BoxFig(geom.BB{X: 1, Y: 2, W: 3, H: 4})
	annos := annotate.FromEltsCats([]geom.GeoFig{box}, []int{0})
	bboxData := w.Tools()["bbox"].Bbox
	bboxData.AnnotationsMap.Set("a.png", annotate.Entry[geom.GeoFig]{Annotations: annos, Shape: shape})

	zoom := geom.BB{X: 0, Y: 0, W: 5, H: 5}
	w.SetZoom(&zoom)

	if err := w.RotateOnce(); err != nil {
		t.Fatalf("RotateOnce returned error: %v", err)
	}

	entry, ok := bboxData.AnnotationsMap.Get("a.png")
	if !ok {
		t.Fatal("RotateOnce should keep the entry for a.png")
	}
	if entry.Shape != shape.Rotate90CCW() {
		t.Errorf("entry.Shape = %v, want %v", entry.Shape, shape.Rotate90CCW())
	}
	wantBox, err := box.Rotate90CCW(shape)
	if err != nil {
		t.Fatalf("box.Rotate90CCW returned error: %v", err)
	}
	rotatedBox := entry.Annotations.Edit(0)
	if !rotatedBox.Equals(wantBox) {
		t.Errorf("rotated instance = %v, want %v", *rotatedBox, wantBox)
	}

	if w.Tools()["rot90"].Rot90 != toolsdata.RotZero.Increase() {
		t.Errorf("RotateOnce should advance NRotations, got %v", w.Tools()["rot90"].Rot90)
	}
	if w.Zoom() != nil {
		t.Error("RotateOnce should clear the zoom box")
	}
}

func TestZoomSetAndClear(t *testing.T) {
	w := New(Raster{Shape: geom.NewShape(100, 100)}, MetaData{})
	zoom := geom.BB{X: 1, Y: 2, W: 3, H: 4}
	w.SetZoom(&zoom)
	if w.Zoom() == nil || *w.Zoom() != zoom {
		t.Fatalf("Zoom() = %v, want %v", w.Zoom(), zoom)
	}
	w.SetZoom(nil)
	if w.Zoom() != nil {
		t.Error("SetZoom(nil) should clear the zoom box")
	}
}

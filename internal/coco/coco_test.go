package coco

import (
	"testing"

	"github.com/bertiqwerty/rvimage-sub001/internal/annotate"
	"github.com/bertiqwerty/rvimage-sub001/internal/geom"
	"github.com/bertiqwerty/rvimage-sub001/internal/toolsdata"
)

func newBboxDataWithOneBox(absolute bool) *toolsdata.BboxData {
	d := toolsdata.NewBboxData()
	d.Options.ExportAbsolute = absolute
	entry := d.AnnotationsMap.GetOrInsert("a.png", geom.NewShape(100, 200))
	entry.Annotations.AddElt(geom.BoxFig(geom.BB{X: 10, Y: 20, W: 30, H: 40}), 0, annotate.DisplayNone)
	d.AnnotationsMap.Set("a.png", *entry)
	return &d
}

func TestExportBboxAbsoluteRoundTrips(t *testing.T) {
	data := newBboxDataWithOneBox(true)
	doc, err := ExportBbox(data)
	if err != nil {
		t.Fatalf("ExportBbox: %v", err)
	}
	if len(doc.Images) != 1 || doc.Images[0].FileName != "a.png" {
		t.Fatalf("unexpected images: %+v", doc.Images)
	}
	if len(doc.Annotations) != 1 {
		t.Fatalf("len(Annotations) = %d, want 1", len(doc.Annotations))
	}
	want := [4]float32{10, 20, 30, 40}
	if doc.Annotations[0].Bbox != want {
		t.Errorf("Bbox = %v, want %v", doc.Annotations[0].Bbox, want)
	}
	if doc.Annotations[0].Area != 30*40 {
		t.Errorf("Area = %v, want 1200", doc.Annotations[0].Area)
	}

	labelInfo, annoMap, err := ImportBbox(doc, toolsdata.RotZero)
	if err != nil {
		t.Fatalf("ImportBbox: %v", err)
	}
	if labelInfo.Labels()[0] != data.LabelInfo.Labels()[0] {
		t.Errorf("imported label = %q, want %q", labelInfo.Labels()[0], data.LabelInfo.Labels()[0])
	}
	entry, ok := annoMap.Get("a.png")
	if !ok {
		t.Fatal("imported map missing a.png")
	}
	if entry.Annotations.Len() != 1 {
		t.Fatalf("imported annotation count = %d, want 1", entry.Annotations.Len())
	}
	got := entry.Annotations.Elts()[0].EnclosingBB()
	wantBB := geom.BB{X: 10, Y: 20, W: 30, H: 40}
	if got != wantBB {
		t.Errorf("imported box = %+v, want %+v", got, wantBB)
	}
}

func TestExportBboxNormalizedRoundTrips(t *testing.T) {
	data := newBboxDataWithOneBox(false)
	doc, err := ExportBbox(data)
	if err != nil {
		t.Fatalf("ExportBbox: %v", err)
	}
	for _, v := range doc.Annotations[0].Bbox {
		if v > 1.0 {
			t.Fatalf("normalized bbox has component > 1: %v", doc.Annotations[0].Bbox)
		}
	}
	_, annoMap, err := ImportBbox(doc, toolsdata.RotZero)
	if err != nil {
		t.Fatalf("ImportBbox: %v", err)
	}
	entry, _ := annoMap.Get("a.png")
	got := entry.Annotations.Elts()[0].EnclosingBB()
	want := geom.BB{X: 10, Y: 20, W: 30, H: 40}
	if got != want {
		t.Errorf("round-tripped box = %+v, want %+v", got, want)
	}
}

func TestExportBrushRoundTrips(t *testing.T) {
	d := toolsdata.NewBrushData()
	shape := geom.NewShape(8, 8)
	dense := make([]uint8, 4*4)
	for i := range dense {
		dense[i] = 1
	}
	entry := d.AnnotationsMap.GetOrInsert("b.png", shape)
	canvas := geom.Canvas{Mask: dense, BB: geom.BB{X: 1, Y: 1, W: 4, H: 4}, Intensity: 0.75}
	entry.Annotations.AddElt(canvas, 0, annotate.DisplayNone)
	d.AnnotationsMap.Set("b.png", *entry)

	doc, err := ExportBrush(&d)
	if err != nil {
		t.Fatalf("ExportBrush: %v", err)
	}
	if doc.Annotations[0].Segmentation.Size != [2]uint32{8, 8} {
		t.Errorf("Segmentation.Size = %v, want [8 8]", doc.Annotations[0].Segmentation.Size)
	}
	if doc.Annotations[0].Segmentation.Intensity != 0.75 {
		t.Errorf("Segmentation.Intensity = %v, want 0.75", doc.Annotations[0].Segmentation.Intensity)
	}

	_, annoMap, err := ImportBrush(doc)
	if err != nil {
		t.Fatalf("ImportBrush: %v", err)
	}
	imported, ok := annoMap.Get("b.png")
	if !ok || imported.Annotations.Len() != 1 {
		t.Fatalf("expected one imported canvas, got %+v", imported)
	}
	gotBB := imported.Annotations.Elts()[0].EnclosingBB()
	wantBB := geom.BB{X: 1, Y: 1, W: 4, H: 4}
	if gotBB != wantBB {
		t.Errorf("imported canvas bb = %+v, want %+v", gotBB, wantBB)
	}
}

func TestMergeBboxUnionsLabelsAndDedupesGeometry(t *testing.T) {
	existingLabels := annotate.DefaultLabelInfo()
	existingMap := annotate.NewAnnotationsMap[geom.GeoFig]()
	entry := existingMap.GetOrInsert("a.png", geom.NewShape(10, 10))
	entry.Annotations.AddElt(geom.BoxFig(geom.BB{X: 0, Y: 0, W: 2, H: 2}), 0, annotate.DisplayNone)
	existingMap.Set("a.png", *entry)

	importedLabels := annotate.EmptyLabelInfo()
	if err := importedLabels.Push("new-label", nil, nil); err != nil {
		t.Fatalf("Push: %v", err)
	}
	importedMap := annotate.NewAnnotationsMap[geom.GeoFig]()
	impEntry := importedMap.GetOrInsert("a.png", geom.NewShape(10, 10))
	impEntry.Annotations.AddElt(geom.BoxFig(geom.BB{X: 0, Y: 0, W: 2, H: 2}), 0, annotate.DisplayNone) // duplicate, should dedupe
	impEntry.Annotations.AddElt(geom.BoxFig(geom.BB{X: 5, Y: 5, W: 1, H: 1}), 0, annotate.DisplayNone)
	importedMap.Set("a.png", *impEntry)

	mergedLabels, mergedMap := MergeBbox(existingLabels, existingMap, importedLabels, importedMap, Merge)

	if mergedLabels.Len() != existingLabels.Len()+1 {
		t.Fatalf("merged label count = %d, want %d", mergedLabels.Len(), existingLabels.Len()+1)
	}
	mergedEntry, _ := mergedMap.Get("a.png")
	if mergedEntry.Annotations.Len() != 2 {
		t.Fatalf("merged annotation count = %d, want 2 (one deduped)", mergedEntry.Annotations.Len())
	}
}

func TestMergeBboxReplaceModeOverwrites(t *testing.T) {
	existingLabels := annotate.DefaultLabelInfo()
	existingMap := annotate.NewAnnotationsMap[geom.GeoFig]()
	importedLabels := annotate.EmptyLabelInfo()
	importedMap := annotate.NewAnnotationsMap[geom.GeoFig]()

	labels, _ := MergeBbox(existingLabels, existingMap, importedLabels, importedMap, Replace)
	if labels.Len() != 0 {
		t.Errorf("Replace mode should adopt the imported (empty) catalog, got len %d", labels.Len())
	}
}

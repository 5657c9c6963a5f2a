package toolsdata

import (
	"strings"

	"github.com/bertiqwerty/rvimage-sub001/internal/annotate"
	"github.com/bertiqwerty/rvimage-sub001/internal/geom"
	"github.com/bertiqwerty/rvimage-sub001/internal/rverr"
)

const (
	MaxThickness = 100.0
	MinThickness = 1.0
	MaxIntensity = 1.0
	MinIntensity = 0.01
)

// BrushAnnoMap maps image path to that image's mask instances.
type BrushAnnoMap = annotate.AnnotationsMap[geom.Canvas]

// BrushOptions are the brush tool's own settings.
type BrushOptions struct {
	Thickness               float32
	Intensity               float32
	IsSelectionChangeNeeded bool
	Core                    Options
	FillAlpha               uint8
	PerFileCrowd            bool
	// ExportAbsolute selects whether this tool's COCO export writes
	// coordinates in absolute pixels or normalized to [0, 1] by image shape.
	ExportAbsolute bool
}

// DefaultBrushOptions mirrors a freshly created brush tool's settings.
func DefaultBrushOptions() BrushOptions {
	return BrushOptions{
		Thickness: 15.0,
		Intensity: 0.5,
		Core:      DefaultOptions(),
		FillAlpha: 255,
	}
}

// PendingLine is a stroke in progress together with the category index it
// will be committed under, shown while the user is still dragging.
type PendingLine struct {
	Line   geom.BrushLine
	CatIdx int
}

// BrushData is a project's complete brush-tool state.
type BrushData struct {
	AnnotationsMap BrushAnnoMap                         `json:"annotations_map"`
	TmpLine        *PendingLine                         `json:"tmp_line,omitempty"`
	Options        BrushOptions                         `json:"options"`
	LabelInfo      annotate.LabelInfo                   `json:"label_info"`
	Clipboard      *annotate.ClipboardData[geom.Canvas] `json:"clipboard,omitempty"`
	CocoFile       ExportPath                           `json:"coco_file"`
}

// NewBrushData returns an empty brush tool state with the default label
// catalog and its visibility turned on.
func NewBrushData() BrushData {
	opts := DefaultBrushOptions()
	opts.Core.Visible = true
	return BrushData{
		AnnotationsMap: annotate.NewAnnotationsMap[geom.Canvas](),
		Options:        opts,
		LabelInfo:      annotate.DefaultLabelInfo(),
	}
}

// SetAnnotationsMap replaces the tool's annotations map, rejecting any
// category index out of bounds for the current label catalog.
func (d *BrushData) SetAnnotationsMap(m BrushAnnoMap) error {
	const op = "toolsdata.BrushData.SetAnnotationsMap"
	for _, key := range m.Keys() {
		entry, _ := m.Get(key)
		length := d.LabelInfo.Len()
		for _, catIdx := range entry.Annotations.CatIdxs() {
			if catIdx >= length {
				return rverr.Newf(rverr.Invariant, op, "cat idx %d does not have a label, out of bounds, %d", catIdx, length)
			}
		}
	}
	d.AnnotationsMap = m
	return nil
}

// HasAnnos reports whether path has at least one instance recorded.
func (d *BrushData) HasAnnos(path string) bool {
	entry, ok := d.AnnotationsMap.Get(path)
	return ok && !entry.Annotations.IsEmpty()
}

// ContainsLabel reports whether any of path's instances carries a category
// whose label contains the substring label.
func (d *BrushData) ContainsLabel(path, label string) bool {
	entry, ok := d.AnnotationsMap.Get(path)
	if !ok {
		return false
	}
	labels := d.LabelInfo.Labels()
	for _, catIdx := range entry.Annotations.CatIdxs() {
		if catIdx >= 0 && catIdx < len(labels) && strings.Contains(labels[catIdx], label) {
			return true
		}
	}
	return false
}

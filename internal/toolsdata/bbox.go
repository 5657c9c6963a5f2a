package toolsdata

import (
	"strings"

	"github.com/bertiqwerty/rvimage-sub001/internal/annotate"
	"github.com/bertiqwerty/rvimage-sub001/internal/geom"
	"github.com/bertiqwerty/rvimage-sub001/internal/rverr"
)

// BboxAnnoMap maps image path to that image's box/polygon instances.
type BboxAnnoMap = annotate.AnnotationsMap[geom.GeoFig]

// BboxOptions are the bbox tool's own settings layered on top of Options.
type BboxOptions struct {
	Core                     Options
	IsAnnoOutOfFolderRmTrigd bool
	SplitMode                SplitMode
	FillAlpha                uint8
	OutlineAlpha             uint8
	OutlineThickness         uint16
	DrawingDistance          uint8
	// ExportAbsolute selects whether this tool's COCO export writes bbox
	// coordinates in absolute pixels or normalized to [0, 1] by image shape.
	ExportAbsolute bool
}

// DefaultBboxOptions mirrors a freshly created bbox tool's settings.
func DefaultBboxOptions() BboxOptions {
	return BboxOptions{
		Core:             DefaultOptions(),
		SplitMode:        SplitNone,
		FillAlpha:        30,
		OutlineAlpha:     255,
		OutlineThickness: uint16(OutlineThicknessConversion),
		DrawingDistance:  10,
	}
}

// ExportPath names where a tool's coco export/import lives, relative to
// the open project.
type ExportPath struct {
	Path string         `json:"path"`
	Conn ConnectionKind `json:"conn"`
}

// ConnectionKind is the transport a tool's coco file is reachable over.
type ConnectionKind int

const (
	ConnLocal ConnectionKind = iota
	ConnSSH
	ConnHTTP
	ConnAzureBlob
	ConnGCS
)

// BboxData is a project's complete bbox-tool state: its label catalog,
// every image's instances, UI options, and where its coco file lives.
type BboxData struct {
	LabelInfo      annotate.LabelInfo                   `json:"label_info"`
	AnnotationsMap BboxAnnoMap                          `json:"annotations_map"`
	Clipboard      *annotate.ClipboardData[geom.GeoFig] `json:"clipboard,omitempty"`
	Options        BboxOptions                          `json:"options"`
	CocoFile       ExportPath                           `json:"coco_file"`
}

// NewBboxData returns an empty bbox tool state with the default label
// catalog and the tool's own visibility turned on.
func NewBboxData() BboxData {
	opts := DefaultBboxOptions()
	opts.Core.Visible = true
	return BboxData{
		LabelInfo:      annotate.DefaultLabelInfo(),
		AnnotationsMap: annotate.NewAnnotationsMap[geom.GeoFig](),
		Options:        opts,
	}
}

// SetAnnotationsMap replaces the tool's annotations map, rejecting any
// category index that does not address a label in the current catalog.
func (d *BboxData) SetAnnotationsMap(m BboxAnnoMap) error {
	const op = "toolsdata.BboxData.SetAnnotationsMap"
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
func (d *BboxData) HasAnnos(path string) bool {
	entry, ok := d.AnnotationsMap.Get(path)
	return ok && !entry.Annotations.IsEmpty()
}

// ContainsLabel reports whether any of path's instances carries a category
// whose label contains the substring label.
func (d *BboxData) ContainsLabel(path, label string) bool {
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

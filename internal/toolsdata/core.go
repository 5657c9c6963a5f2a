// Package toolsdata holds the per-tool persistent state: the shared
// Options every tool carries, and the bbox/brush/attributes specifics
// that layer their own fields and behavior on top of a LabelInfo catalog
// and AnnotationsMap.
package toolsdata

// OutlineThicknessConversion scales a UI outline-thickness slider value
// down to the pixel width actually drawn.
const OutlineThicknessConversion = 10.0

// Options are the fields every tool's specific data embeds: visibility
// and the one-shot trigger flags the UI polls and clears after acting on.
type Options struct {
	Visible                  bool
	IsColorchangeTriggered   bool
	IsRedrawAnnosTriggered   bool
	IsExportTriggered        bool
	IsHistoryUpdateTriggered bool
}

// DefaultOptions returns an Options with Visible set, matching a freshly
// created tool.
func DefaultOptions() Options {
	return Options{Visible: true}
}

// TriggerRedrawAndHist sets both the history-update and redraw-annos
// flags, as every annotation-mutating operation must.
func (o Options) TriggerRedrawAndHist() Options {
	o.IsHistoryUpdateTriggered = true
	o.IsRedrawAnnosTriggered = true
	return o
}

// ImportExportTrigger are the one-shot flags a tool's coco import/export
// UI sets and the background worker clears after acting on them.
type ImportExportTrigger struct {
	ImportTriggered bool
	ExportTriggered bool
	FileDialogOpen  bool
}

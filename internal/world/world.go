// Package world holds the core's single mutable document: the currently
// loaded raster plus every tool's data, and the undo/redo history built on
// top of it.
package world

import (
	"github.com/bertiqwerty/rvimage-sub001/internal/geom"
	"github.com/bertiqwerty/rvimage-sub001/internal/toolsdata"
)

// Raster is a reference to the currently decoded image: its shape and the
// local path the image cache staged it at. The core never decodes pixels
// itself, it hands the path to whatever draws the picture.
type Raster struct {
	Path  string
	Shape geom.Shape
}

// MetaData is the project-level bookkeeping a World carries alongside the
// annotation state: which file is selected, which folder is open, and
// where exports land.
type MetaData struct {
	FileSelectedPath *string
	FileSelectedIdx  *int
	OpenedFolder     *string
	ExportFolder     *string
	ConnectionKind   toolsdata.ConnectionKind
}

// Clone returns a MetaData with its own copies of every optional field, so
// mutating the clone never reaches back into the original.
func (m MetaData) Clone() MetaData {
	clone := m
	clone.FileSelectedPath = clonePtr(m.FileSelectedPath)
	clone.FileSelectedIdx = clonePtr(m.FileSelectedIdx)
	clone.OpenedFolder = clonePtr(m.OpenedFolder)
	clone.ExportFolder = clonePtr(m.ExportFolder)
	return clone
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// World is everything the core needs to answer "what is currently shown
// and annotated": the raster, an optional zoom box into it, every tool's
// data, and the project metadata. Mutations go through its methods, each
// of which sets the dirty bit so a caller knows a redraw is due.
type World struct {
	raster Raster
	zoom   *geom.BB
	tools  toolsdata.ToolsDataMap
	meta   MetaData
	dirty  bool
}

// New builds a World for a freshly loaded raster with an empty tools-data
// map and no zoom.
func New(raster Raster, meta MetaData) World {
	return World{
		raster: raster,
		tools:  toolsdata.NewToolsDataMap(),
		meta:   meta,
		dirty:  true,
	}
}

// Clone returns a World that shares no mutable state with w: its tools-data
// map is copied entry by entry (each ToolSpecifics value already carries
// its own pointers the way the teacher's config structs are plain value
// types), and its metadata's optional fields are deep-copied.
func (w World) Clone() World {
	tools := make(toolsdata.ToolsDataMap, len(w.tools))
	for name, specifics := range w.tools {
		tools[name] = specifics
	}
	clone := w
	clone.tools = tools
	clone.meta = w.meta.Clone()
	clone.zoom = clonePtr(w.zoom)
	return clone
}

// Raster returns the current raster.
func (w World) Raster() Raster { return w.raster }

// Shape returns the shape of the current raster.
func (w World) Shape() geom.Shape { return w.raster.Shape }

// Zoom returns the current zoom box, or nil if unzoomed.
func (w World) Zoom() *geom.BB { return w.zoom }

// Tools returns the tools-data map. Callers that mutate a returned
// ToolSpecifics must write it back with SetToolSpecifics to keep the dirty
// bit accurate.
func (w World) Tools() toolsdata.ToolsDataMap { return w.tools }

// Meta returns the project metadata.
func (w World) Meta() MetaData { return w.meta }

// IsDirty reports whether the World has unacknowledged changes pending a
// redraw.
func (w World) IsDirty() bool { return w.dirty }

// ClearDirty resets the dirty bit after a caller has redrawn.
func (w *World) ClearDirty() { w.dirty = false }

// SetRaster replaces the current raster, e.g. after the image cache staged
// a new file, and marks the World dirty.
func (w *World) SetRaster(r Raster) {
	w.raster = r
	w.dirty = true
}

// SetZoom installs or clears the zoom box and marks the World dirty.
func (w *World) SetZoom(zoom *geom.BB) {
	w.zoom = zoom
	w.dirty = true
}

// SetToolSpecifics replaces one tool's data and marks the World dirty.
func (w *World) SetToolSpecifics(tool string, specifics toolsdata.ToolSpecifics) {
	w.tools[tool] = specifics
	w.dirty = true
}

// SetMeta replaces the project metadata and marks the World dirty.
func (w *World) SetMeta(meta MetaData) {
	w.meta = meta
	w.dirty = true
}

// RotateOnce applies one 90-degree CCW rotation step: every bbox/brush
// instance currently stored is rotated in place (geom.GeoFig/geom.Canvas
// via their own Rotate90CCW), the rot90 tool's NRotations counter
// advances, and the zoom box is cleared, mirroring the original's
// rot90_instannos_once plus key_pressed. A freshly opened file's
// annotations are never rotated again on load: they were already rotated
// progressively as NRotations advanced during live editing, so only the
// counter itself needs to be read back to know how many times the raw
// image still needs rotating for display.
func (w *World) RotateOnce() error {
	if specifics, ok := w.tools["bbox"]; ok && specifics.Bbox != nil {
		if err := specifics.Bbox.AnnotationsMap.RotateOnce(); err != nil {
			return err
		}
	}
	if specifics, ok := w.tools["brush"]; ok && specifics.Brush != nil {
		if err := specifics.Brush.AnnotationsMap.RotateOnce(); err != nil {
			return err
		}
	}
	if specifics, ok := w.tools["rot90"]; ok {
		w.tools["rot90"] = toolsdata.Rot90Specifics(specifics.Rot90.Increase())
	}
	w.zoom = nil
	w.dirty = true
	return nil
}

package world

import "github.com/bertiqwerty/rvimage-sub001/internal/rvlog"

// Record is one undo/redo snapshot: a World plus the bookkeeping History
// needs to know which folder and file it belonged to.
type Record struct {
	World        World
	Actor        string
	FileLabelIdx *int
	OpenedFolder *string
}

func newRecord(w World, actor string) Record {
	meta := w.Meta()
	return Record{
		World:        w,
		Actor:        actor,
		FileLabelIdx: clonePtr(meta.FileSelectedIdx),
		OpenedFolder: clonePtr(meta.OpenedFolder),
	}
}

func samePtrStr(a, b *string) bool {
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

// History is the undo/redo stack keyed by the active folder: pushing a
// record from a different folder than the stack's current tip drops every
// record from the previous folder, so stepping back never resurrects a
// World from a folder the user has since left.
type History struct {
	records    []Record
	currentIdx int // -1 means empty
}

// NewHistory returns an empty History.
func NewHistory() *History {
	return &History{currentIdx: -1}
}

func (h *History) clearOnFolderChange(currentFolder *string) {
	if currentFolder == nil {
		return
	}
	for i, r := range h.records {
		if samePtrStr(r.OpenedFolder, currentFolder) {
			h.records = h.records[i:]
			return
		}
	}
	h.records = nil
	h.currentIdx = -1
}

// CurrentRecord returns the record at the cursor, or false if History is
// empty.
func (h *History) CurrentRecord() (Record, bool) {
	if h.currentIdx < 0 {
		return Record{}, false
	}
	return h.records[h.currentIdx], true
}

// Push appends a World snapshot to the history. If the cursor is not at the
// tip, the tail is truncated first (a push after undo drops the redo
// branch). If the incoming record belongs to a different folder than the
// current tip, every record from the old folder is dropped first.
func (h *History) Push(w World, actor string) {
	record := newRecord(w, actor)
	rvlog.L().Sugar().Debugf("%s added to history", actor)
	h.clearOnFolderChange(record.OpenedFolder)
	if h.currentIdx < 0 {
		h.records = h.records[:0]
		h.records = append(h.records, record)
		h.currentIdx = 0
		return
	}
	if h.currentIdx < len(h.records)-1 {
		h.records = h.records[:h.currentIdx+1]
	}
	h.records = append(h.records, record)
	h.currentIdx++
}

// PrevWorld moves the cursor one step back and returns the World and file
// label index it recorded. It is a no-op, returning ok=false, if already at
// the start of the history or if openedFolder caused the history to clear.
func (h *History) PrevWorld(openedFolder *string) (World, *int, bool) {
	return h.changeWorld(openedFolder, func(idx int) bool { return idx > 0 }, func(idx int) int { return idx - 1 })
}

// NextWorld moves the cursor one step forward and returns the World and
// file label index it recorded. It is a no-op, returning ok=false, if
// already at the tip of the history.
func (h *History) NextWorld(openedFolder *string) (World, *int, bool) {
	return h.changeWorld(openedFolder, func(idx int) bool { return idx < len(h.records)-1 }, func(idx int) int { return idx + 1 })
}

func (h *History) changeWorld(openedFolder *string, canMove func(int) bool, move func(int) int) (World, *int, bool) {
	h.clearOnFolderChange(openedFolder)
	if h.currentIdx < 0 || !canMove(h.currentIdx) {
		return World{}, nil, false
	}
	h.currentIdx = move(h.currentIdx)
	record := h.records[h.currentIdx]
	return record.World.Clone(), clonePtr(record.FileLabelIdx), true
}

// Len returns the number of records currently held.
func (h *History) Len() int { return len(h.records) }

// Package catalog tracks the ordered, filterable list of image paths that
// back an open project, and the filter-expression language used to narrow
// it down to a working subset.
package catalog

import (
	"path"
	"sort"
	"strings"

	"github.com/bertiqwerty/rvimage-sub001/internal/toolsdata"
)

// PathPair is an image's path in the two forms the rest of the system
// needs: relative (used as the annotation maps' key and shown in the UI)
// and absolute (used to actually fetch the bytes).
type PathPair struct {
	Relative string
	Absolute string
}

// Filename returns the last path component of the relative path.
func (p PathPair) Filename() string { return path.Base(p.Relative) }

// SortOrder selects how Catalog.Sort orders the path list.
type SortOrder int

const (
	SortNatural SortOrder = iota
	SortAlphabetical
)

type filteredLabel struct {
	idx   int
	label string
}

// Catalog is the ordered set of an open project's image paths, together
// with whatever subset the active filter expression currently selects.
type Catalog struct {
	filePaths     []PathPair
	filteredLabel []filteredLabel
	folderLabel   string
}

// New builds a catalog from filePaths, naturally sorted by relative path,
// with every path initially passing the filter. folderPath, if non-empty,
// derives the short label shown for the open folder.
func New(filePaths []PathPair, folderPath string) *Catalog {
	c := &Catalog{filePaths: append([]PathPair(nil), filePaths...)}
	sortPairs(c.filePaths, false, naturalCompare)
	c.resetFilter()
	c.folderLabel = makeFolderLabel(folderPath)
	return c
}

func sortPairs(pairs []PathPair, byFilename bool, cmp func(string, string) int) {
	sort.SliceStable(pairs, func(i, j int) bool {
		if byFilename {
			return cmp(pairs[i].Filename(), pairs[j].Filename()) < 0
		}
		return cmp(pairs[i].Relative, pairs[j].Relative) < 0
	})
}

func (c *Catalog) resetFilter() {
	c.filteredLabel = listFileLabels(c.filePaths, func(string) bool { return true })
}

func listFileLabels(filePaths []PathPair, predicate func(string) bool) []filteredLabel {
	out := make([]filteredLabel, 0, len(filePaths))
	for i, p := range filePaths {
		if predicate(p.Relative) {
			out = append(out, filteredLabel{idx: i, label: path.Base(p.Relative)})
		}
	}
	return out
}

// makeFolderLabel derives the short label shown for the open folder: the
// last two path components joined by "/", or just the last if there is
// only one, or a fixed placeholder if no folder is open.
func makeFolderLabel(folderPath string) string {
	if folderPath == "" {
		return "no folder selected"
	}
	trimmed := strings.TrimRight(folderPath, "/")
	if trimmed == "" {
		return path.Base(folderPath)
	}
	last := path.Base(trimmed)
	parent := path.Dir(trimmed)
	if parent == "." || parent == "/" || parent == "" {
		return last
	}
	oneBeforeLast := path.Base(parent)
	return oneBeforeLast + "/" + last
}

// NaturalSort re-sorts the path list by natural order, optionally by
// filename rather than full relative path, and resets the filter to match
// every path.
func (c *Catalog) NaturalSort(byFilename bool) {
	sortPairs(c.filePaths, byFilename, naturalCompare)
	c.resetFilter()
}

// AlphabeticalSort re-sorts the path list lexicographically, optionally by
// filename, and resets the filter to match every path.
func (c *Catalog) AlphabeticalSort(byFilename bool) {
	sortPairs(c.filePaths, byFilename, alphabeticalCompare)
	c.resetFilter()
}

// Filter narrows the visible set to paths for which predicate returns true.
func (c *Catalog) Filter(predicate func(relative string) bool) {
	c.filteredLabel = listFileLabels(c.filePaths, predicate)
}

// FilterByExpr parses exprStr as a filter expression and applies it. A
// malformed expression is never fatal: per the filter language's contract,
// it falls back to a raw-substring match against exprStr.
func (c *Catalog) FilterByExpr(exprStr string, tdm toolsdata.ToolsDataMap, activeTool string) {
	pred, err := ParseFilter(exprStr)
	if err != nil {
		c.Filter(func(relative string) bool { return strings.Contains(relative, exprStr) })
		return
	}
	c.Filter(func(relative string) bool {
		ok, err := pred.Apply(relative, tdm, activeTool)
		if err != nil {
			return strings.Contains(relative, exprStr)
		}
		return ok
	})
}

// LenFiltered returns how many paths currently pass the filter.
func (c *Catalog) LenFiltered() int { return len(c.filteredLabel) }

// FilteredIdxFileLabelPairs returns the idx'th visible entry's path-list
// index and display label.
func (c *Catalog) FilteredIdxFileLabelPairs(idx int) (int, string) {
	e := c.filteredLabel[idx]
	return e.idx, e.label
}

// FileSelectedPath returns the PathPair behind the filteredLabelIdx'th
// visible entry.
func (c *Catalog) FileSelectedPath(filteredLabelIdx int) (PathPair, bool) {
	pathIdx, ok := c.labelIdx2PathIdx(filteredLabelIdx)
	if !ok {
		return PathPair{}, false
	}
	return c.filePaths[pathIdx], true
}

func (c *Catalog) labelIdx2PathIdx(labelIdx int) (int, bool) {
	if labelIdx < 0 || labelIdx >= len(c.filteredLabel) {
		return 0, false
	}
	return c.filteredLabel[labelIdx].idx, true
}

// FilteredFilePaths returns every PathPair currently passing the filter, in
// filtered order.
func (c *Catalog) FilteredFilePaths() []PathPair {
	out := make([]PathPair, len(c.filteredLabel))
	for i, e := range c.filteredLabel {
		out[i] = c.filePaths[e.idx]
	}
	return out
}

// FilteredAbsFilePaths is FilteredFilePaths projected to absolute paths.
func (c *Catalog) FilteredAbsFilePaths() []string {
	out := make([]string, len(c.filteredLabel))
	for i, e := range c.filteredLabel {
		out[i] = c.filePaths[e.idx].Absolute
	}
	return out
}

// FolderLabel returns the short label derived for the open folder.
func (c *Catalog) FolderLabel() string { return c.folderLabel }

// IdxOfFileLabel returns the filtered-view index whose display label
// equals fileLabel.
func (c *Catalog) IdxOfFileLabel(fileLabel string) (int, bool) {
	for i, e := range c.filteredLabel {
		if e.label == fileLabel {
			return i, true
		}
	}
	return 0, false
}

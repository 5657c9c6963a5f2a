// Package annotate implements the per-image instance-annotation store
// (parallel geometry/category/selection arrays) and the shared label
// catalog every tool's annotations index into.
package annotate

import (
	"encoding/json"

	"github.com/bertiqwerty/rvimage-sub001/internal/geom"
	"github.com/bertiqwerty/rvimage-sub001/internal/rverr"
)

// Annotate is the capability every instance geometry type (GeoFig, Canvas)
// must implement to live inside an InstanceAnnotations store.
type Annotate[T any] interface {
	IsContainedInImage(shape geom.Shape) bool
	Equals(other T) bool
	EnclosingBB() geom.BB
	Rotate90CCW(shape geom.Shape) (T, error)
}

// InstanceLabelDisplay controls whether newly added instances are kept in
// insertion order or resorted by geometry after every insert.
type InstanceLabelDisplay int

const (
	// DisplayNone preserves insertion order.
	DisplayNone InstanceLabelDisplay = iota
	// DisplayIndexLr sorts by left-to-right position of each element's
	// enclosing box, for deterministic on-screen ordering.
	DisplayIndexLr
)

// sortByDisplay reorders elts/catIdxs/selected in place according to d.
// DisplayNone is a no-op; DisplayIndexLr stable-sorts by each element's
// enclosing box X coordinate.
func sortByDisplay[T Annotate[T]](d InstanceLabelDisplay, elts []T, catIdxs []int, selected []bool) {
	if d != DisplayIndexLr || len(elts) < 2 {
		return
	}
	idx := make([]int, len(elts))
	for i := range idx {
		idx[i] = i
	}
	insertionSortIdx(idx, func(a, b int) bool {
		return elts[a].EnclosingBB().X < elts[b].EnclosingBB().X
	})
	newElts := make([]T, len(elts))
	newCats := make([]int, len(catIdxs))
	newSel := make([]bool, len(selected))
	for i, j := range idx {
		newElts[i] = elts[j]
		newCats[i] = catIdxs[j]
		newSel[i] = selected[j]
	}
	copy(elts, newElts)
	copy(catIdxs, newCats)
	copy(selected, newSel)
}

// insertionSortIdx stable-sorts idx in place by less, swapping adjacent
// elements only (O(n^2), fine for the handful of instances a single image
// carries).
func insertionSortIdx(idx []int, less func(a, b int) bool) {
	for i := 1; i < len(idx); i++ {
		for j := i; j > 0 && less(idx[j], idx[j-1]); j-- {
			idx[j], idx[j-1] = idx[j-1], idx[j]
		}
	}
}

// InstanceAnnotations is the per-image store of annotated instances: three
// parallel arrays of equal length (elements, category indices, selection
// bits). T is the geometry kind (geom.GeoFig for the bbox tool, geom.Canvas
// for the brush tool).
type InstanceAnnotations[T Annotate[T]] struct {
	elts     []T
	catIdxs  []int
	selected []bool
}

// New builds an InstanceAnnotations store, rejecting mismatched array
// lengths.
func New[T Annotate[T]](elts []T, catIdxs []int, selected []bool) (InstanceAnnotations[T], error) {
	if len(elts) != len(catIdxs) || len(elts) != len(selected) {
		return InstanceAnnotations[T]{}, rverr.Newf(rverr.Invariant, "annotate.New",
			"all inputs need same length, got %d, %d, %d for elts, cat_idxs, selected",
			len(elts), len(catIdxs), len(selected))
	}
	return InstanceAnnotations[T]{elts: elts, catIdxs: catIdxs, selected: selected}, nil
}

// FromEltsCats builds a store from elements and category indices, with
// every instance initially unselected.
func FromEltsCats[T Annotate[T]](elts []T, catIdxs []int) InstanceAnnotations[T] {
	return InstanceAnnotations[T]{elts: elts, catIdxs: catIdxs, selected: make([]bool, len(elts))}
}

// Len returns the number of instances.
func (a *InstanceAnnotations[T]) Len() int { return len(a.elts) }

// IsEmpty reports whether the store holds no instances.
func (a *InstanceAnnotations[T]) IsEmpty() bool { return len(a.elts) == 0 }

// Elts returns the store's elements. Callers must not mutate the slice.
func (a *InstanceAnnotations[T]) Elts() []T { return a.elts }

// CatIdxs returns the store's category indices. Callers must not mutate
// the slice.
func (a *InstanceAnnotations[T]) CatIdxs() []int { return a.catIdxs }

// SelectedMask returns the store's selection bitmap. Callers must not
// mutate the slice.
func (a *InstanceAnnotations[T]) SelectedMask() []bool { return a.selected }

// Edit returns a pointer to the element at eltIdx for in-place mutation.
func (a *InstanceAnnotations[T]) Edit(eltIdx int) *T { return &a.elts[eltIdx] }

// AddElt appends elt under catIdx, unselected, then resorts per display.
func (a *InstanceAnnotations[T]) AddElt(elt T, catIdx int, display InstanceLabelDisplay) {
	a.elts = append(a.elts, elt)
	a.catIdxs = append(a.catIdxs, catIdx)
	a.selected = append(a.selected, false)
	sortByDisplay(display, a.elts, a.catIdxs, a.selected)
}

// Extend appends every (elt, catIdx) pair whose elt is contained in
// shapeImage and not already present (by Equals), skipping the rest.
func (a *InstanceAnnotations[T]) Extend(elts []T, catIdxs []int, shapeImage geom.Shape, display InstanceLabelDisplay) {
	for i, elt := range elts {
		if !elt.IsContainedInImage(shapeImage) {
			continue
		}
		if containsElt(a.elts, elt) {
			continue
		}
		a.AddElt(elt, catIdxs[i], display)
	}
}

func containsElt[T Annotate[T]](elts []T, elt T) bool {
	for _, e := range elts {
		if e.Equals(elt) {
			return true
		}
	}
	return false
}

// Select marks eltIdx selected.
func (a *InstanceAnnotations[T]) Select(eltIdx int) { a.selected[eltIdx] = true }

// Deselect marks eltIdx unselected.
func (a *InstanceAnnotations[T]) Deselect(eltIdx int) { a.selected[eltIdx] = false }

// DeselectAll clears every selection bit.
func (a *InstanceAnnotations[T]) DeselectAll() {
	for i := range a.selected {
		a.selected[i] = false
	}
}

// ToggleSelection flips eltIdx's selection bit.
func (a *InstanceAnnotations[T]) ToggleSelection(eltIdx int) {
	a.selected[eltIdx] = !a.selected[eltIdx]
}

// SelectAll selects every instance.
func (a *InstanceAnnotations[T]) SelectAll() {
	for i := range a.selected {
		a.selected[i] = true
	}
}

// SelectLastN selects the final n instances.
func (a *InstanceAnnotations[T]) SelectLastN(n int) {
	for i := len(a.selected) - n; i < len(a.selected); i++ {
		if i >= 0 {
			a.selected[i] = true
		}
	}
}

// SelectedIndices returns the indices with their selection bit set.
func (a *InstanceAnnotations[T]) SelectedIndices() []int {
	var out []int
	for i, s := range a.selected {
		if s {
			out = append(out, i)
		}
	}
	return out
}

// LabelSelected assigns catIdx to every selected instance.
func (a *InstanceAnnotations[T]) LabelSelected(catIdx int) {
	for _, idx := range a.SelectedIndices() {
		a.catIdxs[idx] = catIdx
	}
}

// Clear empties every array.
func (a *InstanceAnnotations[T]) Clear() {
	a.elts = nil
	a.catIdxs = nil
	a.selected = nil
}

// ReduceCatIdxs decrements every category index greater than or equal to
// catIdx (and itself positive), the bookkeeping LabelInfo.Remove needs to
// keep every annotation's index valid after a label is deleted.
func (a *InstanceAnnotations[T]) ReduceCatIdxs(catIdx int) {
	for i, c := range a.catIdxs {
		if c >= catIdx && c > 0 {
			a.catIdxs[i] = c - 1
		}
	}
}

// Remove deletes the instance at eltIdx and returns it.
func (a *InstanceAnnotations[T]) Remove(eltIdx int) T {
	removed := a.elts[eltIdx]
	a.catIdxs = append(a.catIdxs[:eltIdx], a.catIdxs[eltIdx+1:]...)
	a.selected = append(a.selected[:eltIdx], a.selected[eltIdx+1:]...)
	a.elts = append(a.elts[:eltIdx], a.elts[eltIdx+1:]...)
	return removed
}

// RemoveMultiple deletes every instance at an index in indices and resets
// selection to all-false.
func (a *InstanceAnnotations[T]) RemoveMultiple(indices []int) {
	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		drop[i] = true
	}
	var newElts []T
	var newCats []int
	for i := range a.elts {
		if !drop[i] {
			newElts = append(newElts, a.elts[i])
			newCats = append(newCats, a.catIdxs[i])
		}
	}
	a.elts = newElts
	a.catIdxs = newCats
	a.selected = make([]bool, len(newElts))
}

// RemoveSelected deletes every currently selected instance.
func (a *InstanceAnnotations[T]) RemoveSelected() {
	a.RemoveMultiple(a.SelectedIndices())
}

// ClipboardData is a snapshot of the currently selected instances, used to
// copy annotations across images.
type ClipboardData[T Annotate[T]] struct {
	Elts    []T
	CatIdxs []int
}

// FromAnnotations captures the selected elements of a as clipboard data.
func FromAnnotations[T Annotate[T]](a *InstanceAnnotations[T]) ClipboardData[T] {
	var elts []T
	var cats []int
	for _, idx := range a.SelectedIndices() {
		elts = append(elts, a.elts[idx])
		cats = append(cats, a.catIdxs[idx])
	}
	return ClipboardData[T]{Elts: elts, CatIdxs: cats}
}

// instanceAnnotationsWire is the project-file JSON shape for a single
// image's instance store: parallel "elts"/"cat_idxs"/"selected_mask"
// arrays (spec.md §6).
type instanceAnnotationsWire[T Annotate[T]] struct {
	Elts         []T    `json:"elts"`
	CatIdxs      []int  `json:"cat_idxs"`
	SelectedMask []bool `json:"selected_mask"`
}

func (a InstanceAnnotations[T]) MarshalJSON() ([]byte, error) {
	elts, catIdxs, selected := a.elts, a.catIdxs, a.selected
	if elts == nil {
		elts = []T{}
	}
	if catIdxs == nil {
		catIdxs = []int{}
	}
	if selected == nil {
		selected = []bool{}
	}
	return json.Marshal(instanceAnnotationsWire[T]{Elts: elts, CatIdxs: catIdxs, SelectedMask: selected})
}

func (a *InstanceAnnotations[T]) UnmarshalJSON(data []byte) error {
	var w instanceAnnotationsWire[T]
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	built, err := New(w.Elts, w.CatIdxs, w.SelectedMask)
	if err != nil {
		return err
	}
	*a = built
	return nil
}

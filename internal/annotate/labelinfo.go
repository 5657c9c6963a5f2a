package annotate

import (
	"encoding/json"
	"math"
	"math/rand"

	"github.com/bertiqwerty/rvimage-sub001/internal/rverr"
)

// DefaultLabel is the sole label a freshly created LabelInfo carries.
const DefaultLabel = "object"

// LabelInfo is the shared category catalog every InstanceAnnotations store
// indexes into via category index (position here) vs. category id (the
// stable integer COCO uses).
type LabelInfo struct {
	NewLabel      string
	CatIdxCurrent int
	labels        []string
	colors        [][3]uint8
	catIDs        []uint32
}

// EmptyLabelInfo returns a LabelInfo with no labels at all.
func EmptyLabelInfo() LabelInfo {
	return LabelInfo{NewLabel: DefaultLabel}
}

// DefaultLabelInfo returns the catalog a fresh project starts with: a
// single label named DefaultLabel, colored white, with category id 1.
func DefaultLabelInfo() LabelInfo {
	return LabelInfo{
		NewLabel: DefaultLabel,
		labels:   []string{DefaultLabel},
		colors:   [][3]uint8{{255, 255, 255}},
		catIDs:   []uint32{1},
	}
}

func colorDist(a, b [3]uint8) float64 {
	sq := func(i int) float64 {
		d := float64(a[i]) - float64(b[i])
		return d * d
	}
	return math.Sqrt(sq(0) + sq(1) + sq(2))
}

func randomColor() [3]uint8 {
	return [3]uint8{uint8(rand.Intn(256)), uint8(rand.Intn(256)), uint8(rand.Intn(256))}
}

// argmaxColorDist picks, from picklist, the candidate with the largest
// minimum distance to any color already in legacylist.
func argmaxColorDist(picklist, legacylist [][3]uint8) [3]uint8 {
	bestIdx := 0
	bestMinDist := -1.0
	for i, pick := range picklist {
		minDist := 0.0
		if len(legacylist) > 0 {
			minDist = math.MaxFloat64
			for _, leg := range legacylist {
				if d := colorDist(leg, pick); d < minDist {
					minDist = d
				}
			}
		}
		if minDist > bestMinDist {
			bestMinDist = minDist
			bestIdx = i
		}
	}
	return picklist[bestIdx]
}

// newColor picks a color maximizing the minimum RGB distance from colors,
// as the argmax over 10 random candidates.
func newColor(colors [][3]uint8) [3]uint8 {
	var proposals [10][3]uint8
	for i := range proposals {
		proposals[i] = randomColor()
	}
	picklist := make([][3]uint8, len(proposals))
	copy(picklist, proposals[:])
	return argmaxColorDist(picklist, colors)
}

// Len returns the number of labels.
func (l *LabelInfo) Len() int { return len(l.labels) }

// IsEmpty reports whether the catalog has no labels.
func (l *LabelInfo) IsEmpty() bool { return len(l.labels) == 0 }

// Labels returns the catalog's label names. Callers must not mutate it.
func (l *LabelInfo) Labels() []string { return l.labels }

// Colors returns the catalog's colors. Callers must not mutate it.
func (l *LabelInfo) Colors() [][3]uint8 { return l.colors }

// CatIDs returns the catalog's stable category ids. Callers must not
// mutate it.
func (l *LabelInfo) CatIDs() []uint32 { return l.catIDs }

// Push appends a new label. If color or catID is nil/zero-valued it is
// chosen automatically: color by maximum-min-distance from the palette,
// catID as one past the current maximum (or 1 for the first label). It
// rejects duplicate labels, colors, or ids.
func (l *LabelInfo) Push(label string, color *[3]uint8, catID *uint32) error {
	const op = "annotate.LabelInfo.Push"
	for _, existing := range l.labels {
		if existing == label {
			return rverr.Newf(rverr.Invariant, op, "label %q already exists", label)
		}
	}
	var chosenColor [3]uint8
	if color != nil {
		for _, existing := range l.colors {
			if existing == *color {
				return rverr.Newf(rverr.Invariant, op, "color %v already exists", *color)
			}
		}
		chosenColor = *color
	} else {
		chosenColor = newColor(l.colors)
	}
	var chosenID uint32
	if catID != nil {
		for _, existing := range l.catIDs {
			if existing == *catID {
				return rverr.Newf(rverr.Invariant, op, "category id %d already exists", *catID)
			}
		}
		chosenID = *catID
	} else if len(l.catIDs) > 0 {
		max := l.catIDs[0]
		for _, id := range l.catIDs[1:] {
			if id > max {
				max = id
			}
		}
		chosenID = max + 1
	} else {
		chosenID = 1
	}
	l.labels = append(l.labels, label)
	l.colors = append(l.colors, chosenColor)
	l.catIDs = append(l.catIDs, chosenID)
	return nil
}

// Remove deletes the label at idx and returns its (label, color, catID).
func (l *LabelInfo) Remove(idx int) (string, [3]uint8, uint32) {
	label, color, catID := l.labels[idx], l.colors[idx], l.catIDs[idx]
	l.labels = append(l.labels[:idx], l.labels[idx+1:]...)
	l.colors = append(l.colors[:idx], l.colors[idx+1:]...)
	l.catIDs = append(l.catIDs[:idx], l.catIDs[idx+1:]...)
	return label, color, catID
}

// RemoveCatIdx removes the label at catIdx (refusing to empty the catalog
// entirely), adjusts CatIdxCurrent, and invokes reduceCatIdxs once per
// per-image annotations store so every store can reindex its category
// indices (see AnnotationsMap.ReduceAllCatIdxs).
func (l *LabelInfo) RemoveCatIdx(catIdx int, reduceCatIdxs func(catIdx int)) {
	if l.Len() <= 1 {
		return
	}
	l.Remove(catIdx)
	clamp := catIdx
	if clamp < 1 {
		clamp = 1
	}
	if l.CatIdxCurrent >= clamp {
		l.CatIdxCurrent--
	}
	if reduceCatIdxs != nil {
		reduceCatIdxs(catIdx)
	}
}

// labelInfoWire is LabelInfo's project-file JSON shape: exported field
// names for the catalog's parallel arrays, matching how the bbox/brush
// tool payloads name them (spec.md §6).
type labelInfoWire struct {
	Labels        []string   `json:"labels"`
	Colors        [][3]uint8 `json:"colors"`
	CatIDs        []uint32   `json:"cat_ids"`
	CatIdxCurrent int        `json:"cat_idx_current"`
	NewLabel      string     `json:"new_label"`
}

func (l LabelInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(labelInfoWire{
		Labels:        l.labels,
		Colors:        l.colors,
		CatIDs:        l.catIDs,
		CatIdxCurrent: l.CatIdxCurrent,
		NewLabel:      l.NewLabel,
	})
}

func (l *LabelInfo) UnmarshalJSON(data []byte) error {
	var w labelInfoWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	l.labels = w.Labels
	l.colors = w.Colors
	l.catIDs = w.CatIDs
	l.CatIdxCurrent = w.CatIdxCurrent
	l.NewLabel = w.NewLabel
	return nil
}

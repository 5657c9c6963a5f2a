package annotate

import (
	"encoding/json"

	"github.com/bertiqwerty/rvimage-sub001/internal/geom"
)

// Entry pairs a per-image instance-annotation store with that image's
// authoritative shape.
type Entry[T Annotate[T]] struct {
	Annotations InstanceAnnotations[T]
	Shape       geom.Shape
}

// AnnotationsMap maps a relative image path to its Entry. Keys are always
// stored relative to the owning project's path; rewriting absolute paths
// to relative ones on load/save is the caller's responsibility (it needs
// the project path, which this package does not know about).
type AnnotationsMap[T Annotate[T]] struct {
	entries map[string]Entry[T]
}

// NewAnnotationsMap returns an empty map.
func NewAnnotationsMap[T Annotate[T]]() AnnotationsMap[T] {
	return AnnotationsMap[T]{entries: make(map[string]Entry[T])}
}

// Get returns the entry for key, if any.
func (m *AnnotationsMap[T]) Get(key string) (Entry[T], bool) {
	e, ok := m.entries[key]
	return e, ok
}

// GetOrInsert returns the entry for key, creating an empty one sized shape
// if absent.
func (m *AnnotationsMap[T]) GetOrInsert(key string, shape geom.Shape) *Entry[T] {
	if m.entries == nil {
		m.entries = make(map[string]Entry[T])
	}
	e, ok := m.entries[key]
	if !ok {
		e = Entry[T]{Annotations: InstanceAnnotations[T]{}, Shape: shape}
		m.entries[key] = e
	}
	return &e
}

// Set overwrites the entry for key.
func (m *AnnotationsMap[T]) Set(key string, entry Entry[T]) {
	if m.entries == nil {
		m.entries = make(map[string]Entry[T])
	}
	m.entries[key] = entry
}

// Delete removes the entry for key, if present.
func (m *AnnotationsMap[T]) Delete(key string) {
	delete(m.entries, key)
}

// ContainsKey reports whether key has an entry.
func (m *AnnotationsMap[T]) ContainsKey(key string) bool {
	_, ok := m.entries[key]
	return ok
}

// Keys returns every key currently present, in unspecified order.
func (m *AnnotationsMap[T]) Keys() []string {
	out := make([]string, 0, len(m.entries))
	for k := range m.entries {
		out = append(out, k)
	}
	return out
}

// Len returns the number of entries.
func (m *AnnotationsMap[T]) Len() int { return len(m.entries) }

// ReduceAllCatIdxs decrements catIdxs >= catIdx (and > 0) in every entry's
// annotations, the fan-out LabelInfo.RemoveCatIdx's callback performs.
func (m *AnnotationsMap[T]) ReduceAllCatIdxs(catIdx int) {
	for k, e := range m.entries {
		e.Annotations.ReduceCatIdxs(catIdx)
		m.entries[k] = e
	}
}

// Mutate applies f to the entry at key and writes the result back. It is a
// no-op if key is absent.
func (m *AnnotationsMap[T]) Mutate(key string, f func(*Entry[T])) {
	e, ok := m.entries[key]
	if !ok {
		return
	}
	f(&e)
	m.entries[key] = e
}

// RotateOnce rotates every entry's instances one CCW step in place, the
// way the Rot90 tool's key-press handler rotates a file's stored
// annotations once per press (before advancing NRotations), and swaps
// each entry's recorded shape to match the rotated image frame.
func (m *AnnotationsMap[T]) RotateOnce() error {
	for _, key := range m.Keys() {
		e := m.entries[key]
		shape := e.Shape
		for i := 0; i < e.Annotations.Len(); i++ {
			elt := e.Annotations.Edit(i)
			rotated, err := (*elt).Rotate90CCW(shape)
			if err != nil {
				return err
			}
			*elt = rotated
		}
		e.Shape = shape.Rotate90CCW()
		m.entries[key] = e
	}
	return nil
}

// shapeWire matches spec.md §6's {"w":W,"h":H} shape tuple member.
type shapeWire struct {
	W uint32 `json:"w"`
	H uint32 `json:"h"`
}

// MarshalJSON emits each entry as the project file's two-element tuple:
// the instance-annotations store followed by its image shape.
func (m AnnotationsMap[T]) MarshalJSON() ([]byte, error) {
	out := make(map[string][2]json.RawMessage, len(m.entries))
	for k, e := range m.entries {
		annoJSON, err := json.Marshal(e.Annotations)
		if err != nil {
			return nil, err
		}
		shapeJSON, err := json.Marshal(shapeWire{W: e.Shape.W, H: e.Shape.H})
		if err != nil {
			return nil, err
		}
		out[k] = [2]json.RawMessage{annoJSON, shapeJSON}
	}
	return json.Marshal(out)
}

func (m *AnnotationsMap[T]) UnmarshalJSON(data []byte) error {
	var raw map[string][2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	entries := make(map[string]Entry[T], len(raw))
	for k, pair := range raw {
		var anno InstanceAnnotations[T]
		if err := json.Unmarshal(pair[0], &anno); err != nil {
			return err
		}
		var shape shapeWire
		if err := json.Unmarshal(pair[1], &shape); err != nil {
			return err
		}
		entries[k] = Entry[T]{Annotations: anno, Shape: geom.Shape{W: shape.W, H: shape.H}}
	}
	m.entries = entries
	return nil
}

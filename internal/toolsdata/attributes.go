package toolsdata

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/bertiqwerty/rvimage-sub001/internal/geom"
)

// ParamIntervalSeparator splits a filter's "name:lo-hi" attribute value
// into a numeric range, the way a plain "name:val" splits into an equality
// check.
const ParamIntervalSeparator = "-"

// ParamKind tags the dynamic type carried by a ParamVal.
type ParamKind int

const (
	ParamBool ParamKind = iota
	ParamInt
	ParamFloat
	ParamStr
)

// ParamVal is a per-file custom attribute value: exactly one of its typed
// fields is meaningful, selected by Kind. A nil pointer in that field means
// the value is present but unset, matching the original's Option<T> fields.
type ParamVal struct {
	Kind     ParamKind
	BoolVal  *bool
	IntVal   *int64
	FloatVal *float64
	StrVal   *string
}

// ParamMap is the set of attribute name/value pairs a single image (or the
// in-progress "current" attribute buffer) carries.
type ParamMap map[string]ParamVal

// AttrAnnoMap maps image path to (its attribute map, its shape).
type AttrAnnoMap map[string]AttrEntry

// AttrEntry pairs a per-image attribute map with that image's shape.
type AttrEntry struct {
	Attrs ParamMap
	Shape geom.Shape
}

// AttrOptions are the attributes tool's one-shot UI trigger flags.
type AttrOptions struct {
	IsAdditionTriggered  bool
	RenameSrcIdx         *int
	IsUpdateTriggered    bool
	ImportExport         ImportExportTrigger
	ExportOnlyOpenFolder bool
	RemovalIdx           *int
}

// AttributesData is a project's complete attributes-tool state: the
// ordered list of attribute names/default-values, per-image values, and
// the buffer the "new attribute" UI edits.
type AttributesData struct {
	attrNames          []string
	attrVals           []ParamVal
	NewAttrName        string
	NewAttrVal         ParamVal
	ToPropagateAttrVal []PropagateAttr
	newAttrValueBufs   []string
	AnnotationsMap     AttrAnnoMap
	Options            AttrOptions
	CurrentAttrMap     ParamMap
	ExportPath         ExportPath
}

// PropagateAttr names an attribute index and the value to copy across
// every selected image.
type PropagateAttr struct {
	Idx int
	Val ParamVal
}

// NewAttributesData returns an empty attributes tool state.
func NewAttributesData() AttributesData {
	return AttributesData{AnnotationsMap: AttrAnnoMap{}}
}

// AttrNames returns the catalog's attribute names. Push keeps them sorted;
// Rename changes a name in place and does not re-sort.
func (d *AttributesData) AttrNames() []string { return d.attrNames }

// AttrVals returns the catalog's default values, index-aligned with
// AttrNames.
func (d *AttributesData) AttrVals() []ParamVal { return d.attrVals }

// Push adds a new attribute, re-sorting the catalog by name afterwards so
// attrNames/attrVals/newAttrValueBufs stay index-aligned with the sorted
// order the UI displays. A duplicate name is silently ignored.
func (d *AttributesData) Push(name string, val ParamVal) {
	for _, existing := range d.attrNames {
		if existing == name {
			return
		}
	}
	d.attrNames = append(d.attrNames, name)
	d.attrVals = append(d.attrVals, val)
	d.newAttrValueBufs = append(d.newAttrValueBufs, "")

	idxs := make([]int, len(d.attrNames))
	for i := range idxs {
		idxs[i] = i
	}
	sort.Slice(idxs, func(i, j int) bool { return d.attrNames[idxs[i]] < d.attrNames[idxs[j]] })

	names := make([]string, len(idxs))
	vals := make([]ParamVal, len(idxs))
	bufs := make([]string, len(idxs))
	for i, j := range idxs {
		names[i] = d.attrNames[j]
		vals[i] = d.attrVals[j]
		bufs[i] = d.newAttrValueBufs[j]
	}
	d.attrNames, d.attrVals, d.newAttrValueBufs = names, vals, bufs
}

// RemoveAttr deletes the attribute at idx everywhere: the catalog, every
// per-image map, and the in-progress current map.
func (d *AttributesData) RemoveAttr(idx int) {
	name := d.attrNames[idx]
	for key, entry := range d.AnnotationsMap {
		delete(entry.Attrs, name)
		d.AnnotationsMap[key] = entry
	}
	d.attrNames = append(d.attrNames[:idx], d.attrNames[idx+1:]...)
	d.attrVals = append(d.attrVals[:idx], d.attrVals[idx+1:]...)
	d.newAttrValueBufs = append(d.newAttrValueBufs[:idx], d.newAttrValueBufs[idx+1:]...)
	if d.CurrentAttrMap != nil {
		delete(d.CurrentAttrMap, name)
	}
}

// Rename changes an attribute's name everywhere it is referenced. It is a
// no-op (besides the caller-visible ok=false) if toName already exists.
func (d *AttributesData) Rename(fromName, toName string) bool {
	for _, n := range d.attrNames {
		if n == toName {
			return false
		}
	}
	renameIn := func(m ParamMap) {
		if v, ok := m[fromName]; ok {
			delete(m, fromName)
			m[toName] = v
		}
	}
	for _, entry := range d.AnnotationsMap {
		renameIn(entry.Attrs)
	}
	if d.CurrentAttrMap != nil {
		renameIn(d.CurrentAttrMap)
	}
	for i, n := range d.attrNames {
		if n == fromName {
			d.attrNames[i] = toName
		}
	}
	return true
}

// SetAttrVal sets attribute idx's value for filename, creating its entry
// (sized imageShape) if absent.
func (d *AttributesData) SetAttrVal(filename string, idx int, val ParamVal, imageShape geom.Shape) {
	entry, ok := d.AnnotationsMap[filename]
	if !ok {
		entry = AttrEntry{Attrs: ParamMap{}, Shape: imageShape}
	}
	entry.Attrs[d.attrNames[idx]] = val
	d.AnnotationsMap[filename] = entry
}

// MergeMap merges other into the tool's annotations map: existing
// per-image maps get other's values layered on top (other wins on
// conflicting keys); new paths are inserted wholesale.
func (d *AttributesData) MergeMap(other AttrAnnoMap) {
	for filename, otherEntry := range other {
		if existing, ok := d.AnnotationsMap[filename]; ok {
			for k, v := range otherEntry.Attrs {
				existing.Attrs[k] = v
			}
			d.AnnotationsMap[filename] = existing
		} else {
			d.AnnotationsMap[filename] = otherEntry
		}
	}
}

// HasAnnos reports whether path has any attribute recorded at all.
func (d *AttributesData) HasAnnos(path string) bool {
	entry, ok := d.AnnotationsMap[path]
	return ok && len(entry.Attrs) > 0
}

// GetAttr returns the value of attrName for path, if recorded.
func (d *AttributesData) GetAttr(path, attrName string) (ParamVal, bool) {
	entry, ok := d.AnnotationsMap[path]
	if !ok {
		return ParamVal{}, false
	}
	v, ok := entry.Attrs[attrName]
	return v, ok
}

// attributesDataWire is AttributesData's project-file JSON shape, matching
// spec.md §6's attributes payload. newAttrValueBufs is UI editing scratch
// state, not persisted: a loaded project starts with an empty buffer.
type attributesDataWire struct {
	AttrNames          []string        `json:"attr_names"`
	AttrVals           []ParamVal      `json:"attr_vals"`
	NewAttrName        string          `json:"new_attr_name,omitempty"`
	NewAttrVal         ParamVal        `json:"new_attr_val"`
	ToPropagateAttrVal []PropagateAttr `json:"to_propagate_attr_val,omitempty"`
	AnnotationsMap     AttrAnnoMap     `json:"annotations_map"`
	Options            AttrOptions     `json:"options"`
	CurrentAttrMap     ParamMap        `json:"current_attr_map,omitempty"`
	ExportPath         ExportPath      `json:"export_path"`
}

func (d AttributesData) MarshalJSON() ([]byte, error) {
	return json.Marshal(attributesDataWire{
		AttrNames:          d.attrNames,
		AttrVals:           d.attrVals,
		NewAttrName:        d.NewAttrName,
		NewAttrVal:         d.NewAttrVal,
		ToPropagateAttrVal: d.ToPropagateAttrVal,
		AnnotationsMap:     d.AnnotationsMap,
		Options:            d.Options,
		CurrentAttrMap:     d.CurrentAttrMap,
		ExportPath:         d.ExportPath,
	})
}

func (d *AttributesData) UnmarshalJSON(data []byte) error {
	var w attributesDataWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	d.attrNames = w.AttrNames
	d.attrVals = w.AttrVals
	d.NewAttrName = w.NewAttrName
	d.NewAttrVal = w.NewAttrVal
	d.ToPropagateAttrVal = w.ToPropagateAttrVal
	d.newAttrValueBufs = make([]string, len(w.AttrNames))
	d.AnnotationsMap = w.AnnotationsMap
	d.Options = w.Options
	d.CurrentAttrMap = w.CurrentAttrMap
	d.ExportPath = w.ExportPath
	return nil
}

// String renders v the way a filter string-match compares against: the
// underlying value's canonical decimal/string form.
func (v ParamVal) String() string {
	switch v.Kind {
	case ParamBool:
		if v.BoolVal == nil {
			return ""
		}
		return strconv.FormatBool(*v.BoolVal)
	case ParamInt:
		if v.IntVal == nil {
			return ""
		}
		return strconv.FormatInt(*v.IntVal, 10)
	case ParamFloat:
		if v.FloatVal == nil {
			return ""
		}
		return strconv.FormatFloat(*v.FloatVal, 'g', -1, 64)
	default:
		if v.StrVal == nil {
			return ""
		}
		return *v.StrVal
	}
}

// CorrespondsToStr reports whether v's canonical string form equals s.
func (v ParamVal) CorrespondsToStr(s string) bool {
	return v.String() == s
}

// InDomainStr parses s as "lo-hi" and reports whether v's numeric value
// falls within [lo, hi]. It errors for non-numeric ParamVal kinds or a
// malformed interval.
func (v ParamVal) InDomainStr(s string) (bool, error) {
	lo, hi, found := strings.Cut(s, ParamIntervalSeparator)
	if !found {
		return false, fmt.Errorf("toolsdata.ParamVal.InDomainStr: %q is not an interval", s)
	}
	loVal, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	if err != nil {
		return false, err
	}
	hiVal, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err != nil {
		return false, err
	}
	var numeric float64
	switch v.Kind {
	case ParamInt:
		if v.IntVal == nil {
			return false, fmt.Errorf("toolsdata.ParamVal.InDomainStr: unset int value")
		}
		numeric = float64(*v.IntVal)
	case ParamFloat:
		if v.FloatVal == nil {
			return false, fmt.Errorf("toolsdata.ParamVal.InDomainStr: unset float value")
		}
		numeric = *v.FloatVal
	default:
		return false, fmt.Errorf("toolsdata.ParamVal.InDomainStr: non-numeric kind %d", v.Kind)
	}
	return numeric >= loVal && numeric <= hiVal, nil
}

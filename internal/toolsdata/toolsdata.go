package toolsdata

import (
	"encoding/json"

	"github.com/bertiqwerty/rvimage-sub001/internal/rverr"
)

// SpecificsKind tags which tool a ToolSpecifics value carries.
type SpecificsKind int

const (
	SpecificsBbox SpecificsKind = iota
	SpecificsBrush
	SpecificsAttributes
	SpecificsRot90
)

// ToolSpecifics is the tagged union of every tool's persistent data, the
// way a project's tools_data map is actually stored: one entry per tool
// name, each holding only the fields relevant to that tool.
type ToolSpecifics struct {
	Kind       SpecificsKind
	Bbox       *BboxData
	Brush      *BrushData
	Attributes *AttributesData
	Rot90      NRotations
}

// BboxSpecifics wraps a BboxData as a ToolSpecifics.
func BboxSpecifics(d BboxData) ToolSpecifics {
	return ToolSpecifics{Kind: SpecificsBbox, Bbox: &d}
}

// BrushSpecifics wraps a BrushData as a ToolSpecifics.
func BrushSpecifics(d BrushData) ToolSpecifics {
	return ToolSpecifics{Kind: SpecificsBrush, Brush: &d}
}

// AttributesSpecifics wraps an AttributesData as a ToolSpecifics.
func AttributesSpecifics(d AttributesData) ToolSpecifics {
	return ToolSpecifics{Kind: SpecificsAttributes, Attributes: &d}
}

// Rot90Specifics wraps an NRotations count as a ToolSpecifics.
func Rot90Specifics(n NRotations) ToolSpecifics {
	return ToolSpecifics{Kind: SpecificsRot90, Rot90: n}
}

// ToolsDataMap is a project's complete per-tool state, keyed by tool name
// ("bbox", "brush", "attributes", "rot90").
type ToolsDataMap map[string]ToolSpecifics

// NewToolsDataMap returns a map pre-populated with every tool's default
// state, the way a freshly opened project starts.
func NewToolsDataMap() ToolsDataMap {
	return ToolsDataMap{
		"bbox":       BboxSpecifics(NewBboxData()),
		"brush":      BrushSpecifics(NewBrushData()),
		"attributes": AttributesSpecifics(NewAttributesData()),
		"rot90":      Rot90Specifics(RotZero),
	}
}

// MarshalJSON emits each entry as its tool payload directly (spec.md §6:
// tools_data_map's values are tool-specific payloads, not a tagged-union
// wrapper); the map key alone tells a reader which tool a payload belongs
// to.
func (m ToolsDataMap) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(m))
	for key, specifics := range m {
		var (
			raw []byte
			err error
		)
		switch specifics.Kind {
		case SpecificsBbox:
			raw, err = json.Marshal(specifics.Bbox)
		case SpecificsBrush:
			raw, err = json.Marshal(specifics.Brush)
		case SpecificsAttributes:
			raw, err = json.Marshal(specifics.Attributes)
		case SpecificsRot90:
			raw, err = json.Marshal(specifics.Rot90)
		default:
			err = rverr.Newf(rverr.Invariant, "toolsdata.ToolsDataMap.MarshalJSON", "unknown specifics kind %d for key %q", specifics.Kind, key)
		}
		if err != nil {
			return nil, err
		}
		out[key] = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON dispatches each entry's payload shape by its map key
// ("bbox", "brush", "attributes", "rot90"), since the wire format carries
// no other type tag.
func (m *ToolsDataMap) UnmarshalJSON(data []byte) error {
	const op = "toolsdata.ToolsDataMap.UnmarshalJSON"
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(ToolsDataMap, len(raw))
	for key, payload := range raw {
		switch key {
		case "bbox":
			var d BboxData
			if err := json.Unmarshal(payload, &d); err != nil {
				return rverr.New(rverr.Parse, op, err)
			}
			out[key] = BboxSpecifics(d)
		case "brush":
			var d BrushData
			if err := json.Unmarshal(payload, &d); err != nil {
				return rverr.New(rverr.Parse, op, err)
			}
			out[key] = BrushSpecifics(d)
		case "attributes":
			var d AttributesData
			if err := json.Unmarshal(payload, &d); err != nil {
				return rverr.New(rverr.Parse, op, err)
			}
			out[key] = AttributesSpecifics(d)
		case "rot90":
			var n NRotations
			if err := json.Unmarshal(payload, &n); err != nil {
				return rverr.New(rverr.Parse, op, err)
			}
			out[key] = Rot90Specifics(n)
		default:
			return rverr.Newf(rverr.Parse, op, "unknown tool key %q", key)
		}
	}
	*m = out
	return nil
}

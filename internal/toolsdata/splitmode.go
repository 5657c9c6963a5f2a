package toolsdata

import "github.com/bertiqwerty/rvimage-sub001/internal/geom"

// SplitMode controls how dragging a selected box's edge affects its
// neighbors in the bbox tool: None resizes only the dragged box; Horizontal
// and Vertical additionally slide the touching edge of every box that
// shares the dragged edge's position, so a row (or column) of adjacent
// boxes can be resplit without leaving gaps or overlaps.
type SplitMode int

const (
	SplitNone SplitMode = iota
	SplitHorizontal
	SplitVertical
)

func (m SplitMode) zeroDirection(xShift, yShift int32) (int32, int32) {
	switch m {
	case SplitHorizontal:
		return 0, yShift
	case SplitVertical:
		return xShift, 0
	default:
		return xShift, yShift
	}
}

// resizeBBsByKey applies resize to every box in bbs whose candidateKey is
// close to a selected box's shifteeKey, i.e. every neighbor that shares the
// edge the user is dragging.
func resizeBBsByKey(bbs []geom.BB, selected []bool, shifteeKey, candidateKey func(geom.BB) int32, resize func(geom.BB) (geom.BB, bool)) []geom.BB {
	touch := make(map[int]bool)
	for shifteeIdx, isSel := range selected {
		if !isSel {
			continue
		}
		key := shifteeKey(bbs[shifteeIdx])
		for i, bb := range bbs {
			if candidateKey(bb) == key {
				touch[i] = true
			}
		}
	}
	out := make([]geom.BB, len(bbs))
	copy(out, bbs)
	for i := range out {
		if touch[i] {
			if resized, ok := resize(out[i]); ok {
				out[i] = resized
			}
		}
	}
	return out
}

// resizeSelected applies resize to every selected box, leaving the rest
// untouched.
func resizeSelected(bbs []geom.BB, selected []bool, resize func(geom.BB) (geom.BB, bool)) []geom.BB {
	out := make([]geom.BB, len(bbs))
	copy(out, bbs)
	for i, isSel := range selected {
		if !isSel {
			continue
		}
		if resized, ok := resize(out[i]); ok {
			out[i] = resized
		}
	}
	return out
}

// ShiftMinBBs moves the origin of every selected box by (xShift, yShift)
// (zeroed along the axis m doesn't act on) and, for Horizontal/Vertical
// modes, first shifts the far edge of every box whose far edge touches the
// selected box's origin edge so the split stays contiguous.
func (m SplitMode) ShiftMinBBs(xShift, yShift int32, selected []bool, bbs []geom.BB, shapeOrig geom.Shape) []geom.BB {
	xShift, yShift = m.zeroDirection(xShift, yShift)
	switch m {
	case SplitHorizontal:
		bbs = resizeBBsByKey(bbs, selected,
			func(bb geom.BB) int32 { return int32(bb.Y) },
			func(bb geom.BB) int32 { return int32(bb.YMax()) },
			func(bb geom.BB) (geom.BB, bool) { return bb.ShiftMax(xShift, yShift, shapeOrig) })
	case SplitVertical:
		bbs = resizeBBsByKey(bbs, selected,
			func(bb geom.BB) int32 { return int32(bb.X) },
			func(bb geom.BB) int32 { return int32(bb.XMax()) },
			func(bb geom.BB) (geom.BB, bool) { return bb.ShiftMax(xShift, yShift, shapeOrig) })
	}
	return resizeSelected(bbs, selected, func(bb geom.BB) (geom.BB, bool) {
		return bb.ShiftMin(xShift, yShift, shapeOrig)
	})
}

// ShiftMaxBBs grows or shrinks the far corner of every selected box by
// (xShift, yShift), mirroring ShiftMinBBs for the opposite edge.
func (m SplitMode) ShiftMaxBBs(xShift, yShift int32, selected []bool, bbs []geom.BB, shapeOrig geom.Shape) []geom.BB {
	xShift, yShift = m.zeroDirection(xShift, yShift)
	switch m {
	case SplitHorizontal:
		bbs = resizeBBsByKey(bbs, selected,
			func(bb geom.BB) int32 { return int32(bb.YMax()) },
			func(bb geom.BB) int32 { return int32(bb.Y) },
			func(bb geom.BB) (geom.BB, bool) { return bb.ShiftMin(xShift, yShift, shapeOrig) })
	case SplitVertical:
		bbs = resizeBBsByKey(bbs, selected,
			func(bb geom.BB) int32 { return int32(bb.XMax()) },
			func(bb geom.BB) int32 { return int32(bb.X) },
			func(bb geom.BB) (geom.BB, bool) { return bb.ShiftMin(xShift, yShift, shapeOrig) })
	}
	return resizeSelected(bbs, selected, func(bb geom.BB) (geom.BB, bool) {
		return bb.ShiftMax(xShift, yShift, shapeOrig)
	})
}

// GeoFollowMovement drags geo from mpoFrom to mpoTo under m's constraints:
// None moves geo freely (denying any out-of-image result); Horizontal and
// Vertical constrain a box drag to a single axis, resizing instead of
// translating once the box's far edge hits the image boundary.
func (m SplitMode) GeoFollowMovement(g geom.GeoFig, mpoFrom, mpoTo geom.PtF, origShape geom.Shape) (bool, geom.GeoFig) {
	if m == SplitNone {
		xShift := int32(mpoTo.X - mpoFrom.X)
		yShift := int32(mpoTo.Y - mpoFrom.Y)
		if moved, ok := g.Translate(xShift, yShift, origShape, geom.DenyMode()); ok {
			return true, moved
		}
		return false, g
	}
	if g.Kind != geom.GeoFigBox {
		return false, g
	}
	bb := g.Box
	minShape := geom.Shape{W: 1, H: 30}
	if m == SplitVertical {
		minShape = geom.Shape{W: 30, H: 1}
	}
	oobMode := geom.ResizeMode(minShape)
	if m == SplitHorizontal {
		mpoTo = geom.PtF{X: mpoFrom.X, Y: mpoTo.Y}
		yShift := mpoTo.Y - mpoFrom.Y
		switch {
		case yShift > 0 && bb.Y == 0:
			if shifted, ok := bb.ShiftMax(0, int32(yShift), origShape); ok {
				return true, geom.BoxFig(shifted)
			}
		case yShift < 0 && bb.YMax() == origShape.H:
			if shifted, ok := bb.ShiftMin(0, int32(yShift), origShape); ok {
				return true, geom.BoxFig(shifted)
			}
		default:
			if moved, ok := bb.FollowMovement(mpoFrom, mpoTo, origShape, oobMode); ok {
				return true, geom.BoxFig(moved)
			}
		}
		return false, g
	}
	// SplitVertical
	mpoTo = geom.PtF{X: mpoTo.X, Y: mpoFrom.Y}
	xShift := mpoTo.X - mpoFrom.X
	switch {
	case xShift > 0 && bb.X == 0:
		if shifted, ok := bb.ShiftMax(int32(xShift), 0, origShape); ok {
			return true, geom.BoxFig(shifted)
		}
	case xShift < 0 && bb.XMax() == origShape.W:
		if shifted, ok := bb.ShiftMin(int32(xShift), 0, origShape); ok {
			return true, geom.BoxFig(shifted)
		}
	default:
		if moved, ok := bb.FollowMovement(mpoFrom, mpoTo, origShape, oobMode); ok {
			return true, geom.BoxFig(moved)
		}
	}
	return false, g
}

package geom

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bertiqwerty/rvimage-sub001/internal/rverr"
)

// BB is an axis-aligned bounding box in pixel coordinates, (x, y) being the
// top-left corner and (w, h) the extent.
type BB struct {
	X, Y, W, H uint32
}

// BBFromArr builds a BB from [x, y, w, h].
func BBFromArr(a [4]uint32) BB {
	return BB{X: a[0], Y: a[1], W: a[2], H: a[3]}
}

// BBFromShape returns the full-image box for shape.
func BBFromShape(shape Shape) BB {
	return BB{X: 0, Y: 0, W: shape.W, H: shape.H}
}

// BBFromPoints builds the smallest box containing both p1 and p2, inclusive
// of both corners.
func BBFromPoints(p1, p2 PtI) BB {
	xMin, xMax := minU32(p1.X, p2.X), maxU32(p1.X, p2.X)
	yMin, yMax := minU32(p1.Y, p2.Y), maxU32(p1.Y, p2.Y)
	return BB{X: xMin, Y: yMin, W: xMax - xMin + 1, H: yMax - yMin + 1}
}

// BBFromVec builds the smallest enclosing box of points. It returns
// ErrEmptyGeometry if points is empty.
func BBFromVec(points []PtI) (BB, error) {
	if len(points) == 0 {
		return BB{}, rverr.New(rverr.Geometry, "geom.BBFromVec", rverr.ErrEmptyGeometry)
	}
	xMin, xMax := points[0].X, points[0].X
	yMin, yMax := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		xMin, xMax = minU32(xMin, p.X), maxU32(xMax, p.X)
		yMin, yMax = minU32(yMin, p.Y), maxU32(yMax, p.Y)
	}
	return BBFromPoints(PtI{X: xMin, Y: yMin}, PtI{X: xMax, Y: yMax}), nil
}

func minU32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

func maxU32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

// DistanceToBoundary returns the smallest distance from pos to any of the
// box's four edges (extended as infinite lines, not clipped to segments).
func (b BB) DistanceToBoundary(pos PtF) float32 {
	dx := absF32(float32(b.X) - pos.X)
	dw := absF32(float32(b.X+b.W) - pos.X)
	dy := absF32(float32(b.Y) - pos.Y)
	dh := absF32(float32(b.Y+b.H) - pos.Y)
	return minF32(minF32(dx, dw), minF32(dy, dh))
}

func absF32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func minF32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

// SplitHorizontally splits the box at row y into a top and bottom box.
func (b BB) SplitHorizontally(y uint32) (top, bottom BB) {
	top = BBFromArr([4]uint32{b.X, b.Y, b.W, y - b.Y})
	bottom = BBFromArr([4]uint32{b.X, y, b.W, b.YMax() - y})
	return
}

// SplitVertically splits the box at column x into a left and right box.
func (b BB) SplitVertically(x uint32) (left, right BB) {
	left = BBFromArr([4]uint32{b.X, b.Y, x - b.X, b.H})
	right = BBFromArr([4]uint32{x, b.Y, b.XMax() - x, b.H})
	return
}

// YMax returns the exclusive bottom edge, y + h.
func (b BB) YMax() uint32 { return b.Y + b.H }

// XMax returns the exclusive right edge, x + w.
func (b BB) XMax() uint32 { return b.X + b.W }

// Intersect returns the overlapping region of b and other. If they do not
// overlap the result is not empty but the box spanned by the two boxes'
// nearest pixels; callers that care should check HasOverlap first.
func (b BB) Intersect(other BB) BB {
	return BBFromPoints(
		PtI{X: maxU32(b.X, other.X), Y: maxU32(b.Y, other.Y)},
		PtI{X: minU32(b.XMax(), other.XMax()) - 1, Y: minU32(b.YMax(), other.YMax()) - 1},
	)
}

// IntersectOrSelf intersects with other if present, otherwise returns b.
func (b BB) IntersectOrSelf(other *BB) BB {
	if other != nil {
		return b.Intersect(*other)
	}
	return b
}

// MaxSquareDist returns the pair of points (one of b's corners, one from
// other) at greatest squared distance.
func (b BB) MaxSquareDist(other []PtI) (PtI, PtI, int64) {
	return MaxSquareDist(b.PointsIter(), other)
}

// MinMax returns (min, max) along the given axis: 0 for x, anything else
// for y.
func (b BB) MinMax(axis int) (uint32, uint32) {
	if axis == 0 {
		return b.X, b.X + b.W
	}
	return b.Y, b.Y + b.H
}

// PointsIter returns the box's four corners in the order:
//
//	0   3
//	v   ^
//	1 > 2
func (b BB) PointsIter() []PtI {
	return []PtI{b.Corner(0), b.Corner(1), b.Corner(2), b.Corner(3)}
}

// Corner returns the corner at idx in [0,4); it panics outside that range,
// matching the original's explicit 4-corner contract.
func (b BB) Corner(idx int) PtI {
	x, y, w, h := b.X, b.Y, b.W, b.H
	switch idx {
	case 0:
		return PtI{X: x, Y: y}
	case 1:
		return PtI{X: x, Y: y + h - 1}
	case 2:
		return PtI{X: x + w - 1, Y: y + h - 1}
	case 3:
		return PtI{X: x + w - 1, Y: y}
	default:
		panic(fmt.Sprintf("bounding boxes only have 4 corners, %d is out of bounds", idx))
	}
}

// OppositeCorner returns the corner diagonally opposite idx.
func (b BB) OppositeCorner(idx int) PtI {
	return b.Corner((idx + 2) % 4)
}

// Shape returns the box's extent.
func (b BB) Shape() Shape {
	return Shape{W: b.W, H: b.H}
}

// XRange returns [x, x+w).
func (b BB) XRange() (uint32, uint32) { return b.X, b.X + b.W }

// YRange returns [y, y+h).
func (b BB) YRange() (uint32, uint32) { return b.Y, b.Y + b.H }

// CenterF returns the box's center as floating coordinates.
func (b BB) CenterF() (float32, float32) {
	return float32(b.W)*0.5 + float32(b.X), float32(b.H)*0.5 + float32(b.Y)
}

// Center returns the box's center, rounded toward the top-left.
func (b BB) Center() PtI {
	return PtI{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Min returns the box's top-left corner.
func (b BB) Min() PtI { return PtI{X: b.X, Y: b.Y} }

// Max returns the box's bottom-right corner (exclusive).
func (b BB) Max() PtI { return PtI{X: b.X + b.W, Y: b.Y + b.H} }

// FollowMovement translates b by (to - from) under oobMode, the way a
// dragged vertex or box updates its owner's extent.
func (b BB) FollowMovement(from, to PtF, shape Shape, oobMode OutOfBoundsMode) (BB, bool) {
	xShift := int32(to.X - from.X)
	yShift := int32(to.Y - from.Y)
	return b.Translate(xShift, yShift, shape, oobMode)
}

// CoversY reports whether y falls within [b.Y, b.YMax()).
func (b BB) CoversY(y float32) bool {
	return float32(b.YMax()) > y && float32(b.Y) <= y
}

// CoversX reports whether x falls within [b.X, b.XMax()).
func (b BB) CoversX(x float32) bool {
	return float32(b.XMax()) > x && float32(b.X) <= x
}

// Contains reports whether p falls within the box, half-open on both axes.
func (b BB) Contains(p PtF) bool {
	return b.CoversX(p.X) && b.CoversY(p.Y)
}

// ContainsBB reports whether other lies entirely within b.
func (b BB) ContainsBB(other BB) bool {
	return b.Contains(other.Min().ToPtF()) && b.Contains(other.Corner(2).ToPtF())
}

// IsContainedInImage reports whether b fits entirely within shape.
func (b BB) IsContainedInImage(shape Shape) bool {
	return b.X+b.W <= shape.W && b.Y+b.H <= shape.H
}

// NewShapeChecked builds a box from signed extents under oobMode. Under
// Deny it returns ok=false if any extent is non-positive or the box would
// not fit in origImShape. Under Resize it clips and pads to MinShape,
// always succeeding.
func NewShapeChecked(x, y, w, h int32, origImShape Shape, oobMode OutOfBoundsMode) (BB, bool) {
	switch oobMode.Kind {
	case Deny:
		if x < 0 || y < 0 || w < 1 || h < 1 {
			return BB{}, false
		}
		bb := BB{X: uint32(x), Y: uint32(y), W: uint32(w), H: uint32(h)}
		if !bb.IsContainedInImage(origImShape) {
			return BB{}, false
		}
		return bb, true
	default:
		minShape := oobMode.MinShape
		clampNonNeg := func(v int32) uint32 {
			if v < 0 {
				return 0
			}
			return uint32(v)
		}
		xClamped := clampNonNeg(minI32(x, int32(origImShape.W)-int32(minShape.W)))
		yClamped := clampNonNeg(minI32(y, int32(origImShape.H)-int32(minShape.H)))
		wAdj := maxU32(uint32(w+minI32(x, 0)), minShape.W)
		hAdj := maxU32(uint32(h+minI32(y, 0)), minShape.H)
		bb := BB{X: xClamped, Y: yClamped, W: wAdj, H: hAdj}
		resized := bb.Intersect(BBFromShape(origImShape))
		resized.W = maxU32(resized.W, minShape.W)
		resized.H = maxU32(resized.H, minShape.H)
		return resized, true
	}
}

func minI32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// Translate shifts b by (xShift, yShift) under oobMode.
func (b BB) Translate(xShift, yShift int32, shape Shape, oobMode OutOfBoundsMode) (BB, bool) {
	x := int32(b.X) + xShift
	y := int32(b.Y) + yShift
	return NewShapeChecked(x, y, int32(b.W), int32(b.H), shape, oobMode)
}

// NewFitToImage clips (x, y, w, h) into shape, the way a freehand-drawn box
// that overshoots the canvas gets pulled back in.
func NewFitToImage(x, y, w, h int32, shape Shape) BB {
	clip := func(v, sizeBx, sizeIm int32) (int32, int32) {
		if v < 0 {
			sizeBx += v
			return 0, minI32(sizeBx, sizeIm)
		}
		return v, minI32(sizeBx+v, sizeIm) - v
	}
	x, w = clip(x, w, int32(shape.W))
	y, h = clip(y, h, int32(shape.H))
	return BBFromArr([4]uint32{uint32(x), uint32(y), uint32(w), uint32(h)})
}

// CenterScale scales b about its own center by factor, clipped to shape.
func (b BB) CenterScale(factor float32, shape Shape) BB {
	x, y, w, h := float32(b.X), float32(b.Y), float32(b.W), float32(b.H)
	cx, cy := w*0.5+x, h*0.5+y
	xTL := cx + factor*(x-cx)
	yTL := cy + factor*(y-cy)
	xBR := cx + factor*(x+w-cx)
	yBR := cy + factor*(y+h-cy)

	wOut := roundToInt32(xBR - xTL)
	hOut := roundToInt32(yBR - yTL)
	xOut := roundToInt32(xTL)
	yOut := roundToInt32(yTL)

	return NewFitToImage(xOut, yOut, wOut, hOut, shape)
}

func roundToInt32(v float32) int32 {
	if v >= 0 {
		return int32(v + 0.5)
	}
	return -int32(-v + 0.5)
}

// ShiftMax grows or shrinks b's extent by (xShift, yShift), keeping its
// origin fixed, under Deny semantics.
func (b BB) ShiftMax(xShift, yShift int32, shape Shape) (BB, bool) {
	w, h := int32(b.W)+xShift, int32(b.H)+yShift
	return NewShapeChecked(int32(b.X), int32(b.Y), w, h, shape, DenyMode())
}

// ShiftMin moves b's origin by (xShift, yShift) while keeping its opposite
// corner fixed, under Deny semantics.
func (b BB) ShiftMin(xShift, yShift int32, shape Shape) (BB, bool) {
	x, y := int32(b.X)+xShift, int32(b.Y)+yShift
	w, h := int32(b.W)-xShift, int32(b.H)-yShift
	return NewShapeChecked(x, y, w, h, shape, DenyMode())
}

// HasOverlap reports whether b and other share any area, checked both
// directions since one box's corners may all lie outside the other while
// the other's corners lie inside the first.
func (b BB) HasOverlap(other BB) bool {
	for _, c := range b.PointsIter() {
		if other.Contains(c.ToPtF()) {
			return true
		}
	}
	for _, c := range other.PointsIter() {
		if b.Contains(c.ToPtF()) {
			return true
		}
	}
	return false
}

// String renders b as "[x, y, w ,h]" (the last comma follows the space),
// matching the original's Display impl.
func (b BB) String() string {
	return fmt.Sprintf("[%d, %d, %d ,%d]", b.X, b.Y, b.W, b.H)
}

// ParseBB parses the "[x, y, w, h]" format String produces.
func ParseBB(s string) (BB, error) {
	const op = "geom.ParseBB"
	if len(s) < 2 {
		return BB{}, rverr.Newf(rverr.Parse, op, "could not parse %q into a bounding box", s)
	}
	parts := strings.Split(s[1:len(s)-1], ",")
	if len(parts) != 4 {
		return BB{}, rverr.Newf(rverr.Parse, op, "could not parse %q into a bounding box", s)
	}
	var vals [4]uint32
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 32)
		if err != nil {
			return BB{}, rverr.New(rverr.Parse, op, err)
		}
		vals[i] = uint32(v)
	}
	return BBFromArr(vals), nil
}

package geom

import (
	"math"
	"slices"

	"github.com/bertiqwerty/rvimage-sub001/internal/rverr"
)

// Canvas is a brush stroke rasterized into a dense boolean mask bounded by
// bb, along with the paint intensity it was stamped with.
type Canvas struct {
	Mask      []uint8
	BB        BB
	Intensity float32
}

// NewCanvas rasterizes line into a Canvas sized to its bounding box grown by
// its stroke radius.
func NewCanvas(line BrushLine) (Canvas, error) {
	if len(line.Line.Points) == 0 {
		return Canvas{}, rverr.New(rverr.Geometry, "geom.NewCanvas", rverr.ErrEmptyGeometry)
	}
	radius := int32(line.Thickness / 2)
	if radius < 0 {
		radius = 0
	}
	covered := RasterizeLine(line.Line.Points, radius)

	minX, minY := int32(math.MaxInt32), int32(math.MaxInt32)
	maxX, maxY := int32(math.MinInt32), int32(math.MinInt32)
	for px := range covered {
		if px[0] < minX {
			minX = px[0]
		}
		if px[0] > maxX {
			maxX = px[0]
		}
		if px[1] < minY {
			minY = px[1]
		}
		if px[1] > maxY {
			maxY = px[1]
		}
	}
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}

	bb := BB{X: uint32(minX), Y: uint32(minY), W: uint32(maxX-minX) + 1, H: uint32(maxY-minY) + 1}
	mask := make([]uint8, bb.W*bb.H)
	for px := range covered {
		x, y := px[0], px[1]
		if x < int32(bb.X) || y < int32(bb.Y) {
			continue
		}
		rx, ry := uint32(x)-bb.X, uint32(y)-bb.Y
		if rx < bb.W && ry < bb.H {
			mask[ry*bb.W+rx] = 1
		}
	}

	return Canvas{Mask: mask, BB: bb, Intensity: line.Intensity}, nil
}

// AccessMaskAbs reads the mask value at an absolute image coordinate,
// returning 0 when p lies outside bb.
func AccessMaskAbs(mask []uint8, bb BB, p PtI) uint8 {
	if !bb.Contains(p.ToPtF()) {
		return 0
	}
	return mask[(p.Y-bb.Y)*bb.W+(p.X-bb.X)]
}

// AccessMaskRel reads the mask value at a coordinate relative to the mask's
// own origin, returning 0 outside [0,w) x [0,h).
func AccessMaskRel(mask []uint8, x, y, w, h uint32) uint8 {
	if x < w && y < h {
		return mask[y*w+x]
	}
	return 0
}

// IsContainedInImage reports whether the canvas's bounding box fits within
// shape.
func (c Canvas) IsContainedInImage(shape Shape) bool {
	return c.BB.IsContainedInImage(shape)
}

// EnclosingBB returns the canvas's bounding box.
func (c Canvas) EnclosingBB() BB {
	return c.BB
}

// Equals reports structural equality between two canvases.
func (c Canvas) Equals(other Canvas) bool {
	return c.BB == other.BB && c.Intensity == other.Intensity && slices.Equal(c.Mask, other.Mask)
}

// Contains reports whether point falls on a foreground mask pixel.
func (c Canvas) Contains(point PtF) bool {
	pIdx := point.ToPtI()
	if !c.BB.Contains(pIdx.ToPtF()) {
		return false
	}
	return AccessMaskAbs(c.Mask, c.BB, pIdx) > 0
}

// DistToBoundary returns the distance from p to the nearest foreground/
// background transition in the mask, found by scanning every pixel's
// 4-neighborhood for a value change.
func (c Canvas) DistToBoundary(p PtF) float32 {
	minDist := float32(math.MaxFloat32)
	for y := uint32(0); y < c.BB.H; y++ {
		for x := uint32(0); x < c.BB.W; x++ {
			current := AccessMaskRel(c.Mask, x, y, c.BB.W, c.BB.H)
			neighbors := [4]uint8{
				AccessMaskRel(c.Mask, x+1, y, c.BB.W, c.BB.H),
				AccessMaskRel(c.Mask, wrappingSub(x), y, c.BB.W, c.BB.H),
				AccessMaskRel(c.Mask, x, y+1, c.BB.W, c.BB.H),
				AccessMaskRel(c.Mask, x, wrappingSub(y), c.BB.W, c.BB.H),
			}
			isBoundary := false
			for _, n := range neighbors {
				if n != current {
					isBoundary = true
					break
				}
			}
			if isBoundary {
				fx, fy := float32(x+c.BB.X), float32(y+c.BB.Y)
				dx, dy := p.X-fx, p.Y-fy
				dist := float32(math.Sqrt(float64(dx*dx + dy*dy)))
				if dist < minDist {
					minDist = dist
				}
			}
		}
	}
	return minDist
}

// wrappingSub mirrors Rust's u32::wrapping_sub(1): at 0 it wraps to
// MaxUint32, which AccessMaskRel then rejects as out of range.
func wrappingSub(x uint32) uint32 {
	return x - 1
}

// ColorWithIntensity scales each of color's channels by intensity,
// producing the effective paint color a canvas is rendered with.
func ColorWithIntensity(color [3]uint8, intensity float32) [3]uint8 {
	var out [3]uint8
	for i, c := range color {
		out[i] = uint8(float32(c) * intensity)
	}
	return out
}

// Rotate90CCW rotates the canvas 90 degrees counter-clockwise within an
// image of the given (pre-rotation) shape: a new mask is allocated sized
// to the rotated bounding box, and every foreground source pixel is placed
// at its rotated position (x, y) |-> (y, w-1-x), per-pixel, rather than
// rotating the dense mask buffer as a flat array.
func (c Canvas) Rotate90CCW(shape Shape) (Canvas, error) {
	newBB := c.BB.Rotate90CCW(shape)
	newMask := make([]uint8, newBB.W*newBB.H)
	for y := uint32(0); y < c.BB.H; y++ {
		for x := uint32(0); x < c.BB.W; x++ {
			v := AccessMaskRel(c.Mask, x, y, c.BB.W, c.BB.H)
			if v == 0 {
				continue
			}
			rot := Rotate90CCW(PtI{X: c.BB.X + x, Y: c.BB.Y + y}, shape)
			rx, ry := rot.X-newBB.X, rot.Y-newBB.Y
			if rx < newBB.W && ry < newBB.H {
				newMask[ry*newBB.W+rx] = v
			}
		}
	}
	return Canvas{Mask: newMask, BB: newBB, Intensity: c.Intensity}, nil
}

// CanvasesToMask renders a set of canvases onto a shared shape, returning a
// dense byte mask with fg marking every pixel covered by any canvas.
func CanvasesToMask(canvases []Canvas, shape Shape, fg uint8) []uint8 {
	out := make([]uint8, int(shape.W)*int(shape.H))
	for _, cv := range canvases {
		xLo, xHi := cv.BB.XRange()
		yLo, yHi := cv.BB.YRange()
		for y := yLo; y < yHi; y++ {
			for x := xLo; x < xHi; x++ {
				if AccessMaskAbs(cv.Mask, cv.BB, PtI{X: x, Y: y}) > 0 {
					out[int(y)*int(shape.W)+int(x)] = fg
				}
			}
		}
	}
	return out
}

// Package geom implements the axis-aligned box, polygon, point, and raster
// stroke primitives the annotation engine builds every tool's geometry on.
package geom

import (
	"fmt"

	"github.com/bertiqwerty/rvimage-sub001/internal/rverr"
)

// Number is the set of scalar types a Point can carry. The Rust original
// monomorphizes Point<T> over u32 and f32; Go generics cover the same two
// instantiations plus int where pixel-index math is more convenient.
type Number interface {
	~int | ~int32 | ~int64 | ~uint32 | ~float32 | ~float64
}

// Point is a 2D coordinate parameterized over its scalar type. PtI and PtF
// below are the two instantiations the rest of the package uses.
type Point[T Number] struct {
	X, Y T
}

// NewPoint builds a Point from two scalars.
func NewPoint[T Number](x, y T) Point[T] {
	return Point[T]{X: x, Y: y}
}

// LenSquare returns the squared length of the vector from the origin.
func (p Point[T]) LenSquare() T {
	return p.X*p.X + p.Y*p.Y
}

// DistSquare returns the squared distance between p and other.
func (p Point[T]) DistSquare(other Point[T]) T {
	d := Point[T]{X: p.X - other.X, Y: p.Y - other.Y}
	return d.LenSquare()
}

// PtI is a pixel-grid point with non-negative integer coordinates.
type PtI = Point[uint32]

// PtF is a sub-pixel point with floating coordinates.
type PtF = Point[float32]

// FromSigned builds a PtI from signed coordinates, rejecting negative values
// the way the original's PtI::from_signed does.
func FromSigned(x, y int32) (PtI, error) {
	if x < 0 || y < 0 {
		return PtI{}, rverr.New(rverr.Geometry, "geom.FromSigned",
			fmt.Errorf("cannot create point with negative coordinates, (%d, %d)", x, y))
	}
	return PtI{X: uint32(x), Y: uint32(y)}, nil
}

// ToPtF converts p (in this package, a PtI) to a PtF.
func (p Point[T]) ToPtF() PtF {
	return PtF{X: float32(p.X), Y: float32(p.Y)}
}

// ToPtI converts p (in this package, a PtF) to a PtI by truncation, the way
// the original's `From<PtF> for PtI` impl does.
func (p Point[T]) ToPtI() PtI {
	return PtI{X: uint32(p.X), Y: uint32(p.Y)}
}

// MaxSquareDist returns, over every pair drawn from points1 x points2, the
// pair at greatest squared distance and that distance. Both slices must be
// non-empty.
func MaxSquareDist(points1, points2 []PtI) (PtI, PtI, int64) {
	var bestP1, bestP2 PtI
	var bestD int64 = -1
	for _, p1 := range points1 {
		for _, p2 := range points2 {
			dx := int64(p2.X) - int64(p1.X)
			dy := int64(p2.Y) - int64(p1.Y)
			d := dx*dx + dy*dy
			if d > bestD {
				bestD = d
				bestP1, bestP2 = p1, p2
			}
		}
	}
	return bestP1, bestP2, bestD
}

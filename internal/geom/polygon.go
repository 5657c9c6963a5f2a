package geom

import (
	"encoding/json"
	"math"
)

// Polygon is a closed vertex loop with a cached enclosing box. The vertex
// slice is never empty; build one only through PolygonFromVec or FromBB.
type Polygon struct {
	points      []PtI
	enclosingBB BB
}

// FromBB builds a degenerate (rectangular) polygon from a box, walking its
// four corners in BB.PointsIter order.
func FromBB(bb BB) Polygon {
	return Polygon{points: bb.PointsIter(), enclosingBB: bb}
}

// PolygonFromVec builds a polygon from an explicit vertex loop. It returns
// ErrEmptyGeometry if points is empty.
func PolygonFromVec(points []PtI) (Polygon, error) {
	enclosing, err := BBFromVec(points)
	if err != nil {
		return Polygon{}, err
	}
	cp := make([]PtI, len(points))
	copy(cp, points)
	return Polygon{points: cp, enclosingBB: enclosing}, nil
}

// Points returns the polygon's vertex loop. Callers must not mutate it.
func (p Polygon) Points() []PtI { return p.points }

// EnclosingBB returns the polygon's cached enclosing box.
func (p Polygon) EnclosingBB() BB { return p.enclosingBB }

// EnclosingBBF returns the real-valued box enclosing the polygon's vertices,
// computed fresh via BBFFromVec rather than read from the cached integer
// enclosingBB. Pixel-space consumers (ContainsBB, ShapeCheck, HasOverlap,
// ...) keep using EnclosingBB; this accessor exists so enclosing_bb can
// equal BbF::from_vec(vertices) exactly, sub-pixel rounding included.
func (p Polygon) EnclosingBBF() BBF {
	pts := make([]PtF, len(p.points))
	for i, pt := range p.points {
		pts[i] = pt.ToPtF()
	}
	bbf, _ := BBFFromVec(pts)
	return bbf
}

// MarshalJSON emits only the vertex loop; EnclosingBB is recomputed on
// load rather than carried redundantly in the project file.
func (p Polygon) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.points)
}

func (p *Polygon) UnmarshalJSON(data []byte) error {
	var points []PtI
	if err := json.Unmarshal(data, &points); err != nil {
		return err
	}
	built, err := PolygonFromVec(points)
	if err != nil {
		return err
	}
	*p = built
	return nil
}

// MinEnclosingBB returns the top-left corner of the enclosing box.
func (p Polygon) MinEnclosingBB() PtI { return p.enclosingBB.Min() }

// IsContainedInImage reports whether the polygon's enclosing box fits
// within shape.
func (p Polygon) IsContainedInImage(shape Shape) bool {
	return p.enclosingBB.IsContainedInImage(shape)
}

// PointsIter returns the polygon's vertices, for call sites that want the
// slice-as-iterator style the original exposes.
func (p Polygon) PointsIter() []PtI { return p.points }

// MaxSquareDist returns the pair of points (one of the polygon's vertices,
// one from other) at greatest squared distance.
func (p Polygon) MaxSquareDist(other []PtI) (PtI, PtI, int64) {
	return MaxSquareDist(p.points, other)
}

// Translate shifts every vertex by (x, y), clamping each coordinate at zero,
// then re-validates the result against shape under oobMode.
func (p Polygon) Translate(x, y int32, shape Shape, oobMode OutOfBoundsMode) (Polygon, bool) {
	shifted := make([]PtI, len(p.points))
	for i, pt := range p.points {
		nx := int32(pt.X) + x
		ny := int32(pt.Y) + y
		if nx < 0 {
			nx = 0
		}
		if ny < 0 {
			ny = 0
		}
		shifted[i] = PtI{X: uint32(nx), Y: uint32(ny)}
	}
	enclosing, err := BBFromVec(shifted)
	if err != nil {
		return Polygon{}, false
	}
	return Polygon{points: shifted, enclosingBB: enclosing}.ShapeCheck(shape, oobMode)
}

// ShapeCheck validates the polygon against orig_im_shape under oobMode,
// clipping against a possibly-enlarged box under Resize and rejecting any
// vertex outside the image under Deny.
func (p Polygon) ShapeCheck(origImShape Shape, mode OutOfBoundsMode) (Polygon, bool) {
	shapeBB := BBFromShape(origImShape)
	if shapeBB.ContainsBB(p.enclosingBB) {
		return p, true
	}
	switch mode.Kind {
	case Deny:
		for _, pt := range p.points {
			if !shapeBB.Contains(pt.ToPtF()) {
				return Polygon{}, false
			}
		}
		return p, true
	default:
		shape := Shape{W: maxU32(origImShape.W, mode.MinShape.W), H: maxU32(origImShape.H, mode.MinShape.H)}
		bb := BBFromShape(shape)
		clipped, err := p.Intersect(bb)
		if err != nil {
			return Polygon{}, false
		}
		return clipped, true
	}
}

// lineseg returns the edge starting at vertex idx, wrapping to vertex 0
// after the last vertex.
func (p Polygon) lineseg(idx int) (PtI, PtI) {
	p2 := p.points[0]
	if idx < len(p.points)-1 {
		p2 = p.points[idx+1]
	}
	return p.points[idx], p2
}

func linesegStarting(idx int, vertices []PtF) (PtF, PtF) {
	if idx < len(vertices)-1 {
		return vertices[idx], vertices[idx+1]
	}
	return vertices[idx], vertices[0]
}

func distLinesegPoint(p1, p2, p PtF) float32 {
	dx, dy := p1.X-p2.X, p1.Y-p2.Y
	d := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if d == 0 {
		ddx, ddy := p.X-p1.X, p.Y-p1.Y
		return float32(math.Sqrt(float64(ddx*ddx + ddy*ddy)))
	}
	nx, ny := dx/d, dy/d
	projScalar := (p.X-p1.X)*nx + (p.Y-p1.Y)*ny
	projX, projY := p1.X+nx*projScalar, p1.Y+ny*projScalar
	if projX >= minF32(p1.X, p2.X) && projX <= maxF32(p1.X, p2.X) &&
		projY >= minF32(p1.Y, p2.Y) && projY <= maxF32(p1.Y, p2.Y) {
		ddx, ddy := p.X-projX, p.Y-projY
		return float32(math.Sqrt(float64(ddx*ddx + ddy*ddy)))
	}
	d1x, d1y := p.X-p1.X, p.Y-p1.Y
	d2x, d2y := p.X-p2.X, p.Y-p2.Y
	return float32(math.Sqrt(float64(minF32(d1x*d1x+d1y*d1y, d2x*d2x+d2y*d2y))))
}

func maxF32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func intersectYAxisParallel(p1, p2 PtF, xValue float32) (PtF, bool) {
	if absF32(p1.X-p2.X) > 1e-8 && minF32(p1.X, p2.X) < xValue && maxF32(p1.X, p2.X) > xValue {
		t := (xValue - p1.X) / (p2.X - p1.X)
		y := p1.Y + t*(p2.Y-p1.Y)
		return PtF{X: xValue, Y: y}, true
	}
	return PtF{}, false
}

func intersectXAxisParallel(p1, p2 PtF, yValue float32) (PtF, bool) {
	if absF32(p1.Y-p2.Y) > 1e-8 && minF32(p1.Y, p2.Y) < yValue && maxF32(p1.Y, p2.Y) > yValue {
		t := (yValue - p1.Y) / (p2.Y - p1.Y)
		x := p1.X + t*(p2.X-p1.X)
		return PtF{X: x, Y: yValue}, true
	}
	return PtF{}, false
}

// HasOverlap reports whether the polygon and box share any area.
func (p Polygon) HasOverlap(other BB) bool {
	if !p.enclosingBB.HasOverlap(other) {
		return false
	}
	if other.ContainsBB(p.enclosingBB) {
		return true
	}
	for _, c := range other.PointsIter() {
		if p.Contains(c.ToPtF()) {
			return true
		}
	}
	for _, v := range p.points {
		if other.Contains(v.ToPtF()) {
			return true
		}
	}
	return false
}

// DistanceToBoundary returns the minimum distance from point to any of the
// polygon's edges.
func (p Polygon) DistanceToBoundary(point PtF) float32 {
	min := float32(math.MaxFloat32)
	for i := range p.points {
		p1, p2 := p.lineseg(i)
		d := distLinesegPoint(p1.ToPtF(), p2.ToPtF(), point)
		if d < min {
			min = d
		}
	}
	return min
}

// Intersect clips the polygon against bb using the Sutherland-Hodgman
// algorithm, treating bb as the clip window.
// https://en.wikipedia.org/wiki/Sutherland%E2%80%93Hodgman_algorithm
func (p Polygon) Intersect(bb BB) (Polygon, error) {
	inVertices := make([]PtF, len(p.points))
	for i, pt := range p.points {
		inVertices[i] = pt.ToPtF()
	}

	clipEdge := func(selectCoord func(PtF) float32, intersect func(PtF, PtF, float32) (PtF, bool), cornerCoord float32, cmp func(v, corner float32) bool) {
		var outVertices []PtF
		for idx, v := range inVertices {
			if cmp(selectCoord(v), cornerCoord) {
				outVertices = append(outVertices, v)
			}
			a, b := linesegStarting(idx, inVertices)
			if ip, ok := intersect(a, b, cornerCoord); ok {
				outVertices = append(outVertices, ip)
			}
		}
		inVertices = outVertices
	}

	corners := bb.PointsIter()
	for cornerIdx, corner := range corners {
		cf := corner.ToPtF()
		switch cornerIdx {
		case 0: // left edge
			clipEdge(func(v PtF) float32 { return v.X }, intersectYAxisParallel, cf.X, func(x, xleft float32) bool { return x >= xleft })
		case 1: // bottom edge
			clipEdge(func(v PtF) float32 { return v.Y }, intersectXAxisParallel, cf.Y, func(y, ybtm float32) bool { return y <= ybtm })
		case 2: // right edge
			clipEdge(func(v PtF) float32 { return v.X }, intersectYAxisParallel, cf.X, func(x, xright float32) bool { return x <= xright })
		case 3: // top edge
			clipEdge(func(v PtF) float32 { return v.Y }, intersectXAxisParallel, cf.Y, func(y, ybtm float32) bool { return y >= ybtm })
		}
	}

	out := make([]PtI, len(inVertices))
	for i, v := range inVertices {
		out[i] = v.ToPtI()
	}
	return PolygonFromVec(out)
}

// Contains reports whether point lies inside the polygon, using a parity
// count of edge crossings of a vertical ray cast from point towards
// increasing y.
func (p Polygon) Contains(point PtF) bool {
	nCuts := 0
	for i := range p.points {
		a, b := p.lineseg(i)
		if ip, ok := intersectYAxisParallel(a.ToPtF(), b.ToPtF(), point.X); ok {
			if ip.Y >= point.Y {
				nCuts++
			}
		}
	}
	return nCuts%2 == 1
}

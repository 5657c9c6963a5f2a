package geom

import (
	"encoding/json"
	"slices"
)

// GeoFigKind discriminates the two shapes a GeoFig can hold.
type GeoFigKind int

const (
	// GeoFigBox marks a GeoFig holding a BB.
	GeoFigBox GeoFigKind = iota
	// GeoFigPoly marks a GeoFig holding a Polygon.
	GeoFigPoly
)

// GeoFig is a tagged union over the two geometry kinds a bounding-box tool
// can hold: a plain axis-aligned box, or a polygon once a box has been
// reshaped into an arbitrary outline.
type GeoFig struct {
	Kind GeoFigKind
	Box  BB
	Poly Polygon
}

// BoxFig wraps a BB as a GeoFig.
func BoxFig(bb BB) GeoFig {
	return GeoFig{Kind: GeoFigBox, Box: bb}
}

// PolyFig wraps a Polygon as a GeoFig.
func PolyFig(p Polygon) GeoFig {
	return GeoFig{Kind: GeoFigPoly, Poly: p}
}

// geoFigWire carries only the field relevant to Kind, since a zero-value
// Polygon does not round-trip through Polygon's own JSON codec (an empty
// vertex loop is rejected as malformed geometry).
type geoFigWire struct {
	Kind GeoFigKind `json:"kind"`
	Box  *BB        `json:"box,omitempty"`
	Poly *Polygon   `json:"poly,omitempty"`
}

func (g GeoFig) MarshalJSON() ([]byte, error) {
	w := geoFigWire{Kind: g.Kind}
	if g.Kind == GeoFigBox {
		w.Box = &g.Box
	} else {
		w.Poly = &g.Poly
	}
	return json.Marshal(w)
}

func (g *GeoFig) UnmarshalJSON(data []byte) error {
	var w geoFigWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	g.Kind = w.Kind
	if w.Kind == GeoFigBox && w.Box != nil {
		g.Box = *w.Box
	}
	if w.Kind == GeoFigPoly && w.Poly != nil {
		g.Poly = *w.Poly
	}
	return nil
}

// EnclosingBB returns the figure's bounding box, the original box itself
// for GeoFigBox or the cached enclosing box for GeoFigPoly.
func (g GeoFig) EnclosingBB() BB {
	if g.Kind == GeoFigBox {
		return g.Box
	}
	return g.Poly.EnclosingBB()
}

// AsPolygon converts the figure to its polygon representation, degenerating
// a box into its four corners.
func (g GeoFig) AsPolygon() Polygon {
	if g.Kind == GeoFigPoly {
		return g.Poly
	}
	return FromBB(g.Box)
}

// Contains reports whether point lies inside the figure.
func (g GeoFig) Contains(point PtF) bool {
	if g.Kind == GeoFigBox {
		return g.Box.Contains(point)
	}
	return g.Poly.Contains(point)
}

// HasOverlap reports whether the figure overlaps bb.
func (g GeoFig) HasOverlap(bb BB) bool {
	if g.Kind == GeoFigBox {
		return g.Box.HasOverlap(bb)
	}
	return g.Poly.HasOverlap(bb)
}

// DistanceToBoundary returns the distance from point to the figure's
// boundary.
func (g GeoFig) DistanceToBoundary(point PtF) float32 {
	if g.Kind == GeoFigBox {
		return g.Box.DistanceToBoundary(point)
	}
	return g.Poly.DistanceToBoundary(point)
}

// MaxSquareDist returns the pair of points, one from the figure and one
// from other, at greatest squared distance.
func (g GeoFig) MaxSquareDist(other []PtI) (PtI, PtI, int64) {
	if g.Kind == GeoFigBox {
		return g.Box.MaxSquareDist(other)
	}
	return g.Poly.MaxSquareDist(other)
}

// IsContainedInImage reports whether the figure fits within shape.
func (g GeoFig) IsContainedInImage(shape Shape) bool {
	if g.Kind == GeoFigBox {
		return g.Box.IsContainedInImage(shape)
	}
	return g.Poly.IsContainedInImage(shape)
}

// Translate shifts the figure by (x, y) under oobMode.
func (g GeoFig) Translate(x, y int32, shape Shape, oobMode OutOfBoundsMode) (GeoFig, bool) {
	if g.Kind == GeoFigBox {
		bb, ok := g.Box.Translate(x, y, shape, oobMode)
		return BoxFig(bb), ok
	}
	poly, ok := g.Poly.Translate(x, y, shape, oobMode)
	return PolyFig(poly), ok
}

// Rotate90CCW rotates the point p 90 degrees counter-clockwise
// within an image of the given (pre-rotation) shape, following
// (x, y) |-> (y, w-1-x).
func Rotate90CCW(p PtI, shape Shape) PtI {
	return PtI{X: p.Y, Y: shape.W - 1 - p.X}
}

// Rotate90CCW rotates every corner of a box and returns the smallest box
// enclosing the rotated corners.
func (b BB) Rotate90CCW(shape Shape) BB {
	corners := b.PointsIter()
	rotated := make([]PtI, len(corners))
	for i, c := range corners {
		rotated[i] = Rotate90CCW(c, shape)
	}
	bb, _ := BBFromVec(rotated)
	return bb
}

// Rotate90CCW rotates every vertex of the polygon 90 degrees
// counter-clockwise within an image of the given (pre-rotation) shape.
func (p Polygon) Rotate90CCW(shape Shape) (Polygon, error) {
	rotated := make([]PtI, len(p.points))
	for i, pt := range p.points {
		rotated[i] = Rotate90CCW(pt, shape)
	}
	return PolygonFromVec(rotated)
}

// Rotate90CCW rotates the figure 90 degrees counter-clockwise within an
// image of the given (pre-rotation) shape, dispatching to BB.Rotate90CCW
// or Polygon.Rotate90CCW by Kind.
func (g GeoFig) Rotate90CCW(shape Shape) (GeoFig, error) {
	if g.Kind == GeoFigBox {
		return BoxFig(g.Box.Rotate90CCW(shape)), nil
	}
	poly, err := g.Poly.Rotate90CCW(shape)
	if err != nil {
		return GeoFig{}, err
	}
	return PolyFig(poly), nil
}

// Equals reports structural equality between two polygons.
func (p Polygon) Equals(other Polygon) bool {
	return p.enclosingBB == other.enclosingBB && slices.Equal(p.points, other.points)
}

// Equals reports structural equality between two boxes.
func (b BB) Equals(other BB) bool {
	return b == other
}

// Equals reports structural equality between two geometry figures.
func (g GeoFig) Equals(other GeoFig) bool {
	if g.Kind != other.Kind {
		return false
	}
	if g.Kind == GeoFigBox {
		return g.Box.Equals(other.Box)
	}
	return g.Poly.Equals(other.Poly)
}

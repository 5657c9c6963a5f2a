package geom

import "math"

// Line is an ordered polyline, the raw input a brush stroke or freehand
// polygon edit accumulates before it is rasterized or closed into a
// Polygon.
type Line struct {
	Points []PtF
}

// NewLine returns an empty line.
func NewLine() Line {
	return Line{}
}

// Push appends a vertex.
func (l *Line) Push(p PtF) {
	l.Points = append(l.Points, p)
}

// LastPoint returns the final vertex, if any.
func (l Line) LastPoint() (PtF, bool) {
	if len(l.Points) == 0 {
		return PtF{}, false
	}
	return l.Points[len(l.Points)-1], true
}

// DistToPoint returns the distance from p to the line: to the nearest
// segment when the line has at least two points, to the lone vertex when it
// has exactly one, or false when it is empty.
func (l Line) DistToPoint(p PtF) (float32, bool) {
	switch {
	case len(l.Points) > 1:
		min := float32(math.MaxFloat32)
		for i := 0; i < len(l.Points)-1; i++ {
			d := distLinesegPoint(l.Points[i], l.Points[i+1], p)
			if d < min {
				min = d
			}
		}
		return min, true
	case len(l.Points) == 1:
		dx, dy := p.X-l.Points[0].X, p.Y-l.Points[0].Y
		return float32(math.Sqrt(float64(dx*dx + dy*dy))), true
	default:
		return 0, false
	}
}

// MaxDistSquared returns the largest squared distance between any two
// vertices on the line.
func (l Line) MaxDistSquared() (float32, bool) {
	if len(l.Points) == 0 {
		return 0, false
	}
	var max float32
	found := false
	for i := range l.Points {
		for j := range l.Points {
			d := l.Points[i].DistSquare(l.Points[j])
			if !found || d > max {
				max, found = d, true
			}
		}
	}
	return max, found
}

// Mean returns the arithmetic mean of the line's vertices.
func (l Line) Mean() (PtF, bool) {
	if len(l.Points) == 0 {
		return PtF{}, false
	}
	var sx, sy float32
	for _, p := range l.Points {
		sx += p.X
		sy += p.Y
	}
	n := float32(len(l.Points))
	return PtF{X: sx / n, Y: sy / n}, true
}

// PointsIter exposes the underlying vertex slice as a loop-friendly value.
func (l Line) PointsIter() []PtF { return l.Points }

// BrushLine is a freehand stroke: its polyline, the paint intensity
// (0 to 1, scaling the brush color's channels), and the stroke thickness in
// pixels.
type BrushLine struct {
	Line      Line
	Intensity float32
	Thickness float32
}

// IsContainedInImage reports whether every vertex of the stroke lies within
// shape.
func (b BrushLine) IsContainedInImage(shape Shape) bool {
	for _, p := range b.Line.Points {
		if !(p.X < float32(shape.W) && p.Y < float32(shape.H)) {
			return false
		}
	}
	return true
}

// BresenhamSegment yields the integer pixel coordinates on the line between
// p1 and p2 using Bresenham's algorithm.
func BresenhamSegment(p1, p2 PtF) [][2]int32 {
	x0, y0 := int32(math.Round(float64(p1.X))), int32(math.Round(float64(p1.Y)))
	x1, y1 := int32(math.Round(float64(p2.X))), int32(math.Round(float64(p2.Y)))

	dx := absI32(x1 - x0)
	dy := -absI32(y1 - y0)
	sx, sy := int32(1), int32(1)
	if x0 >= x1 {
		sx = -1
	}
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	var out [][2]int32
	x, y := x0, y0
	for {
		out = append(out, [2]int32{x, y})
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
	return out
}

func absI32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// RasterizeLine rasterizes every segment of points into a set of covered
// pixel coordinates, thickened by radius pixels (a filled disc stamped at
// each traversed point), the way a brush stroke is turned into a mask.
func RasterizeLine(points []PtF, radius int32) map[[2]int32]struct{} {
	covered := make(map[[2]int32]struct{})
	stampDisc := func(cx, cy int32) {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				if dx*dx+dy*dy <= radius*radius {
					covered[[2]int32{cx + dx, cy + dy}] = struct{}{}
				}
			}
		}
	}
	if len(points) == 1 {
		p := points[0]
		stampDisc(int32(math.Round(float64(p.X))), int32(math.Round(float64(p.Y))))
		return covered
	}
	for i := 0; i < len(points)-1; i++ {
		for _, px := range BresenhamSegment(points[i], points[i+1]) {
			stampDisc(px[0], px[1])
		}
	}
	return covered
}

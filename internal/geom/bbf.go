package geom

import "github.com/bertiqwerty/rvimage-sub001/internal/rverr"

// BBF is the real-valued counterpart to BB: an axis-aligned box whose
// corner and extent are sub-pixel floats, the way the original's BbF sits
// alongside BbI rather than being folded into it.
type BBF struct {
	X, Y, W, H float32
}

// ToBBF widens an integer box into its real-valued counterpart.
func (b BB) ToBBF() BBF {
	return BBF{X: float32(b.X), Y: float32(b.Y), W: float32(b.W), H: float32(b.H)}
}

// ToBB narrows a real-valued box to its integer counterpart by truncation,
// mirroring PtF.ToPtI.
func (b BBF) ToBB() BB {
	return BB{X: uint32(b.X), Y: uint32(b.Y), W: uint32(b.W), H: uint32(b.H)}
}

// BBFFromPoints builds the smallest real-valued box containing both p1 and
// p2. Unlike BBFromPoints it does not add the integer grid's +1 inclusive-
// pixel adjustment: a real-valued box's extent is simply max - min.
func BBFFromPoints(p1, p2 PtF) BBF {
	xMin, xMax := minF32(p1.X, p2.X), maxF32(p1.X, p2.X)
	yMin, yMax := minF32(p1.Y, p2.Y), maxF32(p1.Y, p2.Y)
	return BBF{X: xMin, Y: yMin, W: xMax - xMin, H: yMax - yMin}
}

// BBFFromVec builds the smallest enclosing real-valued box of points,
// matching the original's BbF::from_vec. It returns ErrEmptyGeometry if
// points is empty.
func BBFFromVec(points []PtF) (BBF, error) {
	if len(points) == 0 {
		return BBF{}, rverr.New(rverr.Geometry, "geom.BBFFromVec", rverr.ErrEmptyGeometry)
	}
	xMin, xMax := points[0].X, points[0].X
	yMin, yMax := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		xMin, xMax = minF32(xMin, p.X), maxF32(xMax, p.X)
		yMin, yMax = minF32(yMin, p.Y), maxF32(yMax, p.Y)
	}
	return BBFFromPoints(PtF{X: xMin, Y: yMin}, PtF{X: xMax, Y: yMax}), nil
}

// Equals reports structural equality between two real-valued boxes.
func (b BBF) Equals(other BBF) bool {
	return b == other
}

package geom

// Shape is a raster extent in pixels.
type Shape struct {
	W, H uint32
}

// NewShape builds a Shape.
func NewShape(w, h uint32) Shape {
	return Shape{W: w, H: h}
}

// OutOfBoundsModeKind selects how a geometry is repaired when a requested
// move or resize would push it outside the image.
type OutOfBoundsModeKind int

const (
	// Deny rejects any result that would not fully fit in the image.
	Deny OutOfBoundsModeKind = iota
	// Resize clips the result into the image, enforcing a minimum shape.
	Resize
)

// OutOfBoundsMode pairs the Deny/Resize kind with the minimum shape Resize
// must preserve. MinShape is unused under Deny.
type OutOfBoundsMode struct {
	Kind     OutOfBoundsModeKind
	MinShape Shape
}

// DenyMode is the zero-value convenience constructor for Deny.
func DenyMode() OutOfBoundsMode {
	return OutOfBoundsMode{Kind: Deny}
}

// ResizeMode builds a Resize mode with the given minimum shape.
func ResizeMode(minShape Shape) OutOfBoundsMode {
	return OutOfBoundsMode{Kind: Resize, MinShape: minShape}
}

// Rotate90CCW rotates a shape by 90 degrees, swapping width and height.
func (s Shape) Rotate90CCW() Shape {
	return Shape{W: s.H, H: s.W}
}

// ShapeF is the real-valued counterpart to Shape, the extent a zoomed or
// scaled view works in before it is rounded back to a pixel grid.
type ShapeF struct {
	W, H float32
}

// ToShapeF widens a Shape into its real-valued counterpart.
func (s Shape) ToShapeF() ShapeF {
	return ShapeF{W: float32(s.W), H: float32(s.H)}
}

package toolsdata

// NRotations counts how many 90-degree counter-clockwise rotations have
// been applied to an image, wrapping back to Zero after four.
type NRotations int

const (
	RotZero NRotations = iota
	RotOne
	RotTwo
	RotThree
)

// Increase advances n by one rotation, wrapping Three back to Zero.
func (n NRotations) Increase() NRotations {
	return (n + 1) % 4
}

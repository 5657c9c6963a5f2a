package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanvasContainsAndDistance(t *testing.T) {
	bl := BrushLine{
		Line:      Line{Points: []PtF{{X: 0, Y: 0}, {X: 10, Y: 10}}},
		Intensity: 0.5,
		Thickness: 3.0,
	}
	cv, err := NewCanvas(bl)
	assert.NoError(t, err)

	assert.True(t, cv.Contains(PtF{X: 0, Y: 0}))
	assert.True(t, cv.Contains(PtF{X: 5, Y: 5}))
	assert.True(t, cv.Contains(PtF{X: 9.9, Y: 9.9}))
	assert.False(t, cv.Contains(PtF{X: 10, Y: 0}))

	assert.InDelta(t, 1.0, cv.DistToBoundary(PtF{X: 5, Y: 5}), 1.2)
}

func TestAccessMaskRelBounds(t *testing.T) {
	mask := []uint8{1, 0, 0, 1}
	assert.Equal(t, uint8(1), AccessMaskRel(mask, 0, 0, 2, 2))
	assert.Equal(t, uint8(0), AccessMaskRel(mask, 5, 0, 2, 2))
}

func TestCanvasRotate90CCWFourTimesIsIdentity(t *testing.T) {
	bl := BrushLine{
		Line:      Line{Points: []PtF{{X: 2, Y: 1}, {X: 6, Y: 4}}},
		Intensity: 0.7,
		Thickness: 3.0,
	}
	cv, err := NewCanvas(bl)
	assert.NoError(t, err)

	shape := Shape{W: 20, H: 16}
	rotated := cv
	for i := 0; i < 4; i++ {
		rotated, err = rotated.Rotate90CCW(shape)
		assert.NoError(t, err)
		shape = shape.Rotate90CCW()
	}
	assert.True(t, cv.Equals(rotated))
}

func TestCanvasRotate90CCWMovesForegroundPixel(t *testing.T) {
	// A single foreground pixel at absolute (1, 0) in a 4-wide image
	// rotates to (0, 4-1-1) = (0, 2).
	cv := Canvas{Mask: []uint8{1}, BB: BB{X: 1, Y: 0, W: 1, H: 1}, Intensity: 1}
	shape := Shape{W: 4, H: 5}

	rotated, err := cv.Rotate90CCW(shape)
	assert.NoError(t, err)
	assert.Equal(t, BB{X: 0, Y: 2, W: 1, H: 1}, rotated.BB)
	assert.Equal(t, uint8(1), AccessMaskAbs(rotated.Mask, rotated.BB, PtI{X: 0, Y: 2}))
}

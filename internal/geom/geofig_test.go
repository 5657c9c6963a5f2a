package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBBRotate90CCWFourTimesIsIdentity(t *testing.T) {
	bb := BB{X: 2, Y: 3, W: 4, H: 5}
	shape := Shape{W: 20, H: 16}

	rotated := bb
	for i := 0; i < 4; i++ {
		rotated = rotated.Rotate90CCW(shape)
		shape = shape.Rotate90CCW()
	}
	assert.Equal(t, bb, rotated)
}

func TestPolygonRotate90CCWFourTimesIsIdentity(t *testing.T) {
	poly, err := PolygonFromVec([]PtI{{X: 5, Y: 5}, {X: 15, Y: 8}, {X: 5, Y: 15}})
	assert.NoError(t, err)
	shape := Shape{W: 20, H: 20}

	rotated := poly
	for i := 0; i < 4; i++ {
		rotated, err = rotated.Rotate90CCW(shape)
		assert.NoError(t, err)
		shape = shape.Rotate90CCW()
	}
	assert.True(t, poly.Equals(rotated))
}

func TestGeoFigRotate90CCWDispatchesByKind(t *testing.T) {
	shape := Shape{W: 10, H: 8}

	boxFig := BoxFig(BB{X: 1, Y: 2, W: 3, H: 4})
	rotatedBox, err := boxFig.Rotate90CCW(shape)
	assert.NoError(t, err)
	assert.Equal(t, GeoFigBox, rotatedBox.Kind)
	assert.Equal(t, boxFig.Box.Rotate90CCW(shape), rotatedBox.Box)

	poly, err := PolygonFromVec([]PtI{{X: 1, Y: 1}, {X: 4, Y: 1}, {X: 1, Y: 4}})
	assert.NoError(t, err)
	polyFig := PolyFig(poly)
	rotatedPoly, err := polyFig.Rotate90CCW(shape)
	assert.NoError(t, err)
	assert.Equal(t, GeoFigPoly, rotatedPoly.Kind)
	wantPoly, err := poly.Rotate90CCW(shape)
	assert.NoError(t, err)
	assert.True(t, wantPoly.Equals(rotatedPoly.Poly))
}

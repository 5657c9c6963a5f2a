package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolygonFromBBContains(t *testing.T) {
	poly := FromBB(BB{X: 5, Y: 5, W: 10, H: 10})
	assert.False(t, poly.Contains(PtI{X: 17, Y: 7}.ToPtF()))
	assert.True(t, poly.Contains(PtI{X: 7, Y: 7}.ToPtF()))

	assert.True(t, poly.HasOverlap(BB{X: 2, Y: 2, W: 33, H: 30}))
	assert.True(t, poly.HasOverlap(BB{X: 6, Y: 6, W: 7, H: 7}))
	assert.True(t, poly.HasOverlap(BB{X: 6, Y: 6, W: 15, H: 15}))
}

func TestPolygonTriangleContains(t *testing.T) {
	poly, err := PolygonFromVec([]PtI{{X: 5, Y: 5}, {X: 10, Y: 10}, {X: 5, Y: 10}})
	assert.NoError(t, err)
	assert.True(t, poly.Contains(PtI{X: 6, Y: 9}.ToPtF()))
	assert.False(t, poly.Contains(PtF{X: 6.0, Y: 5.99}))
	assert.True(t, poly.Contains(PtF{X: 6.0, Y: 6.01}))
}

func TestPolygonIntersect(t *testing.T) {
	poly, err := PolygonFromVec([]PtI{{X: 5, Y: 5}, {X: 15, Y: 15}, {X: 5, Y: 15}})
	assert.NoError(t, err)

	clipped, err := poly.Intersect(BB{X: 5, Y: 7, W: 10, H: 2})
	assert.NoError(t, err)
	assert.Equal(t, BB{X: 5, Y: 7, W: 4, H: 2}, clipped.EnclosingBB())
	assert.Equal(t, []PtI{{X: 7, Y: 7}, {X: 8, Y: 8}, {X: 5, Y: 8}, {X: 5, Y: 7}}, clipped.Points())

	clipped2, err := poly.Intersect(BB{X: 5, Y: 7, W: 2, H: 2})
	assert.NoError(t, err)
	assert.Equal(t, BB{X: 5, Y: 7, W: 2, H: 2}, clipped2.EnclosingBB())

	triangle, err := PolygonFromVec([]PtI{{X: 5, Y: 5}, {X: 10, Y: 10}, {X: 5, Y: 10}})
	assert.NoError(t, err)
	clippedTriangle, err := triangle.Intersect(BB{X: 2, Y: 2, W: 20, H: 20})
	assert.NoError(t, err)
	assert.Equal(t, triangle.Points(), clippedTriangle.Points())
}

func TestPolygonEnclosingBBFMatchesBBFFromVec(t *testing.T) {
	poly, err := PolygonFromVec([]PtI{{X: 5, Y: 5}, {X: 15, Y: 10}, {X: 5, Y: 15}})
	assert.NoError(t, err)

	vertices := make([]PtF, len(poly.Points()))
	for i, pt := range poly.Points() {
		vertices[i] = pt.ToPtF()
	}
	want, err := BBFFromVec(vertices)
	assert.NoError(t, err)
	assert.Equal(t, want, poly.EnclosingBBF())
}

func TestPolygonDistanceToBoundary(t *testing.T) {
	poly, err := PolygonFromVec([]PtI{{X: 5, Y: 5}, {X: 15, Y: 15}, {X: 5, Y: 15}})
	assert.NoError(t, err)

	assert.InDelta(t, 0.0, poly.DistanceToBoundary(PtF{X: 5, Y: 5}), 1e-6)
	assert.InDelta(t, 5.0, poly.DistanceToBoundary(PtF{X: 0, Y: 5}), 1e-6)
	assert.InDelta(t, 0.0, poly.DistanceToBoundary(PtF{X: 10, Y: 10}), 1e-6)
	assert.InDelta(t, 0.7071068, poly.DistanceToBoundary(PtF{X: 10, Y: 11}), 1e-5)
}

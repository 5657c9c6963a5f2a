package toolsdata

import (
	"testing"

	"github.com/bertiqwerty/rvimage-sub001/internal/geom"
	"github.com/stretchr/testify/assert"
)

func TestShiftHorizontalSplitKeepsNeighborsContiguous(t *testing.T) {
	bbs := make([]geom.BB, 10)
	for i := range bbs {
		bbs[i] = geom.BB{X: 0, Y: uint32(i * 10), W: 10, H: 10}
	}
	selected := make([]bool, len(bbs))
	selected[3] = true
	shapeOrig := geom.Shape{W: 100, H: 100}

	mins := SplitHorizontal.ShiftMinBBs(0, 1, selected, bbs, shapeOrig)
	maxs := SplitHorizontal.ShiftMaxBBs(0, 1, selected, bbs, shapeOrig)

	// the selected box (idx 3): max grows by 1, min moves down by 1
	assert.Equal(t, bbs[3].Y, maxs[3].Y)
	assert.Equal(t, bbs[3].YMax()+1, maxs[3].YMax())
	assert.Equal(t, bbs[3].Y+1, mins[3].Y)
	assert.Equal(t, bbs[3].YMax(), mins[3].YMax())

	// box whose successor (idx 3) is selected: untouched in maxs, its
	// bottom edge grows by 1 in mins to meet the selected box's new top
	assert.Equal(t, bbs[2].Y, maxs[2].Y)
	assert.Equal(t, bbs[2].YMax(), maxs[2].YMax())
	assert.Equal(t, bbs[2].Y, mins[2].Y)
	assert.Equal(t, bbs[2].YMax()+1, mins[2].YMax())

	// box whose predecessor (idx 3) is selected: untouched in mins, its
	// top edge grows by 1 in maxs to meet the selected box's new bottom
	assert.Equal(t, bbs[4].Y, mins[4].Y)
	assert.Equal(t, bbs[4].YMax(), mins[4].YMax())
	assert.Equal(t, bbs[4].Y+1, maxs[4].Y)
	assert.Equal(t, bbs[4].YMax(), maxs[4].YMax())

	// unrelated box (idx 0) is untouched either way
	assert.Equal(t, bbs[0], maxs[0])
	assert.Equal(t, bbs[0], mins[0])
}

func TestGeoFollowMovementNoneTranslatesFreely(t *testing.T) {
	g := geom.BoxFig(geom.BB{X: 10, Y: 10, W: 5, H: 5})
	moved, newG := SplitNone.GeoFollowMovement(g, geom.PtF{X: 0, Y: 0}, geom.PtF{X: 2, Y: 3}, geom.Shape{W: 100, H: 100})
	assert.True(t, moved)
	assert.Equal(t, uint32(12), newG.Box.X)
	assert.Equal(t, uint32(13), newG.Box.Y)
}

func TestGeoFollowMovementHorizontalResizesAtBoundary(t *testing.T) {
	g := geom.BoxFig(geom.BB{X: 10, Y: 0, W: 5, H: 10})
	moved, newG := SplitHorizontal.GeoFollowMovement(g, geom.PtF{X: 0, Y: 0}, geom.PtF{X: 0, Y: 3}, geom.Shape{W: 100, H: 100})
	assert.True(t, moved)
	assert.Equal(t, uint32(0), newG.Box.Y)
	assert.Equal(t, uint32(13), newG.Box.H)
}

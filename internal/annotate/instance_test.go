package annotate

import (
	"testing"

	"github.com/bertiqwerty/rvimage-sub001/internal/geom"
	"github.com/stretchr/testify/assert"
)

func boxFig(x, y, w, h uint32) geom.GeoFig {
	return geom.BoxFig(geom.BB{X: x, Y: y, W: w, H: h})
}

func TestInstanceAnnotationsLengthInvariant(t *testing.T) {
	_, err := New[geom.GeoFig]([]geom.GeoFig{boxFig(0, 0, 1, 1)}, []int{0, 1}, []bool{false})
	assert.Error(t, err)
}

func TestInstanceAnnotationsSelectionAndLabel(t *testing.T) {
	elts := []geom.GeoFig{boxFig(0, 0, 10, 10), boxFig(5, 5, 10, 10), boxFig(9, 9, 10, 10)}
	annos := FromEltsCats(elts, []int{0, 0, 0})

	assert.False(t, annos.SelectedMask()[1])
	annos.Select(1)
	annos.LabelSelected(3)
	assert.Equal(t, 3, annos.CatIdxs()[1])
	assert.Equal(t, 0, annos.CatIdxs()[0])

	annos.Deselect(1)
	assert.False(t, annos.SelectedMask()[1])
	annos.ToggleSelection(1)
	assert.True(t, annos.SelectedMask()[1])

	annos.RemoveSelected()
	assert.Equal(t, 2, annos.Len())
	for _, s := range annos.SelectedMask() {
		assert.False(t, s)
	}

	annos.RemoveSelected()
	assert.Equal(t, 2, annos.Len())

	annos.Remove(0)
	assert.Equal(t, 1, annos.Len())

	annos.Clear()
	assert.Equal(t, 0, annos.Len())
}

func TestInstanceAnnotationsReduceCatIdxs(t *testing.T) {
	annos := FromEltsCats([]geom.GeoFig{boxFig(0, 0, 1, 1), boxFig(1, 1, 1, 1)}, []int{2, 3})
	annos.ReduceCatIdxs(2)
	assert.Equal(t, []int{1, 2}, annos.CatIdxs())
}

func TestInstanceAnnotationsExtendDedupesAndRejectsOOB(t *testing.T) {
	existing := boxFig(0, 0, 5, 5)
	annos := FromEltsCats([]geom.GeoFig{existing}, []int{0})
	shape := geom.Shape{W: 10, H: 10}

	annos.Extend([]geom.GeoFig{existing, boxFig(20, 20, 5, 5), boxFig(1, 1, 2, 2)}, []int{0, 0, 1}, shape, DisplayNone)
	assert.Equal(t, 2, annos.Len())
}

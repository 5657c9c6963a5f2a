package toolsdata

import (
	"testing"

	"github.com/bertiqwerty/rvimage-sub001/internal/annotate"
	"github.com/bertiqwerty/rvimage-sub001/internal/geom"
	"github.com/stretchr/testify/assert"
)

func TestBboxSetAnnotationsMapRejectsOutOfBoundsCatIdx(t *testing.T) {
	d := NewBboxData()
	m := annotate.NewAnnotationsMap[geom.GeoFig]()
	annos := annotate.FromEltsCats([]geom.GeoFig{geom.BoxFig(geom.BB{X: 0, Y: 0, W: 5, H: 5})}, []int{7})
	m.Set("a.png", annotate.Entry[geom.GeoFig]{Annotations: annos, Shape: geom.Shape{W: 10, H: 10}})

	assert.Error(t, d.SetAnnotationsMap(m))
}

func TestBboxSetAnnotationsMapAccepts(t *testing.T) {
	d := NewBboxData()
	m := annotate.NewAnnotationsMap[geom.GeoFig]()
	annos := annotate.FromEltsCats([]geom.GeoFig{geom.BoxFig(geom.BB{X: 0, Y: 0, W: 5, H: 5})}, []int{0})
	m.Set("a.png", annotate.Entry[geom.GeoFig]{Annotations: annos, Shape: geom.Shape{W: 10, H: 10}})

	assert.NoError(t, d.SetAnnotationsMap(m))
	assert.Equal(t, 1, d.AnnotationsMap.Len())
}

package toolsdata

import (
	"testing"

	"github.com/bertiqwerty/rvimage-sub001/internal/geom"
	"github.com/stretchr/testify/assert"
)

func boolVal(b bool) ParamVal { return ParamVal{Kind: ParamBool, BoolVal: &b} }
func intVal(i int64) ParamVal { return ParamVal{Kind: ParamInt, IntVal: &i} }

func TestAttributesPushKeepsCatalogSorted(t *testing.T) {
	d := NewAttributesData()
	d.Push("c", intVal(2))
	d.Push("a", intVal(20))
	assert.Equal(t, []string{"a", "c"}, d.AttrNames())
	assert.Equal(t, int64(20), *d.AttrVals()[0].IntVal)
	assert.Equal(t, int64(2), *d.AttrVals()[1].IntVal)
}

func TestAttributesPushRejectsDuplicateName(t *testing.T) {
	d := NewAttributesData()
	d.Push("a", intVal(1))
	d.Push("a", intVal(2))
	assert.Len(t, d.AttrNames(), 1)
	assert.Equal(t, int64(1), *d.AttrVals()[0].IntVal)
}

func TestAttributesRemoveAttrClearsEverywhere(t *testing.T) {
	d := NewAttributesData()
	d.Push("flag", boolVal(true))
	d.SetAttrVal("img1.png", 0, boolVal(false), geom.Shape{W: 10, H: 10})
	d.RemoveAttr(0)
	assert.Empty(t, d.AttrNames())
	_, ok := d.AnnotationsMap["img1.png"].Attrs["flag"]
	assert.False(t, ok)
}

func TestAttributesRenameRejectsCollision(t *testing.T) {
	d := NewAttributesData()
	d.Push("a", intVal(1))
	d.Push("b", intVal(2))
	assert.False(t, d.Rename("a", "b"))
	assert.True(t, d.Rename("a", "c"))
	assert.ElementsMatch(t, []string{"c", "b"}, d.AttrNames())
}

func TestAttributesMergeMapInsertsAndOverlays(t *testing.T) {
	d := NewAttributesData()
	d.Push("flag", boolVal(true))
	d.SetAttrVal("img1.png", 0, boolVal(true), geom.Shape{W: 10, H: 10})

	other := AttrAnnoMap{
		"img1.png": {Attrs: ParamMap{"flag": boolVal(false)}},
		"img2.png": {Attrs: ParamMap{"flag": boolVal(true)}},
	}
	d.MergeMap(other)

	assert.Len(t, d.AnnotationsMap, 2)
	assert.False(t, *d.AnnotationsMap["img1.png"].Attrs["flag"].BoolVal)
	assert.True(t, *d.AnnotationsMap["img2.png"].Attrs["flag"].BoolVal)
}

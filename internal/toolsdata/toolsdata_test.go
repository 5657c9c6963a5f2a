package toolsdata

import (
	"testing"

	"github.com/bertiqwerty/rvimage-sub001/internal/annotate"
	"github.com/stretchr/testify/assert"
)

func TestNewToolsDataMapHasEveryTool(t *testing.T) {
	m := NewToolsDataMap()
	assert.Equal(t, SpecificsBbox, m["bbox"].Kind)
	assert.Equal(t, SpecificsBrush, m["brush"].Kind)
	assert.Equal(t, SpecificsAttributes, m["attributes"].Kind)
	assert.Equal(t, SpecificsRot90, m["rot90"].Kind)
	assert.Equal(t, annotate.DefaultLabel, m["bbox"].Bbox.LabelInfo.Labels()[0])
}

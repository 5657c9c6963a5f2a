package project

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bertiqwerty/rvimage-sub001/internal/annotate"
	"github.com/bertiqwerty/rvimage-sub001/internal/geom"
)

func TestSaveLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "proj.json")

	f := New(path)
	bbox, ok := f.Bbox()
	require.True(t, ok)
	entry := bbox.AnnotationsMap.GetOrInsert("img/a.png", geom.NewShape(64, 48))
	entry.Annotations.AddElt(geom.BoxFig(geom.BB{X: 1, Y: 2, W: 3, H: 4}), 0, annotate.DisplayNone)
	bbox.AnnotationsMap.Set("img/a.png", *entry)
	f.SetBbox(*bbox)

	require.NoError(t, Save(path, f))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, loaded.CurrentPrjPath)

	loadedBbox, ok := loaded.Bbox()
	require.True(t, ok)
	loadedEntry, ok := loadedBbox.AnnotationsMap.Get("img/a.png")
	require.True(t, ok)
	require.Equal(t, 1, loadedEntry.Annotations.Len())
	assert.Equal(t, geom.BB{X: 1, Y: 2, W: 3, H: 4}, loadedEntry.Annotations.Elts()[0].EnclosingBB())

	_, ok = loaded.Brush()
	assert.True(t, ok, "fresh project should still carry default brush tool data")
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

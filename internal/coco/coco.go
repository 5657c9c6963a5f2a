// Package coco converts between the engine's in-memory annotation stores
// and the COCO JSON convention: one Document per tool (bbox/polygon or
// brush), with box/polygon geometry emitted as COCO segmentation polygons
// and brush canvases emitted as image-frame RLE.
package coco

import (
	"github.com/bertiqwerty/rvimage-sub001/internal/annotate"
	"github.com/bertiqwerty/rvimage-sub001/internal/geom"
	"github.com/bertiqwerty/rvimage-sub001/internal/mask"
	"github.com/bertiqwerty/rvimage-sub001/internal/rverr"
	"github.com/bertiqwerty/rvimage-sub001/internal/toolsdata"
)

const createdBy = "created with rvimage-sub001"

// Info is COCO's top-level "info" block.
type Info struct {
	Description string `json:"description"`
}

// Image is one entry in COCO's "images" array.
type Image struct {
	ID       int    `json:"id"`
	Width    uint32 `json:"width"`
	Height   uint32 `json:"height"`
	FileName string `json:"file_name"`
}

// Category is one entry in COCO's "categories" array.
type Category struct {
	ID   uint32 `json:"id"`
	Name string `json:"name"`
}

// RLE is a brush canvas's image-frame mask, COCO's uncompressed RLE
// convention plus a custom intensity field this engine needs to round-trip
// brush paint strength.
type RLE struct {
	Counts    []int     `json:"counts"`
	Size      [2]uint32 `json:"size"`
	Intensity float32   `json:"intensity"`
}

// Annotation is one entry in COCO's "annotations" array for a box/polygon
// export: its segmentation is always a single polygon ring. Brush exports
// use RLEAnnotation instead, whose segmentation is an RLE.
type Annotation struct {
	ID         int         `json:"id"`
	ImageID    int         `json:"image_id"`
	CategoryID uint32      `json:"category_id"`
	Bbox       [4]float32  `json:"bbox"`
	Area       float32     `json:"area"`
	IsCrowd    int         `json:"iscrowd"`
	PolygonSeg [][]float32 `json:"segmentation,omitempty"`
}

// Document is a complete COCO export for one tool's annotations.
type Document struct {
	Info        Info         `json:"info"`
	Images      []Image      `json:"images"`
	Annotations []Annotation `json:"annotations"`
	Categories  []Category   `json:"categories"`
}

// RLEAnnotation mirrors Annotation but with RLE-shaped segmentation, the JSON
// wire format brush exports actually use (encoding/json has no sum type,
// so PolygonSeg/RLESeg are split into separate struct shapes at the
// marshal boundary rather than inside Annotation itself).
type RLEAnnotation struct {
	ID           int        `json:"id"`
	ImageID      int        `json:"image_id"`
	CategoryID   uint32     `json:"category_id"`
	Bbox         [4]float32 `json:"bbox"`
	Area         float32    `json:"area"`
	IsCrowd      int        `json:"iscrowd"`
	Segmentation RLE        `json:"segmentation"`
}

// RLEDocument is a complete COCO export for a brush tool's annotations.
type RLEDocument struct {
	Info        Info            `json:"info"`
	Images      []Image         `json:"images"`
	Annotations []RLEAnnotation `json:"annotations"`
	Categories  []Category      `json:"categories"`
}

func categoriesFromLabelInfo(li *annotate.LabelInfo) []Category {
	labels, ids := li.Labels(), li.CatIDs()
	cats := make([]Category, len(labels))
	for i := range labels {
		cats[i] = Category{ID: ids[i], Name: labels[i]}
	}
	return cats
}

func normalize(b [4]float32, shape geom.Shape, absolute bool) [4]float32 {
	if absolute {
		return b
	}
	w, h := float32(shape.W), float32(shape.H)
	if w == 0 || h == 0 {
		return b
	}
	return [4]float32{b[0] / w, b[1] / h, b[2] / w, b[3] / h}
}

// ExportBbox builds the COCO document for a bbox (box/polygon) tool,
// honoring data.Options.ExportAbsolute for whether bbox/segmentation
// coordinates are absolute pixels or normalized to the image shape.
func ExportBbox(data *toolsdata.BboxData) (Document, error) {
	doc := Document{Info: Info{Description: createdBy}, Categories: categoriesFromLabelInfo(&data.LabelInfo)}
	catIDs := data.LabelInfo.CatIDs()
	annoID := 0
	keys := data.AnnotationsMap.Keys()
	for imgID, key := range keys {
		entry, _ := data.AnnotationsMap.Get(key)
		doc.Images = append(doc.Images, Image{ID: imgID, Width: entry.Shape.W, Height: entry.Shape.H, FileName: key})
		for i, fig := range entry.Annotations.Elts() {
			catIdx := entry.Annotations.CatIdxs()[i]
			if catIdx < 0 || catIdx >= len(catIDs) {
				return Document{}, rverr.Newf(rverr.Invariant, "coco.ExportBbox", "category index %d out of bounds", catIdx)
			}
			bb := fig.EnclosingBB()
			bbF := normalize([4]float32{float32(bb.X), float32(bb.Y), float32(bb.W), float32(bb.H)}, entry.Shape, data.Options.ExportAbsolute)
			seg := polygonSegmentation(fig, entry.Shape, data.Options.ExportAbsolute)
			doc.Annotations = append(doc.Annotations, Annotation{
				ID:         annoID,
				ImageID:    imgID,
				CategoryID: catIDs[catIdx],
				Bbox:       bbF,
				Area:       bbF[2] * bbF[3],
				PolygonSeg: seg,
			})
			annoID++
		}
	}
	return doc, nil
}

// polygonSegmentation emits a single-ring polygon: the box's four corners
// for a GeoFigBox, or the polygon's own vertices for a GeoFigPoly.
func polygonSegmentation(fig geom.GeoFig, shape geom.Shape, absolute bool) [][]float32 {
	poly := fig.AsPolygon()
	pts := poly.Points()
	flat := make([]float32, 0, len(pts)*2)
	w, h := float32(shape.W), float32(shape.H)
	for _, p := range pts {
		x, y := float32(p.X), float32(p.Y)
		if !absolute && w != 0 && h != 0 {
			x, y = x/w, y/h
		}
		flat = append(flat, x, y)
	}
	return [][]float32{flat}
}

// ImportBbox inverts ExportBbox. When rot is non-zero, every imported
// vertex is rotated back into the pre-rotation frame before being stored,
// the canonicalization an image rotated at import-time requires.
func ImportBbox(doc Document, rot toolsdata.NRotations) (annotate.LabelInfo, toolsdata.BboxAnnoMap, error) {
	const op = "coco.ImportBbox"
	labelInfo := annotate.EmptyLabelInfo()
	catIDs := make([]uint32, 0, len(doc.Categories))
	for _, cat := range doc.Categories {
		if err := labelInfo.Push(cat.Name, nil, &cat.ID); err != nil {
			return annotate.LabelInfo{}, toolsdata.BboxAnnoMap{}, rverr.New(rverr.Parse, op, err)
		}
		catIDs = append(catIDs, cat.ID)
	}

	byID := make(map[int]Image, len(doc.Images))
	for _, img := range doc.Images {
		byID[img.ID] = img
	}

	annoMap := annotate.NewAnnotationsMap[geom.GeoFig]()
	for _, anno := range doc.Annotations {
		img, ok := byID[anno.ImageID]
		if !ok {
			return annotate.LabelInfo{}, toolsdata.BboxAnnoMap{}, rverr.Newf(rverr.Parse, op, "annotation references unknown image id %d", anno.ImageID)
		}
		shape := geom.NewShape(img.Width, img.Height)
		absolute := anno.Bbox[2] > 1 || anno.Bbox[3] > 1
		bbox := anno.Bbox
		if !absolute {
			bbox = [4]float32{bbox[0] * float32(img.Width), bbox[1] * float32(img.Height), bbox[2] * float32(img.Width), bbox[3] * float32(img.Height)}
		}
		bb := geom.BB{X: uint32(round(bbox[0])), Y: uint32(round(bbox[1])), W: uint32(round(bbox[2])), H: uint32(round(bbox[3]))}
		fig := geom.BoxFig(bb)
		if len(anno.PolygonSeg) == 1 && len(anno.PolygonSeg[0]) > 8 {
			fig = polygonFromSegmentation(anno.PolygonSeg[0], img, absolute)
		}
		fig, shape = canonicalizeRotation(fig, shape, rot)

		catIdx := catIdxOf(catIDs, labelInfo.Labels(), anno.CategoryID, doc.Categories)
		entry := annoMap.GetOrInsert(img.FileName, shape)
		entry.Annotations.AddElt(fig, catIdx, annotate.DisplayNone)
		annoMap.Set(img.FileName, *entry)
	}
	return labelInfo, annoMap, nil
}

func round(f float32) float32 {
	if f < 0 {
		return f - 0.5
	}
	return f + 0.5
}

func polygonFromSegmentation(flat []float32, img Image, absolute bool) geom.GeoFig {
	pts := make([]geom.PtI, 0, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		x, y := flat[i], flat[i+1]
		if !absolute {
			x, y = x*float32(img.Width), y*float32(img.Height)
		}
		pts = append(pts, geom.PtI{X: uint32(round(x)), Y: uint32(round(y))})
	}
	poly, err := geom.PolygonFromVec(pts)
	if err != nil {
		return geom.GeoFig{}
	}
	return geom.PolyFig(poly)
}

// canonicalizeRotation rotates fig back by (4-rot)%4 steps of 90 degrees,
// undoing the display rotation so stored coordinates are always in the
// image's original, unrotated frame.
func canonicalizeRotation(fig geom.GeoFig, shape geom.Shape, rot toolsdata.NRotations) (geom.GeoFig, geom.Shape) {
	steps := (4 - int(rot)) % 4
	for i := 0; i < steps; i++ {
		if fig.Kind == geom.GeoFigBox {
			fig = geom.BoxFig(fig.Box.Rotate90CCW(shape))
		} else {
			poly, err := fig.Poly.Rotate90CCW(shape)
			if err == nil {
				fig = geom.PolyFig(poly)
			}
		}
		shape = shape.Rotate90CCW()
	}
	return fig, shape
}

// catIdxOf resolves a COCO category_id to a catalog index: exact id match
// first, falling back to name lookup via the original categories slice,
// never failing the whole import on a collision.
func catIdxOf(catIDs []uint32, labels []string, id uint32, cats []Category) int {
	for i, cid := range catIDs {
		if cid == id {
			return i
		}
	}
	for _, cat := range cats {
		if cat.ID == id {
			for i, l := range labels {
				if l == cat.Name {
					return i
				}
			}
		}
	}
	return 0
}

// ExportBrush builds the COCO document for the brush tool: segmentation is
// an image-frame RLE instead of a polygon, with an extra intensity field.
func ExportBrush(data *toolsdata.BrushData) (RLEDocument, error) {
	doc := RLEDocument{Info: Info{Description: createdBy}, Categories: categoriesFromLabelInfo(&data.LabelInfo)}
	catIDs := data.LabelInfo.CatIDs()
	annoID := 0
	keys := data.AnnotationsMap.Keys()
	for imgID, key := range keys {
		entry, _ := data.AnnotationsMap.Get(key)
		doc.Images = append(doc.Images, Image{ID: imgID, Width: entry.Shape.W, Height: entry.Shape.H, FileName: key})
		for i, canvas := range entry.Annotations.Elts() {
			catIdx := entry.Annotations.CatIdxs()[i]
			if catIdx < 0 || catIdx >= len(catIDs) {
				return RLEDocument{}, rverr.Newf(rverr.Invariant, "coco.ExportBrush", "category index %d out of bounds", catIdx)
			}
			localCounts, err := mask.Encode(canvas.Mask, int(canvas.BB.W), int(canvas.BB.H))
			if err != nil {
				return RLEDocument{}, rverr.New(rverr.Invariant, "coco.ExportBrush", err)
			}
			counts, err := mask.BBToImage(localCounts, int(canvas.BB.X), int(canvas.BB.Y), int(canvas.BB.W), int(canvas.BB.H), int(entry.Shape.W), int(entry.Shape.H))
			if err != nil {
				return RLEDocument{}, rverr.New(rverr.Invariant, "coco.ExportBrush", err)
			}
			isCrowd := 0
			if data.Options.PerFileCrowd {
				isCrowd = 1
			}
			doc.Annotations = append(doc.Annotations, RLEAnnotation{
				ID:         annoID,
				ImageID:    imgID,
				CategoryID: catIDs[catIdx],
				Bbox:       [4]float32{float32(canvas.BB.X), float32(canvas.BB.Y), float32(canvas.BB.W), float32(canvas.BB.H)},
				Area:       float32(canvas.BB.W * canvas.BB.H),
				IsCrowd:    isCrowd,
				Segmentation: RLE{
					Counts:    counts,
					Size:      [2]uint32{entry.Shape.W, entry.Shape.H},
					Intensity: canvas.Intensity,
				},
			})
			annoID++
		}
	}
	return doc, nil
}

// ImportBrush inverts ExportBrush.
func ImportBrush(doc RLEDocument) (annotate.LabelInfo, toolsdata.BrushAnnoMap, error) {
	const op = "coco.ImportBrush"
	labelInfo := annotate.EmptyLabelInfo()
	catIDs := make([]uint32, 0, len(doc.Categories))
	for _, cat := range doc.Categories {
		if err := labelInfo.Push(cat.Name, nil, &cat.ID); err != nil {
			return annotate.LabelInfo{}, toolsdata.BrushAnnoMap{}, rverr.New(rverr.Parse, op, err)
		}
		catIDs = append(catIDs, cat.ID)
	}
	byID := make(map[int]Image, len(doc.Images))
	for _, img := range doc.Images {
		byID[img.ID] = img
	}
	annoMap := annotate.NewAnnotationsMap[geom.Canvas]()
	for _, anno := range doc.Annotations {
		img, ok := byID[anno.ImageID]
		if !ok {
			return annotate.LabelInfo{}, toolsdata.BrushAnnoMap{}, rverr.Newf(rverr.Parse, op, "annotation references unknown image id %d", anno.ImageID)
		}
		bx, by := int(round(anno.Bbox[0])), int(round(anno.Bbox[1]))
		bw, bh := int(round(anno.Bbox[2])), int(round(anno.Bbox[3]))
		localCounts, err := mask.ImageToBB(anno.Segmentation.Counts, bx, by, bw, bh, int(img.Width), int(img.Height))
		if err != nil {
			return annotate.LabelInfo{}, toolsdata.BrushAnnoMap{}, rverr.New(rverr.Invariant, op, err)
		}
		dense, err := mask.Decode(localCounts, bw, bh)
		if err != nil {
			return annotate.LabelInfo{}, toolsdata.BrushAnnoMap{}, rverr.New(rverr.Invariant, op, err)
		}
		canvas := geom.Canvas{
			Mask:      dense,
			BB:        geom.BB{X: uint32(bx), Y: uint32(by), W: uint32(bw), H: uint32(bh)},
			Intensity: anno.Segmentation.Intensity,
		}
		catIdx := catIdxOf(catIDs, labelInfo.Labels(), anno.CategoryID, doc.Categories)
		shape := geom.NewShape(img.Width, img.Height)
		entry := annoMap.GetOrInsert(img.FileName, shape)
		entry.Annotations.AddElt(canvas, catIdx, annotate.DisplayNone)
		annoMap.Set(img.FileName, *entry)
	}
	return labelInfo, annoMap, nil
}

// ImportMode controls how an imported document's catalog and annotations
// combine with what is already loaded.
type ImportMode int

const (
	// Replace overwrites the existing label catalog and annotations map.
	Replace ImportMode = iota
	// Merge unions both the label catalog and the per-image annotations.
	Merge
)

// MergeBbox combines an imported bbox label catalog/annotations map into
// existing according to mode.
func MergeBbox(existingLabels annotate.LabelInfo, existingMap toolsdata.BboxAnnoMap, importedLabels annotate.LabelInfo, importedMap toolsdata.BboxAnnoMap, mode ImportMode) (annotate.LabelInfo, toolsdata.BboxAnnoMap) {
	if mode == Replace {
		return importedLabels, importedMap
	}
	merged, remap := annotate.MergeLabelInfo(existingLabels, importedLabels)
	mergedMap := annotate.MergeAnnotationsMap(existingMap, importedMap, remap)
	return merged, mergedMap
}

// MergeBrush combines an imported brush label catalog/annotations map into
// existing according to mode.
func MergeBrush(existingLabels annotate.LabelInfo, existingMap toolsdata.BrushAnnoMap, importedLabels annotate.LabelInfo, importedMap toolsdata.BrushAnnoMap, mode ImportMode) (annotate.LabelInfo, toolsdata.BrushAnnoMap) {
	if mode == Replace {
		return importedLabels, importedMap
	}
	merged, remap := annotate.MergeLabelInfo(existingLabels, importedLabels)
	mergedMap := annotate.MergeAnnotationsMap(existingMap, importedMap, remap)
	return merged, mergedMap
}

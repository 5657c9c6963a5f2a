package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bertiqwerty/rvimage-sub001/internal/coco"
	"github.com/bertiqwerty/rvimage-sub001/internal/project"
	"github.com/bertiqwerty/rvimage-sub001/internal/toolsdata"
)

var (
	importTool        string
	importMode        string
	importParallelism int
)

func parseImportMode(s string) (coco.ImportMode, error) {
	switch strings.ToLower(s) {
	case "replace":
		return coco.Replace, nil
	case "merge":
		return coco.Merge, nil
	default:
		return 0, fmt.Errorf("unknown mode %q, expected merge or replace", s)
	}
}

var importCmd = &cobra.Command{
	Use:   "import <project.json> <coco.json>",
	Short: "import a COCO document into a project's tool data",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		prjPath, cocoPath := args[0], args[1]
		mode, err := parseImportMode(importMode)
		if err != nil {
			return err
		}

		prj, err := project.Load(prjPath)
		if err != nil {
			return fmt.Errorf("load project: %w", err)
		}
		raw, err := os.ReadFile(cocoPath)
		if err != nil {
			return fmt.Errorf("read %s: %w", cocoPath, err)
		}

		switch strings.ToLower(importTool) {
		case "bbox":
			var doc coco.Document
			if err := json.Unmarshal(raw, &doc); err != nil {
				return fmt.Errorf("parse coco document: %w", err)
			}
			if err := validateImages(doc.Images, importParallelism); err != nil {
				return fmt.Errorf("validate images: %w", err)
			}
			importedLabels, importedMap, err := coco.ImportBbox(doc, toolsdata.RotZero)
			if err != nil {
				return fmt.Errorf("import bbox: %w", err)
			}
			existing, _ := prj.Bbox()
			finalLabels, finalMap := importedLabels, importedMap
			if existing != nil {
				finalLabels, finalMap = coco.MergeBbox(existing.LabelInfo, existing.AnnotationsMap, importedLabels, importedMap, mode)
			}
			bbox := existing
			if bbox == nil {
				fresh := toolsdata.NewBboxData()
				bbox = &fresh
			}
			bbox.LabelInfo = finalLabels
			if err := bbox.SetAnnotationsMap(finalMap); err != nil {
				return fmt.Errorf("set annotations: %w", err)
			}
			prj.SetBbox(*bbox)
		case "brush":
			var doc coco.RLEDocument
			if err := json.Unmarshal(raw, &doc); err != nil {
				return fmt.Errorf("parse coco document: %w", err)
			}
			if err := validateImages(doc.Images, importParallelism); err != nil {
				return fmt.Errorf("validate images: %w", err)
			}
			importedLabels, importedMap, err := coco.ImportBrush(doc)
			if err != nil {
				return fmt.Errorf("import brush: %w", err)
			}
			existing, _ := prj.Brush()
			finalLabels, finalMap := importedLabels, importedMap
			if existing != nil {
				finalLabels, finalMap = coco.MergeBrush(existing.LabelInfo, existing.AnnotationsMap, importedLabels, importedMap, mode)
			}
			brush := existing
			if brush == nil {
				fresh := toolsdata.NewBrushData()
				brush = &fresh
			}
			brush.LabelInfo = finalLabels
			if err := brush.SetAnnotationsMap(finalMap); err != nil {
				return fmt.Errorf("set annotations: %w", err)
			}
			prj.SetBrush(*brush)
		default:
			return fmt.Errorf("unknown tool %q, expected bbox or brush", importTool)
		}

		if err := project.Save(prjPath, prj); err != nil {
			return fmt.Errorf("save project: %w", err)
		}
		return nil
	},
}

func validateImages(images []coco.Image, parallelism int) error {
	paths := make([]string, len(images))
	for i, img := range images {
		paths[i] = img.FileName
	}
	return coco.ValidateImages(paths, parallelism, func(path string) error {
		if _, err := os.Stat(path); err != nil {
			return err
		}
		return nil
	})
}

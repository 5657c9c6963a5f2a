package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bertiqwerty/rvimage-sub001/internal/coco"
	"github.com/bertiqwerty/rvimage-sub001/internal/project"
)

var exportTool string

var exportCmd = &cobra.Command{
	Use:   "export <project.json>",
	Short: "export a tool's annotations as a COCO document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prjPath := args[0]
		prj, err := project.Load(prjPath)
		if err != nil {
			return fmt.Errorf("load project: %w", err)
		}

		var (
			raw      []byte
			destPath string
		)
		switch strings.ToLower(exportTool) {
		case "bbox":
			bbox, ok := prj.Bbox()
			if !ok {
				return fmt.Errorf("project has no bbox tool data")
			}
			doc, err := coco.ExportBbox(bbox)
			if err != nil {
				return fmt.Errorf("export bbox: %w", err)
			}
			if raw, err = json.MarshalIndent(doc, "", "  "); err != nil {
				return fmt.Errorf("marshal coco document: %w", err)
			}
			destPath = bbox.CocoFile.Path
		case "brush":
			brush, ok := prj.Brush()
			if !ok {
				return fmt.Errorf("project has no brush tool data")
			}
			doc, err := coco.ExportBrush(brush)
			if err != nil {
				return fmt.Errorf("export brush: %w", err)
			}
			if raw, err = json.MarshalIndent(doc, "", "  "); err != nil {
				return fmt.Errorf("marshal coco document: %w", err)
			}
			destPath = brush.CocoFile.Path
		default:
			return fmt.Errorf("unknown tool %q, expected bbox or brush", exportTool)
		}

		if destPath == "" {
			fmt.Println(string(raw))
			return nil
		}
		if err := os.WriteFile(destPath, raw, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", destPath, err)
		}
		return nil
	},
}

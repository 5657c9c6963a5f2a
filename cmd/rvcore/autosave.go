package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/bertiqwerty/rvimage-sub001/internal/autosave"
	"github.com/bertiqwerty/rvimage-sub001/internal/rvlog"
)

var pruneKeepDays int

var autosaveCmd = &cobra.Command{
	Use:   "autosave",
	Short: "autosave maintenance commands",
}

var autosavePruneCmd = &cobra.Command{
	Use:   "prune <project.json>",
	Short: "delete autosave snapshots older than the retention window",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keepDays := pruneKeepDays
		if keepDays <= 0 {
			keepDays = userCfg.AutosaveKeepDays
		}
		homeFolder := filepath.Dir(args[0])
		cutoff := time.Now().AddDate(0, 0, -keepDays)

		stale, err := autosave.ListFiles(homeFolder, time.Time{}, cutoff)
		if err != nil {
			return fmt.Errorf("list autosave files: %w", err)
		}
		for _, p := range stale {
			if err := os.Remove(p); err != nil {
				rvlog.FromContext(cmd.Context()).Sugar().Infof("failed to delete %s: %v", p, err)
				continue
			}
			fmt.Println("deleted", p)
		}
		return nil
	},
}

// Command rvcore is the engine's headless entry point: a cobra CLI over
// the same project file, COCO codec, and autosave machinery a GUI front
// end would call into directly.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/bertiqwerty/rvimage-sub001/internal/cfg"
	"github.com/bertiqwerty/rvimage-sub001/internal/rvlog"
)

var (
	verbose   bool
	startTime time.Time
	userCfg   cfg.UserCfg
)

var rootCmd = &cobra.Command{
	Use:   "rvcore",
	Short: "headless image-annotation engine",
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		startTime = time.Now()
		if !verbose {
			os.Setenv("LOGLEVEL", "info")
		}
		rvlog.Structured()

		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("user home dir: %w", err)
		}
		userCfg, err = cfg.LoadUser(home)
		if err != nil {
			return fmt.Errorf("load user cfg: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, _ []string) {
		rvlog.FromContext(cmd.Context()).Sugar().Debugf("command %s took %.1fs",
			cmd.Name(), time.Since(startTime).Seconds())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose output")
	rootCmd.AddCommand(exportCmd, importCmd, autosaveCmd, filterTestCmd)

	exportCmd.Flags().StringVar(&exportTool, "tool", "", "tool to export (bbox or brush)")
	exportCmd.MarkFlagRequired("tool")

	importCmd.Flags().StringVar(&importTool, "tool", "", "tool to import into (bbox or brush)")
	importCmd.MarkFlagRequired("tool")
	importCmd.Flags().StringVar(&importMode, "mode", "replace", "merge or replace existing annotations")
	importCmd.Flags().IntVar(&importParallelism, "parallelism", 4, "number of images validated concurrently")

	autosavePruneCmd.Flags().IntVar(&pruneKeepDays, "keep-days", 0, "autosave files older than this are deleted (0 uses the user config default)")
	autosaveCmd.AddCommand(autosavePruneCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = rvlog.WithContext(ctx, rvlog.L())
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bertiqwerty/rvimage-sub001/internal/catalog"
)

var filterTestCmd = &cobra.Command{
	Use:   "filter-test <expr> <path...>",
	Short: "evaluate a filter expression against literal paths, with no tool data loaded",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		expr := args[0]
		paths := args[1:]

		pred, err := catalog.ParseFilter(expr)
		if err != nil {
			return fmt.Errorf("parse filter: %w", err)
		}
		for _, path := range paths {
			ok, err := pred.Apply(path, nil, "")
			if err != nil {
				return fmt.Errorf("apply filter to %s: %w", path, err)
			}
			fmt.Printf("%v\t%s\n", ok, path)
		}
		return nil
	},
}

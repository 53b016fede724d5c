package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/promptcritic/internal/rewrite"
)

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List rewrite categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, c := range rewrite.Categories() {
				fmt.Fprintf(out, "%s\n  %s\n", c, c.Instruction())
			}
			return nil
		},
	}
}

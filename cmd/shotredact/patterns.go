package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ivlev/shotredact/internal/analyzer"
	"github.com/ivlev/shotredact/internal/config"
)

func newPatternsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "List the built-in secret patterns and default field labels",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Patterns:")
			for _, p := range analyzer.DefaultPatterns() {
				fmt.Fprintf(out, "  %-18s %s\n", p.Name, p.Expr.String())
			}
			fmt.Fprintf(out, "Labels: %s\n", strings.Join(config.DefaultLabels, ", "))
		},
	}
}

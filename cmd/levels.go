package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathaxy/internal/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the levels and their rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%5s  %-12s  %-9s  %-10s  %s\n", "Level", "Timing", "Mistakes", "Zeros", "Min 2-digit sums")
		fmt.Fprintln(out, strings.Repeat("─", 62))

		for _, l := range levels.All() {
			c := levels.ConstraintFor(l.Level)

			timing := fmt.Sprintf("%s total", l.TotalTime)
			if l.Mode == levels.ModePerQuestion {
				timing = fmt.Sprintf("%s each", l.PerQuestionTime)
			}
			mistakes := "unlimited"
			if l.MaxErrors > 0 {
				mistakes = fmt.Sprintf("%d", l.MaxErrors-1)
			}
			zeros := "any"
			switch {
			case c.ForbidZeroAddend:
				zeros = "none"
			case c.EffectiveMaxZero() != levels.Unbounded:
				zeros = fmt.Sprintf("at most %d", c.EffectiveMaxZero())
			}

			fmt.Fprintf(out, "%5d  %-12s  %-9s  %-10s  %d\n", l.Level, timing, mistakes, zeros, c.MinTwoDigitSum)
		}
		return nil
	},
}

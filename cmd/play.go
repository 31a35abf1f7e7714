package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathaxy/internal/levels"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a level",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetInt("level")
		if level != 0 && !levels.Valid(level) {
			return fmt.Errorf("level %d not in [1, %d]", level, levels.TotalLevels)
		}
		return runApp(cmd, level)
	},
}

func init() {
	playCmd.Flags().Int("level", 0, "Start this level directly (1-10)")
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mathaxy/internal/levels"
	"github.com/abhisek/mathaxy/internal/questiongen"
	"github.com/abhisek/mathaxy/internal/questionset"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a question set for a level",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetInt("level")
		count, _ := cmd.Flags().GetInt("count")
		formatName, _ := cmd.Flags().GetString("format")
		seed, _ := cmd.Flags().GetUint64("seed")

		format, err := questionset.ParseFormat(formatName)
		if err != nil {
			return err
		}
		if count == 0 {
			count = cfg.Game.QuestionsPerLevel
		}

		log, err := newLogger(true)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		opts := []questiongen.Option{questiongen.WithLogger(log)}
		if cmd.Flags().Changed("seed") {
			opts = append(opts, questiongen.WithSeed(seed))
		}
		gen := questiongen.New(opts...)

		qs, err := gen.Generate(level, count)
		if err != nil {
			return fmt.Errorf("generate level %d: %w", level, err)
		}
		log.Debug("generated question set", zap.Int("level", level), zap.Int("count", len(qs)))

		return questionset.Encode(cmd.OutOrStdout(), questionset.NewSet(level, qs), format)
	},
}

func init() {
	generateCmd.Flags().Int("level", 1, fmt.Sprintf("Level whose constraints apply (1-%d; others are unconstrained)", levels.TotalLevels))
	generateCmd.Flags().Int("count", 0, "Number of questions (default from config, 20)")
	generateCmd.Flags().String("format", "text", "Output format: text, json or yaml")
	generateCmd.Flags().Uint64("seed", 0, "Seed for a reproducible set")
}

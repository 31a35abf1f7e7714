package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathaxy/internal/badges"
	"github.com/abhisek/mathaxy/internal/levels"
	"github.com/abhisek/mathaxy/internal/store"
	"github.com/abhisek/mathaxy/internal/streak"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress, badges and streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		repo := st.EventRepo()

		sessions, err := repo.QuerySessionSummaries(ctx, store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		completed, err := repo.CompletedLevels(ctx)
		if err != nil {
			return fmt.Errorf("query completed levels: %w", err)
		}
		days, err := repo.LoginDays(ctx)
		if err != nil {
			return fmt.Errorf("query logins: %w", err)
		}
		byType, total := badges.NewService(repo).Counts(ctx)

		var correct, wrong int
		for _, s := range sessions {
			correct += s.CorrectAnswers
			wrong += s.WrongAnswers
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Levels completed: %d/%d %v\n", len(completed), levels.TotalLevels, completed)
		fmt.Fprintf(out, "Levels played:    %d\n", len(sessions))
		if correct+wrong > 0 {
			fmt.Fprintf(out, "Accuracy:         %.0f%% (%d/%d)\n",
				float64(correct)/float64(correct+wrong)*100, correct, correct+wrong)
		}
		fmt.Fprintf(out, "Login streak:     %d days\n", streak.FromDays(days).ConsecutiveDays)
		fmt.Fprintf(out, "Badges:           %d\n", total)
		for _, t := range badges.AllTypes() {
			fmt.Fprintf(out, "  %s %-20s %d\n", t.Icon(), t.DisplayName(), byType[t])
		}
		for _, c := range badges.UnlockedCharacters(total) {
			fmt.Fprintf(out, "Character unlocked: %s\n", c.DisplayName())
		}
		return nil
	},
}

package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mathaxy/internal/app"
	"github.com/abhisek/mathaxy/internal/badges"
	"github.com/abhisek/mathaxy/internal/questiongen"
	"github.com/abhisek/mathaxy/internal/screens/play"
	"github.com/abhisek/mathaxy/internal/screens/welcome"
	"github.com/abhisek/mathaxy/internal/streak"
)

// runApp opens the store, records today's login, builds dependencies and
// launches the TUI. startLevel > 0 opens that level directly.
func runApp(cmd *cobra.Command, startLevel int) error {
	ctx := cmd.Context()

	log, err := newLogger(false)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	badgeService := badges.NewService(eventRepo)

	if err := eventRepo.AppendLoginEvent(ctx, time.Now()); err != nil {
		log.Warn("record login", zap.Error(err))
	}
	var rec streak.Record
	if days, err := eventRepo.LoginDays(ctx); err != nil {
		log.Warn("load login days", zap.Error(err))
	} else {
		rec = streak.FromDays(days)
	}
	award := badgeService.AwardLogin(ctx, rec.ConsecutiveDays)

	log.Info("app started",
		zap.Int("streak_days", rec.ConsecutiveDays),
		zap.Int("start_level", startLevel),
		zap.Bool("login_badge", award != nil),
	)

	return app.Run(app.Options{
		Deps: play.Deps{
			Generator:   questiongen.New(questiongen.WithLogger(log)),
			Repo:        eventRepo,
			Badges:      badgeService,
			Count:       cfg.Game.QuestionsPerLevel,
			LoginStreak: rec.ConsecutiveDays,
			Logger:      log,
		},
		Greeting:   welcome.Greeting{Streak: rec, Award: award},
		StartLevel: startLevel,
	})
}

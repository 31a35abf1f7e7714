package cmd

import (
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathaxy/internal/metrics"
	"github.com/abhisek/mathaxy/internal/questiongen"
	"github.com/abhisek/mathaxy/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve question sets over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Server.Addr
		}
		gin.SetMode(cfg.Server.Mode)

		log, err := newLogger(true)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		m := metrics.New()
		gen := questiongen.New(questiongen.WithLogger(log), questiongen.WithObserver(m))
		srv := server.New(gen, m, log, cfg.Game.QuestionsPerLevel)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from config, :8080)")
}

package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"movierec/internal/api"
	"movierec/internal/chat"
	"movierec/internal/logging"
	"movierec/internal/supervisor"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API.

The listener starts immediately; queries answer 503 until the catalog is
loaded and the vector space built. A failed build leaves the server up and
reporting the error on /health.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		engine, err := newEngine(cfg)
		if err != nil {
			return err
		}

		chatSvc := chat.NewService(engine, chat.Limits{
			Recommend: cfg.Chat.RecommendLimit,
			Search:    cfg.Chat.SearchLimit,
		})
		handler := api.NewHandler(engine, chatSvc, api.Limits{
			RecommendDefault: cfg.Recommend.DefaultLimit,
			RecommendMax:     cfg.Recommend.MaxLimit,
			SearchDefault:    cfg.Search.DefaultLimit,
			SearchMax:        cfg.Search.MaxLimit,
		})
		router := api.NewRouter(handler, api.MiddlewareConfig{
			CORSOrigins:        cfg.Server.CORSOrigins,
			RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
		})

		srv := &http.Server{
			Addr:              cfg.Server.Addr(),
			Handler:           router,
			ReadTimeout:       secs(cfg.Server.ReadTimeoutSecs),
			ReadHeaderTimeout: secs(cfg.Server.ReadTimeoutSecs),
			WriteTimeout:      secs(cfg.Server.WriteTimeoutSecs),
			IdleTimeout:       secs(cfg.Server.IdleTimeoutSecs),
		}
		shutdown := secs(cfg.Server.ShutdownTimeoutSecs)

		logger := logging.Logger()
		tree := supervisor.NewTree(logger, supervisor.TreeConfig{ShutdownTimeout: shutdown})
		tree.AddDataService(supervisor.NewBuildService(engine, cfg.Catalog.Source, logger))
		tree.AddAPIService(supervisor.NewHTTPServerService(srv, shutdown))

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logging.Info().Str("addr", srv.Addr).Str("catalog", cfg.Catalog.Source).Msg("starting server")
		err = tree.Serve(ctx)
		if errors.Is(err, context.Canceled) {
			logging.Info().Msg("server stopped")
			return nil
		}
		return err
	},
}

func secs(n int) time.Duration { return time.Duration(n) * time.Second }

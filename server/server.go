package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/TheVovchenskiy/sportify-tg-bot/api"
	"github.com/TheVovchenskiy/sportify-tg-bot/app"
	"github.com/TheVovchenskiy/sportify-tg-bot/app/backendapi"
	"github.com/TheVovchenskiy/sportify-tg-bot/app/config"
	"github.com/TheVovchenskiy/sportify-tg-bot/bot"
	"github.com/TheVovchenskiy/sportify-tg-bot/db"
	"github.com/TheVovchenskiy/sportify-tg-bot/pkg/mylogger"

	chi "github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/robfig/cron/v3"
)

const basicTimeout = 10 * time.Second

type Server struct {
	server http.Server
	logger *mylogger.MyLogger
}

// Run wires everything together and serves backend notifications until the
// listener fails or Shutdown is called. The Telegram polling loop and the
// eviction sweep run alongside it.
func (s *Server) Run(ctx context.Context, configPaths []string) error {
	err := config.InitConfig(configPaths)
	if err != nil {
		return err
	}

	cfg := config.GetGlobalConfig()

	logger, err := mylogger.New(
		cfg.Logger.LoggerOutput,
		cfg.Logger.LoggerErrOutput,
		cfg.Logger.ProductionMode,
	)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck
	s.logger = logger

	backendClient := backendapi.NewClient(cfg.API.URL)

	tgBot, err := bot.NewBot(cfg.Bot.Token, cfg.API.FrontendURL, backendClient, logger)
	if err != nil {
		return fmt.Errorf("to new bot: %w", err)
	}

	storage := db.NewEventMessageStorage()
	application := app.NewApp(tgBot, storage, logger)
	handler := api.NewHandler(application, logger)

	scheduler := cron.New()

	_, err = scheduler.AddFunc(cfg.Bot.EvictSchedule, func() {
		evicted := storage.EvictExpired(context.Background(), time.Now(), cfg.Bot.EvictTTL)
		if evicted > 0 {
			logger.Infof("evicted %d finished event messages", evicted)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule eviction: %w", err)
	}

	scheduler.Start()
	defer scheduler.Stop()

	go tgBot.Run(ctx)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/event/created", handler.EventCreated)
	r.Put("/event/updated", handler.EventUpdated)
	r.Delete("/event/deleted", handler.EventDeleted)

	s.server = http.Server{ //nolint:exhaustruct
		Addr:         cfg.Bot.Port,
		Handler:      r,
		ReadTimeout:  basicTimeout,
		WriteTimeout: basicTimeout,
	}

	logger.Infof("listen backend input %s", cfg.Bot.Port)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.WithCtx(ctx).Infof("shutdown server")

	ctxWithTimeout, cancel := context.WithTimeout(ctx, basicTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctxWithTimeout); err != nil {
		return fmt.Errorf("to shutdown server: %w", err)
	}

	return nil
}

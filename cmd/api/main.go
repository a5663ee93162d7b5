// Command api serves the community directory over HTTP.
//
// @title                      Community Directory API
// @version                    1.0
// @description                Business, meeting and achievement directory with three-level review.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/kapurocks/directory/internal/api"
	"github.com/kapurocks/directory/internal/core/service"
	"github.com/kapurocks/directory/internal/infrastructure/config"
	"github.com/kapurocks/directory/internal/infrastructure/queue"
	"github.com/kapurocks/directory/internal/infrastructure/repository"
	"github.com/kapurocks/directory/internal/infrastructure/store"
	"github.com/kapurocks/directory/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{Service: "directory"})
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "directory",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	backend, err := openBackend(ctx, cfg, logger.Component("store"))
	if err != nil {
		return err
	}
	defer backend.close()

	st := store.New(backend.kv)
	users := repository.NewUserRepository(st)
	businesses := repository.NewBusinessRepository(st)
	meetings := repository.NewMeetingRepository(st)
	achievements := repository.NewAchievementRepository(st)

	workers, stopWorkers := context.WithCancel(ctx)
	dispatcher := queue.NewDispatcher(cfg.Notify.Workers, queue.NewLogSender(logger.Component("notify")), log)
	dispatcher.Start(workers)
	defer func() {
		stopWorkers()
		dispatcher.Wait()
	}()

	sessions := service.NewSessionManager(repository.NewSessionRepository(st), log)
	accounts := service.NewAccountService(
		users,
		sessions,
		service.NewStaticCodes(cfg.Auth.OTPCode, dispatcher),
		repository.NewResetTokenRepository(st, time.Now),
		dispatcher,
		log,
		service.AccountOptions{BcryptCost: cfg.Auth.BcryptCost, ResetTTL: cfg.Auth.ResetTTL},
	)
	content := service.NewContentService(businesses, meetings, achievements, log, time.Now)
	owner := service.NewOwnerService(users, sessions, log)

	seeder := service.NewSeeder(users, businesses, meetings, achievements, logger.Component("seed"))
	err = seeder.Run(ctx, service.SeedOptions{
		AdminPassword: cfg.Seed.AdminPassword,
		OwnerPassword: cfg.Seed.OwnerPassword,
		SampleContent: cfg.Seed.SampleContent,
		BcryptCost:    cfg.Auth.BcryptCost,
	})
	if err != nil {
		return err
	}
	if _, err := sessions.Restore(ctx); err != nil {
		log.Warn().Err(err).Msg("could not restore session")
	}

	e := api.NewRouter(api.Dependencies{
		Accounts:       accounts,
		Sessions:       sessions,
		Content:        content,
		Owner:          owner,
		Tokens:         service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Ready:          backend.ready,
		RequestTimeout: cfg.RequestTimeout,
		Logger:         log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.Store.Driver).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

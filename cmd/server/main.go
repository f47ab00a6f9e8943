package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sofacai/mundo-prendarios-back-sub000/internal/config"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/infra"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/repository"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/router"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title           Mundo Prendarios API
// @version         1.0
// @description     Back office para créditos prendarios: cotización, operaciones y sincronización con Kommo CRM.
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo cargar la configuración")
	}
	if cfg.Env == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo conectar a la base de datos")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo conectar a redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Shared CRM circuit breaker: workers and the health endpoint see the
	// same state.
	crmCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())

	kommo := infra.NewKommoClient(infra.KommoConfig{
		APIBase:      cfg.KommoAPIBase,
		TokenURL:     cfg.KommoTokenURL,
		ClientID:     cfg.KommoClientID,
		ClientSecret: cfg.KommoClientSecret,
		RedirectURI:  cfg.KommoRedirectURI,
		RefreshToken: cfg.KommoRefreshToken,
	})
	mailer := infra.NewMailer(cfg)

	operacionRepo := repository.NewOperacionRepository(db)
	dispatcher := worker.NewDispatcher(rdb)

	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, worker.Handlers{
		CRM:   worker.NewCRMSyncWorker(kommo, crmCB, operacionRepo, rdb),
		Email: worker.NewEmailWorker(mailer, operacionRepo, cfg.PDFStoragePath),
	})
	worker.StartRetryCron(ctx, worker.RetryCronConfig{
		OperRepo:   operacionRepo,
		Dispatcher: dispatcher,
		CB:         crmCB,
	})

	r := router.New(cfg, db, rdb, crmCB, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("env", cfg.Env).Msg("servidor iniciado")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("error en el servidor HTTP")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor...")
	cancel() // stop workers and cron

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado forzado")
	}

	_ = rdb.Close()
	log.Info().Msg("servidor detenido")
}

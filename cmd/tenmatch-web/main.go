package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	httpadapter "svw.info/tenmatch/internal/adapters/http"
	"svw.info/tenmatch/internal/config"
	"svw.info/tenmatch/internal/hint"
	"svw.info/tenmatch/internal/infrastructure/sessions"
	"svw.info/tenmatch/internal/solver"
	"svw.info/tenmatch/internal/usecase"
	"svw.info/tenmatch/internal/validator"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("config")
	}
	logger.SetLevel(cfg.Level())
	if cfg.Level() != logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Wire providers → use cases → HTTP adapter
	reg := sessions.NewMemory(cfg.SessionTTL, logger)
	go reg.Run(ctx, cfg.SweepInterval)
	h := hint.NewPairs(solver.NewBacktrackingSolver(), cfg.HintMaxLen)
	uc := usecase.NewService(reg, h, validator.New(), cfg.Scoring, logger)

	router := gin.New()
	router.Use(gin.Recovery(), httpadapter.RequestLogger(logger))
	httpadapter.New(uc, cfg.RoundDuration, logger).Register(router)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.WithFields(logrus.Fields{
		"addr":    cfg.Addr,
		"scoring": cfg.Scoring,
		"ttl":     cfg.SessionTTL,
	}).Info("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Error("server error")
		os.Exit(1)
	}
}

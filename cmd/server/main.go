package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/spacezone/backend/internal/config"
	"github.com/spacezone/backend/internal/es"
	"github.com/spacezone/backend/internal/httpserver"
	"github.com/spacezone/backend/internal/logging"
	"github.com/spacezone/backend/internal/mailer"
	authmw "github.com/spacezone/backend/internal/middleware/auth"
	"github.com/spacezone/backend/internal/middleware/loggingmw"
	"github.com/spacezone/backend/internal/mykafka"
	"github.com/spacezone/backend/internal/repo"
	"github.com/spacezone/backend/internal/service"
	"github.com/spacezone/backend/internal/service/search"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	cfg.MustValidate()

	logger := logging.New(cfg.LogLevel)

	db, err := config.InitDB(context.Background(), cfg)
	if err != nil {
		log.Fatalf("db init: %v", err)
	}

	prod := mykafka.NewProducer(cfg.KafkaBrokers)

	esClient, err := es.NewClient(cfg)
	if err != nil {
		log.Fatalf("elasticsearch init: %v", err)
	}
	if esClient == nil {
		logger.Warn("elasticsearch not configured, product search uses the database")
	}

	store := repo.New(db)
	mail := &mailer.Mailer{Producer: prod, Topic: cfg.EmailTopic}

	var searcher service.ProductSearcher
	if esClient != nil {
		searcher = &search.Matcher{ES: esClient}
	}

	srv := &httpserver.Server{
		Repo: store,
		Auth: &service.AuthService{
			Repo:          store,
			Mailer:        mail,
			JWTSecret:     cfg.JWTSecret,
			RefreshSecret: cfg.RefreshSecret,
		},
		Users:   &service.UserService{Repo: store},
		Catalog: &service.CatalogService{Repo: store, Search: searcher},
		Cart:    &service.CartService{Repo: store},
		Admin:   &service.AdminService{Repo: store, ES: esClient},
		Tokens:  &authmw.TokenService{JWTSecret: cfg.JWTSecret},
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	srv.Register(e)

	httpSrv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("http server listening", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := prod.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}

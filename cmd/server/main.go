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

	"github.com/marketfair/api/internal/config"
	"github.com/marketfair/api/internal/es"
	"github.com/marketfair/api/internal/handlers"
	"github.com/marketfair/api/internal/logging"
	loggingmw "github.com/marketfair/api/internal/middleware/logging"
	"github.com/marketfair/api/internal/models"
	"github.com/marketfair/api/internal/mykafka"
	httpserver "github.com/marketfair/api/internal/transport/http"
	"github.com/marketfair/api/pkg/db"
)

const productIndex = "products"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()
	dsn := db.EnsureSSLMode(cfg.DatabaseURL, cfg.DBSSLMode)
	gormDB, err := db.Open(ctx, dsn)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := gormDB.AutoMigrate(&models.User{}, &models.Product{}); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	prod := mykafka.NewProducer(cfg.KafkaBrokers)

	esClient, err := es.NewClient(cfg)
	if err != nil {
		log.Fatalf("elasticsearch init error: %v", err)
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORS())
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		DB:             gormDB,
		JWTSecret:      cfg.JWTSecret,
		AuthHandler:    &handlers.AuthHandler{DB: gormDB, JWTSecret: cfg.JWTSecret, Producer: prod},
		ProductHandler: &handlers.ProductHandler{DB: gormDB, Producer: prod, ES: esClient, ESIndex: productIndex},
		SearchHandler:  &handlers.SearchHandler{ES: esClient, Index: productIndex},
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()
	logger.Info("server started", "port", cfg.ServerPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}

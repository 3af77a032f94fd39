package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	apiauth "finboard/pkg/api/auth"
	"finboard/pkg/api/company"
	"finboard/pkg/core/auth"
	"finboard/pkg/core/config"
	"finboard/pkg/core/logger"
	"finboard/pkg/core/marketdata"
	"finboard/pkg/core/store"
)

func main() {
	// Load environment variables
	godotenv.Load()

	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.GetLogger().WithError(err).Fatal("failed to load config")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
		MaxAge: cfg.Logging.MaxAge,
	}).WithComponent("main")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := store.New(ctx, cfg.Database.URL)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		log.WithError(err).Fatal("failed to ensure schema")
	}

	users := store.NewUserRepo(db)
	companies := store.NewCompanyRepo(db)

	authSvc := auth.NewService(cfg.Auth.Secret, cfg.Auth.TokenExpiry.Std())

	market := marketdata.NewClient(
		marketdata.WithBaseURL(cfg.Provider.BaseURL),
		marketdata.WithHTTPClient(&http.Client{Timeout: cfg.Provider.Timeout.Std()}),
		marketdata.WithRateLimit(cfg.Provider.RequestsPerSecond),
	)

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	api := router.Group("/api")
	apiauth.NewHandler(authSvc, users).RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(auth.Middleware(authSvc, users))
	company.NewHandler(companies, market, cfg.Provider.PricePeriod).RegisterRoutes(protected)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		log.WithField("addr", cfg.Server.Addr).Info("API server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

// requestLogger tags each request with an id and logs its outcome.
func requestLogger() gin.HandlerFunc {
	log := logger.WithComponent("http")
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		entry := log.WithFields(logger.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Error("request failed")
		} else {
			entry.Info("request handled")
		}
	}
}

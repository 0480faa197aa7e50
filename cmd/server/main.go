package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Skufu/maternalrisk/internal/api"
	"github.com/Skufu/maternalrisk/internal/audit"
	"github.com/Skufu/maternalrisk/internal/config"
	"github.com/Skufu/maternalrisk/internal/logging"
	"github.com/Skufu/maternalrisk/internal/predictor"
	"github.com/Skufu/maternalrisk/web"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)
	logger := logging.Init(os.Stderr, cfg.GinMode == gin.ReleaseMode, logging.ParseLevel(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		log.Fatalf("config error: %v", err)
	}

	art, err := predictor.LoadArtifacts(cfg)
	if err != nil {
		log.Fatalf("cannot start without model artifacts: %v", err)
	}
	defer art.Classifier.Close()

	pred, err := predictor.New(art, logger)
	if err != nil {
		log.Fatalf("predictor error: %v", err)
	}

	ctx := context.Background()
	var db HealthChecker
	var rec audit.Recorder = audit.Nop{}
	if cfg.Audit.EnableDB {
		pool, err := audit.Connect(ctx, cfg.Audit.DatabaseURL)
		if err != nil {
			log.Fatalf("database connection failed: %v", err)
		}
		defer pool.Close()
		db = pool

		rec, err = audit.NewPostgres(ctx, pool)
		if err != nil {
			log.Fatalf("audit setup failed: %v", err)
		}
	}

	router, err := setupRouter(api.NewHandler(pred, rec, logger), pred, db, cfg.BodyLimit)
	if err != nil {
		log.Fatalf("router error: %v", err)
	}
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Model.Timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	logger.Info("server listening", "port", cfg.Port, "model", pred.ModelName(), "scaler", pred.ScalerName())
	waitForShutdown(server, logger)
}

type modelInfo interface {
	ModelName() string
	ScalerName() string
}

func setupRouter(h *api.Handler, info modelInfo, db HealthChecker, bodyLimit int64) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	router := gin.New()
	router.Use(
		gin.Logger(),
		gin.Recovery(),
		api.RequestIDMiddleware(),
		limitBodySize(bodyLimit),
		cors.New(cors.Config{
			AllowOrigins:  []string{"*"},
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders: []string{"X-Request-ID"},
			MaxAge:        12 * time.Hour,
		}),
	)
	router.SetHTMLTemplate(tmpl)
	router.StaticFS("/static", web.Static())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/readyz", func(c *gin.Context) {
		body := gin.H{
			"status": "ok",
			"model":  info.ModelName(),
			"scaler": info.ScalerName(),
		}
		if db == nil {
			body["db"] = "disabled"
			c.JSON(http.StatusOK, body)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			body["status"] = "degraded"
			body["db"] = fmt.Sprintf("unhealthy: %v", err)
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}

		body["db"] = "ok"
		c.JSON(http.StatusOK, body)
	})

	h.Register(router)
	return router, nil
}

func waitForShutdown(server *http.Server, logger *slog.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func limitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

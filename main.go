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

	"github.com/tripguide/api/config"
	"github.com/tripguide/api/config/db"
	redisclient "github.com/tripguide/api/config/redis"
	"github.com/tripguide/api/logger"
	"github.com/tripguide/api/middlewares/cors"
	"github.com/tripguide/api/routes"
)

func init() {
	logger.InitLoggers()
	config.LoadEnv()
}

func main() {
	ctx := context.Background()

	pool, err := db.Connect(ctx)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	defer db.Close(pool)
	defer redisclient.CloseRedis()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	if !config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.CorsMiddleware())

	routes.RegisterAuthRoutes(r, pool)
	routes.RegisterTourRoutes(r, pool)

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"message":   "Trip Guide API is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to Trip Guide API",
			"version": "1.0.0",
			"endpoints": gin.H{
				"auth":   "/api/auth",
				"tours":  "/api/tours",
				"health": "/api/health",
			},
		})
	})

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.InfoLogger.Infof("Server running on http://localhost:%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorLogger.Errorf("Server error: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.InfoLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorLogger.Errorf("Forced shutdown: %v", err)
	}

	logger.InfoLogger.Info("Server stopped.")
}

// File: bookwise/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"bookwise/config"
	"bookwise/database"
	reservationRepo "bookwise/database/repository/reservation"
	"bookwise/handlers"
	"bookwise/middleware"
	"bookwise/routes"
	"bookwise/services/reservation"
	"bookwise/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(config.AppConfig.CORSOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-User-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// repositories.
	resvRepo := reservationRepo.NewMongoReservationRepo()
	if err := resvRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure reservation indexes: %v", err)
	}

	// services.
	window := reservation.WindowFromConfig()
	bucketCache := reservation.NewRedisBucketCache(utils.GetCacheClient(), 10*time.Minute)
	engine := reservation.NewSchedulingEngine(resvRepo, bucketCache, window)

	sessionTTL := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
	sessionStore := reservation.NewRedisSessionStore(utils.GetSessionCacheClient(), sessionTTL)
	sessionService := &reservation.DefaultReservationSessionService{
		Engine:   engine,
		Store:    sessionStore,
		Window:   window,
		MinSlots: config.AppConfig.ReadingMinSlots,
	}

	reservationHandler := handlers.NewReservationHandler(engine, sessionService, logger)

	// Register routes.
	routes.RegisterRoutes(router, reservationHandler)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetSessionCacheClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: forced shutdown: %v", err)
	}
	logger.Info("Server exited")
}

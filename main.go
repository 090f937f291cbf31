package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"

	"studioflow/config"
	"studioflow/cron"
	"studioflow/database"
	bookingRepo "studioflow/database/repository/booking"
	"studioflow/handlers"
	"studioflow/middleware"
	"studioflow/models"
	"studioflow/routes"
	"studioflow/services/notification"
	"studioflow/services/routing"
	"studioflow/services/scheduling"
	"studioflow/services/tasks"
	"studioflow/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitLockClient()
	utils.StartHealthMonitor([]*redis.Client{utils.GetLockClient()}, database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	repo := bookingRepo.NewMongoBookingRepo()

	// Reminder queue client and dispatcher.
	queueOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
	queueClient := asynq.NewClient(queueOpts)
	defer queueClient.Close()
	dispatcher := &tasks.AsynqDispatcher{Client: queueClient}

	// Studio home base; travel estimates degrade to none without it.
	var homeBase *models.Coordinates
	if config.AppConfig.HomeBaseEnabled {
		homeBase = &models.Coordinates{
			Lat: config.AppConfig.HomeBaseLat,
			Lng: config.AppConfig.HomeBaseLng,
		}
	}

	// services.
	engine := &scheduling.DefaultSchedulingEngine{
		Bookings:  repo,
		Reminders: repo,
		Checker:   &scheduling.AvailabilityChecker{Source: repo},
		Travel:    &scheduling.TravelEstimator{Routes: routing.NewGoogleRouteProvider(config.AppConfig.GoogleAPIKey)},
		Locks:     &utils.RedisLocker{Client: utils.GetLockClient()},
		Dispatch:  dispatcher,
		HomeBase:  homeBase,
		Fees: models.TravelFeeConfig{
			FreeThresholdMiles: config.AppConfig.TravelFreeMiles,
			FeePerMileCents:    config.AppConfig.TravelFeeCentsPerMile,
		},
	}

	bookingHandler := handlers.NewBookingHandler(engine)

	// Register routes.
	routes.RegisterRoutes(router, bookingHandler)

	// Background reminder machinery: queue worker plus the sweep that
	// re-enqueues reminders the queue never saw.
	cron.InitReminderWorker(notification.LogNotifier{}, repo)
	sweeper := cron.StartReminderSweep(dispatcher, repo)
	defer sweeper.Stop()

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
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

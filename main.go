package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"havenstay/app"
	"havenstay/config"
	"havenstay/cron"
	"havenstay/database"
	"havenstay/handlers"
	"havenstay/middleware"
	"havenstay/routes"
	"havenstay/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	a, err := app.New(ctx, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize: %v", err)
	}

	utils.StartHealthMonitor(ctx, 30*time.Second,
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()}, database.MongoClient)

	worker := cron.NewWorker(cron.RedisOpt(), a.Booking, a.Notifier, logger)
	worker.Start(ctx)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.AccessLogMiddleware(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	userHandler := handlers.NewUserHandler(a.Users)
	propertyHandler := handlers.NewPropertyHandler(a.Listings, a.Search)
	bookingHandler := handlers.NewBookingHandler(a.Booking)
	reviewHandler := handlers.NewReviewHandler(a.ReviewSvc)
	favoriteHandler := handlers.NewFavoriteHandler(a.FavoriteSvc)

	handlerBundle := &handlers.HandlerBundle{
		ProfileRepo: a.Profiles,
		AuthCache:   utils.GetAuthCacheClient(),

		// Profile endpoints.
		RegisterHandler:      userHandler.RegisterHandler,
		LoginHandler:         userHandler.LoginHandler,
		GetProfileHandler:    userHandler.GetProfileHandler,
		UpdateProfileHandler: userHandler.UpdateProfileHandler,
		BecomeHostHandler:    userHandler.BecomeHostHandler,

		// Property endpoints.
		ListFeaturedHandler:   propertyHandler.ListFeaturedHandler,
		GetPropertyHandler:    propertyHandler.GetPropertyHandler,
		CreatePropertyHandler: propertyHandler.CreatePropertyHandler,
		UpdatePropertyHandler: propertyHandler.UpdatePropertyHandler,
		DeletePropertyHandler: propertyHandler.DeletePropertyHandler,
		UploadImageHandler:    propertyHandler.UploadImageHandler,
		ListMyListingsHandler: propertyHandler.ListMyListingsHandler,
		SearchHandler:         propertyHandler.SearchHandler,
		ListAmenitiesHandler:  handlers.ListAmenitiesHandler(a.Amenities),

		// Booking endpoints.
		CalendarHandler:      bookingHandler.CalendarHandler,
		QuoteHandler:         bookingHandler.QuoteHandler,
		SubmitBookingHandler: bookingHandler.SubmitBookingHandler,
		ListTripsHandler:     bookingHandler.ListTripsHandler,
		ListPendingHandler:   bookingHandler.ListPendingHandler,
		UpdateBookingHandler: bookingHandler.UpdateBookingHandler,
		HostDashboardHandler: bookingHandler.HostDashboardHandler,

		// Review endpoints.
		CreateReviewHandler: reviewHandler.CreateReviewHandler,
		ListReviewsHandler:  reviewHandler.ListReviewsHandler,

		// Favorite endpoints.
		ToggleFavoriteHandler: favoriteHandler.ToggleFavoriteHandler,
		IsFavoriteHandler:     favoriteHandler.IsFavoriteHandler,
		ListFavoritesHandler:  favoriteHandler.ListFavoritesHandler,

		HealthHandler: handlers.HealthHandler,
	}
	routes.RegisterRoutes(router, handlerBundle)

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
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	a.Close(shutdownCtx)

	logger.Sugar().Info("main: server stopped gracefully")
}

package app

import (
	"context"
	"fmt"
	"strings"

	"havenstay/config"
	"havenstay/cron"
	"havenstay/database"
	amenityRepo "havenstay/database/repository/amenity"
	bookingRepo "havenstay/database/repository/booking"
	favoriteRepo "havenstay/database/repository/favorite"
	profileRepo "havenstay/database/repository/profile"
	propertyRepo "havenstay/database/repository/property"
	reviewRepo "havenstay/database/repository/review"
	"havenstay/services/availability"
	"havenstay/services/booking"
	"havenstay/services/favorite"
	"havenstay/services/notification"
	"havenstay/services/payment"
	"havenstay/services/property"
	"havenstay/services/review"
	"havenstay/services/search"
	"havenstay/services/tasks"
	"havenstay/services/user"
	"havenstay/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// App holds the wired repositories and services shared by the API server
// and the admin CLI.
type App struct {
	Logger *zap.Logger

	Profiles   profileRepo.ProfileRepository
	Properties propertyRepo.PropertyRepository
	Bookings   bookingRepo.BookingRepository
	Reviews    reviewRepo.ReviewRepository
	Favorites  favoriteRepo.FavoriteRepository
	Amenities  amenityRepo.AmenityRepository

	Users       *user.DefaultUserService
	Listings    *property.DefaultPropertyService
	Search      *search.Service
	Booking     *booking.DefaultBookingService
	ReviewSvc   *review.DefaultReviewService
	FavoriteSvc *favorite.DefaultFavoriteService
	Notifier    notification.NotificationService

	queue *asynq.Client
}

// New connects to Mongo and Redis and wires every service. Optional
// integrations fall back to no-op implementations when unconfigured.
func New(ctx context.Context, logger *zap.Logger) (*App, error) {
	if err := database.InitDB(); err != nil {
		return nil, err
	}
	utils.InitRedis()
	db := database.DB()

	a := &App{
		Logger:     logger,
		Profiles:   profileRepo.NewMongoProfileRepo(db),
		Properties: propertyRepo.NewMongoPropertyRepo(db),
		Bookings:   bookingRepo.NewMongoBookingRepo(db),
		Reviews:    reviewRepo.NewMongoReviewRepo(db),
		Favorites:  favoriteRepo.NewMongoFavoriteRepo(db),
		Amenities:  amenityRepo.NewMongoAmenityRepo(db),
	}

	var gateway payment.Gateway = payment.NoopGateway{}
	if config.AppConfig.StripeKey != "" {
		gateway = payment.NewStripeGateway(config.AppConfig.StripeKey, logger)
	} else {
		logger.Warn("STRIPE_KEY not set, bookings will not open payment intents")
	}

	a.Notifier = notification.LogNotificationService{Logger: logger}
	fcm, err := utils.FirebaseMessaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase: %w", err)
	}
	if fcm != nil {
		svc, err := notification.NewFCMNotificationService(a.Profiles, fcm, logger)
		if err != nil {
			return nil, err
		}
		a.Notifier = svc
	}

	images, err := utils.Cloudinary()
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}

	a.queue = asynq.NewClient(cron.RedisOpt())
	dispatcher := tasks.NewDispatcher(a.queue)

	a.Users = &user.DefaultUserService{
		Repo:      a.Profiles,
		AuthCache: utils.GetAuthCacheClient(),
		TokenTTL:  utils.TokenTTL,
		Logger:    logger,
	}
	a.Listings = &property.DefaultPropertyService{
		Properties: a.Properties,
		Amenities:  a.Amenities,
		Reviews:    a.Reviews,
		Images:     images,
		Logger:     logger,
	}
	a.Search = search.NewService(a.Properties, utils.GetCacheClient())
	a.Booking = &booking.DefaultBookingService{
		Properties: a.Properties,
		Bookings:   a.Bookings,
		Payments:   gateway,
		Dispatcher: dispatcher,
		Calculator: availability.NewCalculator(config.CleaningFee()),
		Currency:   strings.ToLower(config.AppConfig.Currency),
		Location:   config.Location(),
		Logger:     logger,
	}
	a.ReviewSvc = &review.DefaultReviewService{
		Reviews:    a.Reviews,
		Bookings:   a.Bookings,
		Properties: a.Properties,
		Profiles:   a.Profiles,
		Logger:     logger,
	}
	a.FavoriteSvc = &favorite.DefaultFavoriteService{Favorites: a.Favorites, Properties: a.Properties}
	return a, nil
}

// Close releases the queue client and the database connection.
func (a *App) Close(ctx context.Context) {
	if a.queue != nil {
		if err := a.queue.Close(); err != nil {
			a.Logger.Warn("failed to close queue client", zap.Error(err))
		}
	}
	if err := database.Close(ctx); err != nil {
		a.Logger.Warn("failed to close database", zap.Error(err))
	}
}

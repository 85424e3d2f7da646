package handlers

import (
	profileRepo "havenstay/database/repository/profile"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	ProfileRepo profileRepo.ProfileRepository
	AuthCache   *redis.Client

	// Profile endpoints
	RegisterHandler      gin.HandlerFunc
	LoginHandler         gin.HandlerFunc
	GetProfileHandler    gin.HandlerFunc
	UpdateProfileHandler gin.HandlerFunc
	BecomeHostHandler    gin.HandlerFunc

	// Property endpoints
	ListFeaturedHandler   gin.HandlerFunc
	GetPropertyHandler    gin.HandlerFunc
	CreatePropertyHandler gin.HandlerFunc
	UpdatePropertyHandler gin.HandlerFunc
	DeletePropertyHandler gin.HandlerFunc
	UploadImageHandler    gin.HandlerFunc
	ListMyListingsHandler gin.HandlerFunc
	SearchHandler         gin.HandlerFunc
	ListAmenitiesHandler  gin.HandlerFunc

	// Booking endpoints
	CalendarHandler      gin.HandlerFunc
	QuoteHandler         gin.HandlerFunc
	SubmitBookingHandler gin.HandlerFunc
	ListTripsHandler     gin.HandlerFunc
	ListPendingHandler   gin.HandlerFunc
	UpdateBookingHandler gin.HandlerFunc
	HostDashboardHandler gin.HandlerFunc

	// Review endpoints
	CreateReviewHandler gin.HandlerFunc
	ListReviewsHandler  gin.HandlerFunc

	// Favorite endpoints
	ToggleFavoriteHandler gin.HandlerFunc
	IsFavoriteHandler     gin.HandlerFunc
	ListFavoritesHandler  gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}

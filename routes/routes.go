package routes

import (
	"time"

	"havenstay/handlers"
	"havenstay/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration, login and profile endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", hb.RegisterHandler)
		auth.POST("/login", hb.LoginHandler)
	}

	profile := r.Group("/api/profile")
	{
		profile.Use(middleware.JWTAuthMiddleware(hb.ProfileRepo, hb.AuthCache))
		profile.GET("", hb.GetProfileHandler)
		profile.PATCH("", hb.UpdateProfileHandler)
		profile.POST("/host", hb.BecomeHostHandler)
	}
}

// RegisterPropertyRoutes registers browse, search and listing detail endpoints.
func RegisterPropertyRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/properties")
	{
		api.GET("/featured", hb.ListFeaturedHandler)
		api.GET("/search", hb.SearchHandler)
		api.GET("/:id", hb.GetPropertyHandler)
		api.GET("/:id/calendar", hb.CalendarHandler)
		api.GET("/:id/quote", hb.QuoteHandler)
		api.GET("/:id/reviews", hb.ListReviewsHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.ProfileRepo, hb.AuthCache))
		protected.POST("/:id/reviews", hb.CreateReviewHandler)
	}
	r.GET("/api/amenities", hb.ListAmenitiesHandler)
}

// RegisterBookingRoutes registers guest booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookings := r.Group("/api/bookings")
	{
		bookings.Use(middleware.JWTAuthMiddleware(hb.ProfileRepo, hb.AuthCache))
		bookings.POST("", hb.SubmitBookingHandler)
		bookings.GET("", hb.ListTripsHandler)
		bookings.PATCH("/:id/status", hb.UpdateBookingHandler)
	}

	favorites := r.Group("/api/favorites")
	{
		favorites.Use(middleware.JWTAuthMiddleware(hb.ProfileRepo, hb.AuthCache))
		favorites.GET("", hb.ListFavoritesHandler)
		favorites.GET("/:id", hb.IsFavoriteHandler)
		favorites.POST("/:id", hb.ToggleFavoriteHandler)
	}
}

// RegisterHostRoutes registers listing management and the host dashboard.
func RegisterHostRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	host := r.Group("/api/host")
	{
		host.Use(middleware.JWTAuthMiddleware(hb.ProfileRepo, hb.AuthCache), middleware.RequireHost())
		host.GET("/dashboard", hb.HostDashboardHandler)
		host.GET("/bookings/pending", hb.ListPendingHandler)
		host.GET("/properties", hb.ListMyListingsHandler)
		host.POST("/properties", hb.CreatePropertyHandler)
		host.PUT("/properties/:id", hb.UpdatePropertyHandler)
		host.DELETE("/properties/:id", hb.DeletePropertyHandler)
		host.POST("/properties/:id/images", hb.UploadImageHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterPropertyRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterHostRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}

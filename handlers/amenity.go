package handlers

import (
	"net/http"

	amenityRepo "havenstay/database/repository/amenity"

	"github.com/gin-gonic/gin"
)

// ListAmenitiesHandler handles GET /amenities.
func ListAmenitiesHandler(repo amenityRepo.AmenityRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := repo.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"amenities": list})
	}
}

package handlers

import (
	"net/http"

	"havenstay/middleware"
	"havenstay/services/favorite"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	Service favorite.FavoriteService
}

func NewFavoriteHandler(svc favorite.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{Service: svc}
}

// ToggleFavoriteHandler handles POST /favorites/:id.
func (h *FavoriteHandler) ToggleFavoriteHandler(c *gin.Context) {
	on, err := h.Service.Toggle(c.Request.Context(), middleware.GetSession(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorite": on})
}

// IsFavoriteHandler handles GET /favorites/:id.
func (h *FavoriteHandler) IsFavoriteHandler(c *gin.Context) {
	on, err := h.Service.IsFavorite(c.Request.Context(), middleware.GetSession(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorite": on})
}

// ListFavoritesHandler handles GET /favorites.
func (h *FavoriteHandler) ListFavoritesHandler(c *gin.Context) {
	cards, err := h.Service.List(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": cards})
}

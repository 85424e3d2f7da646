package handlers

import (
	"net/http"

	"havenstay/middleware"
	"havenstay/models"
	"havenstay/services/review"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	Service review.ReviewService
}

func NewReviewHandler(svc review.ReviewService) *ReviewHandler {
	return &ReviewHandler{Service: svc}
}

// CreateReviewHandler handles POST /properties/:id/reviews.
func (h *ReviewHandler) CreateReviewHandler(c *gin.Context) {
	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	r, err := h.Service.Create(c.Request.Context(), middleware.GetSession(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// ListReviewsHandler handles GET /properties/:id/reviews.
func (h *ReviewHandler) ListReviewsHandler(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	list, err := h.Service.ListForProperty(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	summary, err := h.Service.Summary(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": list, "rating": summary})
}

package handlers

import (
	"net/http"
	"strings"

	"havenstay/middleware"
	"havenstay/models"
	"havenstay/services/property"
	"havenstay/services/search"

	"github.com/gin-gonic/gin"
)

const maxImageSize = 10 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

type PropertyHandler struct {
	Service property.PropertyService
	Search  *search.Service
}

func NewPropertyHandler(svc property.PropertyService, searchSvc *search.Service) *PropertyHandler {
	return &PropertyHandler{Service: svc, Search: searchSvc}
}

// ListFeaturedHandler handles GET /properties/featured.
func (h *PropertyHandler) ListFeaturedHandler(c *gin.Context) {
	cards, err := h.Service.ListFeatured(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": cards})
}

// SearchHandler handles GET /properties/search.
func (h *PropertyHandler) SearchHandler(c *gin.Context) {
	var filters models.SearchFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		badRequest(c, err)
		return
	}
	cards, err := h.Search.Search(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": cards})
}

// GetPropertyHandler handles GET /properties/:id.
func (h *PropertyHandler) GetPropertyHandler(c *gin.Context) {
	detail, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ListMyListingsHandler handles GET /host/properties.
func (h *PropertyHandler) ListMyListingsHandler(c *gin.Context) {
	list, err := h.Service.ListByHost(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": list})
}

// CreatePropertyHandler handles POST /host/properties.
func (h *PropertyHandler) CreatePropertyHandler(c *gin.Context) {
	var input models.PropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.Service.Create(c.Request.Context(), middleware.GetSession(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// UpdatePropertyHandler handles PUT /host/properties/:id.
func (h *PropertyHandler) UpdatePropertyHandler(c *gin.Context) {
	var input models.PropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.Service.Update(c.Request.Context(), middleware.GetSession(c), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeletePropertyHandler handles DELETE /host/properties/:id.
func (h *PropertyHandler) DeletePropertyHandler(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), middleware.GetSession(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImageHandler handles POST /host/properties/:id/images with a
// multipart "file" field.
func (h *PropertyHandler) UploadImageHandler(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageSize)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "detail": err.Error()})
		return
	}
	contentType := strings.ToLower(fileHeader.Header.Get("Content-Type"))
	if !allowedImageTypes[contentType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image type; allowed are jpeg, png and webp"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file", "detail": err.Error()})
		return
	}
	defer file.Close()

	p, err := h.Service.UploadImage(c.Request.Context(), middleware.GetSession(c), c.Param("id"), file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

package handlers

import (
	"net/http"

	"havenstay/middleware"
	"havenstay/models"
	"havenstay/services/booking"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// CalendarHandler handles GET /properties/:id/calendar and returns the
// ranges a date picker must disable.
func (h *BookingHandler) CalendarHandler(c *gin.Context) {
	ranges, err := h.Service.Calendar(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocked": ranges})
}

// QuoteHandler handles GET /properties/:id/quote?checkIn=&checkOut=&guests=.
// Dates may be missing while the user is still picking; guests defaults to 1.
func (h *BookingHandler) QuoteHandler(c *gin.Context) {
	var q struct {
		CheckIn  string `form:"checkIn"`
		CheckOut string `form:"checkOut"`
		Guests   *int   `form:"guests"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	guests := 1
	if q.Guests != nil {
		guests = *q.Guests
	}
	res, err := h.Service.Quote(c.Request.Context(), models.CreateBookingRequest{
		PropertyID: c.Param("id"),
		CheckIn:    q.CheckIn,
		CheckOut:   q.CheckOut,
		GuestCount: guests,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// SubmitBookingHandler handles POST /bookings.
func (h *BookingHandler) SubmitBookingHandler(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.Service.Submit(c.Request.Context(), middleware.GetSession(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// ListTripsHandler handles GET /bookings.
func (h *BookingHandler) ListTripsHandler(c *gin.Context) {
	list, err := h.Service.ListForGuest(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list})
}

// ListPendingHandler handles GET /host/bookings/pending.
func (h *BookingHandler) ListPendingHandler(c *gin.Context) {
	list, err := h.Service.ListPendingForHost(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list})
}

// UpdateBookingHandler handles PATCH /bookings/:id/status.
func (h *BookingHandler) UpdateBookingHandler(c *gin.Context) {
	var req models.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := models.Validate(req); err != nil {
		respondError(c, err)
		return
	}
	b, err := h.Service.UpdateStatus(c.Request.Context(), middleware.GetSession(c), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// HostDashboardHandler handles GET /host/dashboard.
func (h *BookingHandler) HostDashboardHandler(c *gin.Context) {
	stats, err := h.Service.HostStats(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

package handlers

import (
	"errors"
	"net/http"

	bookingRepo "havenstay/database/repository/booking"
	"havenstay/models"
	"havenstay/services/availability"
	"havenstay/services/booking"
	"havenstay/services/favorite"
	"havenstay/services/property"
	"havenstay/services/review"
	"havenstay/services/user"
	"havenstay/utils"

	"github.com/gin-gonic/gin"
)

// statusFor maps service errors to HTTP statuses. Unknown errors are 500.
func statusFor(err error) int {
	var verr *models.ValidationError
	var remote *booking.RemoteConflictError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, booking.ErrMalformedDate),
		errors.Is(err, property.ErrInvalidPrice),
		errors.Is(err, property.ErrUnknownAmenity),
		errors.Is(err, user.ErrWeakPassword):
		return http.StatusBadRequest
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, booking.ErrForbidden),
		errors.Is(err, booking.ErrOwnProperty),
		errors.Is(err, property.ErrHostOnly),
		errors.Is(err, property.ErrNotOwner),
		errors.Is(err, review.ErrNoCompletedStay):
		return http.StatusForbidden
	case errors.Is(err, booking.ErrNotFound),
		errors.Is(err, booking.ErrPropertyNotFound),
		errors.Is(err, property.ErrNotFound),
		errors.Is(err, review.ErrPropertyNotFound),
		errors.Is(err, favorite.ErrPropertyNotFound),
		errors.Is(err, user.ErrProfileNotFound):
		return http.StatusNotFound
	case errors.As(err, &remote),
		errors.Is(err, bookingRepo.ErrStatusChanged),
		errors.Is(err, booking.ErrInvalidTransition),
		errors.Is(err, booking.ErrPropertyUnavailable),
		errors.Is(err, booking.ErrNotDue),
		errors.Is(err, user.ErrEmailTaken),
		errors.Is(err, user.ErrAlreadyHost),
		errors.Is(err, review.ErrAlreadyReviewed):
		return http.StatusConflict
	case errors.Is(err, booking.ErrPaymentFailed):
		return http.StatusPaymentRequired
	case errors.Is(err, property.ErrImagesDisabled):
		return http.StatusServiceUnavailable
	case availability.AsRuleError(err) != nil:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// respondError writes err with a stable code for engine rejections so
// clients can highlight the offending field.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		utils.JSONError(c, status, "Internal server error", err.Error())
		return
	}

	body := gin.H{"error": err.Error()}
	if re := availability.AsRuleError(err); re != nil {
		body["code"] = re.Code()
	}
	var conflict *availability.DateConflictError
	if errors.As(err, &conflict) {
		body["conflicts"] = conflict.Conflicts
	}
	c.AbortWithStatusJSON(status, body)
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bookingSessionRepo "pathlab/database/repository/bookingsession"
	"pathlab/services/admin"
	"pathlab/services/booking"
	"pathlab/services/lab"
	"pathlab/utils"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, bookingSessionRepo.ErrSessionNotFound),
		errors.Is(err, booking.ErrTestNotFound),
		errors.Is(err, lab.ErrTestNotFound):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrCommitInProgress),
		errors.Is(err, booking.ErrInvalidTransition),
		errors.Is(err, lab.ErrTestExists):
		return http.StatusConflict
	case errors.Is(err, booking.ErrDateNotBookable),
		errors.Is(err, booking.ErrSlotUnavailable),
		errors.Is(err, booking.ErrPatientIncomplete),
		errors.Is(err, admin.ErrPasswordEmpty),
		errors.Is(err, admin.ErrPasswordMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, admin.ErrInvalidCredentials),
		errors.Is(err, admin.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, booking.ErrPaymentFailed):
		return http.StatusPaymentRequired
	case errors.Is(err, lab.ErrPersistFailed):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// respondError writes err as a JSON error with the mapped status.
func respondError(c *gin.Context, message string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		getLogger(c).Error(message, zap.Error(err))
	}
	var stepErr *booking.StepError
	if errors.As(err, &stepErr) {
		c.AbortWithStatusJSON(status, gin.H{
			"message": message,
			"details": err.Error(),
			"step":    stepErr.Step,
		})
		return
	}
	utils.JSONError(c, status, message, err.Error())
}

// bindError reports a request that failed binding or validation.
func bindError(c *gin.Context, err error) {
	if fields := utils.ValidationDetails(err); fields != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"message": "Invalid request",
			"details": err.Error(),
			"fields":  fields,
		})
		return
	}
	utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
}

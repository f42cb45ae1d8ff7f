package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pathlab/models"
	"pathlab/services/booking"
)

// BookingHandler exposes the booking wizard as a session resource.
type BookingHandler struct {
	Service booking.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

type startSessionRequest struct {
	TestID string `json:"testId" binding:"required"`
}

type scheduleRequest struct {
	Date     string `json:"date" binding:"omitempty,isodate"`
	TimeSlot string `json:"timeSlot"`
}

type sessionResponse struct {
	*models.BookingSession
	StepNumber int `json:"stepNumber"`
}

func sessionJSON(c *gin.Context, status int, s *models.BookingSession) {
	c.JSON(status, sessionResponse{BookingSession: s, StepNumber: s.Step.Number()})
}

// StartSession opens a wizard for the selected test.
func (h *BookingHandler) StartSession(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	session, err := h.Service.StartSession(c.Request.Context(), req.TestID)
	if err != nil {
		respondError(c, "Failed to start booking session", err)
		return
	}
	getLogger(c).Info("Booking session started", zap.String("session", session.SessionID), zap.String("test", req.TestID))
	sessionJSON(c, http.StatusCreated, session)
}

// GetSession returns the current wizard state.
func (h *BookingHandler) GetSession(c *gin.Context) {
	session, err := h.Service.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Booking session not found or expired", err)
		return
	}
	sessionJSON(c, http.StatusOK, session)
}

// ScheduleSession selects a date and/or time slot.
func (h *BookingHandler) ScheduleSession(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	session, err := h.Service.Schedule(c.Request.Context(), c.Param("id"), req.Date, req.TimeSlot)
	if err != nil {
		respondError(c, "Failed to update schedule", err)
		return
	}
	sessionJSON(c, http.StatusOK, session)
}

// SetPatient stores the patient form.
func (h *BookingHandler) SetPatient(c *gin.Context) {
	var req models.PatientDetails
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	session, err := h.Service.SetPatient(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, "Failed to update patient details", err)
		return
	}
	sessionJSON(c, http.StatusOK, session)
}

// NextStep advances the wizard when the current step's guard passes.
func (h *BookingHandler) NextStep(c *gin.Context) {
	session, err := h.Service.Next(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Cannot continue", err)
		return
	}
	sessionJSON(c, http.StatusOK, session)
}

// PreviousStep moves the wizard back one step.
func (h *BookingHandler) PreviousStep(c *gin.Context) {
	session, err := h.Service.Back(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Cannot go back", err)
		return
	}
	sessionJSON(c, http.StatusOK, session)
}

// ConfirmBooking charges the patient and records the appointment.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	appt, err := h.Service.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Failed to confirm booking", err)
		return
	}
	getLogger(c).Info("Booking confirmed", zap.String("appointment", appt.ID))
	c.JSON(http.StatusOK, gin.H{
		"appointment": appt,
		"timeline":    models.Timeline(appt.Status),
	})
}

// CancelSession discards the wizard.
func (h *BookingHandler) CancelSession(c *gin.Context) {
	if err := h.Service.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "Failed to cancel booking session", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking session cancelled"})
}

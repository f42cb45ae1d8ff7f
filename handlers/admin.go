package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pathlab/models"
	"pathlab/services/admin"
	"pathlab/services/booking"
	"pathlab/services/lab"
	"pathlab/utils"
)

// AdminSessions issues and revokes admin tokens.
type AdminSessions interface {
	Login(ctx context.Context, password string) (admin.Session, error)
	Logout(ctx context.Context, token string) error
}

// ReportPublisher renders an appointment's report and returns its URL.
type ReportPublisher interface {
	Publish(ctx context.Context, appt models.Appointment) (string, error)
}

// AdminHandler encapsulates the password-gated lab operations.
type AdminHandler struct {
	Sessions  AdminSessions
	Passwords admin.PasswordChanger
	Store     *lab.Store
	Reports   ReportPublisher
	Notifier  booking.Notifier
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(sessions AdminSessions, passwords admin.PasswordChanger, store *lab.Store, reports ReportPublisher, notifier booking.Notifier) *AdminHandler {
	return &AdminHandler{
		Sessions:  sessions,
		Passwords: passwords,
		Store:     store,
		Reports:   reports,
		Notifier:  notifier,
	}
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

type changePasswordRequest struct {
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type statusRequest struct {
	Status models.AppointmentStatus `json:"status" binding:"required"`
}

// AdminLoginHandler exchanges the admin password for a bearer token.
func (h *AdminHandler) AdminLoginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	session, err := h.Sessions.Login(c.Request.Context(), req.Password)
	if err != nil {
		respondError(c, "Invalid Password", err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// AdminLogoutHandler revokes the caller's token.
func (h *AdminHandler) AdminLogoutHandler(c *gin.Context) {
	if err := h.Sessions.Logout(c.Request.Context(), c.GetString("adminToken")); err != nil {
		respondError(c, "Failed to log out", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// AdminChangePasswordHandler replaces the admin password.
func (h *AdminHandler) AdminChangePasswordHandler(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.Passwords.ChangePassword(c.Request.Context(), req.NewPassword, req.ConfirmPassword); err != nil {
		respondError(c, "Failed to change password", err)
		return
	}
	getLogger(c).Info("Admin password changed")
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully!"})
}

// AdminListAppointmentsHandler returns every appointment, newest first.
func (h *AdminHandler) AdminListAppointmentsHandler(c *gin.Context) {
	appts := h.Store.Appointments()
	c.JSON(http.StatusOK, gin.H{
		"appointments": viewsOf(appts),
		"count":        len(appts),
		"fallbackMode": h.Store.FallbackMode(),
	})
}

// AdminUpdateStatusHandler moves an appointment to any status. Marking it
// Report Ready publishes the report and emails the patient.
func (h *AdminHandler) AdminUpdateStatusHandler(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if !req.Status.Valid() {
		utils.JSONError(c, http.StatusBadRequest, "Invalid status", string(req.Status))
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")
	appt, ok := h.Store.UpdateAppointmentStatus(ctx, id, req.Status)
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "Appointment not found", id)
		return
	}
	if req.Status == models.StatusReportReady {
		appt = h.publishReport(c, appt)
	}
	c.JSON(http.StatusOK, viewOf(appt))
}

// publishReport failures are logged; the status change stands either way.
func (h *AdminHandler) publishReport(c *gin.Context, appt models.Appointment) models.Appointment {
	logger := getLogger(c).With(zap.String("appointment", appt.ID))
	if h.Reports == nil {
		return appt
	}
	ctx := c.Request.Context()
	url, err := h.Reports.Publish(ctx, appt)
	if err != nil {
		logger.Error("Failed to publish report", zap.Error(err))
		return appt
	}
	if updated, ok := h.Store.SetReportURL(ctx, appt.ID, url); ok {
		appt = updated
	}

	if h.Notifier != nil && appt.User.Email != "" {
		err := h.Notifier.Notify(ctx, models.NotificationPayload{
			Kind:          models.NotifyReportReady,
			AppointmentID: appt.ID,
			PatientName:   appt.User.Name,
			Email:         appt.User.Email,
			TestName:      appt.TestName,
			Date:          appt.Date,
			TimeSlot:      appt.TimeSlot,
			ReportURL:     appt.ReportURL,
		})
		if err != nil {
			logger.Warn("Failed to queue report email", zap.Error(err))
		}
	}
	return appt
}

// AdminCreateTestHandler adds a catalog entry.
func (h *AdminHandler) AdminCreateTestHandler(c *gin.Context) {
	var req models.LabTest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	test, err := h.Store.AddTest(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to add test", err)
		return
	}
	c.JSON(http.StatusCreated, test)
}

// AdminUpdateTestHandler replaces a catalog entry by id.
func (h *AdminHandler) AdminUpdateTestHandler(c *gin.Context) {
	var req models.LabTest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	req.ID = c.Param("id")
	if err := h.Store.UpdateTest(c.Request.Context(), req); err != nil {
		respondError(c, "Failed to update test", err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// AdminDeleteTestHandler removes a catalog entry.
func (h *AdminHandler) AdminDeleteTestHandler(c *gin.Context) {
	if err := h.Store.DeleteTest(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "Failed to delete test", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Test deleted"})
}

// AdminSyncStateHandler reports the last remote write outcome for an entity.
func (h *AdminHandler) AdminSyncStateHandler(c *gin.Context) {
	kind := c.Param("kind")
	if kind != lab.EntityTest && kind != lab.EntityAppointment {
		utils.JSONError(c, http.StatusBadRequest, "Unknown entity kind", kind)
		return
	}
	state, ok := h.Store.SyncState(kind, c.Param("id"))
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "No sync recorded", kind+"/"+c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, state)
}

package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pathlab/models"
	"pathlab/services/lab"
	"pathlab/services/report"
	"pathlab/utils"
)

// AppointmentHandler serves the patient-facing booking history and reports.
type AppointmentHandler struct {
	Store    *lab.Store
	Renderer *report.Renderer
	Now      func() time.Time
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(store *lab.Store, renderer *report.Renderer) *AppointmentHandler {
	return &AppointmentHandler{Store: store, Renderer: renderer, Now: time.Now}
}

type appointmentView struct {
	models.Appointment
	Timeline       []models.TimelineStep `json:"timeline"`
	ReportViewable bool                  `json:"reportViewable"`
}

func viewOf(a models.Appointment) appointmentView {
	return appointmentView{
		Appointment:    a,
		Timeline:       models.Timeline(a.Status),
		ReportViewable: a.ReportViewable(),
	}
}

func viewsOf(appts []models.Appointment) []appointmentView {
	out := make([]appointmentView, len(appts))
	for i, a := range appts {
		out[i] = viewOf(a)
	}
	return out
}

// ListAppointmentsHandler returns every appointment, newest first.
func (h *AppointmentHandler) ListAppointmentsHandler(c *gin.Context) {
	views := viewsOf(h.Store.Appointments())
	c.JSON(http.StatusOK, gin.H{"appointments": views, "count": len(views)})
}

// GetAppointmentHandler returns a single appointment.
func (h *AppointmentHandler) GetAppointmentHandler(c *gin.Context) {
	appt, ok := h.Store.GetAppointmentByID(c.Param("id"))
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "Appointment not found", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, viewOf(appt))
}

// ReportHandler renders the printable report once results are available.
func (h *AppointmentHandler) ReportHandler(c *gin.Context) {
	appt, ok := h.Store.GetAppointmentByID(c.Param("id"))
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "Appointment not found", c.Param("id"))
		return
	}
	if !appt.ReportViewable() {
		utils.JSONError(c, http.StatusConflict, "Report not ready", string(appt.Status))
		return
	}

	var buf bytes.Buffer
	if err := h.Renderer.Render(&buf, appt, h.Now()); err != nil {
		getLogger(c).Error("Failed to render report", zap.String("appointment", appt.ID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to render report", err.Error())
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

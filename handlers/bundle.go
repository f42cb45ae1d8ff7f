package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"pathlab/middleware"
	"pathlab/services/admin"
	"pathlab/services/booking"
	ai "pathlab/services/intelligence"
	"pathlab/services/lab"
	"pathlab/services/report"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	AdminAuth   middleware.AdminAuthenticator
	LoginPerMin int

	HealthHandler gin.HandlerFunc

	// Catalog endpoints
	ListTestsHandler     gin.HandlerFunc
	CategoriesHandler    gin.HandlerFunc
	GetTestHandler       gin.HandlerFunc
	ListSlotsHandler     gin.HandlerFunc
	BookableDatesHandler gin.HandlerFunc

	// Booking endpoints
	StartSession    gin.HandlerFunc
	GetSession      gin.HandlerFunc
	ScheduleSession gin.HandlerFunc
	SetPatient      gin.HandlerFunc
	NextStep        gin.HandlerFunc
	PreviousStep    gin.HandlerFunc
	ConfirmBooking  gin.HandlerFunc
	CancelSession   gin.HandlerFunc

	// Appointment endpoints
	ListAppointmentsHandler gin.HandlerFunc
	GetAppointmentHandler   gin.HandlerFunc
	ReportHandler           gin.HandlerFunc

	// AI endpoints
	AIRecommendHandler gin.HandlerFunc

	// Admin endpoints
	AdminLoginHandler            gin.HandlerFunc
	AdminLogoutHandler           gin.HandlerFunc
	AdminChangePasswordHandler   gin.HandlerFunc
	AdminListAppointmentsHandler gin.HandlerFunc
	AdminUpdateStatusHandler     gin.HandlerFunc
	AdminCreateTestHandler       gin.HandlerFunc
	AdminUpdateTestHandler       gin.HandlerFunc
	AdminDeleteTestHandler       gin.HandlerFunc
	AdminSyncStateHandler        gin.HandlerFunc
}

// Deps are the services the HTTP layer is built from.
type Deps struct {
	Store         *lab.Store
	Booking       booking.BookingService
	Authenticator *admin.Authenticator
	Passwords     admin.PasswordChanger
	Recommender   ai.RecommendationService
	Renderer      *report.Renderer
	Reports       ReportPublisher
	Notifier      booking.Notifier
	Location      *time.Location
	LoginPerMin   int
}

// NewHandlerBundle assembles every endpoint handler from deps.
func NewHandlerBundle(deps Deps) *HandlerBundle {
	catalogHandler := NewCatalogHandler(deps.Store, deps.Location)
	bookingHandler := NewBookingHandler(deps.Booking)
	appointmentHandler := NewAppointmentHandler(deps.Store, deps.Renderer)
	aiHandler := NewAIHandler(deps.Store, deps.Recommender)
	adminHandler := NewAdminHandler(deps.Authenticator, deps.Passwords, deps.Store, deps.Reports, deps.Notifier)

	return &HandlerBundle{
		AdminAuth:     deps.Authenticator,
		LoginPerMin:   deps.LoginPerMin,
		HealthHandler: HealthHandler(deps.Store),

		// Catalog endpoints.
		ListTestsHandler:     catalogHandler.ListTestsHandler,
		CategoriesHandler:    catalogHandler.CategoriesHandler,
		GetTestHandler:       catalogHandler.GetTestHandler,
		ListSlotsHandler:     catalogHandler.ListSlotsHandler,
		BookableDatesHandler: catalogHandler.BookableDatesHandler,

		// Booking endpoints.
		StartSession:    bookingHandler.StartSession,
		GetSession:      bookingHandler.GetSession,
		ScheduleSession: bookingHandler.ScheduleSession,
		SetPatient:      bookingHandler.SetPatient,
		NextStep:        bookingHandler.NextStep,
		PreviousStep:    bookingHandler.PreviousStep,
		ConfirmBooking:  bookingHandler.ConfirmBooking,
		CancelSession:   bookingHandler.CancelSession,

		// Appointment endpoints.
		ListAppointmentsHandler: appointmentHandler.ListAppointmentsHandler,
		GetAppointmentHandler:   appointmentHandler.GetAppointmentHandler,
		ReportHandler:           appointmentHandler.ReportHandler,

		// AI endpoints.
		AIRecommendHandler: aiHandler.AIRecommendHandler,

		// Admin endpoints.
		AdminLoginHandler:            adminHandler.AdminLoginHandler,
		AdminLogoutHandler:           adminHandler.AdminLogoutHandler,
		AdminChangePasswordHandler:   adminHandler.AdminChangePasswordHandler,
		AdminListAppointmentsHandler: adminHandler.AdminListAppointmentsHandler,
		AdminUpdateStatusHandler:     adminHandler.AdminUpdateStatusHandler,
		AdminCreateTestHandler:       adminHandler.AdminCreateTestHandler,
		AdminUpdateTestHandler:       adminHandler.AdminUpdateTestHandler,
		AdminDeleteTestHandler:       adminHandler.AdminDeleteTestHandler,
		AdminSyncStateHandler:        adminHandler.AdminSyncStateHandler,
	}
}

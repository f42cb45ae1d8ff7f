package routes

import (
	"time"

	"pathlab/handlers"
	"pathlab/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterCatalogRoutes registers test catalog and scheduling reference endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/tests", hb.ListTestsHandler)
		api.GET("/tests/categories", hb.CategoriesHandler)
		api.GET("/tests/:id", hb.GetTestHandler)
		api.GET("/slots", hb.ListSlotsHandler)
		api.GET("/booking/dates", hb.BookableDatesHandler)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking wizard.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/booking/sessions")
	{
		bookingGroup.POST("", hb.StartSession)
		bookingGroup.GET("/:id", hb.GetSession)
		bookingGroup.PUT("/:id/schedule", hb.ScheduleSession)
		bookingGroup.PUT("/:id/patient", hb.SetPatient)
		bookingGroup.POST("/:id/next", hb.NextStep)
		bookingGroup.POST("/:id/back", hb.PreviousStep)
		bookingGroup.POST("/:id/confirm", hb.ConfirmBooking)
		bookingGroup.DELETE("/:id", hb.CancelSession)
	}
}

// RegisterAppointmentRoutes registers the booking history and report endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.GET("", hb.ListAppointmentsHandler)
		api.GET("/:id", hb.GetAppointmentHandler)
		api.GET("/:id/report", hb.ReportHandler)
	}
}

// RegisterAIRoutes registers AI endpoints.
func RegisterAIRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/ai")
	{
		api.POST("/recommend", hb.AIRecommendHandler)
	}
}

// RegisterHealthRoute registers health-check and metrics endpoints.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.POST("/login", middleware.RateLimitMiddleware(hb.LoginPerMin), hb.AdminLoginHandler)

		protected := adminGroup.Group("")
		protected.Use(middleware.JWTAuthAdminMiddleware(hb.AdminAuth))
		protected.POST("/logout", hb.AdminLogoutHandler)
		protected.PUT("/password", hb.AdminChangePasswordHandler)
		protected.GET("/appointments", hb.AdminListAppointmentsHandler)
		protected.PATCH("/appointments/:id/status", hb.AdminUpdateStatusHandler)
		protected.POST("/tests", hb.AdminCreateTestHandler)
		protected.PUT("/tests/:id", hb.AdminUpdateTestHandler)
		protected.DELETE("/tests/:id", hb.AdminDeleteTestHandler)
		protected.GET("/sync/:kind/:id", hb.AdminSyncStateHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterAIRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}

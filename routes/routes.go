package routes

import (
	"net/http"
	"time"

	"wrenchworks/handlers"
	"wrenchworks/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account and session endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.RegisterClientHandler)
		api.POST("/login", hb.AuthenticateClientHandler)

		api.Use(middleware.JWTAuthMiddleware(hb.ClientRepo))
		api.POST("/logout", hb.LogoutClientHandler)
	}
}

// RegisterClientRoutes registers profile and notification endpoints.
func RegisterClientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/clients")
	api.Use(middleware.JWTAuthMiddleware(hb.ClientRepo))
	{
		api.GET("/me", hb.GetProfileHandler)
		api.PUT("/me", hb.UpdateProfileHandler)
		api.DELETE("/me", hb.DeleteAccountHandler)
		api.PUT("/me/password", hb.ChangePasswordHandler)
		api.PUT("/me/fcm-token", hb.UpdateFCMTokenHandler)
		api.GET("/me/notifications", hb.GetNotificationsHandler)
		api.PUT("/me/notifications/read", hb.MarkNotificationsReadHandler)

		staff := api.Group("")
		staff.Use(middleware.StaffOnlyMiddleware())
		staff.GET("", hb.ListClientsHandler)
		staff.GET("/:id", hb.GetClientHandler)
	}
}

// RegisterMechanicRoutes registers mechanic and schedule endpoints.
func RegisterMechanicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/mechanics")
	api.Use(middleware.JWTAuthMiddleware(hb.ClientRepo))
	{
		// Reads are open to any logged-in account; the booking form needs them.
		api.GET("", hb.ListMechanicsHandler)
		api.GET("/:id", hb.GetMechanicHandler)

		staff := api.Group("")
		staff.Use(middleware.StaffOnlyMiddleware())
		staff.POST("", hb.CreateMechanicHandler)
		staff.PUT("/:id", hb.UpdateMechanicHandler)
		staff.DELETE("/:id", hb.DeleteMechanicHandler)
		staff.PUT("/:id/schedule", hb.ReplaceScheduleHandler)
	}
}

// RegisterAppointmentRoutes registers booking, availability and calendar endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	api.Use(middleware.JWTAuthMiddleware(hb.ClientRepo))
	{
		api.GET("/availability", hb.AvailableMechanicsHandler)
		api.GET("/unavailable-days", hb.UnavailableDaysHandler)
		api.GET("", hb.ListMyAppointmentsHandler)
		api.GET("/:id", hb.GetAppointmentHandler)
		api.POST("", hb.CreateAppointmentHandler)
		api.PUT("/:id", hb.UpdateAppointmentHandler)
		api.PUT("/:id/cancel", hb.CancelAppointmentHandler)

		staff := api.Group("")
		staff.Use(middleware.StaffOnlyMiddleware())
		staff.GET("/day", hb.ListAppointmentsByDateHandler)
		staff.PUT("/:id/complete", hb.CompleteAppointmentHandler)
	}
}

// RegisterRepairRoutes registers repair order endpoints.
func RegisterRepairRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/repairs")
	api.Use(middleware.JWTAuthMiddleware(hb.ClientRepo))
	{
		api.GET("", hb.ListMyRepairsHandler)
		api.GET("/:id", hb.GetRepairHandler)
		api.GET("/media/*publicId", hb.GetPhotoURLHandler)

		staff := api.Group("")
		staff.Use(middleware.StaffOnlyMiddleware())
		staff.POST("", hb.OpenRepairHandler)
		staff.PUT("/:id", hb.UpdateRepairHandler)
		staff.POST("/:id/parts", hb.AddRepairPartHandler)
		staff.DELETE("/:id/parts/:partId", hb.RemoveRepairPartHandler)
		staff.PUT("/:id/complete", hb.CompleteRepairHandler)
		staff.POST("/:id/photos", hb.UploadRepairPhotoHandler)
	}
}

// RegisterInventoryRoutes registers parts catalogue endpoints (staff only).
func RegisterInventoryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/parts")
	api.Use(middleware.JWTAuthMiddleware(hb.ClientRepo), middleware.StaffOnlyMiddleware())
	{
		api.GET("", hb.ListPartsHandler)
		api.GET("/low-stock", hb.ListLowStockPartsHandler)
		api.GET("/:id", hb.GetPartHandler)
		api.POST("", hb.CreatePartHandler)
		api.PUT("/:id", hb.UpdatePartHandler)
		api.DELETE("/:id", hb.DeletePartHandler)
		api.POST("/:id/stock", hb.AdjustStockHandler)
	}
}

// RegisterBillingRoutes registers invoice and payment endpoints.
func RegisterBillingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/invoices")
	api.Use(middleware.JWTAuthMiddleware(hb.ClientRepo))
	{
		api.GET("", hb.ListMyInvoicesHandler)
		api.GET("/:id", hb.GetInvoiceHandler)
		api.POST("/pay", hb.PayInvoiceHandler)

		staff := api.Group("")
		staff.Use(middleware.StaffOnlyMiddleware())
		staff.PUT("/:id/paid", hb.MarkInvoicePaidHandler)
		staff.PUT("/:id/void", hb.VoidInvoiceHandler)
	}
}

// RegisterAIRoutes registers the workshop assistant endpoints.
func RegisterAIRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/ai")
	api.Use(middleware.JWTAuthMiddleware(hb.ClientRepo))
	{
		api.POST("/chat", hb.ChatHandler)
		api.DELETE("/chat", hb.ResetChatHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterClientRoutes(r, hb)
	RegisterMechanicRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterRepairRoutes(r, hb)
	RegisterInventoryRoutes(r, hb)
	RegisterBillingRoutes(r, hb)
	RegisterAIRoutes(r, hb)
	RegisterHealthRoute(r)
}

package routes

import (
	"net/http"
	"time"

	"asumo/handlers"
	"asumo/middleware"
	"asumo/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers resident account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.User.RegisterHandler)
		api.POST("/login", hb.User.LoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("/me", hb.User.MeHandler)
	}
}

// RegisterInvoiceRoutes registers the resident's invoice view.
func RegisterInvoiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/invoices")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("", hb.Invoice.ListOwnInvoicesHandler)
	}
}

// RegisterPaymentRoutes registers the checkout reconciliation endpoints.
// Authentication happens inside the payment service, which resolves the
// bearer itself and fails closed; no auth middleware here.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.POST("/create-payment-session", hb.Payment.CreatePaymentSessionHandler)
		api.POST("/verify-payment", hb.Payment.VerifyPaymentHandler)
	}
}

// RegisterRecordRoutes registers news, maintenance tickets and polls.
func RegisterRecordRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/records")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("/news", hb.Records.ListNewsHandler)
		api.GET("/tickets", hb.Records.ListOwnTicketsHandler)
		api.POST("/tickets", hb.Records.CreateTicketHandler)
		api.GET("/polls", hb.Records.ListPollsHandler)
		api.POST("/polls/:id/vote", hb.Records.VotePollHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for board/admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		adminGroup.Use(middleware.AdminOnlyMiddleware())
		adminGroup.GET("/residents", hb.User.ListResidentsHandler)
		adminGroup.POST("/invoices", hb.Invoice.CreateInvoiceHandler)
		adminGroup.GET("/invoices", hb.Invoice.ListAllInvoicesHandler)
		adminGroup.POST("/news", hb.Records.PublishNewsHandler)
		adminGroup.PATCH("/tickets/:id/status", hb.Records.SetTicketStatusHandler)
		adminGroup.POST("/polls", hb.Records.CreatePollHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"message":  "Hi, I'm Asumo",
			"services": utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Open CORS: the portal frontend is served from its own origin and the
	// payment endpoints answer preflights for the gateway redirect pages.
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"authorization", "x-client-info", "apikey", "content-type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterInvoiceRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterRecordRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}

package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"aura/handlers"
	"aura/lifecycle"
	"aura/middleware"
)

// RegisterAuthRoutes registers login, registration and session endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.Bundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.LoginHandler)
		api.POST("/register", hb.RegisterHandler)

		// Protected routes (require an authenticated session).
		api.Use(middleware.RequireAuth(hb, hb.CookieName))
		api.POST("/logout", hb.LogoutHandler)
		api.GET("/me", hb.MeHandler)
	}
}

// RegisterReservationRoutes registers the reservation lifecycle endpoints.
func RegisterReservationRoutes(r *gin.Engine, hb *handlers.Bundle) {
	api := r.Group("/api/reservations")
	{
		api.Use(middleware.RequireAuth(hb, hb.CookieName))
		api.GET("", hb.ListReservationsHandler)
		api.POST("", hb.CreateReservationHandler)
		api.GET("/:id", hb.GetReservationHandler)
		api.PATCH("/:id/confirm", hb.TransitionHandler(lifecycle.ActionAccept))
		api.PATCH("/:id/reject", hb.TransitionHandler(lifecycle.ActionReject))
		api.PATCH("/:id/cancel", hb.TransitionHandler(lifecycle.ActionCancel))
		api.PATCH("/:id/complete", hb.CompleteReservationHandler)
	}
}

// RegisterCheckoutRoutes registers the payment and review steps of checkout.
func RegisterCheckoutRoutes(r *gin.Engine, hb *handlers.Bundle) {
	api := r.Group("/api/checkout")
	{
		api.Use(middleware.RequireAuth(hb, hb.CookieName))
		api.POST("/payments", hb.CreatePaymentHandler)
		api.POST("/reviews", hb.CreateReviewHandler)
		api.GET("/pending-payments", hb.PendingPaymentsHandler)
		api.GET("/pending-reviews", hb.PendingReviewsHandler)
	}
}

// RegisterCatalogRoutes registers the service catalog and technician-service
// endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.Bundle) {
	services := r.Group("/api/services")
	{
		services.Use(middleware.RequireAuth(hb, hb.CookieName))
		services.GET("", hb.ListServicesHandler)
		services.GET("/categories", hb.ListCategoriesHandler)
		services.GET("/:id", hb.GetServiceHandler)
		services.GET("/:id/technicians", hb.ServiceTechniciansHandler)
	}

	technicians := r.Group("/api/technicians")
	{
		technicians.Use(middleware.RequireAuth(hb, hb.CookieName))
		technicians.GET("/:id/services", hb.TechnicianServicesHandler)
		technicians.GET("/:id/reviews", hb.TechnicianReviewsHandler)
	}

	links := r.Group("/api/technician-services")
	{
		links.Use(middleware.RequireAuth(hb, hb.CookieName))
		links.POST("", hb.OfferServiceHandler)
		links.PATCH("/:id/base-rate", hb.UpdateBaseRateHandler)
	}
}

// RegisterAccountRoutes registers the remaining authenticated endpoints.
func RegisterAccountRoutes(r *gin.Engine, hb *handlers.Bundle) {
	api := r.Group("/api")
	{
		api.Use(middleware.RequireAuth(hb, hb.CookieName))
		api.GET("/navigation", hb.NavigationHandler)
		api.GET("/payments/my", hb.MyPaymentsHandler)
		api.GET("/payments/:id", hb.GetPaymentHandler)
		api.GET("/reviews/my", hb.MyReviewsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.Bundle, corsOrigins []string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterReservationRoutes(r, hb)
	RegisterCheckoutRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterAccountRoutes(r, hb)
	RegisterHealthRoute(r)
}

package router

import (
	"github.com/gin-gonic/gin"

	"certiquote/internal/config"
	"certiquote/internal/handler"
	"certiquote/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	quoteH *handler.QuoteHandler,
	webhookH *handler.WebhookHandler,
	adminH *handler.AdminHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public quote routes
	quotes := v1.Group("/quotes")
	quotes.POST("", quoteH.Create)
	quotes.GET("/resume", quoteH.Resume)
	quotes.GET("/:id", quoteH.Get)
	quotes.PATCH("/:id/client", quoteH.UpdateClient)
	quotes.PATCH("/:id/metadata", quoteH.UpdateMetadata)
	quotes.POST("/:id/accept", quoteH.Accept)
	quotes.POST("/:id/hitl", quoteH.RequestHITL)
	quotes.GET("/:id/status", quoteH.Status)
	quotes.GET("/:id/summary", quoteH.Summary)
	quotes.GET("/:id/delivery-options", quoteH.DeliveryOptions)
	quotes.GET("/:id/files", quoteH.ListFiles)
	quotes.POST("/:id/files/refresh", quoteH.RefreshFileLinks)
	quotes.POST("/:id/email-link", quoteH.EmailLink)

	// Inbound webhooks
	webhooks := v1.Group("/webhooks")
	webhooks.POST("/payment", webhookH.Payment)

	// Pipeline and back-office routes, guarded by the shared admin key
	admin := v1.Group("/admin")
	admin.Use(middleware.AdminKey(cfg.Admin.APIKey))
	admin.POST("/ingest-results", adminH.IngestResults)
	admin.POST("/quotes/:id/reprice", adminH.Reprice)
	admin.GET("/quotes/:id/export", adminH.Export)

	return r
}

package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/handlers"
	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/middleware"
)

type RouterConfig struct {
	ServiceName        string
	IdentityMiddleware *middleware.IdentityMiddleware
	AttachmentHandler  *handlers.AttachmentHandler
	ReportHandler      *handlers.ReportHandler
	AllowOrigins       []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware(cfg.ServiceName))

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	api.Use(cfg.IdentityMiddleware.RequireIdentity())

	// Attachments
	api.POST("/projects/:id/attachments", cfg.AttachmentHandler.Upload)
	api.GET("/projects/:id/attachments", cfg.AttachmentHandler.ListActive)
	api.PATCH("/attachments/:id", cfg.AttachmentHandler.UpdateMetadata)
	api.POST("/attachments/:id/move-up", cfg.AttachmentHandler.MoveUp)
	api.POST("/attachments/:id/move-down", cfg.AttachmentHandler.MoveDown)
	api.DELETE("/attachments/:id", cfg.AttachmentHandler.SoftDelete)

	// Documents
	api.GET("/projects/:id/report", cfg.ReportHandler.ComposeReport)
	api.GET("/projects/:id/audit-pack", cfg.ReportHandler.MergePack)

	return router
}

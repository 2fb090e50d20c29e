package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/clients/gcp"
	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/db"
	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/handlers"
	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/logger"
	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/middleware"
	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/observability"
	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/repos"
	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/server"
	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/services"
	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/utils"
)

const serviceName = "inspection-backend"

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Tracing
	ctx := context.Background()
	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: serviceName,
		Environment: utils.GetEnv("DEPLOY_ENV", "development", log),
	})
	defer func() { _ = otelShutdown(ctx) }()

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Object storage
	bucketService, err := gcp.NewBucketService(log)
	if err != nil {
		log.Fatal("Bucket service init failed", "error", err)
	}

	// Repos
	projectRepo := repos.NewProjectRepo(thePG, log)
	memberRepo := repos.NewMemberRepo(thePG, log)
	inspectionRepo := repos.NewInspectionRepo(thePG, log)
	ncrRepo := repos.NewNCRRepo(thePG, log)
	simulatedRepo := repos.NewSimulatedSetRepo(thePG, log)
	attachmentRepo := repos.NewAttachmentRepo(thePG, log)

	// Services
	normalizerService := services.NewNormalizerService(log)
	brandingService := services.NewBrandingService(log, bucketService)
	dividerService := services.NewDividerService(log)
	attachmentService := services.NewAttachmentService(thePG, log, attachmentRepo, bucketService, normalizerService)
	reportService := services.NewReportService(log, projectRepo, memberRepo, inspectionRepo, ncrRepo, simulatedRepo, brandingService)
	mergeService := services.NewMergeService(log, projectRepo, reportService, attachmentService, dividerService, bucketService)

	// HTTP
	identitySecret := utils.GetEnv("IDENTITY_SECRET", "defaultsecret", log)
	identityMiddleware := middleware.NewIdentityMiddleware(log, identitySecret)
	attachmentHandler := handlers.NewAttachmentHandler(log, attachmentService)
	reportHandler := handlers.NewReportHandler(log, reportService, mergeService)

	router := server.NewRouter(server.RouterConfig{
		ServiceName:        serviceName,
		IdentityMiddleware: identityMiddleware,
		AttachmentHandler:  attachmentHandler,
		ReportHandler:      reportHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}

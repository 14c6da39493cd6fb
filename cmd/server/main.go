package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"certiquote/internal/config"
	"certiquote/internal/email/noop"
	"certiquote/internal/email/ses"
	"certiquote/internal/handler"
	"certiquote/internal/notify"
	"certiquote/internal/port"
	"certiquote/internal/repository/postgres"
	"certiquote/internal/router"
	"certiquote/internal/service"
	s3storage "certiquote/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Best effort: a missing .env just means the environment is already set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	quoteRepo := postgres.NewQuoteRepo(db)
	customerRepo := postgres.NewCustomerRepo(db)
	resultRepo := postgres.NewResultRepo(db)
	refRepo := postgres.NewReferenceRepo(db)
	settingsRepo := postgres.NewSettingsRepo(db)
	fileRepo := postgres.NewFileRepo(db)

	// Initialize external collaborators
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}
	notifier := notify.NewWebhookNotifier(cfg.Webhook)

	var emailSender port.EmailSender
	if cfg.Email.Provider == "ses" {
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		emailSender = noop.NewNoopSender()
	}

	// Initialize services
	resolverSvc := service.NewResolverService(refRepo)
	ingestSvc := service.NewIngestService(quoteRepo, resultRepo, settingsRepo, resolverSvc, notifier, emailSender, cfg.Pricing, cfg.Email.FrontendURL)
	summarySvc := service.NewSummaryService(quoteRepo, resultRepo, cfg.Pricing)
	quoteSvc := service.NewQuoteService(quoteRepo, customerRepo, refRepo, resultRepo, notifier)
	deliverySvc := service.NewDeliveryService(quoteRepo, resultRepo, refRepo)
	fileSvc := service.NewFileService(fileRepo, s3Client, notifier, cfg.S3)
	linkSvc := service.NewLinkService(quoteRepo, emailSender, cfg.Link)

	// Initialize handlers
	quoteH := handler.NewQuoteHandler(quoteSvc, summarySvc, deliverySvc, fileSvc, linkSvc)
	webhookH := handler.NewWebhookHandler(quoteSvc)
	adminH := handler.NewAdminHandler(ingestSvc, summarySvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, quoteH, webhookH, adminH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

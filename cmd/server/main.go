package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"brushquote/internal/config"
	"brushquote/internal/email/noop"
	"brushquote/internal/email/ses"
	"brushquote/internal/generator"
	"brushquote/internal/generator/claude"
	"brushquote/internal/generator/openai"
	"brushquote/internal/handler"
	"brushquote/internal/port"
	"brushquote/internal/repository/postgres"
	"brushquote/internal/router"
	"brushquote/internal/service"
	s3storage "brushquote/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
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
	templateRepo := postgres.NewTemplateRepo(db)
	proposalRepo := postgres.NewProposalRepo(db)
	uploadRepo := postgres.NewUploadRepo(db)

	// Initialize storage
	objectStore, err := s3storage.NewObjectStore(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email delivery
	var emailSender port.EmailSender
	if cfg.Email.Provider == "ses" {
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.FrontendURL)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		emailSender = noop.NewNoopSender(cfg.Email.FrontendURL)
	}

	// Initialize the proposal generator with optional fallback
	generator.RegisterProvider("claude", func(c *config.GeneratorProviderConfig) (port.ProposalGenerator, error) {
		return claude.NewGenerator(c), nil
	})
	generator.RegisterProvider("openai", func(c *config.GeneratorProviderConfig) (port.ProposalGenerator, error) {
		return openai.NewGenerator(c), nil
	})

	gen, err := buildGenerator(&cfg.Generator)
	if err != nil {
		return fmt.Errorf("failed to initialize proposal generator: %w", err)
	}

	// Initialize services
	templateSvc := service.NewTemplateService(templateRepo)
	sessionSvc := service.NewSessionService(templateRepo, proposalRepo)
	proposalSvc := service.NewProposalService(proposalRepo, gen, emailSender)
	uploadSvc := service.NewUploadService(uploadRepo, objectStore, &cfg.S3)

	// Start the generate queue worker
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	worker := service.NewGenerateQueueWorker(proposalRepo, proposalSvc, service.GenerateQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		MaxAttempts:  cfg.Queue.MaxAttempts,
		Concurrency:  cfg.Queue.Concurrency,
	})
	go worker.Start(ctx)

	// Initialize handlers
	templateH := handler.NewTemplateHandler(templateSvc)
	sessionH := handler.NewSessionHandler(sessionSvc)
	proposalH := handler.NewProposalHandler(proposalSvc)
	uploadH := handler.NewUploadHandler(uploadSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, templateH, sessionH, proposalH, uploadH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// buildGenerator wires the primary provider, wrapping it in a
// FallbackGenerator when a secondary provider is configured.
func buildGenerator(cfg *config.GeneratorConfig) (port.ProposalGenerator, error) {
	primaryCfg := cfg.PrimaryConfig()
	primary, err := generator.NewGenerator(primaryCfg)
	if err != nil {
		return nil, err
	}

	secondaryCfg := cfg.SecondaryConfig()
	if secondaryCfg == nil {
		return primary, nil
	}

	secondary, err := generator.NewGenerator(secondaryCfg)
	if err != nil {
		return nil, err
	}

	return generator.NewFallbackGenerator(
		[]port.ProposalGenerator{primary, secondary},
		[]string{primaryCfg.Provider, secondaryCfg.Provider},
	), nil
}

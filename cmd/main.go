package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/clients/openai"
	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/clients/supabase"
	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/config"
	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/events"
	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/extraction"
	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/logger"
	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/metrics"
	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/repositories"
	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/server"
	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/services"
	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
)

func setupStorage(ctx context.Context, cfg *config.Config) *supabase.Storage {

	if cfg.Storage.URL == "" {
		log.Warn("storage is not configured, CVs will be stored without file links")
		return nil
	}

	storage := supabase.NewStorage(cfg.Storage.URL, cfg.Storage.Key, cfg.Storage.UploadTimeout)
	if err := storage.EnsureBucket(ctx, cfg.Storage.Bucket); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStorage).
			Errorf("failed to ensure storage bucket: %v", err)
	}
	return storage
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(ctx, cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer(cfg.Server.MetricsPort)

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	if err = dbContext.Migrate(); err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	candidates := repositories.NewCandidatesRepository(dbContext.DB)
	projects := repositories.NewProjectsRepository(dbContext.DB)
	clients := repositories.NewClientsRepository(dbContext.DB)

	aiClient := openai.NewClient(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.RequestTimeout)
	aiClient.SetMinuteRateLimit(cfg.AI.MaxRequestsPerMinute)
	aiClient.SetDayRateLimit(cfg.AI.MaxRequestsPerDay)

	storage := setupStorage(ctx, cfg)

	bus := EventBus.New()
	err = bus.Subscribe(events.CandidateIngestedTopic, func(e events.CandidateIngested) {
		action := "created"
		if e.Updated {
			action = "updated"
		}
		log.Infof("candidate %v %v %v (rut %v)", e.Nombre, e.Apellido, action, e.Rut)
	})
	if err != nil {
		log.Fatalf("can't subscribe to ingestion events: %v", err)
	}

	processor := services.NewCVProcessor(aiClient)
	extractor := extraction.NewService()

	ingestor := newIngestor(bus, extractor, processor, storage, candidates, cfg.Storage.Bucket)

	finder := services.NewCandidateFinder(aiClient, candidates)

	rotations := services.NewRotationsReporter(projects, candidates, cfg.Rotations.HorizonInDays)
	if err = rotations.StartScheduler(); err != nil {
		log.Fatalf("can't start rotations scheduler: %v", err)
	}
	defer rotations.StopScheduler()

	srv := server.NewServer(server.Dependencies{
		Ingestor:   ingestor,
		Finder:     finder,
		Rotations:  rotations,
		Candidates: candidates,
		Projects:   projects,
		Clients:    clients,
	})

	go func() {
		log.Infof("starting http server on port %d", cfg.Server.Port)
		if err := srv.Run(cfg.Server.Port); err != nil {
			log.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down services...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("http server shutdown failed: %v", err)
	}
	log.Info("Services stopped.")
}

// newIngestor passes an untyped nil when storage is disabled, a typed nil
// pointer would not compare equal to nil behind the storage interface.
func newIngestor(bus EventBus.Bus, extractor *extraction.Service, processor *services.CVProcessor,
	storage *supabase.Storage, candidates *repositories.Candidates, bucket string) *services.CVIngestor {

	if storage == nil {
		return services.NewCVIngestor(bus, extractor, processor, nil, candidates, bucket)
	}
	return services.NewCVIngestor(bus, extractor, processor, storage, candidates, bucket)
}

// Package app wires configuration, stores, the AI client and the services
// into one dependency-injected container built once at startup.
package app

import (
	"context"
	"fmt"

	"plume/internal/aiclient"
	"plume/internal/config"
	"plume/internal/services"
	"plume/internal/store"
	"plume/internal/store/primary"

	log "github.com/sirupsen/logrus"
)

type App struct {
	Config *config.Config

	// Store interfaces, all backed by the primary PostgreSQL store.
	CategoryStore     store.CategoryStore
	PostStore         store.PostStore
	PostCategoryStore store.PostCategoryStore
	UsageStore        store.UsageStore

	JobClient store.JobClient
	AIClient  *aiclient.Client

	CategoryService      *services.CategoryService
	AutoTagService       *services.AutoTagService
	SeoService           *services.SeoService
	SeoValidationService *services.SeoValidationService

	primaryStore *primary.StoreImpl
	geminiClose  func() error
}

func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()
	app := &App{Config: cfg}

	if err := app.initPrimaryStore(ctx); err != nil {
		return nil, err
	}
	if err := app.initJobClient(); err != nil {
		app.cleanupPartialInit()
		return nil, err
	}
	if err := app.initAIClient(ctx); err != nil {
		app.cleanupPartialInit()
		return nil, err
	}
	app.initServices()

	log.Debug("Application initialization complete")
	return app, nil
}

func (a *App) initPrimaryStore(ctx context.Context) error {
	ps, err := primary.NewPrimaryStore(ctx, a.Config.Database.Primary.DSN)
	if err != nil {
		return fmt.Errorf("init primary store: %w", err)
	}
	a.primaryStore = ps
	a.CategoryStore = ps
	a.PostStore = ps
	a.PostCategoryStore = ps
	a.UsageStore = ps
	return nil
}

func (a *App) initJobClient() error {
	jc, err := store.NewAsynqJobClient(a.Config.Redis.Address, a.Config.Redis.Password, a.Config.Redis.DB)
	if err != nil {
		return fmt.Errorf("init job client: %w", err)
	}
	a.JobClient = jc
	return nil
}

func (a *App) initAIClient(ctx context.Context) error {
	var gen aiclient.TextGenerator
	switch a.Config.AI.Provider {
	case "openai":
		provider, err := aiclient.NewOpenAIProvider(a.Config.AI.OpenaiApiKey, a.Config.AI.Model)
		if err != nil {
			return fmt.Errorf("init openai provider: %w", err)
		}
		gen = provider
	case "gemini":
		provider, err := aiclient.NewGeminiProvider(ctx, a.Config.AI.GoogleApiKey, a.Config.AI.Model)
		if err != nil {
			return fmt.Errorf("init gemini provider: %w", err)
		}
		a.geminiClose = provider.Close
		gen = provider
	default:
		return fmt.Errorf("unknown AI provider %q", a.Config.AI.Provider)
	}

	a.AIClient = aiclient.NewClient(gen, a.UsageStore, log.StandardLogger())
	return nil
}

func (a *App) initServices() {
	logger := log.StandardLogger()
	a.CategoryService = services.NewCategoryService(a.AIClient, a.CategoryStore, a.Config, logger)
	a.AutoTagService = services.NewAutoTagService(
		a.CategoryService, a.PostStore, a.CategoryStore, a.PostCategoryStore,
		a.Config.Categorization.AutoApplyThreshold, logger)
	a.SeoService = services.NewSeoService(a.AIClient, a.Config, logger)
	a.SeoValidationService = services.NewSeoValidationService(a.AIClient, a.Config, logger)
}

// cleanupPartialInit releases whatever a failed NewApp already acquired.
func (a *App) cleanupPartialInit() {
	if a.JobClient != nil {
		if err := a.JobClient.Close(); err != nil {
			log.Warnf("Failed to close job client during cleanup: %v", err)
		}
	}
	if a.primaryStore != nil {
		a.primaryStore.Close()
	}
}

// Close releases all resources held by the app.
func (a *App) Close() {
	if a.geminiClose != nil {
		if err := a.geminiClose(); err != nil {
			log.Warnf("Failed to close gemini client: %v", err)
		}
	}
	if a.JobClient != nil {
		if err := a.JobClient.Close(); err != nil {
			log.Warnf("Failed to close job client: %v", err)
		}
	}
	if a.primaryStore != nil {
		a.primaryStore.Close()
	}
}

// Ping verifies the database connection.
func (a *App) Ping(ctx context.Context) error {
	return a.CategoryStore.Ping(ctx)
}

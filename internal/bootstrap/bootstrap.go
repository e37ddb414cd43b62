package bootstrap

import (
	"context"
	"fmt"
	"voicebot-server/internal/config"
	"voicebot-server/internal/observability"
	"voicebot-server/internal/store"

	"voicebot-server/internal/clients/googleai"
	"voicebot-server/internal/clients/openai"
	fraudHandler "voicebot-server/internal/fraudcall/handler"
	gameHandler "voicebot-server/internal/gamecall/handler"
	voiceCallProcessor "voicebot-server/internal/voicecall/processor"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Store  store.Store
	Logger *observability.Logger

	// Handlers
	FraudCallHandler fraudHandler.Handler
	GameCallHandler  gameHandler.Handler
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: logger,
	}

	var err error
	deps.Store, err = store.New(cfg.Database.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open case store: %w", err)
	}
	if err := deps.Store.SeedDemoCases(ctx); err != nil {
		return nil, fmt.Errorf("failed to seed demo cases: %w", err)
	}

	googleAIClient, err := googleai.NewGoogleAILiveClient(cfg.Services.GoogleAIAPIKey, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google AI client: %w", err)
	}

	// Call auditing is optional: without a key calls simply run unaudited.
	var transcriber voiceCallProcessor.Transcriber
	if cfg.Services.OpenAIAPIKey != "" {
		openAIClient, err := openai.NewOpenAIRealtimeClient(cfg.Services.OpenAIAPIKey, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
		}
		transcriber = openAIClient
	}

	callProc := voiceCallProcessor.NewCallProcessor(googleAIClient, transcriber, logger)

	deps.FraudCallHandler = fraudHandler.New(callProc, &deps.Store, cfg.Server.PublicHost, logger)
	deps.GameCallHandler = gameHandler.New(callProc, cfg.Game.SavesDir, cfg.Server.PublicHost, logger)

	return deps, nil
}

// Cleanup closes all resources that need cleanup
func (d *Dependencies) Cleanup() {
	d.Store.Close()
}

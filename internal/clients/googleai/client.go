package googleai

import (
	"context"
	"fmt"
	"voicebot-server/internal/observability"

	"google.golang.org/genai"
)

// GoogleAILiveClient handles two-way voice conversations over the Google AI Live API.
type GoogleAILiveClient struct {
	client *genai.Client
	logger *observability.Logger
}

// NewGoogleAILiveClient creates a new Google AI client for real-time voice sessions.
func NewGoogleAILiveClient(apiKey string, logger *observability.Logger) (*GoogleAILiveClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Google AI client: %w", err)
	}

	return &GoogleAILiveClient{
		client: client,
		logger: logger,
	}, nil
}

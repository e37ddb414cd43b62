package processor

import (
	"context"
	"voicebot-server/internal/clients/googleai"
	"voicebot-server/internal/clients/openai"
	"voicebot-server/internal/observability"
)

// AgentStarter is the voice-agent side of the bridge.
type AgentStarter interface {
	StartVoiceAgent(ctx context.Context, audioStream <-chan []byte, cfg googleai.AgentConfig) <-chan googleai.VoiceAgentResult
}

// Transcriber produces an audit transcript of the caller's side of the
// conversation.
type Transcriber interface {
	StartRealtimeTranscription(ctx context.Context, audioStream <-chan []byte, cfg openai.RealtimeTranscriptionConfig) (<-chan openai.TranscriptionResult, error)
}

// CallProcessor bridges Twilio media streams to Live API voice agents.
type CallProcessor struct {
	agent       AgentStarter
	transcriber Transcriber // nil disables call auditing
	logger      *observability.Logger
}

func NewCallProcessor(agent AgentStarter, transcriber Transcriber, logger *observability.Logger) *CallProcessor {
	return &CallProcessor{
		agent:       agent,
		transcriber: transcriber,
		logger:      logger,
	}
}

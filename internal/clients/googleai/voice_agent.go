package googleai

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"voicebot-server/internal/agenttools"
	"voicebot-server/internal/voice/audio"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash-preview-native-audio-dialog"

// AgentConfig describes the persona and capabilities of a voice agent session.
type AgentConfig struct {
	// Model overrides the default native audio dialog model.
	Model string
	// Voice selects a prebuilt voice, e.g. "Aoede" or "Puck".
	Voice string
	// Instructions is the system prompt for the session.
	Instructions string
	// Tools is dispatched for every function call the model makes. May be nil.
	Tools *agenttools.Toolset
	// Greeting, when set, is sent as the first user turn so the agent
	// speaks before the caller does.
	Greeting string
}

// VoiceAgentResult represents a voice agent response
type VoiceAgentResult struct {
	AudioData []byte // PCM audio data to send back
	Text      string // Text transcription of the response
	Error     error
}

// liveSession is the part of the Live API session the agent touches.
// *genai.Session implements it.
type liveSession interface {
	Receive() (*genai.LiveServerMessage, error)
	SendRealtimeInput(input genai.LiveRealtimeInput) error
	SendToolResponse(input genai.LiveToolResponseInput) error
	SendClientContent(input genai.LiveClientContentInput) error
	Close() error
}

// StartVoiceAgent starts a two-way voice conversation with Google AI. Audio
// read from audioStream is mulaw 8kHz; results carry 24kHz PCM from the model.
func (g *GoogleAILiveClient) StartVoiceAgent(ctx context.Context, audioStream <-chan []byte, cfg AgentConfig) <-chan VoiceAgentResult {
	results := make(chan VoiceAgentResult, 100)

	go func() {
		defer close(results)

		connectConfig := &genai.LiveConnectConfig{
			ResponseModalities: []genai.Modality{genai.Modality("AUDIO")},
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{
					{Text: cfg.Instructions},
				},
			},
			InputAudioTranscription:  &genai.AudioTranscriptionConfig{},
			OutputAudioTranscription: &genai.AudioTranscriptionConfig{},
			SpeechConfig: &genai.SpeechConfig{
				VoiceConfig: &genai.VoiceConfig{
					PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
						VoiceName: cfg.Voice,
					},
				},
			},
			RealtimeInputConfig: &genai.RealtimeInputConfig{
				AutomaticActivityDetection: &genai.AutomaticActivityDetection{
					Disabled: false,
				},
			},
		}
		if cfg.Tools != nil {
			decls := cfg.Tools.Declarations()
			if len(decls) > 0 {
				connectConfig.Tools = []*genai.Tool{
					{FunctionDeclarations: decls},
				}
			}
		}

		modelName := cfg.Model
		if modelName == "" {
			modelName = defaultModel
		}
		session, err := g.client.Live.Connect(ctx, modelName, connectConfig)
		if err != nil {
			g.logger.Error(ctx, "Failed to connect to Google AI Live API", err)
			results <- VoiceAgentResult{Error: fmt.Errorf("failed to connect: %w", err)}
			return
		}

		g.logger.Info(ctx, "Connected to Google AI Live API for voice agent")
		g.runVoiceSession(ctx, session, audioStream, cfg, results)
	}()

	return results
}

// runVoiceSession pumps the session until the audio stream closes or the
// context is cancelled. The underlying websocket allows one concurrent
// writer, and tool responses go out from the receive goroutine while this
// goroutine streams audio, so every send takes writeMutex.
func (g *GoogleAILiveClient) runVoiceSession(ctx context.Context, session liveSession, audioStream <-chan []byte, cfg AgentConfig, results chan<- VoiceAgentResult) {
	voiceCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer session.Close()

	var writeMutex sync.Mutex

	// Receive goroutine: model audio, transcripts, and tool calls.
	go func() {
		for {
			select {
			case <-voiceCtx.Done():
				return
			default:
				msg, err := session.Receive()
				if err != nil {
					if voiceCtx.Err() != nil {
						return
					}
					if strings.Contains(err.Error(), "use of closed network connection") ||
						strings.Contains(err.Error(), "closed") {
						g.logger.Info(ctx, "Google AI session closed, stopping receive goroutine")
						return
					}
					g.logger.Error(ctx, "Unexpected error receiving message", err)
					select {
					case results <- VoiceAgentResult{Error: err}:
					case <-voiceCtx.Done():
					}
					return
				}

				if msg.ToolCall != nil && cfg.Tools != nil {
					responses := make([]*genai.FunctionResponse, 0, len(msg.ToolCall.FunctionCalls))
					for _, call := range msg.ToolCall.FunctionCalls {
						g.logger.Info(ctx, fmt.Sprintf("Tool call: %s", call.Name))
						output := cfg.Tools.Dispatch(voiceCtx, call.Name, call.Args)
						responses = append(responses, &genai.FunctionResponse{
							ID:       call.ID,
							Name:     call.Name,
							Response: map[string]any{"output": output},
						})
					}
					writeMutex.Lock()
					err := session.SendToolResponse(genai.LiveToolResponseInput{
						FunctionResponses: responses,
					})
					writeMutex.Unlock()
					if err != nil {
						g.logger.Error(ctx, "Failed to send tool response", err)
					}
					continue
				}

				if msg.ServerContent == nil {
					continue
				}

				if msg.ServerContent.Interrupted {
					g.logger.Info(ctx, "Model was interrupted")
				}

				if msg.ServerContent.ModelTurn != nil {
					for _, part := range msg.ServerContent.ModelTurn.Parts {
						if part.InlineData != nil && part.InlineData.Data != nil {
							select {
							case results <- VoiceAgentResult{
								AudioData: part.InlineData.Data,
							}:
							case <-voiceCtx.Done():
								return
							}
						}
					}
				}

				if msg.ServerContent.OutputTranscription != nil {
					transcript := msg.ServerContent.OutputTranscription.Text
					if transcript != "" {
						g.logger.Info(ctx, fmt.Sprintf("Agent said: %s", transcript))
						select {
						case results <- VoiceAgentResult{
							Text: transcript,
						}:
						case <-voiceCtx.Done():
							return
						}
					}
				}

				if msg.ServerContent.InputTranscription != nil &&
					msg.ServerContent.InputTranscription.Text != "" {
					g.logger.Info(ctx, fmt.Sprintf("Caller said: %s", msg.ServerContent.InputTranscription.Text))
				}
			}
		}
	}()

	if cfg.Greeting != "" {
		writeMutex.Lock()
		err := session.SendClientContent(genai.LiveClientContentInput{
			Turns: []*genai.Content{
				{
					Role:  "user",
					Parts: []*genai.Part{{Text: cfg.Greeting}},
				},
			},
		})
		writeMutex.Unlock()
		if err != nil {
			g.logger.Error(ctx, "Failed to send greeting turn", err)
		}
	}

	audioChunkCount := 0
	for {
		select {
		case <-voiceCtx.Done():
			g.logger.Info(ctx, "Context cancelled, stopping voice agent")
			return
		case audioChunk, ok := <-audioStream:
			if !ok {
				g.logger.Info(ctx, fmt.Sprintf("Audio stream closed after %d chunks", audioChunkCount))
				return
			}

			pcmAudio := audio.ConvertMuLawToPCM16kHz(audioChunk)
			audioChunkCount++

			if audioChunkCount%1000 == 0 {
				g.logger.Debug(ctx, fmt.Sprintf("Processed %d audio chunks", audioChunkCount))
			}

			writeMutex.Lock()
			err := session.SendRealtimeInput(genai.LiveRealtimeInput{
				Audio: &genai.Blob{
					Data:     pcmAudio,
					MIMEType: "audio/pcm;rate=16000",
				},
			})
			writeMutex.Unlock()
			if err != nil {
				g.logger.Error(ctx, "Failed to send audio chunk", err)
				select {
				case results <- VoiceAgentResult{Error: fmt.Errorf("failed to send audio: %w", err)}:
				case <-voiceCtx.Done():
				}
				return
			}
		}
	}
}

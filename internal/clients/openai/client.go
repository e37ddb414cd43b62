package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
	"voicebot-server/internal/observability"

	"github.com/gorilla/websocket"
)

const realtimeTranscriptionURL = "wss://api.openai.com/v1/audio/transcriptions/stream"

// RealtimeTranscriptionConfig holds configuration for a transcription session.
type RealtimeTranscriptionConfig struct {
	Model          string // e.g. "gpt-4o-transcribe", "whisper-1"
	Language       string // ISO-639-1 code, e.g. "en"
	Prompt         string
	NoiseReduction string // "near_field", "far_field", or ""
	VAD            bool   // enable server VAD
}

// TranscriptionResult is a partial or final transcription event.
type TranscriptionResult struct {
	Type       string // "delta", "completed", or "error"
	Delta      string
	Transcript string
	ItemID     string
}

// OpenAIRealtimeClient streams audio to OpenAI's realtime transcription
// endpoint. It is used for call auditing and is optional at startup.
type OpenAIRealtimeClient struct {
	apiKey string
	logger *observability.Logger
}

func NewOpenAIRealtimeClient(apiKey string, logger *observability.Logger) (*OpenAIRealtimeClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	return &OpenAIRealtimeClient{apiKey: apiKey, logger: logger}, nil
}

// StartRealtimeTranscription opens a websocket session and streams PCM16
// audio from audioStream, returning transcription events as they arrive.
// The result channel closes when audioStream closes or the session fails.
func (c *OpenAIRealtimeClient) StartRealtimeTranscription(ctx context.Context, audioStream <-chan []byte, cfg RealtimeTranscriptionConfig) (<-chan TranscriptionResult, error) {
	results := make(chan TranscriptionResult)

	go func() {
		defer close(results)

		headers := http.Header{}
		headers.Set("Authorization", "Bearer "+c.apiKey)

		dialer := websocket.Dialer{}
		conn, _, err := dialer.DialContext(ctx, realtimeTranscriptionURL, headers)
		if err != nil {
			c.logger.Error(ctx, "Failed to connect to OpenAI realtime endpoint", err)
			results <- TranscriptionResult{Type: "error", Delta: err.Error()}
			return
		}
		defer conn.Close()

		if err := conn.WriteJSON(c.sessionRequest(cfg)); err != nil {
			c.logger.Error(ctx, "Failed to create transcription session", err)
			results <- TranscriptionResult{Type: "error", Delta: err.Error()}
			return
		}

		go func() {
			for {
				_, msg, err := conn.ReadMessage()
				if err != nil {
					return
				}
				var event map[string]interface{}
				if err := json.Unmarshal(msg, &event); err != nil {
					continue
				}
				typeStr, _ := event["type"].(string)
				itemID, _ := event["item_id"].(string)
				switch typeStr {
				case "conversation.item.input_audio_transcription.delta":
					delta, _ := event["delta"].(string)
					results <- TranscriptionResult{Type: "delta", Delta: delta, ItemID: itemID}
				case "conversation.item.input_audio_transcription.completed":
					transcript, _ := event["transcript"].(string)
					results <- TranscriptionResult{Type: "completed", Transcript: transcript, ItemID: itemID}
				}
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case chunk, ok := <-audioStream:
				if !ok {
					return
				}
				appendEvent := map[string]interface{}{
					"type": "input_audio_buffer.append",
					"data": chunk,
				}
				if err := conn.WriteJSON(appendEvent); err != nil {
					c.logger.Error(ctx, "Failed to send audio chunk", err)
					return
				}
				// Pace roughly in realtime to stay under API rate limits.
				time.Sleep(40 * time.Millisecond)
			}
		}
	}()

	return results, nil
}

func (c *OpenAIRealtimeClient) sessionRequest(cfg RealtimeTranscriptionConfig) map[string]interface{} {
	req := map[string]interface{}{
		"object":             "realtime.transcription_session",
		"input_audio_format": "pcm16",
		"input_audio_transcription": []map[string]string{
			{
				"model":    cfg.Model,
				"prompt":   cfg.Prompt,
				"language": cfg.Language,
			},
		},
	}
	if cfg.NoiseReduction != "" {
		req["input_audio_noise_reduction"] = map[string]string{"type": cfg.NoiseReduction}
	}
	if cfg.VAD {
		req["turn_detection"] = map[string]interface{}{
			"type":                "server_vad",
			"threshold":           0.5,
			"prefix_padding_ms":   300,
			"silence_duration_ms": 500,
		}
	} else {
		req["turn_detection"] = nil
	}
	return req
}

package processor

import (
	"context"
	"fmt"
	"voicebot-server/internal/clients/googleai"
	"voicebot-server/internal/clients/openai"
	"voicebot-server/internal/voice/audio"
)

// StartAgentCall starts a voice-agent session for one phone call. The
// returned channels carry mu-law audio: the first is fed with caller audio,
// the second yields agent audio ready for the phone leg. Both close when
// the session ends.
func (p *CallProcessor) StartAgentCall(ctx context.Context, cfg googleai.AgentConfig) (chan []byte, chan []byte) {
	agentIn := make(chan []byte, 4096)
	agentOut := make(chan []byte, 4096)

	intake := agentIn
	if p.transcriber != nil {
		intake = p.startAudit(ctx, agentIn)
	}

	results := p.agent.StartVoiceAgent(ctx, agentIn, cfg)
	go func() {
		defer close(agentOut)
		for result := range results {
			if result.Error != nil {
				p.logger.Error(ctx, "Voice agent error", result.Error)
				continue
			}
			if len(result.AudioData) == 0 {
				continue
			}
			mulaw := audio.ConvertPCM24kHzToMuLaw8kHz(result.AudioData)
			select {
			case agentOut <- mulaw:
			case <-ctx.Done():
				return
			}
		}
	}()

	return intake, agentOut
}

// startAudit tees caller audio to the transcriber so completed utterances
// land in the logs. Audit never blocks the call path.
func (p *CallProcessor) startAudit(ctx context.Context, agentIn chan<- []byte) chan []byte {
	intake := make(chan []byte, 4096)
	auditIn := make(chan []byte, 4096)

	go func() {
		defer close(agentIn)
		defer close(auditIn)
		for chunk := range intake {
			select {
			case agentIn <- chunk:
			case <-ctx.Done():
				return
			}
			select {
			case auditIn <- audio.ConvertMuLawToPCM16kHz(chunk):
			default:
			}
		}
	}()

	go func() {
		transcripts, err := p.transcriber.StartRealtimeTranscription(ctx, auditIn, openai.RealtimeTranscriptionConfig{
			Model:    "gpt-4o-transcribe",
			Language: "en",
			VAD:      true,
		})
		if err != nil {
			p.logger.Error(ctx, "Failed to start call audit transcription", err)
			return
		}
		for result := range transcripts {
			if result.Type == "completed" && result.Transcript != "" {
				p.logger.Info(ctx, fmt.Sprintf("Audit transcript: %s", result.Transcript))
			}
		}
	}()

	return intake
}

package handler

import (
	"fmt"
	"net/http"
	"voicebot-server/internal/apierrors"
	"voicebot-server/internal/clients/googleai"
	"voicebot-server/internal/fraudcall/processor"
	"voicebot-server/internal/voice/pipeline"
	"voicebot-server/internal/voicecall/twilio"

	"github.com/gin-gonic/gin"
	"github.com/twilio/twilio-go/twiml"
)

// HandleAnswerCall returns the TwiML that connects an answered call to the
// verification media stream.
func (h *Handler) HandleAnswerCall(c *gin.Context) {
	wsURL := fmt.Sprintf("wss://%s/api/phone/fraud/media-stream", h.publicHost)

	say := &twiml.VoiceSay{
		Message: "Please hold while we connect you to our security team.",
	}
	stream := twiml.VoiceStream{
		Name: "fraud-verification-stream",
		Url:  wsURL,
	}
	connect := twiml.VoiceConnect{
		InnerElements: []twiml.Element{stream},
	}

	twimlResult, err := twiml.Voice([]twiml.Element{say, connect})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.Header("Content-Type", "text/xml")
	c.String(http.StatusOK, twimlResult)
}

// HandleMediaStream runs one verification call: it upgrades to a websocket,
// builds a per-call workflow, and bridges the Twilio audio to the voice
// agent until either side hangs up.
func (h *Handler) HandleMediaStream(c *gin.Context) {
	ctx := c.Request.Context()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error(ctx, "WebSocket upgrade failed", err)
		return
	}
	defer conn.Close()

	h.logger.Info(ctx, "Media stream connected for verification call")

	mediaStream := twilio.NewMediaStream(conn, h.logger)
	defer mediaStream.Stop()

	workflow := processor.NewWorkflow(ctx, h.store, h.logger)

	cfg := googleai.AgentConfig{
		Voice:        "Charon",
		Instructions: processor.Instructions,
		Tools:        workflow.Toolset(),
		Greeting:     "The customer has just answered the phone. Introduce yourself and begin.",
	}

	callIn, callOut := h.calls.StartAgentCall(ctx, cfg)

	twilioIn := make(chan []byte, 4096)
	twilioOut := make(chan []byte, 4096)

	pipe, err := pipeline.New(twilioIn, twilioOut, callIn, callOut, h.logger, pipeline.DefaultConfig())
	if err != nil {
		h.logger.Error(ctx, "Failed to create audio pipeline", err)
		return
	}
	pipe.Start(ctx)
	defer pipe.Stop()

	mediaStream.Start(ctx, twilioIn, twilioOut)

	select {
	case <-mediaStream.Done():
	case <-ctx.Done():
	}

	workflow.EndCall(ctx)
	h.logger.Info(ctx, "Verification call ended")
}

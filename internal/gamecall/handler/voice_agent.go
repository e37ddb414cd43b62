package handler

import (
	"fmt"
	"net/http"
	"voicebot-server/internal/apierrors"
	"voicebot-server/internal/clients/googleai"
	"voicebot-server/internal/gamecall/processor"
	"voicebot-server/internal/voice/pipeline"
	"voicebot-server/internal/voicecall/twilio"

	"github.com/gin-gonic/gin"
	"github.com/twilio/twilio-go/twiml"
)

// HandleAnswerCall returns the TwiML that connects an answered call to the
// game media stream.
func (h *Handler) HandleAnswerCall(c *gin.Context) {
	wsURL := fmt.Sprintf("wss://%s/api/phone/game/media-stream", h.publicHost)

	say := &twiml.VoiceSay{
		Message: "Welcome, adventurer. Your game master will be with you shortly.",
	}
	stream := twiml.VoiceStream{
		Name: "game-stream",
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

// HandleMediaStream runs one game session over the phone.
func (h *Handler) HandleMediaStream(c *gin.Context) {
	ctx := c.Request.Context()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error(ctx, "WebSocket upgrade failed", err)
		return
	}
	defer conn.Close()

	h.logger.Info(ctx, "Media stream connected for game session")

	mediaStream := twilio.NewMediaStream(conn, h.logger)
	defer mediaStream.Stop()

	gm := processor.NewGameMaster(h.savesDir, h.logger)

	cfg := googleai.AgentConfig{
		Voice:        "Puck",
		Instructions: processor.Instructions,
		Tools:        gm.Toolset(),
		Greeting:     "The player has just joined. Check their session status and welcome them.",
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

	h.logger.Info(ctx, "Game session ended")
}

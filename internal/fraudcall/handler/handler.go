package handler

import (
	"net/http"
	"voicebot-server/internal/observability"
	"voicebot-server/internal/store"
	voicecall "voicebot-server/internal/voicecall/processor"

	"github.com/gorilla/websocket"
)

type Handler struct {
	calls      *voicecall.CallProcessor
	store      *store.Store
	publicHost string
	logger     *observability.Logger
}

func New(calls *voicecall.CallProcessor, st *store.Store, publicHost string, logger *observability.Logger) Handler {
	return Handler{
		calls:      calls,
		store:      st,
		publicHost: publicHost,
		logger:     logger,
	}
}

// upgrader is a shared WebSocket upgrader
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Twilio media streams connect from Twilio infrastructure, not a
		// browser origin.
		return true
	},
}

package handler

import (
	"net/http"
	"voicebot-server/internal/observability"
	voicecall "voicebot-server/internal/voicecall/processor"

	"github.com/gorilla/websocket"
)

type Handler struct {
	calls      *voicecall.CallProcessor
	savesDir   string
	publicHost string
	logger     *observability.Logger
}

func New(calls *voicecall.CallProcessor, savesDir, publicHost string, logger *observability.Logger) Handler {
	return Handler{
		calls:      calls,
		savesDir:   savesDir,
		publicHost: publicHost,
		logger:     logger,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Package twilio speaks the Twilio Media Streams websocket protocol:
// JSON events carrying base64 mu-law audio in both directions.
package twilio

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"voicebot-server/internal/observability"
	"voicebot-server/internal/voice/audio"

	"github.com/gorilla/websocket"
)

// MediaEvent is an inbound event from Twilio.
type MediaEvent struct {
	Event string `json:"event"`
	Start struct {
		StreamSid string `json:"streamSid"`
		CallSid   string `json:"callSid"`
	} `json:"start,omitempty"`
	Media struct {
		Payload string `json:"payload"`
	} `json:"media,omitempty"`
	Stop struct {
		StreamSid string `json:"streamSid"`
	} `json:"stop,omitempty"`
}

type outboundMedia struct {
	Event     string `json:"event"`
	StreamSid string `json:"streamSid"`
	Media     struct {
		Payload string `json:"payload"`
	} `json:"media"`
}

// MediaStream pumps audio between a Twilio media-stream websocket and a
// pair of channels. Inbound payloads are raw mu-law bytes on audioIn;
// bytes read from audioOut are wrapped in media events and written back.
type MediaStream struct {
	conn       *websocket.Conn
	logger     *observability.Logger
	streamSid  string
	callSid    string
	writeMutex sync.Mutex
	ctx        context.Context
	cancel     context.CancelFunc
	done       chan struct{}
}

func NewMediaStream(conn *websocket.Conn, logger *observability.Logger) *MediaStream {
	ctx, cancel := context.WithCancel(context.Background())
	return &MediaStream{
		conn:   conn,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Done is closed when the inbound side of the stream has ended, either by
// a stop event or a connection error.
func (s *MediaStream) Done() <-chan struct{} {
	return s.done
}

// Start launches the read and write pumps. audioIn is closed when the
// stream ends, which lets downstream consumers shut down cleanly.
func (s *MediaStream) Start(ctx context.Context, audioIn chan<- []byte, audioOut <-chan []byte) {
	streamCtx, cancel := context.WithCancel(ctx)
	s.ctx = streamCtx
	oldCancel := s.cancel
	s.cancel = func() {
		cancel()
		oldCancel()
	}

	go s.writePump(audioOut)
	go s.readPump(audioIn)
}

func (s *MediaStream) readPump(audioIn chan<- []byte) {
	defer close(s.done)
	defer close(audioIn)

	for {
		select {
		case <-s.ctx.Done():
			return
		default:
			_, msg, err := s.conn.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					s.logger.Info(s.ctx, "Media stream closed normally")
				} else {
					s.logger.Error(s.ctx, "Media stream read error", err)
				}
				return
			}

			var event MediaEvent
			if err := json.Unmarshal(msg, &event); err != nil {
				s.logger.Error(s.ctx, "Failed to parse media event", err)
				continue
			}

			switch event.Event {
			case "start":
				s.streamSid = event.Start.StreamSid
				s.callSid = event.Start.CallSid
				s.logger.Info(s.ctx, fmt.Sprintf("Media stream started: %s", s.streamSid))

			case "media":
				payload, err := audio.Base64ToBytes(event.Media.Payload)
				if err != nil {
					s.logger.Error(s.ctx, "Failed to decode audio payload", err)
					continue
				}

				// Drop rather than block: the model cannot keep up with
				// realtime gaps anyway.
				select {
				case audioIn <- payload:
				case <-s.ctx.Done():
					return
				default:
					s.logger.Warn(s.ctx, "Audio input buffer full, dropping chunk")
				}

			case "stop":
				s.logger.Info(s.ctx, fmt.Sprintf("Media stream stopped: %s", event.Stop.StreamSid))
				return

			default:
				s.logger.Debug(s.ctx, fmt.Sprintf("Ignoring media event: %s", event.Event))
			}
		}
	}
}

func (s *MediaStream) writePump(audioOut <-chan []byte) {
	for {
		select {
		case <-s.ctx.Done():
			return

		case chunk, ok := <-audioOut:
			if !ok {
				s.logger.Info(s.ctx, "Audio output channel closed")
				return
			}

			msg := outboundMedia{
				Event:     "media",
				StreamSid: s.streamSid,
			}
			msg.Media.Payload = audio.BytesToBase64(chunk)

			msgBytes, err := json.Marshal(msg)
			if err != nil {
				s.logger.Error(s.ctx, "Failed to marshal media message", err)
				continue
			}

			s.writeMutex.Lock()
			err = s.conn.WriteMessage(websocket.TextMessage, msgBytes)
			s.writeMutex.Unlock()

			if err != nil {
				s.logger.Error(s.ctx, "Failed to write audio to media stream", err)
				return
			}
		}
	}
}

// Stop cancels the pumps and closes the websocket.
func (s *MediaStream) Stop() {
	s.cancel()

	s.writeMutex.Lock()
	s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	s.writeMutex.Unlock()

	s.conn.Close()
}

func (s *MediaStream) StreamSID() string {
	return s.streamSid
}

func (s *MediaStream) CallSID() string {
	return s.callSid
}

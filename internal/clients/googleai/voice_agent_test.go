package googleai

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"voicebot-server/internal/agenttools"
	"voicebot-server/internal/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// fakeLiveSession scripts server messages and records every write. Each
// send marks itself busy for a moment so overlapping writers are caught.
type fakeLiveSession struct {
	messages  chan *genai.LiveServerMessage
	closed    chan struct{}
	closeOnce sync.Once

	writersInFlight atomic.Int32
	overlapped      atomic.Bool
	audioSends      atomic.Int32

	mu            sync.Mutex
	toolResponses []genai.LiveToolResponseInput
	clientTurns   []genai.LiveClientContentInput
}

func newFakeLiveSession() *fakeLiveSession {
	return &fakeLiveSession{
		messages: make(chan *genai.LiveServerMessage, 16),
		closed:   make(chan struct{}),
	}
}

func (f *fakeLiveSession) enterWrite() func() {
	if f.writersInFlight.Add(1) != 1 {
		f.overlapped.Store(true)
	}
	time.Sleep(2 * time.Millisecond)
	return func() { f.writersInFlight.Add(-1) }
}

func (f *fakeLiveSession) Receive() (*genai.LiveServerMessage, error) {
	select {
	case msg := <-f.messages:
		return msg, nil
	case <-f.closed:
		return nil, errors.New("use of closed network connection")
	}
}

func (f *fakeLiveSession) SendRealtimeInput(input genai.LiveRealtimeInput) error {
	defer f.enterWrite()()
	f.audioSends.Add(1)
	return nil
}

func (f *fakeLiveSession) SendToolResponse(input genai.LiveToolResponseInput) error {
	defer f.enterWrite()()
	f.mu.Lock()
	f.toolResponses = append(f.toolResponses, input)
	f.mu.Unlock()
	return nil
}

func (f *fakeLiveSession) SendClientContent(input genai.LiveClientContentInput) error {
	defer f.enterWrite()()
	f.mu.Lock()
	f.clientTurns = append(f.clientTurns, input)
	f.mu.Unlock()
	return nil
}

func (f *fakeLiveSession) Close() error {
	f.closeOnce.Do(func() { close(f.closed) })
	return nil
}

func (f *fakeLiveSession) toolResponseCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.toolResponses)
}

// Tool responses are sent from the receive goroutine while the caller's
// audio keeps streaming; the session must only ever see one writer.
func TestRunVoiceSession_SingleWriterDuringToolCalls(t *testing.T) {
	fake := newFakeLiveSession()
	g := &GoogleAILiveClient{logger: observability.NewLogger()}

	tools := agenttools.NewToolset().Add(agenttools.Tool{
		Name:        "lookup_case",
		Description: "Look up a fraud case by customer name.",
		Handler: func(ctx context.Context, args map[string]any) string {
			return "case found"
		},
	})
	cfg := AgentConfig{
		Tools:    tools,
		Greeting: "The customer has just answered the phone.",
	}

	for i := 0; i < 3; i++ {
		fake.messages <- &genai.LiveServerMessage{
			ToolCall: &genai.LiveServerToolCall{
				FunctionCalls: []*genai.FunctionCall{
					{
						ID:   fmt.Sprintf("call-%d", i),
						Name: "lookup_case",
						Args: map[string]any{"name": "Jane Doe"},
					},
				},
			},
		}
	}

	audioIn := make(chan []byte)
	results := make(chan VoiceAgentResult, 100)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer close(results)
		g.runVoiceSession(context.Background(), fake, audioIn, cfg, results)
	}()

	for i := 0; i < 40; i++ {
		audioIn <- make([]byte, 160)
	}
	require.Eventually(t, func() bool {
		return fake.toolResponseCount() == 3
	}, 2*time.Second, 5*time.Millisecond)
	close(audioIn)
	<-done
	for range results {
	}

	assert.False(t, fake.overlapped.Load(), "concurrent writes reached the session")
	assert.EqualValues(t, 40, fake.audioSends.Load())

	fake.mu.Lock()
	defer fake.mu.Unlock()
	require.Len(t, fake.clientTurns, 1)
	assert.Equal(t, cfg.Greeting, fake.clientTurns[0].Turns[0].Parts[0].Text)
	require.Len(t, fake.toolResponses, 3)
	first := fake.toolResponses[0].FunctionResponses[0]
	assert.Equal(t, "call-0", first.ID)
	assert.Equal(t, "lookup_case", first.Name)
	assert.Equal(t, "case found", first.Response["output"])
}

// Model audio and transcripts flow to the caller as results.
func TestRunVoiceSession_ForwardsModelAudioAndTranscripts(t *testing.T) {
	fake := newFakeLiveSession()
	g := &GoogleAILiveClient{logger: observability.NewLogger()}

	fake.messages <- &genai.LiveServerMessage{
		ServerContent: &genai.LiveServerContent{
			ModelTurn: &genai.Content{
				Parts: []*genai.Part{
					{InlineData: &genai.Blob{Data: []byte{1, 2, 3}}},
				},
			},
		},
	}
	fake.messages <- &genai.LiveServerMessage{
		ServerContent: &genai.LiveServerContent{
			OutputTranscription: &genai.Transcription{Text: "Hello, this is the fraud desk."},
		},
	}

	audioIn := make(chan []byte)
	results := make(chan VoiceAgentResult, 100)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer close(results)
		g.runVoiceSession(context.Background(), fake, audioIn, AgentConfig{}, results)
	}()

	var audio []byte
	var text string
	for audio == nil || text == "" {
		select {
		case r := <-results:
			if r.AudioData != nil {
				audio = r.AudioData
			}
			if r.Text != "" {
				text = r.Text
			}
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for results")
		}
	}
	close(audioIn)
	<-done

	assert.Equal(t, []byte{1, 2, 3}, audio)
	assert.Equal(t, "Hello, this is the fraud desk.", text)
}

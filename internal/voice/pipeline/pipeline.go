// Package pipeline moves audio between a call source (the Twilio media
// stream) and a sink (a voice agent session), tracking per-call volume.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"
	"voicebot-server/internal/observability"

	"github.com/google/uuid"
)

type AudioPipeline struct {
	id     string
	logger *observability.Logger

	// Source side (Twilio)
	sourceIn  <-chan []byte
	sourceOut chan<- []byte

	// Sink side (voice agent)
	sinkIn  chan []byte
	sinkOut <-chan []byte
	sinkMu  sync.Mutex // guards sinkIn close

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	stats Stats
	mu    sync.RWMutex

	config Config
}

type Config struct {
	BufferSize    int
	SendTimeout   time.Duration // how long to wait before dropping a chunk
	EnableMetrics bool
}

type Stats struct {
	BytesFromSource int64
	BytesFromSink   int64
	StartTime       time.Time
	EndTime         time.Time
}

// Duration reports how long the pipeline has been moving audio.
func (s Stats) Duration() time.Duration {
	end := s.EndTime
	if end.IsZero() {
		end = time.Now()
	}
	return end.Sub(s.StartTime)
}

func DefaultConfig() Config {
	return Config{
		BufferSize:    4096,
		SendTimeout:   100 * time.Millisecond,
		EnableMetrics: true,
	}
}

// New wires a source to a sink. sinkIn is closed when the source input
// closes, which signals end of call downstream.
func New(sourceIn <-chan []byte, sourceOut chan<- []byte, sinkIn chan []byte, sinkOut <-chan []byte, logger *observability.Logger, config Config) (*AudioPipeline, error) {
	if sourceIn == nil || sourceOut == nil {
		return nil, fmt.Errorf("source channels cannot be nil")
	}
	if sinkIn == nil || sinkOut == nil {
		return nil, fmt.Errorf("sink channels cannot be nil")
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &AudioPipeline{
		id:        uuid.New().String(),
		logger:    logger,
		sourceIn:  sourceIn,
		sourceOut: sourceOut,
		sinkIn:    sinkIn,
		sinkOut:   sinkOut,
		ctx:       ctx,
		cancel:    cancel,
		config:    config,
		stats:     Stats{StartTime: time.Now()},
	}, nil
}

func (p *AudioPipeline) ID() string {
	return p.id
}

func (p *AudioPipeline) Start(ctx context.Context) {
	pipelineCtx, cancel := context.WithCancel(ctx)
	p.ctx = pipelineCtx
	oldCancel := p.cancel
	p.cancel = func() {
		cancel()
		oldCancel()
	}

	p.logger.Info(ctx, fmt.Sprintf("Starting audio pipeline %s", p.id))

	p.wg.Add(2)
	go p.forwardSourceToSink()
	go p.forwardSinkToSource()
}

func (p *AudioPipeline) forwardSourceToSink() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return

		case chunk, ok := <-p.sourceIn:
			if !ok {
				p.logger.Info(p.ctx, "Source input closed, ending sink stream")
				p.closeSinkIn()
				return
			}

			if p.config.EnableMetrics {
				p.mu.Lock()
				p.stats.BytesFromSource += int64(len(chunk))
				p.mu.Unlock()
			}

			select {
			case p.sinkIn <- chunk:
			case <-time.After(p.config.SendTimeout):
				p.logger.Warn(p.ctx, "Sink input buffer full, dropping audio chunk")
			case <-p.ctx.Done():
				return
			}
		}
	}
}

func (p *AudioPipeline) forwardSinkToSource() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return

		case chunk, ok := <-p.sinkOut:
			if !ok {
				p.logger.Info(p.ctx, "Sink output closed")
				return
			}

			if p.config.EnableMetrics {
				p.mu.Lock()
				p.stats.BytesFromSink += int64(len(chunk))
				p.mu.Unlock()
			}

			select {
			case p.sourceOut <- chunk:
			case <-time.After(p.config.SendTimeout):
				p.logger.Warn(p.ctx, "Source output buffer full, dropping audio chunk")
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// closeSinkIn closes the sink input exactly once.
func (p *AudioPipeline) closeSinkIn() {
	p.sinkMu.Lock()
	defer p.sinkMu.Unlock()
	if p.sinkIn != nil {
		close(p.sinkIn)
		p.sinkIn = nil
	}
}

func (p *AudioPipeline) Stop() {
	p.cancel()
	p.wg.Wait()

	p.mu.Lock()
	p.stats.EndTime = time.Now()
	p.mu.Unlock()

	p.closeSinkIn()

	stats := p.GetStats()
	p.logger.Info(p.ctx, fmt.Sprintf("Audio pipeline %s stopped: %d bytes in, %d bytes out over %s",
		p.id, stats.BytesFromSource, stats.BytesFromSink, stats.Duration().Round(time.Second)))
}

func (p *AudioPipeline) GetStats() Stats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stats
}

package pipeline

import (
	"context"
	"testing"
	"voicebot-server/internal/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineForwardsBothDirections(t *testing.T) {
	sourceIn := make(chan []byte, 8)
	sourceOut := make(chan []byte, 8)
	sinkIn := make(chan []byte, 8)
	sinkOut := make(chan []byte, 8)

	p, err := New(sourceIn, sourceOut, sinkIn, sinkOut, observability.NewLogger(), DefaultConfig())
	require.NoError(t, err)
	p.Start(context.Background())

	sourceIn <- []byte{1, 2, 3}
	assert.Equal(t, []byte{1, 2, 3}, <-sinkIn)

	sinkOut <- []byte{9, 9}
	assert.Equal(t, []byte{9, 9}, <-sourceOut)

	close(sourceIn)
	_, open := <-sinkIn
	assert.False(t, open, "sink input should close when source input closes")

	close(sinkOut)
	p.Stop()

	stats := p.GetStats()
	assert.Equal(t, int64(3), stats.BytesFromSource)
	assert.Equal(t, int64(2), stats.BytesFromSink)
	assert.False(t, stats.EndTime.IsZero())
}

func TestPipelineRejectsNilChannels(t *testing.T) {
	logger := observability.NewLogger()
	ch := make(chan []byte)

	_, err := New(nil, ch, ch, ch, logger, DefaultConfig())
	assert.Error(t, err)

	_, err = New(ch, ch, nil, ch, logger, DefaultConfig())
	assert.Error(t, err)
}

func TestPipelineStopIsIdempotentAfterSourceClose(t *testing.T) {
	sourceIn := make(chan []byte)
	sourceOut := make(chan []byte, 1)
	sinkIn := make(chan []byte, 1)
	sinkOut := make(chan []byte)

	p, err := New(sourceIn, sourceOut, sinkIn, sinkOut, observability.NewLogger(), DefaultConfig())
	require.NoError(t, err)
	p.Start(context.Background())

	close(sourceIn)
	_, open := <-sinkIn
	require.False(t, open)

	// Stop must not panic on the already-closed sink input.
	p.Stop()
}

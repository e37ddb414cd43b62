package audio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMuLawSilence(t *testing.T) {
	assert.Equal(t, int16(0), decodeMuLaw(0xFF))
	assert.Equal(t, byte(0xFF), encodeMuLaw(0))
}

func TestMuLawRoundTripWithinQuantizationError(t *testing.T) {
	// Mu-law is logarithmic: the step size of a segment is at most a
	// quarter of the smallest biased sample in that segment.
	for s := int32(-30000); s <= 30000; s += 997 {
		decoded := int32(decodeMuLaw(encodeMuLaw(int16(s))))
		tolerance := (abs32(s)+muLawBias)/4 + 1
		assert.InDelta(t, s, decoded, float64(tolerance), "sample %d", s)
	}
}

func TestMuLawClipsLoudSamples(t *testing.T) {
	loud := decodeMuLaw(encodeMuLaw(32767))
	quietEnough := decodeMuLaw(encodeMuLaw(muLawClip))
	assert.Equal(t, quietEnough, loud)
}

func TestConvertMuLawToPCM16kHzDoublesSampleCount(t *testing.T) {
	mulaw := make([]byte, 160) // 20ms at 8kHz
	for i := range mulaw {
		mulaw[i] = 0xFF
	}
	pcm := ConvertMuLawToPCM16kHz(mulaw)
	// 160 samples upsampled to 320, two bytes each.
	require.Len(t, pcm, 640)
	for _, b := range pcm {
		assert.Equal(t, byte(0), b)
	}
}

func TestConvertPCM24kHzToMuLaw8kHzDecimatesByThree(t *testing.T) {
	pcm := make([]byte, 480*2) // 20ms at 24kHz
	mulaw := ConvertPCM24kHzToMuLaw8kHz(pcm)
	assert.Len(t, mulaw, 160)
}

func TestToneSurvivesPhoneLegRoundTrip(t *testing.T) {
	// A 440Hz tone at 8kHz, encoded to mu-law and decoded again, should
	// still resemble the original waveform.
	const n = 800
	original := make([]int16, n)
	for i := range original {
		original[i] = int16(8000 * math.Sin(2*math.Pi*440*float64(i)/8000))
	}

	mulaw := make([]byte, n)
	for i, s := range original {
		mulaw[i] = encodeMuLaw(s)
	}

	for i, b := range mulaw {
		decoded := decodeMuLaw(b)
		tolerance := (abs32(int32(original[i]))+muLawBias)/4 + 1
		require.InDelta(t, original[i], decoded, float64(tolerance), "sample %d", i)
	}
}

func TestInterpolateMidpoints(t *testing.T) {
	out := interpolate([]int16{0, 100}, 2)
	require.Len(t, out, 4)
	assert.Equal(t, int16(0), out[0])
	assert.Equal(t, int16(50), out[1])
	assert.Equal(t, int16(100), out[2])
	assert.Equal(t, int16(100), out[3])
}

func TestDecimateKeepsEveryNth(t *testing.T) {
	out := decimate([]int16{1, 2, 3, 4, 5, 6, 7}, 3)
	assert.Equal(t, []int16{1, 4, 7}, out)
}

func TestBase64RoundTrip(t *testing.T) {
	payload := []byte{0x00, 0x7F, 0xFF, 0x10}
	decoded, err := Base64ToBytes(BytesToBase64(payload))
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// Package audio converts between the telephony and model audio formats:
// G.711 mu-law at 8kHz on the Twilio side, little-endian 16-bit PCM at
// 16kHz (input) and 24kHz (output) on the model side.
package audio

import (
	"encoding/base64"
)

const (
	muLawBias = 0x84
	muLawClip = 32635
)

// ConvertMuLawToPCM16kHz decodes 8kHz mu-law audio and upsamples it to
// 16kHz PCM for the Live API.
func ConvertMuLawToPCM16kHz(mulaw []byte) []byte {
	samples := make([]int16, len(mulaw))
	for i, b := range mulaw {
		samples[i] = decodeMuLaw(b)
	}
	return samplesToBytes(interpolate(samples, 2))
}

// ConvertPCM24kHzToMuLaw8kHz downsamples 24kHz model audio to 8kHz and
// encodes it as mu-law for the phone leg.
func ConvertPCM24kHzToMuLaw8kHz(pcm24k []byte) []byte {
	samples := decimate(bytesToSamples(pcm24k), 3)
	mulaw := make([]byte, len(samples))
	for i, s := range samples {
		mulaw[i] = encodeMuLaw(s)
	}
	return mulaw
}

// ConvertPCM16kHzToMuLaw8kHz downsamples 16kHz PCM to 8kHz mu-law.
func ConvertPCM16kHzToMuLaw8kHz(pcm16k []byte) []byte {
	samples := decimate(bytesToSamples(pcm16k), 2)
	mulaw := make([]byte, len(samples))
	for i, s := range samples {
		mulaw[i] = encodeMuLaw(s)
	}
	return mulaw
}

func Base64ToBytes(base64String string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(base64String)
}

func BytesToBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

func decodeMuLaw(b byte) int16 {
	b = ^b
	sign := b & 0x80
	exponent := (b >> 4) & 0x07
	mantissa := b & 0x0F

	sample := (int16(mantissa)<<3 | muLawBias) << exponent
	sample -= muLawBias

	if sign != 0 {
		return -sample
	}
	return sample
}

func encodeMuLaw(sample int16) byte {
	sign := byte(0)
	if sample < 0 {
		sign = 0x80
		sample = -sample
	}
	if sample > muLawClip {
		sample = muLawClip
	}
	sample += muLawBias

	// Segment is the position of the highest set bit above bit 7.
	exponent := byte(7)
	for mask := int16(0x4000); mask != 0 && sample&mask == 0; mask >>= 1 {
		exponent--
	}

	mantissa := byte(sample>>(exponent+3)) & 0x0F
	return ^(sign | exponent<<4 | mantissa)
}

func bytesToSamples(pcm []byte) []int16 {
	samples := make([]int16, len(pcm)/2)
	for i := range samples {
		samples[i] = int16(pcm[2*i]) | int16(pcm[2*i+1])<<8
	}
	return samples
}

func samplesToBytes(samples []int16) []byte {
	pcm := make([]byte, len(samples)*2)
	for i, s := range samples {
		pcm[2*i] = byte(s)
		pcm[2*i+1] = byte(s >> 8)
	}
	return pcm
}

// decimate keeps every factor-th sample.
func decimate(samples []int16, factor int) []int16 {
	out := make([]int16, 0, len(samples)/factor+1)
	for i := 0; i < len(samples); i += factor {
		out = append(out, samples[i])
	}
	return out
}

// interpolate stretches samples by factor, linearly interpolating between
// neighbours and repeating the final sample.
func interpolate(samples []int16, factor int) []int16 {
	if len(samples) == 0 {
		return nil
	}
	out := make([]int16, 0, len(samples)*factor)
	for i := 0; i < len(samples)-1; i++ {
		cur, next := int32(samples[i]), int32(samples[i+1])
		for j := 0; j < factor; j++ {
			out = append(out, int16(cur+(next-cur)*int32(j)/int32(factor)))
		}
	}
	last := samples[len(samples)-1]
	for j := 0; j < factor; j++ {
		out = append(out, last)
	}
	return out
}

// ABOUTME: Audio type definitions and sample conversion helpers
// ABOUTME: Mono 16-bit linear PCM in, float32 out
package audio

import "encoding/binary"

const (
	// DefaultSampleRate is the rate incoming PCM is produced at.
	DefaultSampleRate = 24000

	// DefaultBlockSize is the frame count requested per render callback.
	DefaultBlockSize = 1024

	// Channels is fixed: the engine is mono, one frame = one sample.
	Channels = 1
)

// Chunk is one upstream delivery of decoded PCM. Immutable once produced;
// length varies per arrival.
type Chunk struct {
	Samples    []int16
	SampleRate int
}

// Duration returns the chunk's play time in seconds.
func (c Chunk) Duration() float64 {
	if c.SampleRate == 0 {
		return 0
	}
	return float64(len(c.Samples)) / float64(c.SampleRate)
}

// SampleToFloat32 converts a signed 16-bit sample to the device range
// [-1.0, 1.0]. -32768 maps to exactly -1.0.
func SampleToFloat32(s int16) float32 {
	return float32(s) / 32768.0
}

// SamplesFromBytes decodes little-endian 16-bit PCM bytes into samples.
// A trailing odd byte is ignored.
func SamplesFromBytes(data []byte) []int16 {
	samples := make([]int16, len(data)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[i*2:]))
	}
	return samples
}

// BytesFromSamples encodes samples as little-endian 16-bit PCM bytes.
func BytesFromSamples(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}
	return out
}

// ABOUTME: Wire protocol for the voxstream test source
// ABOUTME: JSON control messages plus binary PCM chunk frames
package source

import (
	"fmt"

	"github.com/voxstream/voxstream-go/pkg/audio"
)

// Control message types exchanged as JSON text frames.
const (
	MsgHello        = "source/hello"
	MsgPrompt       = "prompt"
	MsgTurnComplete = "turn_complete"
)

// binaryChunk tags a binary frame carrying raw 16-bit LE PCM samples.
const binaryChunk byte = 0

// Message is a JSON control frame.
type Message struct {
	Type       string `json:"type"`
	Text       string `json:"text,omitempty"`
	SampleRate int    `json:"sample_rate,omitempty"`
}

// EncodeChunk frames PCM samples as a binary chunk message.
func EncodeChunk(samples []int16) []byte {
	out := make([]byte, 1+len(samples)*2)
	out[0] = binaryChunk
	copy(out[1:], audio.BytesFromSamples(samples))
	return out
}

// DecodeChunk parses a binary chunk message back into samples.
func DecodeChunk(data []byte) ([]int16, error) {
	if len(data) < 1 {
		return nil, fmt.Errorf("binary message too short")
	}
	if data[0] != binaryChunk {
		return nil, fmt.Errorf("unknown binary message type: %d", data[0])
	}
	return audio.SamplesFromBytes(data[1:]), nil
}

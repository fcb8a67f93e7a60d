// ABOUTME: Real-time render callback that drains the sample buffer
// ABOUTME: Converts int16 PCM to float32 and pads underruns with silence
package stream

import "github.com/voxstream/voxstream-go/pkg/audio"

// Renderer supplies the output device with exactly the requested number of
// float32 frames per invocation. It never blocks beyond the buffer's
// bounded mutex and never fails; any shortfall becomes silence.
type Renderer struct {
	buf     *SampleBuffer
	scratch []int16
}

// NewRenderer creates a renderer for buf. blockSize is the expected frame
// count per callback; the scratch buffer is sized up front so the hot path
// does not allocate.
func NewRenderer(buf *SampleBuffer, blockSize int) *Renderer {
	return &Renderer{
		buf:     buf,
		scratch: make([]int16, blockSize),
	}
}

// Render fills out with converted samples from the buffer. If fewer samples
// are pending than requested, the remainder of out is zeroed.
func (r *Renderer) Render(out []float32) {
	if len(out) > len(r.scratch) {
		// Device asked for more frames than the configured block size.
		r.scratch = make([]int16, len(out))
	}

	n := r.buf.ConsumeInto(r.scratch[:len(out)])
	for i := 0; i < n; i++ {
		out[i] = audio.SampleToFloat32(r.scratch[i])
	}
	for i := n; i < len(out); i++ {
		out[i] = 0
	}
}

// ABOUTME: Audio output interface definition
// ABOUTME: Callback-driven playback backends pull frames from a RenderFunc
package output

// RenderFunc fills out with interleaved float32 samples in [-1.0, 1.0].
// len(out) is always frameCount*channels. Implementations must return
// promptly and must not block.
type RenderFunc func(out []float32)

// Output represents an audio output device driven by a render callback.
type Output interface {
	// Open initializes the device and starts invoking render every
	// blockSize frames. Returns an error on device or format failure;
	// such failures are fatal to the caller's session.
	Open(sampleRate, channels, blockSize int, render RenderFunc) error

	// Close stops the callback cadence and releases device resources.
	Close() error
}

// New returns the backend selected by name. Unknown names fall back to the
// default malgo backend.
func New(name string) Output {
	switch name {
	case "oto":
		return NewOto()
	case "portaudio":
		return NewPortAudio()
	default:
		return NewMalgo()
	}
}

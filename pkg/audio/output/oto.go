// ABOUTME: Oto-based audio output implementation
// ABOUTME: Feeds a persistent float32 player from the render callback
package output

import (
	"encoding/binary"
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Oto output implementation using the oto library. Oto pulls bytes from an
// io.Reader, so the render callback is wrapped in a reader that produces one
// block of little-endian float32 per Read.
type Oto struct {
	mu     sync.Mutex
	otoCtx *oto.Context
	player *oto.Player
	ready  bool
}

// NewOto creates a new Oto output.
func NewOto() Output {
	return &Oto{}
}

// Open initializes the oto context and starts a persistent player reading
// from the render callback. Oto allows only one context per process; a
// second Open with a different format fails.
func (o *Oto) Open(sampleRate, channels, blockSize int, render RenderFunc) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player != nil {
		return fmt.Errorf("output already open")
	}

	if o.otoCtx == nil {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatFloat32LE,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			return fmt.Errorf("failed to create oto context: %w", err)
		}
		<-readyChan
		o.otoCtx = ctx
	} else if err := o.otoCtx.Resume(); err != nil {
		return fmt.Errorf("failed to resume oto context: %w", err)
	}

	reader := &renderReader{
		render:  render,
		scratch: make([]float32, blockSize*channels),
	}

	o.player = o.otoCtx.NewPlayer(reader)
	o.player.Play()
	o.ready = true

	log.Printf("Audio output initialized: %dHz, %d channels, %d frames/block (oto)",
		sampleRate, channels, blockSize)

	return nil
}

// Close stops the player. The oto context cannot be torn down, so it is
// suspended for reuse within the process.
func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player != nil {
		if err := o.player.Close(); err != nil {
			log.Printf("Warning: oto player close error: %v", err)
		}
		o.player = nil
	}
	if o.otoCtx != nil {
		if err := o.otoCtx.Suspend(); err != nil {
			log.Printf("Warning: oto context suspend error: %v", err)
		}
	}
	o.ready = false
	return nil
}

// renderReader adapts a RenderFunc to io.Reader for oto. Each Read asks the
// callback for at most one block of samples and serializes them.
type renderReader struct {
	render  RenderFunc
	scratch []float32
}

func (r *renderReader) Read(p []byte) (int, error) {
	want := len(p) / 4
	if want == 0 {
		return 0, nil
	}
	if want > len(r.scratch) {
		want = len(r.scratch)
	}
	out := r.scratch[:want]

	r.render(out)

	for i, s := range out {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
	}
	return want * 4, nil
}

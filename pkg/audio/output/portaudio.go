//go:build portaudio

// ABOUTME: PortAudio output implementation
// ABOUTME: Cross-platform callback stream using PortAudio
package output

import (
	"fmt"
	"log"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// PortAudio output implementation.
type PortAudio struct {
	mu     sync.Mutex
	stream *portaudio.Stream
	inited bool
}

// NewPortAudio creates a new PortAudio output.
func NewPortAudio() Output {
	return &PortAudio{}
}

// Open initializes PortAudio and starts a callback stream on the default
// output device. PortAudio hands the callback an interleaved float32 slice
// of exactly blockSize frames, which maps directly onto RenderFunc.
func (p *PortAudio) Open(sampleRate, channels, blockSize int, render RenderFunc) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stream != nil {
		return fmt.Errorf("output already open")
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize portaudio: %w", err)
	}
	p.inited = true

	stream, err := portaudio.OpenDefaultStream(0, channels, float64(sampleRate), blockSize,
		func(out []float32) {
			render(out)
		})
	if err != nil {
		p.terminate()
		return fmt.Errorf("failed to open stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		p.terminate()
		return fmt.Errorf("failed to start stream: %w", err)
	}

	p.stream = stream

	log.Printf("Audio output initialized: %dHz, %d channels, %d frames/block (portaudio)",
		sampleRate, channels, blockSize)

	return nil
}

// Close stops the stream and terminates PortAudio.
func (p *PortAudio) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stream != nil {
		if err := p.stream.Stop(); err != nil {
			log.Printf("Warning: stream stop error: %v", err)
		}
		p.stream.Close()
		p.stream = nil
	}
	p.terminate()
	return nil
}

// terminate shuts PortAudio down (must hold p.mu).
func (p *PortAudio) terminate() {
	if p.inited {
		portaudio.Terminate()
		p.inited = false
	}
}

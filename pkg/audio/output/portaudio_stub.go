//go:build !portaudio

// ABOUTME: PortAudio stub when library not available
// ABOUTME: Provides compile-time placeholder when PortAudio not installed
package output

import "fmt"

// PortAudio output implementation (stub).
type PortAudio struct{}

// NewPortAudio creates a new PortAudio output.
func NewPortAudio() Output {
	return &PortAudio{}
}

// Open always fails: build with -tags portaudio for PortAudio support.
func (p *PortAudio) Open(sampleRate, channels, blockSize int, render RenderFunc) error {
	return fmt.Errorf("portaudio support not compiled in (build with -tags portaudio)")
}

// Close is a no-op.
func (p *PortAudio) Close() error {
	return nil
}

// ABOUTME: Package documentation for the streaming engine
// ABOUTME: Describes the buffer, gate, renderer, and session lifecycle
// Package stream implements the buffering-and-playback engine.
//
// Chunks of decoded 16-bit PCM arrive irregularly from an upstream source
// and are appended to a shared SampleBuffer. The output device drains the
// buffer at a fixed cadence through a Renderer that pads any shortfall with
// silence. A Session coordinates the two: playback starts only once a
// FillGate observes enough buffered audio to absorb arrival jitter, and
// stops on an external signal.
package stream

// ABOUTME: Package documentation for audio output
// ABOUTME: Describes available playback backends
// Package output provides callback-driven audio playback backends.
//
// Each backend opens the system output device at a fixed sample rate and
// block size and pulls float32 frames from a RenderFunc at the device's
// cadence. Backends: malgo (default), oto, and portaudio (build tag).
package output

// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Chunk and sample/byte conversion helpers
// Package audio provides fundamental audio types and utilities for the
// voxstream player.
//
// The package defines the Chunk type used throughout the library and the
// conversions at the two edges of the engine:
//   - SamplesFromBytes / BytesFromSamples: 16-bit little-endian PCM wire
//     format, as delivered by streaming response APIs
//   - SampleToFloat32: int16 to the [-1.0, 1.0) float32 range expected by
//     output devices
//
// Example:
//
//	samples := audio.SamplesFromBytes(inlineData)
//	chunk := audio.Chunk{Samples: samples, SampleRate: audio.DefaultSampleRate}
//	log.Printf("received %v of audio", chunk.Duration())
package audio

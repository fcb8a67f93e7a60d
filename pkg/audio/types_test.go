// ABOUTME: Tests for audio types and sample conversion
// ABOUTME: Verifies PCM byte decoding and float conversion edges
package audio

import "testing"

func TestSampleToFloat32Edges(t *testing.T) {
	tests := []struct {
		in   int16
		want float32
	}{
		{0, 0.0},
		{-32768, -1.0},
		{32767, 32767.0 / 32768.0},
		{16384, 0.5},
		{-16384, -0.5},
	}

	for _, tt := range tests {
		if got := SampleToFloat32(tt.in); got != tt.want {
			t.Errorf("SampleToFloat32(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSamplesFromBytes(t *testing.T) {
	data := []byte{0x01, 0x00, 0xFF, 0xFF, 0x00, 0x80}
	samples := SamplesFromBytes(data)

	want := []int16{1, -1, -32768}
	if len(samples) != len(want) {
		t.Fatalf("got %d samples, want %d", len(samples), len(want))
	}
	for i := range want {
		if samples[i] != want[i] {
			t.Errorf("sample %d = %d, want %d", i, samples[i], want[i])
		}
	}
}

func TestSamplesFromBytesOddLength(t *testing.T) {
	samples := SamplesFromBytes([]byte{0x01, 0x00, 0x7F})
	if len(samples) != 1 {
		t.Errorf("got %d samples from 3 bytes, want 1", len(samples))
	}
}

func TestBytesRoundTrip(t *testing.T) {
	in := []int16{0, 1, -1, 32767, -32768, 12345}
	out := SamplesFromBytes(BytesFromSamples(in))

	if len(out) != len(in) {
		t.Fatalf("got %d samples, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("sample %d = %d, want %d", i, out[i], in[i])
		}
	}
}

func TestChunkDuration(t *testing.T) {
	c := Chunk{Samples: make([]int16, 24000), SampleRate: 24000}
	if c.Duration() != 1.0 {
		t.Errorf("duration = %v, want 1.0", c.Duration())
	}

	empty := Chunk{}
	if empty.Duration() != 0 {
		t.Errorf("duration of empty chunk = %v, want 0", empty.Duration())
	}
}

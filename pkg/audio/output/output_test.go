// ABOUTME: Audio output interface tests
// ABOUTME: Verifies backend selection and the oto render reader
package output

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestBackendsImplementOutput(t *testing.T) {
	var _ Output = (*Malgo)(nil)
	var _ Output = (*Oto)(nil)
	var _ Output = (*PortAudio)(nil)
}

func TestNewSelectsBackend(t *testing.T) {
	if _, ok := New("oto").(*Oto); !ok {
		t.Error("New(\"oto\") did not return an Oto backend")
	}
	if _, ok := New("portaudio").(*PortAudio); !ok {
		t.Error("New(\"portaudio\") did not return a PortAudio backend")
	}
	if _, ok := New("malgo").(*Malgo); !ok {
		t.Error("New(\"malgo\") did not return a Malgo backend")
	}
	if _, ok := New("").(*Malgo); !ok {
		t.Error("New(\"\") did not fall back to the Malgo backend")
	}
}

func TestRenderReaderSerializesFloats(t *testing.T) {
	r := &renderReader{
		render: func(out []float32) {
			for i := range out {
				out[i] = float32(i) * 0.25
			}
		},
		scratch: make([]float32, 4),
	}

	p := make([]byte, 16)
	n, err := r.Read(p)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if n != 16 {
		t.Fatalf("read %d bytes, want 16", n)
	}

	for i := 0; i < 4; i++ {
		bits := binary.LittleEndian.Uint32(p[i*4:])
		got := math.Float32frombits(bits)
		want := float32(i) * 0.25
		if got != want {
			t.Errorf("sample %d = %v, want %v", i, got, want)
		}
	}
}

func TestRenderReaderCapsAtBlockSize(t *testing.T) {
	calls := 0
	r := &renderReader{
		render:  func(out []float32) { calls++ },
		scratch: make([]float32, 2),
	}

	p := make([]byte, 64)
	n, err := r.Read(p)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if n != 8 {
		t.Errorf("read %d bytes, want 8 (one block)", n)
	}
	if calls != 1 {
		t.Errorf("render invoked %d times per read, want 1", calls)
	}
}

func TestRenderReaderTinyBuffer(t *testing.T) {
	r := &renderReader{
		render:  func(out []float32) {},
		scratch: make([]float32, 4),
	}

	n, err := r.Read(make([]byte, 3))
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if n != 0 {
		t.Errorf("read %d bytes from sub-sample buffer, want 0", n)
	}
}

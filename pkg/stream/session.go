// ABOUTME: Playback session lifecycle control
// ABOUTME: Gates stream start on the fill threshold and stop on a stop signal
package stream

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/voxstream/voxstream-go/pkg/audio/output"
)

// State is the playback session lifecycle state.
type State int32

const (
	StateIdle State = iota
	StateWaitingForFill
	StateStreaming
	StateStopping
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWaitingForFill:
		return "waiting-for-fill"
	case StateStreaming:
		return "streaming"
	case StateStopping:
		return "stopping"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Config holds the tunables for one playback session.
type Config struct {
	// SampleRate of incoming PCM and the output device. Default 24000.
	SampleRate int

	// InitialThreshold is the buffered sample count required before
	// playback starts. Default 4000 (~170ms at 24kHz).
	InitialThreshold int

	// BlockSize is the frame count per render callback. Default 1024.
	BlockSize int

	// BufferCap limits pending samples; oldest are dropped beyond it.
	// Zero disables the cap.
	BufferCap int

	// DrainGrace is how long the stream stays open after Stop so the
	// buffered tail can play out. Default 200ms.
	DrainGrace time.Duration
}

func (c *Config) applyDefaults() {
	if c.SampleRate == 0 {
		c.SampleRate = 24000
	}
	if c.InitialThreshold == 0 {
		c.InitialThreshold = 4000
	}
	if c.BlockSize == 0 {
		c.BlockSize = 1024
	}
	if c.DrainGrace == 0 {
		c.DrainGrace = 200 * time.Millisecond
	}
}

// fillWaitTick bounds the fill-wait so a stop request is honored promptly
// even if an append signal is missed.
const fillWaitTick = 100 * time.Millisecond

// Stats is a point-in-time snapshot of session counters.
type Stats struct {
	Appended int64
	Rendered int64
	Dropped  int64
	Pending  int
	State    State
}

// Session owns the shared buffer, fill gate, stop flag, and output stream
// for one streamed response. Exactly one session is active at a time;
// ingestion runs on the upstream goroutine, rendering on the device thread,
// and Run on the controlling goroutine.
type Session struct {
	ID string

	cfg      Config
	buf      *SampleBuffer
	gate     *FillGate
	renderer *Renderer
	out      output.Output

	state    atomic.Int32
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewSession creates an idle session rendering through out.
func NewSession(cfg Config, out output.Output) *Session {
	cfg.applyDefaults()

	buf := NewSampleBuffer(cfg.BufferCap)
	return &Session{
		ID:       uuid.New().String(),
		cfg:      cfg,
		buf:      buf,
		gate:     NewFillGate(cfg.InitialThreshold),
		renderer: NewRenderer(buf, cfg.BlockSize),
		out:      out,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Ingest appends one upstream chunk and updates the fill gate. It runs on
// whatever goroutine the upstream collaborator delivers chunks on; chunks
// are never rejected or reordered.
func (s *Session) Ingest(samples []int16) {
	s.buf.Append(samples)
	if s.gate.Observe(s.buf.Len()) {
		log.Printf("Session %s: fill threshold reached (%d buffered)", s.ID, s.buf.Len())
	}
}

// Run drives the session through its lifecycle: wait for the fill gate,
// open the output stream, block until a stop request, then tear down. A
// device open failure is returned and is fatal to the session. Run returns
// nil when stopped before the gate fills.
func (s *Session) Run(ctx context.Context) error {
	defer close(s.done)
	defer s.setState(StateClosed)

	s.setState(StateWaitingForFill)
	if !s.waitForFill(ctx) {
		return nil
	}

	s.setState(StateStreaming)
	if err := s.out.Open(s.cfg.SampleRate, 1, s.cfg.BlockSize, s.renderer.Render); err != nil {
		return fmt.Errorf("failed to open output stream: %w", err)
	}

	select {
	case <-s.stop:
	case <-ctx.Done():
	}

	s.setState(StateStopping)

	// Let the tail of the buffer play out; anything left after the grace
	// period is abandoned.
	timer := time.NewTimer(s.cfg.DrainGrace)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}

	if err := s.out.Close(); err != nil {
		return fmt.Errorf("failed to close output stream: %w", err)
	}
	return nil
}

// waitForFill blocks until the gate fires, waking on every append with a
// bounded timeout as a safety net. Returns false on stop or cancellation.
func (s *Session) waitForFill(ctx context.Context) bool {
	for !s.gate.Filled() {
		select {
		case <-s.buf.Notify():
		case <-time.After(fillWaitTick):
		case <-s.stop:
			return false
		case <-ctx.Done():
			return false
		}
	}
	return true
}

// ForceStart opens the fill gate even if the threshold was never reached,
// so a short response still plays. No-op once the gate has fired.
func (s *Session) ForceStart() {
	if s.gate.ForceOpen() {
		log.Printf("Session %s: gate forced open (%d buffered)", s.ID, s.buf.Len())
	}
}

// Stop requests teardown. Idempotent; safe from any goroutine.
func (s *Session) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Done is closed once Run has finished teardown.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return State(s.state.Load())
}

// Filled reports whether the fill gate has fired.
func (s *Session) Filled() bool {
	return s.gate.Filled()
}

// Buffer exposes the shared sample buffer for ingestion-side checks.
func (s *Session) Buffer() *SampleBuffer {
	return s.buf
}

// Stats returns a snapshot of the session counters.
func (s *Session) Stats() Stats {
	return Stats{
		Appended: s.buf.Appended(),
		Rendered: s.buf.Consumed() - s.buf.Dropped(),
		Dropped:  s.buf.Dropped(),
		Pending:  s.buf.Len(),
		State:    s.State(),
	}
}

func (s *Session) setState(st State) {
	s.state.Store(int32(st))
}

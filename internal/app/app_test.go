// ABOUTME: Tests for player application orchestration
// ABOUTME: Tests turn lifecycle against fake sources and outputs
package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/voxstream/voxstream-go/internal/config"
	"github.com/voxstream/voxstream-go/internal/source"
	"github.com/voxstream/voxstream-go/pkg/audio/output"
)

type fakeSource struct {
	events chan source.Event
	sent   []string
	closed bool
}

func newFakeSource() *fakeSource {
	return &fakeSource{events: make(chan source.Event, 16)}
}

func (f *fakeSource) Send(_ context.Context, text string) error {
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeSource) Events() <-chan source.Event { return f.events }

func (f *fakeSource) Close() error {
	f.closed = true
	return nil
}

// fakeOutput drains the render callback on a fast tick so turns finish
// quickly in tests.
type fakeOutput struct {
	mu     sync.Mutex
	opened bool
	closed bool
	stop   chan struct{}
}

func (f *fakeOutput) Open(_, _, blockSize int, render output.RenderFunc) error {
	f.mu.Lock()
	f.opened = true
	f.stop = make(chan struct{})
	f.mu.Unlock()

	go func() {
		out := make([]float32, blockSize)
		ticker := time.NewTicker(2 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				render(out)
			case <-f.stop:
				return
			}
		}
	}()
	return nil
}

func (f *fakeOutput) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	if f.stop != nil {
		close(f.stop)
		f.stop = nil
	}
	return nil
}

func (f *fakeOutput) state() (opened, closed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opened, f.closed
}

func newTestApp(src source.Source, out *fakeOutput) *App {
	app := New(config.Default(), src, "test-source")
	app.newOutput = func(string) output.Output { return out }
	return app
}

func TestNewApp(t *testing.T) {
	src := newFakeSource()
	app := New(config.Default(), src, "gemini-2.0-flash-exp")

	if app.sourceName != "gemini-2.0-flash-exp" {
		t.Errorf("sourceName = %q", app.sourceName)
	}
	if app.newOutput == nil {
		t.Error("newOutput not initialized")
	}

	if err := app.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if !src.closed {
		t.Error("Close did not close the source")
	}
}

func TestRunPromptPlaysTurn(t *testing.T) {
	src := newFakeSource()
	out := &fakeOutput{}
	app := newTestApp(src, out)
	defer app.Close()

	chunk := make([]int16, 2000)
	for i := 0; i < 3; i++ {
		src.events <- source.Event{Samples: chunk}
	}
	src.events <- source.Event{TurnComplete: true}

	if err := app.RunPrompt(context.Background(), "hello"); err != nil {
		t.Fatalf("RunPrompt: %v", err)
	}

	if len(src.sent) != 1 || src.sent[0] != "hello" {
		t.Errorf("sent = %v, want [hello]", src.sent)
	}
	opened, closed := out.state()
	if !opened {
		t.Error("output never opened")
	}
	if !closed {
		t.Error("output not closed after turn")
	}
}

func TestRunPromptShortTurn(t *testing.T) {
	src := newFakeSource()
	out := &fakeOutput{}
	app := newTestApp(src, out)
	defer app.Close()

	// One chunk is below the chunk gate; playback must still happen.
	src.events <- source.Event{Samples: make([]int16, 1200)}
	src.events <- source.Event{TurnComplete: true}

	if err := app.RunPrompt(context.Background(), "hi"); err != nil {
		t.Fatalf("RunPrompt: %v", err)
	}
	if opened, _ := out.state(); !opened {
		t.Error("output never opened for short turn")
	}
}

func TestRunPromptEmptyTurn(t *testing.T) {
	src := newFakeSource()
	out := &fakeOutput{}
	app := newTestApp(src, out)
	defer app.Close()

	src.events <- source.Event{TurnComplete: true}

	if err := app.RunPrompt(context.Background(), "silent"); err != nil {
		t.Fatalf("RunPrompt: %v", err)
	}
	if opened, _ := out.state(); opened {
		t.Error("output opened for a turn with no audio")
	}
}

func TestRunPromptSourceError(t *testing.T) {
	src := newFakeSource()
	out := &fakeOutput{}
	app := newTestApp(src, out)
	defer app.Close()

	upstreamErr := errors.New("connection reset")
	src.events <- source.Event{Samples: make([]int16, 500)}
	src.events <- source.Event{Err: upstreamErr}

	err := app.RunPrompt(context.Background(), "boom")
	if err == nil {
		t.Fatal("expected error from failed source")
	}
	if !errors.Is(err, upstreamErr) {
		t.Errorf("error %v does not wrap upstream error", err)
	}
}

func TestRunPromptContextCancel(t *testing.T) {
	src := newFakeSource()
	out := &fakeOutput{}
	app := newTestApp(src, out)
	defer app.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := app.RunPrompt(ctx, "cancelled")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

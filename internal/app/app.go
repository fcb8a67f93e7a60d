// ABOUTME: Main player application orchestration
// ABOUTME: Coordinates the source, playback sessions, and UI
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/voxstream/voxstream-go/internal/config"
	"github.com/voxstream/voxstream-go/internal/source"
	"github.com/voxstream/voxstream-go/internal/ui"
	"github.com/voxstream/voxstream-go/pkg/audio/output"
	"github.com/voxstream/voxstream-go/pkg/stream"
)

// turnGrace is how long the app waits after the buffer drains before
// stopping the session, so the device tail is not clipped.
const turnGrace = 500 * time.Millisecond

// drainTimeout bounds the post-turn drain wait.
const drainTimeout = 30 * time.Second

// statusInterval is how often playback stats are pushed to the TUI.
const statusInterval = 100 * time.Millisecond

// App owns the upstream source and runs one playback session per model
// turn. Prompts are serialized; a new prompt is rejected while a turn is
// still playing.
type App struct {
	cfg        config.Config
	src        source.Source
	sourceName string
	tuiProg    *tea.Program

	// newOutput builds the playback backend; swapped in tests.
	newOutput func(name string) output.Output

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates an app around an already-connected source.
func New(cfg config.Config, src source.Source, sourceName string) *App {
	ctx, cancel := context.WithCancel(context.Background())

	return &App{
		cfg:        cfg,
		src:        src,
		sourceName: sourceName,
		newOutput:  output.New,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// AttachTUI wires a running bubbletea program for status updates.
func (a *App) AttachTUI(p *tea.Program) {
	a.tuiProg = p

	connected := true
	a.pushStatus(ui.StatusMsg{
		Connected:  &connected,
		SourceName: a.sourceName,
		State:      stream.StateIdle.String(),
		SampleRate: a.cfg.Audio.SampleRate,
		BlockSize:  a.cfg.Audio.BlockSize,
	})
}

// RunPrompt sends one prompt and plays the streamed response to
// completion. It returns when the turn has finished playing or failed.
func (a *App) RunPrompt(ctx context.Context, text string) error {
	session := stream.NewSession(stream.Config{
		SampleRate:       a.cfg.Audio.SampleRate,
		InitialThreshold: a.cfg.Audio.InitialThreshold,
		BlockSize:        a.cfg.Audio.BlockSize,
		BufferCap:        a.cfg.BufferCap(),
	}, a.newOutput(a.cfg.Audio.Output))

	log.Printf("Turn %s: sending prompt (%d bytes)", session.ID, len(text))

	if err := a.src.Send(ctx, text); err != nil {
		return fmt.Errorf("failed to send prompt: %w", err)
	}

	stopStatus := a.startStatusLoop(session)
	defer stopStatus()

	runErr := make(chan error, 1)
	launched := false
	launch := func() {
		launched = true
		go func() { runErr <- session.Run(a.ctx) }()
	}

	chunks := 0
	turnDone := false

receive:
	for !turnDone {
		select {
		case ev, ok := <-a.src.Events():
			if !ok {
				turnDone = true
				break receive
			}
			if ev.Err != nil {
				session.Stop()
				if launched {
					<-session.Done()
				}
				return fmt.Errorf("source error: %w", ev.Err)
			}
			if len(ev.Samples) > 0 {
				session.Ingest(ev.Samples)
				chunks++
				if !launched && chunks >= a.cfg.Audio.ChunkCountGate {
					launch()
				}
			}
			if ev.TurnComplete {
				log.Printf("Turn %s: complete after %d chunks", session.ID, chunks)
				turnDone = true
			}

		case <-ctx.Done():
			session.Stop()
			if launched {
				<-session.Done()
			}
			return ctx.Err()
		}
	}

	// A short response may finish before the chunk gate; play whatever
	// arrived.
	if !launched {
		if session.Buffer().Len() == 0 {
			return nil
		}
		launch()
	}
	session.ForceStart()

	a.waitDrain(ctx, session)
	session.Stop()

	select {
	case err := <-runErr:
		if err != nil {
			return fmt.Errorf("playback failed: %w", err)
		}
	case <-ctx.Done():
		<-session.Done()
		return ctx.Err()
	}

	return nil
}

// waitDrain polls until the session buffer is empty, the session dies on
// its own, or the timeout lapses.
func (a *App) waitDrain(ctx context.Context, session *stream.Session) {
	deadline := time.NewTimer(drainTimeout)
	defer deadline.Stop()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for session.Buffer().Len() > 0 {
		select {
		case <-ticker.C:
		case <-session.Done():
			return
		case <-deadline.C:
			log.Printf("Turn %s: drain timeout, %d samples abandoned",
				session.ID, session.Buffer().Len())
			return
		case <-ctx.Done():
			return
		}
	}

	grace := time.NewTimer(turnGrace)
	defer grace.Stop()
	select {
	case <-grace.C:
	case <-session.Done():
	case <-ctx.Done():
	}
}

// startStatusLoop pushes session stats to the TUI until the returned stop
// function is called.
func (a *App) startStatusLoop(session *stream.Session) func() {
	if a.tuiProg == nil {
		return func() {}
	}

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(statusInterval)
		defer ticker.Stop()

		busy := true
		for {
			select {
			case <-ticker.C:
				stats := session.Stats()
				a.pushStatus(ui.StatusMsg{
					State:    stats.State.String(),
					Busy:     &busy,
					Appended: stats.Appended,
					Rendered: stats.Rendered,
					Dropped:  stats.Dropped,
					Pending:  stats.Pending,
				})
			case <-done:
				return
			}
		}
	}()

	return func() {
		close(done)

		idle := false
		stats := session.Stats()
		a.pushStatus(ui.StatusMsg{
			State:    stats.State.String(),
			Busy:     &idle,
			Appended: stats.Appended,
			Rendered: stats.Rendered,
			Dropped:  stats.Dropped,
			Pending:  stats.Pending,
		})
	}
}

func (a *App) pushStatus(msg ui.StatusMsg) {
	if a.tuiProg != nil {
		a.tuiProg.Send(msg)
	}
}

// Close tears down the source and cancels any running session.
func (a *App) Close() error {
	a.cancel()
	return a.src.Close()
}

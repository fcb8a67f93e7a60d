// ABOUTME: Gemini Live API chunk source
// ABOUTME: Streams spoken model responses as 16-bit PCM events
package source

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"

	"github.com/voxstream/voxstream-go/pkg/audio"
)

// GeminiConfig holds the live session parameters.
type GeminiConfig struct {
	APIKey     string
	Model      string
	Voice      string
	APIVersion string
}

// Gemini streams audio responses from a Gemini Live session. The model is
// asked for AUDIO responses with a prebuilt voice; inline data parts carry
// 16-bit little-endian PCM.
type Gemini struct {
	client  *genai.Client
	session *genai.Session
	events  chan Event
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewGemini connects a live session and starts the receive loop.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{APIVersion: cfg.APIVersion},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	session, err := client.Live.Connect(ctx, cfg.Model, &genai.LiveConnectConfig{
		ResponseModalities: []genai.Modality{genai.ModalityAudio},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: cfg.Voice,
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect live session: %w", err)
	}

	sctx, cancel := context.WithCancel(ctx)
	g := &Gemini{
		client:  client,
		session: session,
		events:  make(chan Event, 64),
		ctx:     sctx,
		cancel:  cancel,
	}

	go g.receiveLoop()

	log.Printf("Connected to Gemini Live: model=%s voice=%s", cfg.Model, cfg.Voice)
	return g, nil
}

// Send submits a user text turn.
func (g *Gemini) Send(ctx context.Context, text string) error {
	err := g.session.SendClientContent(genai.LiveClientContentInput{
		Turns: []*genai.Content{
			{
				Role:  genai.RoleUser,
				Parts: []*genai.Part{genai.NewPartFromText(text)},
			},
		},
		TurnComplete: genai.Ptr(true),
	})
	if err != nil {
		return fmt.Errorf("failed to send prompt: %w", err)
	}
	return nil
}

// Events returns the delivery channel.
func (g *Gemini) Events() <-chan Event {
	return g.events
}

// receiveLoop reads server messages and translates them to Events. It runs
// on its own goroutine for the lifetime of the session.
func (g *Gemini) receiveLoop() {
	defer close(g.events)

	for {
		msg, err := g.session.Receive()
		if err != nil {
			select {
			case <-g.ctx.Done():
			default:
				g.emit(Event{Err: fmt.Errorf("live session receive: %w", err)})
			}
			return
		}

		content := msg.ServerContent
		if content == nil {
			continue
		}

		if content.ModelTurn != nil {
			for _, part := range content.ModelTurn.Parts {
				if part.InlineData == nil || len(part.InlineData.Data) == 0 {
					continue
				}
				g.emit(Event{Samples: audio.SamplesFromBytes(part.InlineData.Data)})
			}
		}

		if content.TurnComplete {
			g.emit(Event{TurnComplete: true})
		}
	}
}

// emit delivers an event unless the source is shutting down.
func (g *Gemini) emit(ev Event) {
	select {
	case g.events <- ev:
	case <-g.ctx.Done():
	}
}

// Close tears the live session down.
func (g *Gemini) Close() error {
	g.cancel()
	if g.session != nil {
		return g.session.Close()
	}
	return nil
}

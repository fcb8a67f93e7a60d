// ABOUTME: Upstream chunk source interface
// ABOUTME: Boundary between the playback engine and remote response APIs
package source

import "context"

// Event is one upstream delivery: a chunk of decoded mono PCM samples, a
// turn-completion signal, or a terminal error. After TurnComplete no further
// chunks arrive for that response.
type Event struct {
	Samples      []int16
	TurnComplete bool
	Err          error
}

// Source produces audio responses for text prompts. Implementations own
// their protocol entirely; the engine only sees ordered Events.
type Source interface {
	// Send submits a prompt and ends the user turn.
	Send(ctx context.Context, text string) error

	// Events returns the delivery channel. It is closed when the source
	// shuts down; a terminal failure is delivered as an Event with Err
	// set before closing.
	Events() <-chan Event

	// Close tears down the session.
	Close() error
}

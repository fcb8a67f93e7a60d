// ABOUTME: WebSocket chunk source for the voxstream test server
// ABOUTME: Handles connection, handshake, and message routing
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocket streams PCM chunks from a voxstream test source server. Binary
// frames carry chunks, JSON text frames carry control messages. Useful for
// exercising the playback engine without API credentials.
type WebSocket struct {
	conn   *websocket.Conn
	mu     sync.Mutex // guards writes to conn
	events chan Event
	ctx    context.Context
	cancel context.CancelFunc

	connected bool
}

// NewWebSocket dials the server and performs the hello handshake.
func NewWebSocket(serverAddr string) (*WebSocket, error) {
	u := url.URL{Scheme: "ws", Host: serverAddr, Path: "/voxstream"}
	log.Printf("Connecting to %s", u.String())

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial failed: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &WebSocket{
		conn:      conn,
		events:    make(chan Event, 64),
		ctx:       ctx,
		cancel:    cancel,
		connected: true,
	}

	if err := w.handshake(); err != nil {
		w.Close()
		return nil, fmt.Errorf("handshake failed: %w", err)
	}

	go w.readMessages()

	return w, nil
}

// handshake waits for the server's hello.
func (w *WebSocket) handshake() error {
	w.conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	defer w.conn.SetReadDeadline(time.Time{})

	_, data, err := w.conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("failed to read hello: %w", err)
	}

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("failed to parse hello: %w", err)
	}
	if msg.Type != MsgHello {
		return fmt.Errorf("expected %s, got %s", MsgHello, msg.Type)
	}

	log.Printf("Handshake complete: source at %d Hz", msg.SampleRate)
	return nil
}

// Send submits a prompt as a JSON control frame.
func (w *WebSocket) Send(ctx context.Context, text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.connected {
		return fmt.Errorf("not connected")
	}
	return w.conn.WriteJSON(Message{Type: MsgPrompt, Text: text})
}

// Events returns the delivery channel.
func (w *WebSocket) Events() <-chan Event {
	return w.events
}

// readMessages reads and routes incoming frames until the connection ends.
func (w *WebSocket) readMessages() {
	defer close(w.events)

	for {
		messageType, data, err := w.conn.ReadMessage()
		if err != nil {
			select {
			case <-w.ctx.Done():
			default:
				w.emit(Event{Err: fmt.Errorf("read error: %w", err)})
			}
			return
		}

		switch messageType {
		case websocket.BinaryMessage:
			samples, err := DecodeChunk(data)
			if err != nil {
				log.Printf("Dropping invalid binary frame: %v", err)
				continue
			}
			w.emit(Event{Samples: samples})

		case websocket.TextMessage:
			var msg Message
			if err := json.Unmarshal(data, &msg); err != nil {
				log.Printf("Failed to parse control message: %v", err)
				continue
			}
			if msg.Type == MsgTurnComplete {
				w.emit(Event{TurnComplete: true})
			}
		}
	}
}

// emit delivers an event unless the source is shutting down.
func (w *WebSocket) emit(ev Event) {
	select {
	case w.events <- ev:
	case <-w.ctx.Done():
	}
}

// Close closes the connection.
func (w *WebSocket) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.connected {
		w.connected = false
		w.cancel()
		return w.conn.Close()
	}
	return nil
}

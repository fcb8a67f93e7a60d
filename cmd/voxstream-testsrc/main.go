// ABOUTME: Test source server for the voxstream player
// ABOUTME: Streams a sine tone over WebSocket in response to prompts
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"github.com/voxstream/voxstream-go/internal/discovery"
	"github.com/voxstream/voxstream-go/internal/source"
)

var (
	port       = flag.Int("port", 8930, "Listen port")
	name       = flag.String("name", "", "Service name for mDNS (default: hostname-voxstream-src)")
	enableMDNS = flag.Bool("mdns", true, "Advertise via mDNS")
	sampleRate = flag.Int("sample-rate", 24000, "PCM sample rate in Hz")
	durationMS = flag.Int("duration-ms", 2500, "Tone duration per prompt")
	freq       = flag.Float64("freq", 440.0, "Tone frequency in Hz")
)

// chunkSizes makes delivery look like a real streaming API: chunk lengths
// vary and none lines up with the player's block size.
var chunkSizes = []int{800, 1200, 1600, 1000}

func main() {
	flag.Parse()

	serviceName := *name
	if serviceName == "" {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		serviceName = fmt.Sprintf("%s-voxstream-src", hostname)
	}

	if *enableMDNS {
		disc := discovery.NewManager(discovery.Config{
			ServiceName: serviceName,
			Port:        *port,
		})
		if err := disc.Advertise(); err != nil {
			log.Printf("mDNS advertise failed: %v", err)
		} else {
			defer disc.Stop()
			log.Printf("Advertising %s on port %d", serviceName, *port)
		}
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/voxstream", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("Upgrade failed: %v", err)
			return
		}
		handleConn(conn)
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: mux,
	}

	go func() {
		log.Printf("Test source listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Printf("Shutting down")
	_ = srv.Close()
}

// handleConn greets the player and answers each prompt with one tone turn.
// Prompts are handled on the read goroutine, so writes never interleave.
func handleConn(conn *websocket.Conn) {
	defer func() { _ = conn.Close() }()

	log.Printf("Player connected: %s", conn.RemoteAddr())

	hello := source.Message{Type: source.MsgHello, SampleRate: *sampleRate}
	if err := conn.WriteJSON(hello); err != nil {
		log.Printf("Hello failed: %v", err)
		return
	}

	for {
		var msg source.Message
		if err := conn.ReadJSON(&msg); err != nil {
			log.Printf("Player disconnected: %v", err)
			return
		}

		switch msg.Type {
		case source.MsgPrompt:
			log.Printf("Prompt: %q", msg.Text)
			if err := streamTone(conn); err != nil {
				log.Printf("Stream failed: %v", err)
				return
			}

		default:
			log.Printf("Ignoring message type %q", msg.Type)
		}
	}
}

// streamTone sends one turn of sine PCM in irregular chunks, then signals
// turn completion.
func streamTone(conn *websocket.Conn) error {
	total := *durationMS * *sampleRate / 1000
	sent := 0

	for i := 0; sent < total; i++ {
		n := chunkSizes[i%len(chunkSizes)]
		if sent+n > total {
			n = total - sent
		}

		chunk := make([]int16, n)
		for j := range chunk {
			t := float64(sent+j) / float64(*sampleRate)
			chunk[j] = int16(math.Sin(2*math.Pi*(*freq)*t) * 32767.0 * 0.3)
		}

		if err := conn.WriteMessage(websocket.BinaryMessage, source.EncodeChunk(chunk)); err != nil {
			return err
		}
		sent += n

		// Pace roughly like a live API rather than blasting the buffer.
		time.Sleep(30 * time.Millisecond)
	}

	return conn.WriteJSON(source.Message{Type: source.MsgTurnComplete})
}

// ABOUTME: Entry point for the voxstream player
// ABOUTME: Parses CLI flags, picks a source, and runs the prompt loop
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/voxstream/voxstream-go/internal/app"
	"github.com/voxstream/voxstream-go/internal/config"
	"github.com/voxstream/voxstream-go/internal/discovery"
	"github.com/voxstream/voxstream-go/internal/source"
	"github.com/voxstream/voxstream-go/internal/ui"
	"github.com/voxstream/voxstream-go/internal/version"
)

var (
	configPath = flag.String("config", "", "Path to YAML config file")
	serverAddr = flag.String("server", "", "Test source server address (use WebSocket source)")
	discover   = flag.Bool("discover", false, "Find a test source via mDNS")
	outputName = flag.String("output", "", "Playback backend: malgo, oto, portaudio")
	model      = flag.String("model", "", "Gemini model override")
	voice      = flag.String("voice", "", "Gemini voice override")
	logFile    = flag.String("log-file", "voxstream.log", "Log file path")
	noTUI      = flag.Bool("no-tui", false, "Disable TUI, use a plain stdin prompt loop")
	streamLogs = flag.Bool("stream-logs", false, "Alias for -no-tui")
)

func main() {
	flag.Parse()

	useTUI := !(*noTUI || *streamLogs)

	// Set up logging
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		// Streaming logs mode: log to both stdout and file
		multiWriter := io.MultiWriter(os.Stdout, f)
		log.SetOutput(multiWriter)
	}

	// .env is optional; real environment wins
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if *outputName != "" {
		cfg.Audio.Output = *outputName
	}
	if *model != "" {
		cfg.Gemini.Model = *model
	}
	if *voice != "" {
		cfg.Gemini.Voice = *voice
	}

	if !useTUI {
		log.Printf("Starting %s %s", version.Product, version.Version)
		log.Printf("TUI disabled - logging to stdout")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src, sourceName, err := openSource(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open source: %v", err)
	}

	a := app.New(cfg, src, sourceName)
	defer func() {
		if err := a.Close(); err != nil {
			log.Printf("Error closing app: %v", err)
		}
	}()

	log.Printf("Source ready: %s (output=%s, %dHz)",
		sourceName, cfg.Audio.Output, cfg.Audio.SampleRate)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if useTUI {
		runTUI(ctx, cancel, a, sigChan)
	} else {
		runCLI(ctx, cancel, a, sigChan)
	}

	log.Printf("Player stopped")
}

// openSource picks the upstream: a test source server when -server or
// -discover is given, the Gemini Live API otherwise.
func openSource(ctx context.Context, cfg config.Config) (source.Source, string, error) {
	addr := *serverAddr

	if addr == "" && *discover {
		log.Printf("Browsing for test sources...")
		disc := discovery.NewManager(discovery.Config{})
		if err := disc.Browse(); err != nil {
			return nil, "", fmt.Errorf("mDNS browse failed: %w", err)
		}
		defer disc.Stop()

		select {
		case server := <-disc.Servers():
			addr = fmt.Sprintf("%s:%d", server.Host, server.Port)
			log.Printf("Discovered test source at %s", addr)
		case <-time.After(10 * time.Second):
			return nil, "", fmt.Errorf("no test source found after 10 seconds")
		}
	}

	if addr != "" {
		src, err := source.NewWebSocket(addr)
		if err != nil {
			return nil, "", err
		}
		return src, addr, nil
	}

	src, err := source.NewGemini(ctx, source.GeminiConfig{
		APIKey:     os.Getenv("GEMINI_API_KEY"),
		Model:      cfg.Gemini.Model,
		Voice:      cfg.Gemini.Voice,
		APIVersion: cfg.Gemini.APIVersion,
	})
	if err != nil {
		return nil, "", err
	}
	return src, cfg.Gemini.Model, nil
}

// runTUI drives prompts from the bubbletea input line.
func runTUI(ctx context.Context, cancel context.CancelFunc, a *app.App, sigChan chan os.Signal) {
	ctrl := ui.NewPromptControl()
	prog, err := ui.Run(ctrl)
	if err != nil {
		log.Fatalf("Failed to start TUI: %v", err)
	}
	go func() {
		_, _ = prog.Run()
		// TUI exiting without a quit signal still ends the program
		select {
		case ctrl.Quit <- struct{}{}:
		default:
		}
	}()
	a.AttachTUI(prog)

	for {
		select {
		case text := <-ctrl.Prompts:
			if err := a.RunPrompt(ctx, text); err != nil {
				log.Printf("Prompt failed: %v", err)
			}
		case <-ctrl.Quit:
			log.Printf("Received quit signal from TUI")
			prog.Quit()
			cancel()
			return
		case <-sigChan:
			log.Printf("Shutdown signal received")
			prog.Quit()
			cancel()
			return
		}
	}
}

// runCLI reads prompts from stdin, one turn at a time.
func runCLI(ctx context.Context, cancel context.CancelFunc, a *app.App, sigChan chan os.Signal) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("Input > ")
			if !scanner.Scan() {
				return
			}
			lines <- strings.TrimSpace(scanner.Text())
		}
	}()

	for {
		select {
		case text, ok := <-lines:
			if !ok {
				cancel()
				return
			}
			if text == "" {
				continue
			}
			if text == "q" || text == "quit" || text == "exit" {
				cancel()
				return
			}
			if err := a.RunPrompt(ctx, text); err != nil {
				log.Printf("Prompt failed: %v", err)
			}
		case <-sigChan:
			log.Printf("Shutdown signal received")
			cancel()
			return
		}
	}
}

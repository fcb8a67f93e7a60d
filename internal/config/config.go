// ABOUTME: Configuration loading for the voxstream player
// ABOUTME: YAML file with VOXSTREAM_* environment overrides
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Audio holds the playback engine tunables.
type Audio struct {
	// SampleRate of incoming PCM and the output device, in Hz.
	SampleRate int `yaml:"sample_rate"`

	// InitialThreshold is the buffered sample count required before
	// playback starts.
	InitialThreshold int `yaml:"initial_threshold"`

	// BlockSize is the frame count per render callback invocation.
	BlockSize int `yaml:"block_size"`

	// ChunkCountGate is the chunk arrivals before the controller is
	// launched. Auxiliary to the sample threshold.
	ChunkCountGate int `yaml:"chunk_count_gate"`

	// BufferCapMS caps pending audio in milliseconds; 0 disables.
	BufferCapMS int `yaml:"buffer_cap_ms"`

	// Output selects the playback backend: malgo, oto, or portaudio.
	Output string `yaml:"output"`
}

// Gemini holds the live session parameters.
type Gemini struct {
	Model      string `yaml:"model"`
	Voice      string `yaml:"voice"`
	APIVersion string `yaml:"api_version"`
}

// Config is the full player configuration.
type Config struct {
	Audio  Audio  `yaml:"audio"`
	Gemini Gemini `yaml:"gemini"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Audio: Audio{
			SampleRate:       24000,
			InitialThreshold: 4000,
			BlockSize:        1024,
			ChunkCountGate:   3,
			BufferCapMS:      10000,
			Output:           "malgo",
		},
		Gemini: Gemini{
			Model:      "gemini-2.0-flash-exp",
			Voice:      "Puck",
			APIVersion: "v1alpha",
		},
	}
}

// Load reads an optional YAML file over the defaults, then applies
// environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// BufferCap returns the buffer capacity in samples.
func (c Config) BufferCap() int {
	return c.Audio.BufferCapMS * c.Audio.SampleRate / 1000
}

func applyEnvOverrides(cfg *Config) {
	overrideInt(&cfg.Audio.SampleRate, "VOXSTREAM_SAMPLE_RATE")
	overrideInt(&cfg.Audio.InitialThreshold, "VOXSTREAM_INITIAL_THRESHOLD")
	overrideInt(&cfg.Audio.BlockSize, "VOXSTREAM_BLOCK_SIZE")
	overrideInt(&cfg.Audio.ChunkCountGate, "VOXSTREAM_CHUNK_COUNT_GATE")
	overrideInt(&cfg.Audio.BufferCapMS, "VOXSTREAM_BUFFER_CAP_MS")
	overrideString(&cfg.Audio.Output, "VOXSTREAM_OUTPUT")
	overrideString(&cfg.Gemini.Model, "VOXSTREAM_GEMINI_MODEL")
	overrideString(&cfg.Gemini.Voice, "VOXSTREAM_GEMINI_VOICE")
	overrideString(&cfg.Gemini.APIVersion, "VOXSTREAM_GEMINI_API_VERSION")
}

func overrideString(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

func overrideInt(target *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*target = n
		}
	}
}

func validate(cfg Config) error {
	if cfg.Audio.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive, got %d", cfg.Audio.SampleRate)
	}
	if cfg.Audio.BlockSize <= 0 {
		return fmt.Errorf("block_size must be positive, got %d", cfg.Audio.BlockSize)
	}
	if cfg.Audio.InitialThreshold < 0 {
		return fmt.Errorf("initial_threshold must not be negative, got %d", cfg.Audio.InitialThreshold)
	}
	if cfg.Audio.BufferCapMS < 0 {
		return fmt.Errorf("buffer_cap_ms must not be negative, got %d", cfg.Audio.BufferCapMS)
	}
	switch cfg.Audio.Output {
	case "malgo", "oto", "portaudio":
	default:
		return fmt.Errorf("unknown output backend: %s", cfg.Audio.Output)
	}
	return nil
}

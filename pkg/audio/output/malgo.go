// ABOUTME: Malgo-based audio output implementation
// ABOUTME: Uses miniaudio via malgo for callback-driven float32 playback
package output

import (
	"encoding/binary"
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/gen2brain/malgo"
)

// Malgo output implementation using the malgo/miniaudio library.
type Malgo struct {
	mu       sync.Mutex
	malgoCtx *malgo.AllocatedContext
	device   *malgo.Device

	sampleRate int
	channels   int
	render     RenderFunc
	scratch    []float32
	ready      bool
}

// NewMalgo creates a new Malgo output.
func NewMalgo() Output {
	return &Malgo{}
}

// Open initializes the playback device with a fixed period size so the
// render callback is invoked with blockSize frames per period.
func (m *Malgo) Open(sampleRate, channels, blockSize int, render RenderFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device != nil {
		return fmt.Errorf("output already open")
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize malgo context: %w", err)
	}
	m.malgoCtx = ctx

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatF32
	deviceConfig.Playback.Channels = uint32(channels)
	deviceConfig.SampleRate = uint32(sampleRate)
	deviceConfig.PeriodSizeInFrames = uint32(blockSize)
	deviceConfig.Alsa.NoMMap = 1

	m.render = render
	m.scratch = make([]float32, blockSize*channels)
	m.channels = channels
	m.sampleRate = sampleRate

	deviceCallbacks := malgo.DeviceCallbacks{
		Data: func(pOutput, pInput []byte, frameCount uint32) {
			m.dataCallback(pOutput, frameCount)
		},
	}

	device, err := malgo.InitDevice(m.malgoCtx.Context, deviceConfig, deviceCallbacks)
	if err != nil {
		m.teardownContext()
		return fmt.Errorf("failed to initialize playback device: %w", err)
	}

	if err := device.Start(); err != nil {
		device.Uninit()
		m.teardownContext()
		return fmt.Errorf("failed to start device: %w", err)
	}

	m.device = device
	m.ready = true

	log.Printf("Audio output initialized: %dHz, %d channels, %d frames/block (malgo)",
		sampleRate, channels, blockSize)

	return nil
}

// dataCallback is invoked by miniaudio on its real-time thread. It pulls
// samples via the render func and serializes them as little-endian float32.
func (m *Malgo) dataCallback(pOutput []byte, frameCount uint32) {
	total := int(frameCount) * m.channels
	if total > len(m.scratch) {
		m.scratch = make([]float32, total)
	}
	out := m.scratch[:total]

	m.render(out)

	for i, s := range out {
		binary.LittleEndian.PutUint32(pOutput[i*4:], math.Float32bits(s))
	}
}

// Close stops and releases the device.
func (m *Malgo) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.device != nil {
		if err := m.device.Stop(); err != nil {
			log.Printf("Warning: device stop error: %v", err)
		}
		m.device.Uninit()
		m.device = nil
		m.ready = false
	}

	m.teardownContext()
	return nil
}

// teardownContext releases the malgo context (must hold m.mu).
func (m *Malgo) teardownContext() {
	if m.malgoCtx != nil {
		if err := m.malgoCtx.Uninit(); err != nil {
			log.Printf("Warning: malgo context uninit error: %v", err)
		}
		m.malgoCtx.Free()
		m.malgoCtx = nil
	}
}

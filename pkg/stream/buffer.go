// ABOUTME: Thread-safe FIFO buffer for pending PCM samples
// ABOUTME: Shared between the chunk ingester and the render callback
package stream

import "sync"

// SampleBuffer holds 16-bit PCM samples that have arrived but not yet been
// rendered. Appends go to the tail, the render callback consumes from the
// head. All operations hold the mutex only for the copy itself.
type SampleBuffer struct {
	mu      sync.Mutex
	samples []int16
	head    int // index of the first pending sample

	capacity int // max pending samples, 0 = unbounded

	appended int64
	consumed int64
	dropped  int64

	notify chan struct{}
}

// NewSampleBuffer creates a buffer. capacity caps the number of pending
// samples; when an append would exceed it, the oldest samples are dropped.
// capacity 0 disables the cap.
func NewSampleBuffer(capacity int) *SampleBuffer {
	return &SampleBuffer{
		capacity: capacity,
		notify:   make(chan struct{}, 1),
	}
}

// Append adds samples to the tail and signals any waiter on Notify.
func (b *SampleBuffer) Append(chunk []int16) {
	if len(chunk) == 0 {
		return
	}

	b.mu.Lock()
	b.compact()
	b.samples = append(b.samples, chunk...)
	b.appended += int64(len(chunk))

	// Overflow policy: drop oldest so playback stays near real time.
	if b.capacity > 0 && len(b.samples)-b.head > b.capacity {
		over := len(b.samples) - b.head - b.capacity
		b.head += over
		b.consumed += int64(over)
		b.dropped += int64(over)
	}
	b.mu.Unlock()

	select {
	case b.notify <- struct{}{}:
	default:
	}
}

// ConsumeInto removes up to len(dst) samples from the head into dst and
// returns the number copied. Safe for the real-time render context: no
// allocation, bounded critical section.
func (b *SampleBuffer) ConsumeInto(dst []int16) int {
	b.mu.Lock()
	n := copy(dst, b.samples[b.head:])
	b.head += n
	b.consumed += int64(n)
	b.compact()
	b.mu.Unlock()
	return n
}

// Consume removes and returns up to n samples from the head. If fewer are
// pending, all pending samples are returned; padding is the caller's job.
func (b *SampleBuffer) Consume(n int) []int16 {
	out := make([]int16, n)
	got := b.ConsumeInto(out)
	return out[:got]
}

// Len returns the current pending sample count. Advisory under concurrency.
func (b *SampleBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.samples) - b.head
}

// Appended returns the total number of samples ever appended.
func (b *SampleBuffer) Appended() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.appended
}

// Consumed returns the total number of samples removed from the head,
// including any dropped by the overflow policy.
func (b *SampleBuffer) Consumed() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.consumed
}

// Dropped returns the number of samples discarded by the overflow policy.
func (b *SampleBuffer) Dropped() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// Notify returns a channel that receives a signal after every append. The
// channel has capacity 1, so waiters must re-check state after each wake.
func (b *SampleBuffer) Notify() <-chan struct{} {
	return b.notify
}

// compact reclaims the consumed prefix once it dominates the backing slice.
// Must hold b.mu.
func (b *SampleBuffer) compact() {
	if b.head == 0 {
		return
	}
	if b.head == len(b.samples) {
		b.samples = b.samples[:0]
		b.head = 0
		return
	}
	if b.head > 4096 && b.head > len(b.samples)/2 {
		n := copy(b.samples, b.samples[b.head:])
		b.samples = b.samples[:n]
		b.head = 0
	}
}

package scroll

import "sync"

// DefaultSourceBuffer is the sample buffer size used by NewSource when size <= 0.
const DefaultSourceBuffer = 64

// Source is a buffered, closable sample stream that hosts push into.
// It satisfies paging.ScrollSource and io.Closer.
type Source struct {
	mu     sync.Mutex
	ch     chan Sample
	closed bool
}

// NewSource creates a Source buffering up to size samples.
func NewSource(size int) *Source {
	if size <= 0 {
		size = DefaultSourceBuffer
	}
	return &Source{ch: make(chan Sample, size)}
}

// Samples returns the receive side of the stream.
func (s *Source) Samples() <-chan Sample {
	return s.ch
}

// Push enqueues a sample without blocking. It returns false when the buffer
// is full or the source is closed; the sample is dropped in both cases.
func (s *Source) Push(sample Sample) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- sample:
		return true
	default:
		return false
	}
}

// Close ends the stream. It is safe to call more than once.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.ch)
	}
	return nil
}

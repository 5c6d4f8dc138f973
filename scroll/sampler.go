package scroll

// Sampler converts consecutive samples into advance signals. It is not safe
// for concurrent use; the owner serializes calls.
type Sampler struct {
	percent float64
	prev    Sample
	hasPrev bool
}

// NewSampler creates a sampler that fires once the visible bottom edge
// reaches percent (0-100) of the scrollable height.
func NewSampler(percent float64) *Sampler {
	return &Sampler{percent: percent}
}

// Percent returns the configured threshold.
func (s *Sampler) Percent() float64 {
	return s.percent
}

// Push records sample and reports whether it completes a pair that advances.
// The first sample after construction or Reset only primes the sampler.
func (s *Sampler) Push(sample Sample) bool {
	prev, hadPrev := s.prev, s.hasPrev
	s.prev, s.hasPrev = sample, true

	if !hadPrev {
		return false
	}
	return Advances(prev, sample, s.percent)
}

// Reset forgets the previous sample.
func (s *Sampler) Reset() {
	s.prev = Sample{}
	s.hasPrev = false
}

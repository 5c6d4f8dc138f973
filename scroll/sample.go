// Package scroll turns raw viewport geometry into discrete "load more" signals.
//
// A Sampler compares each sample with the one before it. It reports an advance
// when the offset grew (the user scrolls toward the end) and the visible bottom
// edge has reached the configured share of the scrollable height.
//
// Example usage:
//
//	sampler := scroll.NewSampler(70)
//	for s := range samples {
//	    if sampler.Push(s) {
//	        ctrl.OnAdvanceEvent()
//	    }
//	}
package scroll

// Mode selects how host geometry maps onto a Sample.
type Mode int

const (
	// ModeContainer reads geometry from a bounded scroll container.
	ModeContainer Mode = iota

	// ModeWindow reads geometry from the whole scrolling document.
	ModeWindow
)

func (m Mode) String() string {
	if m == ModeWindow {
		return "window"
	}
	return "container"
}

// Sample is one observation of the viewport. Values are in pixels (or rows,
// for terminal hosts) and are expected to be non-negative.
type Sample struct {
	// ScrollHeight is the full height of the scrollable content.
	ScrollHeight float64

	// ScrollTop is the scroll offset.
	ScrollTop float64

	// ViewportHeight is the visible height.
	ViewportHeight float64
}

// NewSample maps host geometry to a Sample. In window mode the offset is
// reported as scrollTop+clientHeight, matching how document scrolling hosts
// report the bottom edge of the window.
func NewSample(mode Mode, scrollHeight, scrollTop, clientHeight float64) Sample {
	if mode == ModeWindow {
		scrollTop += clientHeight
	}
	return Sample{
		ScrollHeight:   scrollHeight,
		ScrollTop:      scrollTop,
		ViewportHeight: clientHeight,
	}
}

// Reached reports whether (ScrollTop+ViewportHeight)/ScrollHeight is at least
// percent/100. A sample with no scrollable height never reaches a threshold.
func (s Sample) Reached(percent float64) bool {
	if s.ScrollHeight <= 0 {
		return false
	}
	// cross-multiplied so that exact boundaries compare without rounding
	return (s.ScrollTop+s.ViewportHeight)*100 >= percent*s.ScrollHeight
}

// Advances reports whether the move from prev to cur scrolls down past percent.
func Advances(prev, cur Sample, percent float64) bool {
	return prev.ScrollTop < cur.ScrollTop && cur.Reached(percent)
}

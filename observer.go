package paging

import (
	"github.com/rs/zerolog"
)

var eventMessages = map[EventKind]string{
	EventStarted:        "Infinite scroll started",
	EventStopped:        "Infinite scroll stopped",
	EventDispatched:     "Page fetch dispatched",
	EventPageLoaded:     "Page loaded",
	EventEndOfData:      "End of data reached",
	EventFetchFailed:    "Page fetch failed",
	EventStaleDiscarded: "Stale page discarded",
	EventAdvanceDropped: "Advance event dropped",
	EventReset:          "Pagination reset",
}

// LogObserver writes controller events as structured zerolog lines.
//
// Levels:
//   - Warn: fetch failures
//   - Info: start, stop, reset, end of data
//   - Debug: dispatches, loaded pages, dropped advances, stale results
type LogObserver struct {
	logger zerolog.Logger
}

// NewLogObserver creates a log observer writing to logger.
func NewLogObserver(logger zerolog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

// Observe implements Observer.
func (o *LogObserver) Observe(e Event) {
	var entry *zerolog.Event
	switch e.Kind {
	case EventFetchFailed:
		entry = o.logger.Warn().Err(e.Err)
	case EventStarted, EventStopped, EventReset, EventEndOfData:
		entry = o.logger.Info()
	default:
		entry = o.logger.Debug()
	}

	entry = entry.
		Str("event", string(e.Kind)).
		Uint64("epoch", uint64(e.Epoch)).
		Int("page_index", e.PageIndex).
		Int("page_size", e.PageSize).
		Int("total", e.Total).
		Str("status", e.Status.String())

	if e.Items > 0 {
		entry = entry.Int("items", e.Items)
	}
	if e.Duration > 0 {
		entry = entry.Dur("duration", e.Duration)
	}

	msg, ok := eventMessages[e.Kind]
	if !ok {
		msg = string(e.Kind)
	}
	entry.Msg(msg)
}

// MultiObserver fans events out to every non-nil observer in order.
func MultiObserver(observers ...Observer) Observer {
	list := make([]Observer, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			list = append(list, o)
		}
	}
	return multiObserver(list)
}

type multiObserver []Observer

func (m multiObserver) Observe(e Event) {
	for _, o := range m {
		o.Observe(e)
	}
}

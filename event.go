package paging

import "time"

// EventKind identifies what happened inside the controller.
type EventKind string

// Event kinds emitted to an Observer.
const (
	EventStarted        EventKind = "started"
	EventStopped        EventKind = "stopped"
	EventDispatched     EventKind = "dispatched"
	EventPageLoaded     EventKind = "page_loaded"
	EventEndOfData      EventKind = "end_of_data"
	EventFetchFailed    EventKind = "fetch_failed"
	EventStaleDiscarded EventKind = "stale_discarded"
	EventAdvanceDropped EventKind = "advance_dropped"
	EventReset          EventKind = "reset"
)

// Event describes one controller transition. Fields that do not apply to a
// kind are left zero.
type Event struct {
	Kind EventKind

	// Epoch is the epoch the event belongs to. For stale results it is the
	// epoch the fetch was dispatched under.
	Epoch Epoch

	// PageIndex is the page the event refers to.
	PageIndex int

	// PageSize is the frozen page size of the controller.
	PageSize int

	// Items is the number of items in the fetched page.
	Items int

	// Total is the number of accumulated items after the event.
	Total int

	// Status is the controller status after the event.
	Status Status

	// Err is set for EventFetchFailed.
	Err error

	// Duration is the time the fetch took, for completion events.
	Duration time.Duration
}

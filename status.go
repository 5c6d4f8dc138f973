package paging

// Status is the pagination lifecycle state.
//
//	Init -> Idle -> Loading -> {Idle | EndOfData | Error}
//
// Reset moves any state back to Idle. Error accepts a new advance event the
// same way Idle does.
type Status int

const (
	StatusInit Status = iota
	StatusIdle
	StatusLoading
	StatusEndOfData
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusInit:
		return "init"
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusEndOfData:
		return "end_of_data"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// acceptsAdvance reports whether an advance event may dispatch a fetch.
func (s Status) acceptsAdvance() bool {
	return s == StatusIdle || s == StatusError
}

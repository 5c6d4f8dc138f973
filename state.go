package paging

// State is a read-only snapshot of a controller for rendering.
// Items is a copy and may be retained by the caller.
type State[T any] struct {
	Status    Status
	Items     []T
	PageIndex int
	PageSize  int
	Epoch     Epoch

	// Err is the last fetch failure while Status is StatusError.
	Err error

	// SkeletonCount is the number of loading placeholders to render.
	SkeletonCount int
}

// ShowEndOfData reports whether the end-of-data marker should be rendered.
func (s State[T]) ShowEndOfData() bool {
	return s.Status == StatusEndOfData
}

// ShowLoading reports whether loading placeholders should be rendered.
func (s State[T]) ShowLoading() bool {
	return s.Status == StatusLoading
}

// ShowError reports whether a retry prompt should be rendered.
func (s State[T]) ShowError() bool {
	return s.Status == StatusError
}

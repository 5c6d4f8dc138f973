package paging

// Epoch identifies one query lifetime. Every reset advances it, and a fetch
// result is applied only when the epoch it was dispatched under is still current.
type Epoch uint64

// Next returns the epoch that follows e.
func (e Epoch) Next() Epoch {
	return e + 1
}

// Current reports whether a result tagged with e may still be applied when
// the controller is at epoch now.
func (e Epoch) Current(now Epoch) bool {
	return e == now
}

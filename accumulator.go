package paging

// Append returns existing followed by page. Like the builtin append, the
// backing array of existing may be reused.
func Append[T any](existing, page []T) []T {
	if len(page) == 0 {
		return existing
	}
	return append(existing, page...)
}

// IsEndOfData reports whether page marks the end of the result set.
func IsEndOfData[T any](page []T) bool {
	return len(page) == 0
}

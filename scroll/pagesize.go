package scroll

import (
	"errors"
	"fmt"
	"math"
)

const (
	// overscan is the number of viewports requested per page.
	overscan = 1.1

	// epsilon nudges exact .5 results upward before rounding.
	epsilon = 0x1p-52
)

// ErrInvalidRowHeight is returned when a page size is estimated from a
// non-positive row height.
var ErrInvalidRowHeight = errors.New("row height must be positive")

// OptimalPageSize estimates how many rows to request per page:
//
//	round(1.1 * areaHeight / rowHeight)
//
// Rounding is half-up. A zero areaHeight (window scrolling) yields zero, which
// callers must override.
func OptimalPageSize(areaHeight, rowHeight float64) (int, error) {
	if rowHeight <= 0 || math.IsNaN(rowHeight) {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidRowHeight, rowHeight)
	}

	visible := areaHeight / rowHeight
	return int(math.Floor(overscan*visible + epsilon + 0.5)), nil
}

// LoaderStyle selects how loading placeholders are rendered.
type LoaderStyle string

const (
	// LoaderSingle renders one placeholder.
	LoaderSingle LoaderStyle = "single"

	// LoaderMany renders a placeholder per expected row.
	LoaderMany LoaderStyle = "many"
)

// Valid reports whether l is a known style. The empty style means single.
func (l LoaderStyle) Valid() bool {
	return l == "" || l == LoaderSingle || l == LoaderMany
}

// SkeletonCount returns how many placeholders to render for a page size:
// half a page for LoaderMany, one otherwise.
func SkeletonCount(pageSize int, style LoaderStyle) int {
	if pageSize <= 0 {
		return 0
	}
	if style == LoaderMany {
		return pageSize / 2
	}
	return 1
}

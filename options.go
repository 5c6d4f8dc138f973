package paging

import (
	"fmt"

	"github.com/nrfta/infinite-paging-go/scroll"
)

const (
	// DefaultScrollPercent is the scroll depth that triggers the next page
	// when Options.ScrollPercent is not set.
	DefaultScrollPercent = 70

	// DefaultRowHeight is the row height in pixels used when none is configured.
	DefaultRowHeight = 100

	// DefaultMaxPageSize is the default maximum page size allowed.
	// This protects against resource exhaustion from unreasonably large page requests.
	DefaultMaxPageSize = 1000
)

// Options configures a Controller. Options are read once by New; changing
// ScrollAreaHeight or RowHeight afterwards does not resize pages.
//
// Example:
//
//	opts := paging.DefaultOptions()
//	opts.ScrollAreaHeight = 800
//	opts.RowHeight = 100
//	ctrl, err := paging.New(opts, fetch)
type Options struct {
	// AutoLoadFirstPage fetches page 0 as soon as the controller starts,
	// without waiting for the user to scroll.
	AutoLoadFirstPage bool `toml:"auto_load_first_page" json:"autoLoadFirstPage"`

	// ScrollPercent is the share (0-100) of the scrollable height that must be
	// reached before the next page loads.
	ScrollPercent float64 `toml:"scroll_percent" json:"scrollPercent"`

	// ScrollAreaHeight is the height of the bounded scroll container in pixels.
	// Zero means the whole window scrolls.
	ScrollAreaHeight float64 `toml:"scroll_area_height" json:"scrollAreaHeight"`

	// RowHeight is the height of one rendered row, used for page size estimation.
	RowHeight float64 `toml:"row_height" json:"rowHeight"`

	// OverridePageSize bypasses the page size estimation when positive.
	OverridePageSize int `toml:"override_page_size" json:"overridePageSize,omitempty"`

	// MaxPageSize caps the page size. Zero uses DefaultMaxPageSize.
	MaxPageSize int `toml:"max_page_size" json:"maxPageSize,omitempty"`

	// LoaderStyle selects one loading placeholder or one per expected row.
	LoaderStyle scroll.LoaderStyle `toml:"loader_style" json:"loaderStyle"`

	// EnableLog installs a structured log observer when no observer is given.
	EnableLog bool `toml:"enable_log" json:"enableLog,omitempty"`

	// HideScrollbar is passed through to the renderer.
	HideScrollbar bool `toml:"hide_scrollbar" json:"hideScrollbar,omitempty"`
}

// DefaultOptions returns options matching a typical list of 100px rows:
//   - AutoLoadFirstPage: true
//   - ScrollPercent: 70
//   - RowHeight: 100
//   - LoaderStyle: single
func DefaultOptions() Options {
	return Options{
		AutoLoadFirstPage: true,
		ScrollPercent:     DefaultScrollPercent,
		RowHeight:         DefaultRowHeight,
		LoaderStyle:       scroll.LoaderSingle,
	}
}

// Mode reports whether samples come from a bounded container or the window.
func (o Options) Mode() scroll.Mode {
	if o.ScrollAreaHeight > 0 {
		return scroll.ModeContainer
	}
	return scroll.ModeWindow
}

// PageSize returns the page size these options produce, or a configuration
// error when the geometry cannot yield a positive size.
func (o Options) PageSize() (int, error) {
	maxSize := o.MaxPageSize
	if maxSize <= 0 {
		maxSize = DefaultMaxPageSize
	}

	if o.OverridePageSize < 0 {
		return 0, &ConfigError{Field: "OverridePageSize", Reason: "must not be negative"}
	}

	size := o.OverridePageSize
	if size == 0 {
		var err error
		size, err = scroll.OptimalPageSize(o.ScrollAreaHeight, o.RowHeight)
		if err != nil {
			return 0, &ConfigError{Field: "RowHeight", Reason: err.Error()}
		}
	}

	if size <= 0 {
		return 0, &ConfigError{
			Field:  "PageSize",
			Reason: fmt.Sprintf("computed page size %d is not positive", size),
		}
	}

	if size > maxSize {
		return 0, &PageSizeError{Requested: size, Maximum: maxSize}
	}

	return size, nil
}

// Validate checks every field and returns the first configuration error.
func (o Options) Validate() error {
	if o.ScrollPercent < 0 || o.ScrollPercent > 100 {
		return &ConfigError{
			Field:  "ScrollPercent",
			Reason: fmt.Sprintf("%v is outside 0-100", o.ScrollPercent),
		}
	}

	if o.ScrollAreaHeight < 0 {
		return &ConfigError{Field: "ScrollAreaHeight", Reason: "must not be negative"}
	}

	if !o.LoaderStyle.Valid() {
		return &ConfigError{
			Field:  "LoaderStyle",
			Reason: fmt.Sprintf("unknown loader style %q", o.LoaderStyle),
		}
	}

	_, err := o.PageSize()
	return err
}

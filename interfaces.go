package paging

import (
	"context"

	"github.com/nrfta/infinite-paging-go/scroll"
)

// PageFunc fetches one page of results for a query.
// An empty page signals that no more data exists for the query.
//
// Type parameters:
//   - Q: the caller-supplied query value (search text, filter struct, ...)
//   - T: the item type being accumulated
//
// The controller may discard the result of a call whose query has since been
// replaced, so implementations must tolerate their result being ignored.
//
// Example:
//
//	fetch := func(ctx context.Context, q string, pageSize, pageIndex int) ([]*models.Post, error) {
//	    return models.Posts(
//	        qm.Where("title ILIKE ?", q+"%"),
//	        qm.Offset(pageSize*pageIndex),
//	        qm.Limit(pageSize),
//	    ).All(ctx, db)
//	}
type PageFunc[Q any, T any] func(ctx context.Context, query Q, pageSize, pageIndex int) ([]T, error)

// Fetcher abstracts limit/offset storage queries for any ORM or database layer.
// The offset package adapts a Fetcher into a PageFunc.
//
// Type parameter T is the database model type (e.g., *models.User from SQLBoiler).
type Fetcher[T any] interface {
	// Fetch retrieves items from storage based on the given parameters.
	// It should apply limit, offset, ordering, and any custom filters.
	Fetch(ctx context.Context, params FetchParams) ([]T, error)

	// Count returns the total number of items matching the filters (without pagination).
	// Return 0 if count is not supported or too expensive to compute.
	Count(ctx context.Context, params FetchParams) (int64, error)
}

// FetchParams contains all parameters needed to fetch a page of data.
type FetchParams struct {
	// Limit is the maximum number of items to fetch.
	Limit int

	// Offset is the number of items to skip.
	Offset int

	// Filters contains custom filter criteria derived from the query.
	// Keys are column names, values are matched for equality.
	Filters map[string]any

	// OrderBy specifies the sort order for results.
	OrderBy []OrderBy
}

// OrderBy represents a sort directive for query results.
type OrderBy struct {
	// Column is the name of the column to sort by.
	Column string

	// Desc indicates descending order. False means ascending.
	Desc bool
}

// ScrollSource emits viewport geometry samples while the user scrolls.
// The channel is read until it is closed or the controller stops.
//
// If the source also implements io.Closer, Stop closes it.
type ScrollSource interface {
	Samples() <-chan scroll.Sample
}

// Viewport is the presentation collaborator that owns the scroll position.
type Viewport interface {
	ScrollToTop()
}

// Observer receives controller events. Events are delivered after the state
// lock is released, in the order they were produced by a single controller
// call. A fetch's dispatch event is delivered before the fetch starts, so it
// always precedes the fetch's completion event. Events from a fetch
// completion and a concurrent scroll sample may interleave.
type Observer interface {
	Observe(event Event)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(event Event)

// Observe calls f(event).
func (f ObserverFunc) Observe(event Event) {
	f(event)
}

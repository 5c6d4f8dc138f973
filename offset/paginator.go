// Package offset serves infinite-scroll pages from limit/offset storage.
//
// A Paginator turns the controller's (pageSize, pageIndex) pair into
// FetchParams with Limit=pageSize and Offset=pageSize*pageIndex, and hands
// them to a paging.Fetcher. Results are ordered so that consecutive offsets
// never repeat or skip rows.
//
// Example usage:
//
//	fetcher := sqlboiler.NewFetcher(queryFunc, countFunc, sqlboiler.OffsetToQueryMods)
//	paginator := offset.New[string](fetcher, func(q string) map[string]any {
//	    return map[string]any{"author": q}
//	})
//	ctrl, err := paging.New(opts, paginator.Page)
package offset

import (
	"context"
	"fmt"

	"github.com/nrfta/infinite-paging-go"
)

// DefaultOrderBy is used when a Paginator is created without ordering.
var DefaultOrderBy = []paging.OrderBy{{Column: "created_at"}}

// FilterFunc derives equality filters from the controller's query.
// A nil FilterFunc, or a nil map, applies no filters.
type FilterFunc[Q any] func(query Q) map[string]any

// Paginator is the offset-based page source for a controller.
type Paginator[Q any, T any] struct {
	fetcher paging.Fetcher[T]
	filters FilterFunc[Q]
	orderBy []paging.OrderBy
}

// New creates an offset paginator.
//
// Parameters:
//   - fetcher: Storage adapter executing the limit/offset query
//   - filters: Optional mapping from the query to column filters
//   - orderBy: Sort order; defaults to "created_at" ascending
func New[Q any, T any](
	fetcher paging.Fetcher[T],
	filters FilterFunc[Q],
	orderBy ...paging.OrderBy,
) *Paginator[Q, T] {
	if len(orderBy) == 0 {
		orderBy = DefaultOrderBy
	}
	return &Paginator[Q, T]{
		fetcher: fetcher,
		filters: filters,
		orderBy: orderBy,
	}
}

// Params builds the fetch parameters for one page.
func (p *Paginator[Q, T]) Params(query Q, pageSize, pageIndex int) (paging.FetchParams, error) {
	if pageSize <= 0 {
		return paging.FetchParams{}, fmt.Errorf("offset: page size must be positive, got %d", pageSize)
	}
	if pageIndex < 0 {
		return paging.FetchParams{}, fmt.Errorf("offset: page index must not be negative, got %d", pageIndex)
	}

	return paging.FetchParams{
		Limit:   pageSize,
		Offset:  pageSize * pageIndex,
		Filters: p.filtersFor(query),
		OrderBy: p.orderBy,
	}, nil
}

// Page fetches one page. Its signature matches paging.PageFunc, so the
// method value can be passed to paging.New directly.
func (p *Paginator[Q, T]) Page(ctx context.Context, query Q, pageSize, pageIndex int) ([]T, error) {
	params, err := p.Params(query, pageSize, pageIndex)
	if err != nil {
		return nil, err
	}

	items, err := p.fetcher.Fetch(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("fetch page %d: %w", pageIndex, err)
	}
	return items, nil
}

// Total counts the rows matching query, ignoring pagination.
func (p *Paginator[Q, T]) Total(ctx context.Context, query Q) (int64, error) {
	count, err := p.fetcher.Count(ctx, paging.FetchParams{Filters: p.filtersFor(query)})
	if err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	return count, nil
}

// OrderBy returns the sort order applied to every page.
func (p *Paginator[Q, T]) OrderBy() []paging.OrderBy {
	return p.orderBy
}

func (p *Paginator[Q, T]) filtersFor(query Q) map[string]any {
	if p.filters == nil {
		return nil
	}
	return p.filters(query)
}

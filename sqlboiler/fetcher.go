// Package sqlboiler adapts SQLBoiler queries to paging.Fetcher.
//
// A Fetcher is ORM-specific but strategy-agnostic: it turns FetchParams into
// query mods with a builder such as OffsetToQueryMods and runs them through a
// caller-supplied query function. Paired with the offset package it serves
// infinite-scroll pages straight from generated models.
//
// Example usage:
//
//	fetcher := sqlboiler.NewFetcher(
//	    func(ctx context.Context, mods ...qm.QueryMod) ([]*models.Post, error) {
//	        return models.Posts(mods...).All(ctx, db)
//	    },
//	    func(ctx context.Context, mods ...qm.QueryMod) (int64, error) {
//	        return models.Posts(mods...).Count(ctx, db)
//	    },
//	    sqlboiler.OffsetToQueryMods,
//	)
//
//	paginator := offset.New[string](fetcher, byAuthor)
//	ctrl, err := paging.New(opts, paginator.Page)
package sqlboiler

import (
	"context"

	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/friendsofgo/errors"

	"github.com/nrfta/infinite-paging-go"
)

// QueryFunc executes a SQLBoiler query and returns results.
//
// Type parameter T is the SQLBoiler model type (e.g., *models.Post).
type QueryFunc[T any] func(ctx context.Context, mods ...qm.QueryMod) ([]T, error)

// CountFunc executes a SQLBoiler count query.
type CountFunc func(ctx context.Context, mods ...qm.QueryMod) (int64, error)

// Fetcher implements paging.Fetcher[T] for SQLBoiler queries.
type Fetcher[T any] struct {
	queryFunc   QueryFunc[T]
	countFunc   CountFunc
	queryModsFn func(paging.FetchParams) []qm.QueryMod
}

// NewFetcher creates a new SQLBoiler fetcher with a strategy-specific query builder.
//
// Parameters:
//   - queryFunc: Function that executes SQLBoiler queries with query mods
//   - countFunc: Function that counts total records with query mods
//   - queryModsFn: Function converting FetchParams to QueryMods
func NewFetcher[T any](
	queryFunc QueryFunc[T],
	countFunc CountFunc,
	queryModsFn func(paging.FetchParams) []qm.QueryMod,
) paging.Fetcher[T] {
	return &Fetcher[T]{
		queryFunc:   queryFunc,
		countFunc:   countFunc,
		queryModsFn: queryModsFn,
	}
}

// Fetch retrieves one page using the mods built by queryModsFn.
func (f *Fetcher[T]) Fetch(ctx context.Context, params paging.FetchParams) ([]T, error) {
	items, err := f.queryFunc(ctx, f.queryModsFn(params)...)
	if err != nil {
		return nil, errors.Wrap(err, "sqlboiler: failed to fetch page")
	}
	return items, nil
}

// Count returns the number of rows matching params.Filters. Limit, offset and
// ordering are ignored.
func (f *Fetcher[T]) Count(ctx context.Context, params paging.FetchParams) (int64, error) {
	count, err := f.countFunc(ctx, FilterQueryMods(params.Filters)...)
	if err != nil {
		return 0, errors.Wrap(err, "sqlboiler: failed to count rows")
	}
	return count, nil
}

package sqlboiler

import (
	"context"

	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/aarondl/sqlboiler/v4/drivers"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/friendsofgo/errors"

	"github.com/nrfta/infinite-paging-go"
)

// Dialect is the PostgreSQL dialect used by sqlboiler's psql driver.
var Dialect = drivers.Dialect{
	LQ: '"',
	RQ: '"',

	UseIndexPlaceholders: true,
	UseDefaultKeyword:    true,
}

// NewQuery initializes a new Query using the passed in QueryMods.
func NewQuery(mods ...qm.QueryMod) *queries.Query {
	q := &queries.Query{}
	queries.SetDialect(q, &Dialect)
	qm.Apply(q, mods...)

	return q
}

// Table runs paged queries against one table without generated models.
// Rows are bound into T with sqlboiler's `boil` struct tags.
type Table[T any] struct {
	Name string
	Exec boil.ContextExecutor
}

// All returns the rows selected by mods. It satisfies QueryFunc.
func (t Table[T]) All(ctx context.Context, mods ...qm.QueryMod) ([]T, error) {
	q := NewQuery(append([]qm.QueryMod{qm.From(t.Name)}, mods...)...)

	var rows []T
	if err := q.Bind(ctx, t.Exec, &rows); err != nil {
		return nil, errors.Wrapf(err, "sqlboiler: failed to select from %s", t.Name)
	}
	return rows, nil
}

// Count returns the number of rows matched by mods. It satisfies CountFunc.
func (t Table[T]) Count(ctx context.Context, mods ...qm.QueryMod) (int64, error) {
	q := NewQuery(append([]qm.QueryMod{qm.From(t.Name)}, mods...)...)
	queries.SetSelect(q, nil)
	queries.SetCount(q)

	var count int64
	if err := q.QueryRowContext(ctx, t.Exec).Scan(&count); err != nil {
		return 0, errors.Wrapf(err, "sqlboiler: failed to count %s rows", t.Name)
	}
	return count, nil
}

// NewTableFetcher returns an offset Fetcher reading from table.
func NewTableFetcher[T any](exec boil.ContextExecutor, table string) paging.Fetcher[T] {
	t := Table[T]{Name: table, Exec: exec}
	return NewFetcher(t.All, t.Count, OffsetToQueryMods)
}

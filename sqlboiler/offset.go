package sqlboiler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/aarondl/strmangle"

	"github.com/nrfta/infinite-paging-go"
)

// OffsetToQueryMods converts FetchParams into SQLBoiler query mods for offset pagination.
//
// The conversion follows these rules:
//   - Filters → qm.Where(`"col" = ?`, v), or `"col" IS NULL` for nil values
//   - Offset → qm.Offset(n)
//   - Limit → qm.Limit(n)
//   - OrderBy → qm.OrderBy(`"col1" DESC, "col2" ASC`)
func OffsetToQueryMods(params paging.FetchParams) []qm.QueryMod {
	mods := FilterQueryMods(params.Filters)

	if params.Offset > 0 {
		mods = append(mods, qm.Offset(params.Offset))
	}

	if params.Limit > 0 {
		mods = append(mods, qm.Limit(params.Limit))
	}

	if len(params.OrderBy) > 0 {
		mods = append(mods, qm.OrderBy(buildOrderByClause(params.OrderBy)))
	}

	return mods
}

// FilterQueryMods converts equality filters into WHERE mods, one per column,
// in column name order.
func FilterQueryMods(filters map[string]any) []qm.QueryMod {
	mods := []qm.QueryMod{}
	if len(filters) == 0 {
		return mods
	}

	columns := make([]string, 0, len(filters))
	for col := range filters {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	for _, col := range columns {
		quoted := quoteIdent(col)
		value := filters[col]
		if value == nil {
			mods = append(mods, qm.Where(quoted+" IS NULL"))
			continue
		}
		mods = append(mods, qm.Where(fmt.Sprintf("%s = ?", quoted), value))
	}
	return mods
}

// buildOrderByClause constructs an ORDER BY clause from OrderBy directives.
// Assumes len(orderBy) > 0 (caller must verify).
//
// Example:
//
//	[]OrderBy{
//	    {Column: "created_at", Desc: true},
//	    {Column: "id", Desc: false},
//	}
//	→ `"created_at" DESC, "id" ASC`
func buildOrderByClause(orderBy []paging.OrderBy) string {
	parts := make([]string, len(orderBy))
	for i, o := range orderBy {
		direction := "ASC"
		if o.Desc {
			direction = "DESC"
		}
		parts[i] = quoteIdent(o.Column) + " " + direction
	}
	return strings.Join(parts, ", ")
}

func quoteIdent(col string) string {
	return strmangle.IdentQuote(Dialect.LQ, Dialect.RQ, col)
}

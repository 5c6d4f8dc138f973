package cache

import (
	"fmt"
	"net/url"
	"strings"
)

// Key identifies one cached page.
type Key struct {
	// Prefix namespaces the list (e.g., "posts"). It is escaped like Query.
	Prefix string

	// Query is the encoded query the page was fetched for.
	Query string

	PageSize  int
	PageIndex int
}

// String generates a deterministic cache key string.
// Format: paging:prefix:query:size:index
//
// Example:
//
//	paging:posts:%22ada%22:9:3
func (k Key) String() string {
	return strings.Join([]string{
		k.queryPrefix(),
		fmt.Sprintf("%d", k.PageSize),
		fmt.Sprintf("%d", k.PageIndex),
	}, ":")
}

// queryPrefix is shared by every page of one query.
func (k Key) queryPrefix() string {
	return strings.Join([]string{"paging", url.QueryEscape(k.Prefix), url.QueryEscape(k.Query)}, ":")
}

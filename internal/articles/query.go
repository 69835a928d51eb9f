package articles

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/osmansemir/mindvale-cli/internal/models"
)

// SortKey is one of the four sort orders the UI exposes. There are no
// arbitrary sort fields.
type SortKey string

const (
	SortNewest  SortKey = "newest"
	SortOldest  SortKey = "oldest"
	SortTitleAZ SortKey = "title-az"
	SortTitleZA SortKey = "title-za"
)

// SortKeys lists the valid keys in display order.
var SortKeys = []SortKey{SortNewest, SortOldest, SortTitleAZ, SortTitleZA}

// Valid reports whether k is one of the fixed sort orders.
func (k SortKey) Valid() bool {
	switch k {
	case SortNewest, SortOldest, SortTitleAZ, SortTitleZA:
		return true
	}
	return false
}

// wire translates the composite key into the API's sortBy + order pair.
func (k SortKey) wire() (sortBy, order string) {
	switch k {
	case SortOldest:
		return "createdAt", "asc"
	case SortTitleAZ:
		return "title", "asc"
	case SortTitleZA:
		return "title", "desc"
	default:
		return "createdAt", "desc"
	}
}

// Query is the full set of independent filter/sort/paging parameters. It is
// ephemeral client state; the server owns the resulting list.
type Query struct {
	Search       string
	Tags         []string
	Sort         SortKey
	Page         int
	Limit        int
	FeaturedOnly bool
	Author       string
	StartDate    time.Time
	EndDate      time.Time
	Status       models.Status
}

// Values renders the query as canonical URL parameters. Zero-valued filters
// are omitted entirely: no tags means no tag filter, not "match nothing".
func (q Query) Values() url.Values {
	params := url.Values{}

	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if len(q.Tags) > 0 {
		params.Set("tags", strings.Join(q.Tags, ","))
	}

	sortBy, order := q.Sort.wire()
	params.Set("sortBy", sortBy)
	params.Set("order", order)

	page := q.Page
	if page < 1 {
		page = 1
	}
	params.Set("page", strconv.Itoa(page))
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	if q.FeaturedOnly {
		params.Set("featured", "true")
	}
	if q.Author != "" {
		params.Set("author", q.Author)
	}
	if !q.StartDate.IsZero() {
		params.Set("startDate", q.StartDate.Format("2006-01-02"))
	}
	if !q.EndDate.IsZero() {
		params.Set("endDate", q.EndDate.Format("2006-01-02"))
	}
	if q.Status != "" {
		params.Set("status", string(q.Status))
	}

	return params
}

// hasTag reports whether the tag is currently selected.
func (q Query) hasTag(tag string) bool {
	for _, t := range q.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

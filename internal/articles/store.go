// Package articles is the collection store: the current page of articles,
// the query parameters that produced it, and every article-related call the
// UI can make. The server's response is a read cache; any mutating call
// invalidates it by re-querying.
package articles

import (
	"context"
	"sync"
	"time"

	"github.com/osmansemir/mindvale-cli/internal/api"
	"github.com/osmansemir/mindvale-cli/internal/logging"
	"github.com/osmansemir/mindvale-cli/internal/models"
)

// DefaultSearchDebounce is how long free-text input settles before a query
// is issued. Discrete controls (tags, sort, page) query immediately.
const DefaultSearchDebounce = 500 * time.Millisecond

// Store holds the article list state. All methods are safe for concurrent
// use; responses are applied under a generation counter so a slow response
// for a superseded query can never overwrite newer results.
type Store struct {
	mu         sync.Mutex
	api        *api.Client
	log        logging.Logger
	query      Query
	articles   []models.Article
	pagination models.Pagination
	slugs      []string
	tags       []string

	gen         uint64
	debounce    time.Duration
	searchTimer *time.Timer
	onUpdate    func()
}

// NewStore creates a collection store with page 1, newest-first ordering,
// and the given page size.
func NewStore(client *api.Client, pageSize int, debounce time.Duration, log logging.Logger) *Store {
	if debounce <= 0 {
		debounce = DefaultSearchDebounce
	}
	return &Store{
		api:      client,
		log:      log,
		debounce: debounce,
		query: Query{
			Sort:  SortNewest,
			Page:  1,
			Limit: pageSize,
		},
	}
}

// OnUpdate registers a callback fired after the cached list changes. The
// callback runs outside the store's lock.
func (s *Store) OnUpdate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = fn
}

// Query returns a copy of the current query parameters.
func (s *Store) Query() Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.query
	q.Tags = append([]string(nil), s.query.Tags...)
	return q
}

// Articles returns the cached page.
func (s *Store) Articles() []models.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Article(nil), s.articles...)
}

// Pagination returns the cached page metadata.
func (s *Store) Pagination() models.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagination
}

// Refresh issues the canonical query for the current parameters and replaces
// the cached page with the response. A response that arrives after a newer
// query was issued is dropped.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	params := s.query.Values()
	s.mu.Unlock()

	list, pagination, err := s.api.ListArticles(ctx, params)
	if err != nil {
		return err
	}
	s.apply(gen, list, pagination)
	return nil
}

// apply installs a response if it still belongs to the newest query.
func (s *Store) apply(gen uint64, list []models.Article, pagination *models.Pagination) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		s.log.Debug(context.Background(), "dropping stale article response", "generation", gen)
		return
	}
	s.articles = list
	if pagination != nil {
		s.pagination = *pagination
	}
	notify := s.onUpdate
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// edit mutates the query under the lock, resets to page 1 (every filter
// change invalidates the current page position), and re-queries immediately.
func (s *Store) edit(ctx context.Context, mutate func(*Query)) error {
	s.mu.Lock()
	mutate(&s.query)
	s.query.Page = 1
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// SetSearch updates the free-text search. The query is debounced: it fires
// only after the input has settled, and the page reset happens with it. The
// context is retained until the debounced query fires.
func (s *Store) SetSearch(ctx context.Context, text string) {
	s.mu.Lock()
	s.query.Search = text
	s.query.Page = 1
	if s.searchTimer != nil {
		s.searchTimer.Stop()
	}
	s.searchTimer = time.AfterFunc(s.debounce, func() {
		if err := s.Refresh(ctx); err != nil {
			s.log.Warn(ctx, "search query failed", "error", err)
		}
	})
	s.mu.Unlock()
}

// FlushSearch fires any pending debounced search immediately. Used by tests
// and by UIs that want an explicit "search now" control.
func (s *Store) FlushSearch(ctx context.Context) error {
	s.mu.Lock()
	if s.searchTimer != nil {
		s.searchTimer.Stop()
		s.searchTimer = nil
	}
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// ToggleTag adds or removes one tag from the multi-select filter.
func (s *Store) ToggleTag(ctx context.Context, tag string) error {
	return s.edit(ctx, func(q *Query) {
		if q.hasTag(tag) {
			kept := q.Tags[:0]
			for _, t := range q.Tags {
				if t != tag {
					kept = append(kept, t)
				}
			}
			q.Tags = kept
		} else {
			q.Tags = append(q.Tags, tag)
		}
	})
}

// ClearTags empties the tag selection, which means "no tag filter".
func (s *Store) ClearTags(ctx context.Context) error {
	return s.edit(ctx, func(q *Query) { q.Tags = nil })
}

func (s *Store) SetSort(ctx context.Context, key SortKey) error {
	return s.edit(ctx, func(q *Query) { q.Sort = key })
}

func (s *Store) SetFeaturedOnly(ctx context.Context, featured bool) error {
	return s.edit(ctx, func(q *Query) { q.FeaturedOnly = featured })
}

func (s *Store) SetAuthor(ctx context.Context, author string) error {
	return s.edit(ctx, func(q *Query) { q.Author = author })
}

func (s *Store) SetDateRange(ctx context.Context, start, end time.Time) error {
	return s.edit(ctx, func(q *Query) {
		q.StartDate = start
		q.EndDate = end
	})
}

func (s *Store) SetStatus(ctx context.Context, status models.Status) error {
	return s.edit(ctx, func(q *Query) { q.Status = status })
}

func (s *Store) SetPageSize(ctx context.Context, size int) error {
	return s.edit(ctx, func(q *Query) { q.Limit = size })
}

// ClearFilters resets every filter to its default, keeping the page size.
func (s *Store) ClearFilters(ctx context.Context) error {
	return s.edit(ctx, func(q *Query) {
		limit := q.Limit
		*q = Query{Sort: SortNewest, Limit: limit}
	})
}

// SetPage is explicit page navigation: the one query change that does not
// reset the page number.
func (s *Store) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	s.mu.Lock()
	s.query.Page = page
	s.mu.Unlock()
	return s.Refresh(ctx)
}

func (s *Store) NextPage(ctx context.Context) error {
	s.mu.Lock()
	if !s.pagination.HasNextPage {
		s.mu.Unlock()
		return nil
	}
	s.query.Page++
	s.mu.Unlock()
	return s.Refresh(ctx)
}

func (s *Store) PrevPage(ctx context.Context) error {
	s.mu.Lock()
	if !s.pagination.HasPrevPage || s.query.Page <= 1 {
		s.mu.Unlock()
		return nil
	}
	s.query.Page--
	s.mu.Unlock()
	return s.Refresh(ctx)
}

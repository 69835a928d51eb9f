package articles

import (
	"context"

	"github.com/osmansemir/mindvale-cli/internal/api"
	"github.com/osmansemir/mindvale-cli/internal/models"
)

// Get fetches one article by slug.
func (s *Store) Get(ctx context.Context, slug string) (*models.Article, error) {
	return s.api.GetArticle(ctx, slug)
}

// GetByID fetches one article by identifier, used when editing.
func (s *Store) GetByID(ctx context.Context, id string) (*models.Article, error) {
	return s.api.GetArticleByID(ctx, id)
}

// Create stores a new article and invalidates the cached list and slug set.
func (s *Store) Create(ctx context.Context, input api.ArticleInput) (*models.Article, error) {
	article, err := s.api.CreateArticle(ctx, input)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return article, nil
}

// Update rewrites an existing article and invalidates local caches.
func (s *Store) Update(ctx context.Context, id string, input api.ArticleInput) (*models.Article, error) {
	article, err := s.api.UpdateArticle(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return article, nil
}

// Delete removes an article and invalidates local caches.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteArticle(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// invalidate re-fetches the list for the current query and refreshes the
// slug cache. Failures here are logged, not surfaced: the mutation itself
// already succeeded.
func (s *Store) invalidate(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		s.log.Warn(ctx, "list refresh after mutation failed", "error", err)
	}
	if err := s.RefreshSlugs(ctx); err != nil {
		s.log.Warn(ctx, "slug cache refresh failed", "error", err)
	}
}

// RefreshSlugs reloads the slug cache used for the optimistic collision
// check in the editor.
func (s *Store) RefreshSlugs(ctx context.Context) error {
	slugs, err := s.api.Slugs(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.slugs = slugs
	s.mu.Unlock()
	return nil
}

// HasSlug reports whether a slug is present in the local cache. This is an
// optimistic check only; the server is the authority on uniqueness.
func (s *Store) HasSlug(slug string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.slugs {
		if existing == slug {
			return true
		}
	}
	return false
}

// RefreshTags reloads the platform tag catalog.
func (s *Store) RefreshTags(ctx context.Context) error {
	tags, err := s.api.Tags(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.tags = tags
	s.mu.Unlock()
	return nil
}

// TagCatalog returns the cached tag catalog.
func (s *Store) TagCatalog() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.tags...)
}

// RelatedTo ranks the cached page against the given article by shared tags.
func (s *Store) RelatedTo(current *models.Article, limit int) []models.Article {
	return Related(current, s.Articles(), limit)
}

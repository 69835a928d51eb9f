package editor

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osmansemir/mindvale-cli/internal/api"
	"github.com/osmansemir/mindvale-cli/internal/apitest"
	"github.com/osmansemir/mindvale-cli/internal/articles"
	"github.com/osmansemir/mindvale-cli/internal/logging"
	"github.com/osmansemir/mindvale-cli/internal/models"
	"github.com/osmansemir/mindvale-cli/internal/validator"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

// newAuthorStore returns a store signed in as an author against a fresh
// API double.
func newAuthorStore(t *testing.T) (*articles.Store, *apitest.Server, *models.User) {
	t.Helper()
	fake := apitest.NewServer()
	ts := httptest.NewServer(fake.Handler())
	t.Cleanup(ts.Close)

	author := fake.SeedUser("Jordan", "jordan@example.com", "password123", models.RoleAuthor)
	client := api.New(ts.URL+"/api", api.WithTokenSource(staticToken(fake.IssueToken(author.ID))))
	log := logging.NewDevLogger(io.Discard, slog.LevelError)
	return articles.NewStore(client, 10, 10*time.Millisecond, log), fake, author
}

func validForm() *Form {
	return &Form{
		Title:       "Understanding Goroutines",
		Description: "A practical look at Go's concurrency primitives.",
		Markdown:    "Goroutines are cheap, but they are not free. Let's measure.",
		Tags:        []string{"go", "concurrency"},
	}
}

func TestValidateBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Form)
		field  string
	}{
		{"title two chars", func(f *Form) { f.Title = "ab" }, "title"},
		{"title three chars ok", func(f *Form) { f.Title = "abc" }, ""},
		{"title hundred chars ok", func(f *Form) { f.Title = strings.Repeat("a", 100) }, ""},
		{"title over hundred", func(f *Form) { f.Title = strings.Repeat("a", 101) }, "title"},
		{"description nine chars", func(f *Form) { f.Description = strings.Repeat("d", 9) }, "description"},
		{"description ten chars ok", func(f *Form) { f.Description = strings.Repeat("d", 10) }, ""},
		{"description over five hundred", func(f *Form) { f.Description = strings.Repeat("d", 501) }, "description"},
		{"no tags", func(f *Form) { f.Tags = nil }, "tags"},
		{"markdown nineteen chars", func(f *Form) { f.Markdown = strings.Repeat("m", 19) }, "markdown"},
		{"markdown twenty chars ok", func(f *Form) { f.Markdown = strings.Repeat("m", 20) }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(f)
			v := f.Validate()
			if tt.field == "" {
				assert.True(t, v.IsValid())
				return
			}
			field, _ := v.First()
			assert.Equal(t, tt.field, field)
		})
	}
}

func TestSaveCreatesDraft(t *testing.T) {
	ctx := context.Background()
	store, _, author := newAuthorStore(t)

	f := validForm()
	got, err := f.Save(ctx, store)
	require.NoError(t, err)

	assert.Equal(t, "understanding-goroutines", got.Slug, "slug is derived from the title")
	assert.Equal(t, models.StatusDraft, got.Status, "new articles start as drafts")
	require.NotNil(t, got.Author)
	assert.Equal(t, author.ID, got.Author.ID)
}

func TestSaveUpdatesExisting(t *testing.T) {
	ctx := context.Background()
	store, fake, author := newAuthorStore(t)

	existing := fake.SeedArticle(models.Article{
		Title:       "Old Title Here",
		Slug:        "old-title-here",
		Description: "original description text",
		Markdown:    "original markdown body, long enough",
		Tags:        []string{"go"},
		Status:      models.StatusDraft,
		Author:      &models.UserRef{ID: author.ID, Name: author.Name},
	})

	f := Load(existing)
	require.True(t, f.Editing())
	f.Title = "Revised Title Here"

	got, err := f.Save(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, got.ID)
	assert.Equal(t, "revised-title-here", got.Slug, "slug follows the new title")
}

func TestSaveRejectsTakenSlug(t *testing.T) {
	ctx := context.Background()
	store, fake, _ := newAuthorStore(t)

	fake.SeedArticle(models.Article{Title: "Taken", Slug: "understanding-goroutines"})
	require.NoError(t, store.RefreshSlugs(ctx))

	_, err := validForm().Save(ctx, store)
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestSaveAllowsOwnSlugWhenEditing(t *testing.T) {
	ctx := context.Background()
	store, fake, author := newAuthorStore(t)

	existing := fake.SeedArticle(models.Article{
		Title:       "Understanding Goroutines",
		Slug:        "understanding-goroutines",
		Description: "a description long enough",
		Markdown:    "a markdown body long enough to pass",
		Tags:        []string{"go"},
		Status:      models.StatusDraft,
		Author:      &models.UserRef{ID: author.ID, Name: author.Name},
	})
	require.NoError(t, store.RefreshSlugs(ctx))

	f := Load(existing)
	f.Description = "a freshly revised description"

	_, err := f.Save(ctx, store)
	require.NoError(t, err, "keeping the title must not trip the collision check")
}

func TestSaveValidationShortCircuits(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newAuthorStore(t)

	f := validForm()
	f.Title = "ab"

	_, err := f.Save(ctx, store)
	var fieldErr *validator.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "title", fieldErr.Field)
}

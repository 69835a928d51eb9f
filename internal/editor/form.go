// Package editor holds the form state for one article being written or
// revised: field values, validation, and the create-vs-update branching on
// save.
package editor

import (
	"context"
	"errors"

	"github.com/osmansemir/mindvale-cli/internal/api"
	"github.com/osmansemir/mindvale-cli/internal/articles"
	"github.com/osmansemir/mindvale-cli/internal/models"
	"github.com/osmansemir/mindvale-cli/internal/validator"
)

// ErrSlugTaken means the slug derived from the title already belongs to a
// different article in the locally cached slug list. The check is
// optimistic; the server enforces uniqueness authoritatively.
var ErrSlugTaken = errors.New("an article with this slug already exists, choose a different title")

const (
	titleMin       = 3
	titleMax       = 100
	descriptionMin = 10
	descriptionMax = 500
	markdownMin    = 20
)

// Form is the editor state for a single article. A bound ID means editing;
// an empty ID means creating.
type Form struct {
	ID          string
	Title       string
	Description string
	Markdown    string
	Tags        []string

	initialSlug string
}

// New returns an empty form for a new article.
func New() *Form {
	return &Form{}
}

// Load binds the form to an existing article for editing. The article's
// current slug is remembered so the collision check does not flag the
// article against itself.
func Load(article *models.Article) *Form {
	return &Form{
		ID:          article.ID,
		Title:       article.Title,
		Description: article.Description,
		Markdown:    article.Markdown,
		Tags:        append([]string(nil), article.Tags...),
		initialSlug: article.Slug,
	}
}

// Editing reports whether the form is bound to an existing article.
func (f *Form) Editing() bool { return f.ID != "" }

// Validate checks every field constraint. All failures are recorded; the
// first one is what gets surfaced.
func (f *Form) Validate() *validator.Validator {
	v := validator.New()
	v.Check(len([]rune(f.Title)) >= titleMin, "title", "must be at least 3 characters")
	v.Check(len([]rune(f.Title)) <= titleMax, "title", "must be less than 100 characters")
	v.Check(len([]rune(f.Description)) >= descriptionMin, "description", "must be at least 10 characters")
	v.Check(len([]rune(f.Description)) <= descriptionMax, "description", "must be less than 500 characters")
	v.Check(len(f.Tags) >= 1, "tags", "at least one tag is required")
	v.Check(len([]rune(f.Markdown)) >= markdownMin, "markdown", "must be at least 20 characters")
	return v
}

// Save validates, derives the slug from the title, runs the optimistic slug
// collision check, and creates or updates depending on whether an ID is
// bound. On success the returned article is the server's copy.
func (f *Form) Save(ctx context.Context, store *articles.Store) (*models.Article, error) {
	if err := f.Validate().FirstError(); err != nil {
		return nil, err
	}

	slug := articles.Slugify(f.Title)
	if slug != f.initialSlug && store.HasSlug(slug) {
		return nil, ErrSlugTaken
	}

	input := api.ArticleInput{
		Title:       f.Title,
		Slug:        slug,
		Description: f.Description,
		Markdown:    f.Markdown,
		Tags:        f.Tags,
	}

	if f.Editing() {
		return store.Update(ctx, f.ID, input)
	}
	return store.Create(ctx, input)
}

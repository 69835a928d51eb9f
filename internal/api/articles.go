package api

import (
	"context"
	"net/url"

	"github.com/osmansemir/mindvale-cli/internal/models"
)

// ArticleInput is the writable subset of an article, sent on create and
// update. Status, author, and timestamps are server-owned.
type ArticleInput struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Markdown    string   `json:"markdown"`
	Tags        []string `json:"tags"`
}

type articleResponse struct {
	Article models.Article `json:"article"`
}

type articleListResponse struct {
	Data       []models.Article  `json:"data"`
	Pagination models.Pagination `json:"pagination"`
}

type slugsResponse struct {
	Slugs []string `json:"slugs"`
}

type tagsResponse struct {
	Tags []string `json:"tags"`
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// ListArticles runs the canonical article query. The params are built by the
// collection store; this method only puts them on the wire.
func (c *Client) ListArticles(ctx context.Context, params url.Values) ([]models.Article, *models.Pagination, error) {
	var resp articleListResponse
	if err := c.get(ctx, "/articles", params, &resp); err != nil {
		return nil, nil, err
	}
	return resp.Data, &resp.Pagination, nil
}

func (c *Client) GetArticle(ctx context.Context, slug string) (*models.Article, error) {
	var resp articleResponse
	if err := c.get(ctx, "/articles/"+url.PathEscape(slug), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Article, nil
}

func (c *Client) GetArticleByID(ctx context.Context, id string) (*models.Article, error) {
	var resp articleResponse
	if err := c.get(ctx, "/articles/by-id/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Article, nil
}

func (c *Client) CreateArticle(ctx context.Context, input ArticleInput) (*models.Article, error) {
	var resp articleResponse
	if err := c.post(ctx, "/articles", input, &resp); err != nil {
		return nil, err
	}
	return &resp.Article, nil
}

func (c *Client) UpdateArticle(ctx context.Context, id string, input ArticleInput) (*models.Article, error) {
	var resp articleResponse
	if err := c.put(ctx, "/articles/"+url.PathEscape(id), input, &resp); err != nil {
		return nil, err
	}
	return &resp.Article, nil
}

func (c *Client) DeleteArticle(ctx context.Context, id string) error {
	return c.delete(ctx, "/articles/"+url.PathEscape(id))
}

// Slugs returns every slug in use, for the optimistic collision check in the
// editor. The server remains the authority on uniqueness.
func (c *Client) Slugs(ctx context.Context) ([]string, error) {
	var resp slugsResponse
	if err := c.get(ctx, "/articles/slugs", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Slugs, nil
}

// Tags returns the platform-wide tag catalog.
func (c *Client) Tags(ctx context.Context) ([]string, error) {
	var resp tagsResponse
	if err := c.get(ctx, "/articles/tags", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tags, nil
}

// MyArticles lists the caller's own articles, optionally narrowed to one
// workflow status.
func (c *Client) MyArticles(ctx context.Context, status models.Status) ([]models.Article, error) {
	params := url.Values{}
	if status != "" {
		params.Set("status", string(status))
	}
	var resp articleListResponse
	if err := c.get(ctx, "/articles/my/articles", params, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// SubmitForReview moves a draft or rejected article into the review queue.
func (c *Client) SubmitForReview(ctx context.Context, id string) (*models.Article, error) {
	var resp articleResponse
	if err := c.post(ctx, "/articles/"+url.PathEscape(id)+"/submit", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Article, nil
}

// PendingArticles lists the review queue. Admin only; the server enforces it.
func (c *Client) PendingArticles(ctx context.Context) ([]models.Article, error) {
	var resp articleListResponse
	if err := c.get(ctx, "/articles/admin/pending", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) ApproveArticle(ctx context.Context, id string) (*models.Article, error) {
	var resp articleResponse
	if err := c.post(ctx, "/articles/"+url.PathEscape(id)+"/approve", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Article, nil
}

func (c *Client) RejectArticle(ctx context.Context, id, reason string) (*models.Article, error) {
	var resp articleResponse
	if err := c.post(ctx, "/articles/"+url.PathEscape(id)+"/reject", rejectRequest{Reason: reason}, &resp); err != nil {
		return nil, err
	}
	return &resp.Article, nil
}

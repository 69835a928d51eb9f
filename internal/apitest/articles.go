package apitest

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/osmansemir/mindvale-cli/internal/models"
)

type articleInput struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Markdown    string   `json:"markdown"`
	Tags        []string `json:"tags"`
}

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	s.mu.Lock()
	pool := make([]models.Article, 0, len(s.articles))
	for _, a := range s.articles {
		pool = append(pool, *a)
	}
	s.mu.Unlock()

	pool = filterArticles(pool, q)
	sortArticles(pool, q.Get("sortBy"), q.Get("order"))

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = 10
	}

	total := len(pool)
	totalPages := (total + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"data": pool[start:end],
		"pagination": models.Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalItems:   total,
			ItemsPerPage: limit,
			HasNextPage:  page < totalPages,
			HasPrevPage:  page > 1,
		},
	})
}

func filterArticles(pool []models.Article, q map[string][]string) []models.Article {
	get := func(key string) string {
		if v, ok := q[key]; ok && len(v) > 0 {
			return v[0]
		}
		return ""
	}

	kept := pool[:0]
	search := strings.ToLower(get("search"))
	var tags []string
	if raw := get("tags"); raw != "" {
		tags = strings.Split(raw, ",")
	}
	author := strings.ToLower(get("author"))
	status := get("status")
	startDate, _ := time.Parse("2006-01-02", get("startDate"))
	endDate, _ := time.Parse("2006-01-02", get("endDate"))

	for _, a := range pool {
		if search != "" &&
			!strings.Contains(strings.ToLower(a.Title), search) &&
			!strings.Contains(strings.ToLower(a.Description), search) {
			continue
		}
		if len(tags) > 0 {
			shared := false
			for _, t := range tags {
				if a.HasTag(t) {
					shared = true
					break
				}
			}
			if !shared {
				continue
			}
		}
		if get("featured") == "true" && !a.Featured {
			continue
		}
		if author != "" && (a.Author == nil || !strings.Contains(strings.ToLower(a.Author.Name), author)) {
			continue
		}
		if status != "" && string(a.Status) != status {
			continue
		}
		if !startDate.IsZero() && a.CreatedAt.Before(startDate) {
			continue
		}
		if !endDate.IsZero() && a.CreatedAt.After(endDate.Add(24*time.Hour)) {
			continue
		}
		kept = append(kept, a)
	}
	return kept
}

func sortArticles(pool []models.Article, sortBy, order string) {
	asc := order == "asc"
	sort.SliceStable(pool, func(i, j int) bool {
		var less bool
		if sortBy == "title" {
			less = strings.ToLower(pool[i].Title) < strings.ToLower(pool[j].Title)
		} else {
			less = pool[i].CreatedAt.Before(pool[j].CreatedAt)
		}
		if asc {
			return less
		}
		return !less
	})
}

func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.articles {
		if a.Slug == slug {
			s.writeJSON(w, http.StatusOK, map[string]any{"article": a})
			return
		}
	}
	s.writeError(w, http.StatusNotFound, "Article not found")
}

func (s *Server) handleGetArticleByID(w http.ResponseWriter, r *http.Request, _ *models.User) {
	s.mu.Lock()
	a, ok := s.articles[r.PathValue("id")]
	s.mu.Unlock()
	if !ok {
		s.writeError(w, http.StatusNotFound, "Article not found")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"article": a})
}

func (s *Server) validateInput(w http.ResponseWriter, in articleInput) bool {
	switch {
	case len(in.Title) < 3 || len(in.Title) > 100:
		s.writeError(w, http.StatusBadRequest, "validation error", fieldError{Field: "title", Message: "title must be 3-100 characters"})
	case len(in.Description) < 10 || len(in.Description) > 500:
		s.writeError(w, http.StatusBadRequest, "validation error", fieldError{Field: "description", Message: "description must be 10-500 characters"})
	case len(in.Tags) == 0:
		s.writeError(w, http.StatusBadRequest, "validation error", fieldError{Field: "tags", Message: "at least one tag is required"})
	case len(in.Markdown) < 20:
		s.writeError(w, http.StatusBadRequest, "validation error", fieldError{Field: "markdown", Message: "markdown must be at least 20 characters"})
	default:
		return true
	}
	return false
}

// slugTaken must be called with the lock held.
func (s *Server) slugTaken(slug, excludeID string) bool {
	for _, a := range s.articles {
		if a.Slug == slug && a.ID != excludeID {
			return true
		}
	}
	return false
}

func (s *Server) handleCreateArticle(w http.ResponseWriter, r *http.Request, caller *models.User) {
	var in articleInput
	if !s.readJSON(w, r, &in) {
		return
	}
	if !s.validateInput(w, in) {
		return
	}

	s.mu.Lock()
	if s.slugTaken(in.Slug, "") {
		s.mu.Unlock()
		s.writeError(w, http.StatusBadRequest, "validation error", fieldError{Field: "slug", Message: "slug is already in use"})
		return
	}
	a := &models.Article{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Slug:        in.Slug,
		Description: in.Description,
		Markdown:    in.Markdown,
		Tags:        in.Tags,
		Status:      models.StatusDraft,
		Author:      &models.UserRef{ID: caller.ID, Name: caller.Name},
		CreatedAt:   s.now(),
		UpdatedAt:   s.now(),
	}
	s.articles[a.ID] = a
	s.mu.Unlock()

	s.writeJSON(w, http.StatusCreated, map[string]any{"article": a})
}

func (s *Server) handleUpdateArticle(w http.ResponseWriter, r *http.Request, caller *models.User) {
	var in articleInput
	if !s.readJSON(w, r, &in) {
		return
	}
	if !s.validateInput(w, in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.articles[r.PathValue("id")]
	if !ok {
		s.writeError(w, http.StatusNotFound, "Article not found")
		return
	}
	if !s.canManage(caller, a) {
		s.writeError(w, http.StatusForbidden, "insufficient permissions")
		return
	}
	if !a.Status.CanEdit() {
		s.writeError(w, http.StatusBadRequest, "only draft or rejected articles can be edited")
		return
	}
	if s.slugTaken(in.Slug, a.ID) {
		s.writeError(w, http.StatusBadRequest, "validation error", fieldError{Field: "slug", Message: "slug is already in use"})
		return
	}

	a.Title = in.Title
	a.Slug = in.Slug
	a.Description = in.Description
	a.Markdown = in.Markdown
	a.Tags = in.Tags
	a.UpdatedAt = s.now()
	s.writeJSON(w, http.StatusOK, map[string]any{"article": a})
}

func (s *Server) handleDeleteArticle(w http.ResponseWriter, r *http.Request, caller *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.articles[r.PathValue("id")]
	if !ok {
		s.writeError(w, http.StatusNotFound, "Article not found")
		return
	}
	if !s.canManage(caller, a) {
		s.writeError(w, http.StatusForbidden, "insufficient permissions")
		return
	}
	delete(s.articles, a.ID)
	s.writeJSON(w, http.StatusOK, map[string]any{"message": "article deleted"})
}

func (s *Server) canManage(caller *models.User, a *models.Article) bool {
	if caller.Role == models.RoleAdmin {
		return true
	}
	return a.Author != nil && a.Author.ID == caller.ID
}

func (s *Server) handleSlugs(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	slugs := make([]string, 0, len(s.articles))
	for _, a := range s.articles {
		slugs = append(slugs, a.Slug)
	}
	s.mu.Unlock()
	sort.Strings(slugs)
	s.writeJSON(w, http.StatusOK, map[string]any{"slugs": slugs})
}

func (s *Server) handleTags(w http.ResponseWriter, _ *http.Request) {
	set := make(map[string]struct{})
	s.mu.Lock()
	for _, a := range s.articles {
		for _, t := range a.Tags {
			set[t] = struct{}{}
		}
	}
	s.mu.Unlock()

	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	s.writeJSON(w, http.StatusOK, map[string]any{"tags": tags})
}

func (s *Server) handleMyArticles(w http.ResponseWriter, r *http.Request, caller *models.User) {
	status := r.URL.Query().Get("status")

	s.mu.Lock()
	mine := make([]models.Article, 0)
	for _, a := range s.articles {
		if a.Author == nil || a.Author.ID != caller.ID {
			continue
		}
		if status != "" && string(a.Status) != status {
			continue
		}
		mine = append(mine, *a)
	}
	s.mu.Unlock()

	sort.Slice(mine, func(i, j int) bool { return mine[i].CreatedAt.After(mine[j].CreatedAt) })
	s.writeJSON(w, http.StatusOK, map[string]any{"data": mine})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request, caller *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.articles[r.PathValue("id")]
	if !ok {
		s.writeError(w, http.StatusNotFound, "Article not found")
		return
	}
	if !s.canManage(caller, a) {
		s.writeError(w, http.StatusForbidden, "insufficient permissions")
		return
	}
	if !a.Status.CanSubmit() {
		s.writeError(w, http.StatusBadRequest, "only draft or rejected articles can be submitted for review")
		return
	}
	a.Status = models.StatusPending
	a.SubmittedAt = s.now()
	a.UpdatedAt = s.now()
	s.writeJSON(w, http.StatusOK, map[string]any{"article": a})
}

func (s *Server) handlePending(w http.ResponseWriter, _ *http.Request, _ *models.User) {
	s.mu.Lock()
	pending := make([]models.Article, 0)
	for _, a := range s.articles {
		if a.Status == models.StatusPending {
			pending = append(pending, *a)
		}
	}
	s.mu.Unlock()

	sort.Slice(pending, func(i, j int) bool { return pending[i].SubmittedAt.Before(pending[j].SubmittedAt) })
	s.writeJSON(w, http.StatusOK, map[string]any{"data": pending})
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request, caller *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.articles[r.PathValue("id")]
	if !ok {
		s.writeError(w, http.StatusNotFound, "Article not found")
		return
	}
	if !a.Status.CanTransition(models.StatusApproved) {
		s.writeError(w, http.StatusBadRequest, "only pending articles can be approved")
		return
	}
	a.Status = models.StatusApproved
	a.RejectionReason = ""
	a.ReviewedAt = s.now()
	a.ReviewedBy = &models.UserRef{ID: caller.ID, Name: caller.Name}
	a.UpdatedAt = s.now()
	s.writeJSON(w, http.StatusOK, map[string]any{"article": a})
}

func (s *Server) handleReject(w http.ResponseWriter, r *http.Request, caller *models.User) {
	var req struct {
		Reason string `json:"reason"`
	}
	if !s.readJSON(w, r, &req) {
		return
	}
	if n := len(req.Reason); n < 10 || n > 500 {
		s.writeError(w, http.StatusBadRequest, "validation error", fieldError{Field: "reason", Message: "reason must be 10-500 characters"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.articles[r.PathValue("id")]
	if !ok {
		s.writeError(w, http.StatusNotFound, "Article not found")
		return
	}
	if !a.Status.CanTransition(models.StatusRejected) {
		s.writeError(w, http.StatusBadRequest, "only pending articles can be rejected")
		return
	}
	a.Status = models.StatusRejected
	a.RejectionReason = req.Reason
	a.ReviewedAt = s.now()
	a.ReviewedBy = &models.UserRef{ID: caller.ID, Name: caller.Name}
	a.UpdatedAt = s.now()
	s.writeJSON(w, http.StatusOK, map[string]any{"article": a})
}

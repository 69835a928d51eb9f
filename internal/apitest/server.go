// Package apitest is an in-memory double of the Mindvale platform API. It
// implements every endpoint the client consumes, with the same envelopes,
// status codes, and workflow rules, so tests and local development do not
// need the production backend. State lives in maps and is gone on exit.
package apitest

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/osmansemir/mindvale-cli/internal/models"
)

// Server holds the fake platform state. All handlers lock; the zero value is
// not usable, construct with NewServer.
type Server struct {
	mu        sync.Mutex
	users     map[string]*models.User
	passwords map[string]string // userID -> password
	articles  map[string]*models.Article
	secret    []byte
	mux       *http.ServeMux
	now       func() time.Time
}

func NewServer() *Server {
	s := &Server{
		users:     make(map[string]*models.User),
		passwords: make(map[string]string),
		articles:  make(map[string]*models.Article),
		secret:    []byte("apitest-secret"),
		now:       time.Now,
	}
	s.routes()
	return s
}

// Handler returns the root handler, serving under the /api base path.
func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) routes() {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("GET /api/auth/me", s.auth(s.handleMe))

	mux.HandleFunc("GET /api/articles", s.handleListArticles)
	mux.HandleFunc("POST /api/articles", s.auth(s.requireRole(s.handleCreateArticle, models.RoleAuthor, models.RoleAdmin)))
	mux.HandleFunc("GET /api/articles/slugs", s.handleSlugs)
	mux.HandleFunc("GET /api/articles/tags", s.handleTags)
	mux.HandleFunc("GET /api/articles/my/articles", s.auth(s.handleMyArticles))
	mux.HandleFunc("GET /api/articles/admin/pending", s.auth(s.requireRole(s.handlePending, models.RoleAdmin)))
	mux.HandleFunc("GET /api/articles/by-id/{id}", s.auth(s.handleGetArticleByID))
	mux.HandleFunc("GET /api/articles/{slug}", s.handleGetArticle)
	mux.HandleFunc("PUT /api/articles/{id}", s.auth(s.handleUpdateArticle))
	mux.HandleFunc("DELETE /api/articles/{id}", s.auth(s.handleDeleteArticle))
	mux.HandleFunc("POST /api/articles/{id}/submit", s.auth(s.handleSubmit))
	mux.HandleFunc("POST /api/articles/{id}/approve", s.auth(s.requireRole(s.handleApprove, models.RoleAdmin)))
	mux.HandleFunc("POST /api/articles/{id}/reject", s.auth(s.requireRole(s.handleReject, models.RoleAdmin)))

	mux.HandleFunc("GET /api/users", s.auth(s.requireRole(s.handleListUsers, models.RoleAdmin)))
	mux.HandleFunc("PUT /api/users/me/upgrade-to-author", s.auth(s.handleUpgradeToAuthor))
	mux.HandleFunc("GET /api/users/{id}", s.auth(s.requireRole(s.handleGetUser, models.RoleAdmin)))
	mux.HandleFunc("DELETE /api/users/{id}", s.auth(s.requireRole(s.handleDeleteUser, models.RoleAdmin)))
	mux.HandleFunc("PUT /api/users/{id}/role", s.auth(s.requireRole(s.handleUpdateRole, models.RoleAdmin)))

	s.mux = mux
}

// ---- seeding helpers ----

// SeedUser inserts an account directly into the store and returns it.
func (s *Server) SeedUser(name, email, password string, role models.Role) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &models.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: s.now(),
		UpdatedAt: s.now(),
	}
	s.users[u.ID] = u
	s.passwords[u.ID] = password
	return u
}

// SeedArticle inserts an article directly into the store and returns it.
// The caller controls status and timestamps.
func (s *Server) SeedArticle(a models.Article) *models.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now()
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = a.CreatedAt
	}
	if a.Status == "" {
		a.Status = models.StatusDraft
	}
	stored := a
	s.articles[a.ID] = &stored
	return &stored
}

// IssueToken signs a token for the user the way the login endpoint does.
func (s *Server) IssueToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(s.now().Add(24 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(s.now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		panic(err)
	}
	return token
}

// ---- auth middleware ----

type authedHandler func(w http.ResponseWriter, r *http.Request, caller *models.User)

func (s *Server) auth(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			s.writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		claims := &jwt.RegisteredClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
			return s.secret, nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !parsed.Valid {
			s.writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		s.mu.Lock()
		caller, found := s.users[claims.Subject]
		s.mu.Unlock()
		if !found {
			s.writeError(w, http.StatusUnauthorized, "unknown account")
			return
		}
		next(w, r, caller)
	}
}

func (s *Server) requireRole(next authedHandler, roles ...models.Role) authedHandler {
	return func(w http.ResponseWriter, r *http.Request, caller *models.User) {
		for _, role := range roles {
			if caller.Role == role {
				next(w, r, caller)
				return
			}
		}
		s.writeError(w, http.StatusForbidden, "insufficient permissions")
	}
}

// ---- envelopes ----

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string, fields ...fieldError) {
	body := map[string]any{"message": message}
	if len(fields) > 0 {
		body["errors"] = fields
	}
	s.writeJSON(w, status, body)
}

func (s *Server) readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}

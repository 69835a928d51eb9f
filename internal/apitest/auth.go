package apitest

import (
	"net/http"

	"github.com/osmansemir/mindvale-cli/internal/models"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !s.readJSON(w, r, &req) {
		return
	}

	s.mu.Lock()
	var match *models.User
	for _, u := range s.users {
		if u.Email == req.Email {
			match = u
			break
		}
	}
	valid := match != nil && s.passwords[match.ID] == req.Password
	s.mu.Unlock()

	if !valid {
		s.writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"token": s.IssueToken(match.ID),
		"user":  match,
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string      `json:"name"`
		Email    string      `json:"email"`
		Password string      `json:"password"`
		Role     models.Role `json:"role"`
	}
	if !s.readJSON(w, r, &req) {
		return
	}

	switch {
	case req.Name == "":
		s.writeError(w, http.StatusBadRequest, "validation error", fieldError{Field: "name", Message: "name is required"})
		return
	case req.Email == "":
		s.writeError(w, http.StatusBadRequest, "validation error", fieldError{Field: "email", Message: "email is required"})
		return
	case len(req.Password) < 8:
		s.writeError(w, http.StatusBadRequest, "validation error", fieldError{Field: "password", Message: "password must be at least 8 characters"})
		return
	case req.Role != models.RoleUser && req.Role != models.RoleAuthor:
		s.writeError(w, http.StatusBadRequest, "validation error", fieldError{Field: "role", Message: "role must be user or author"})
		return
	}

	s.mu.Lock()
	for _, u := range s.users {
		if u.Email == req.Email {
			s.mu.Unlock()
			s.writeError(w, http.StatusBadRequest, "validation error", fieldError{Field: "email", Message: "email is already registered"})
			return
		}
	}
	s.mu.Unlock()

	user := s.SeedUser(req.Name, req.Email, req.Password, req.Role)
	s.writeJSON(w, http.StatusCreated, map[string]any{
		"message": "account created",
		"user":    user,
	})
}

func (s *Server) handleMe(w http.ResponseWriter, _ *http.Request, caller *models.User) {
	s.writeJSON(w, http.StatusOK, map[string]any{"user": caller})
}

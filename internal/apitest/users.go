package apitest

import (
	"net/http"
	"sort"

	"github.com/osmansemir/mindvale-cli/internal/models"
)

func (s *Server) handleListUsers(w http.ResponseWriter, _ *http.Request, _ *models.User) {
	s.mu.Lock()
	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, *u)
	}
	s.mu.Unlock()

	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	s.writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request, _ *models.User) {
	s.mu.Lock()
	u, ok := s.users[r.PathValue("id")]
	s.mu.Unlock()
	if !ok {
		s.writeError(w, http.StatusNotFound, "User not found")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"user": u})
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request, caller *models.User) {
	id := r.PathValue("id")
	if id == caller.ID {
		s.writeError(w, http.StatusBadRequest, "you cannot delete your own account")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		s.writeError(w, http.StatusNotFound, "User not found")
		return
	}
	delete(s.users, id)
	delete(s.passwords, id)
	s.writeJSON(w, http.StatusOK, map[string]any{"message": "user deleted"})
}

func (s *Server) handleUpdateRole(w http.ResponseWriter, r *http.Request, _ *models.User) {
	var req struct {
		Role models.Role `json:"role"`
	}
	if !s.readJSON(w, r, &req) {
		return
	}
	if !req.Role.Valid() {
		s.writeError(w, http.StatusBadRequest, "validation error", fieldError{Field: "role", Message: "role must be user, author, or admin"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[r.PathValue("id")]
	if !ok {
		s.writeError(w, http.StatusNotFound, "User not found")
		return
	}
	u.Role = req.Role
	u.UpdatedAt = s.now()
	s.writeJSON(w, http.StatusOK, map[string]any{"user": u})
}

func (s *Server) handleUpgradeToAuthor(w http.ResponseWriter, _ *http.Request, caller *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.users[caller.ID]
	if u.Role == models.RoleAdmin {
		s.writeError(w, http.StatusBadRequest, "admins cannot downgrade to author")
		return
	}
	u.Role = models.RoleAuthor
	u.UpdatedAt = s.now()
	s.writeJSON(w, http.StatusOK, map[string]any{"user": u})
}

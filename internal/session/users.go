package session

import (
	"context"

	"github.com/osmansemir/mindvale-cli/internal/models"
)

// The user-management calls are thin proxies: the server decides who may do
// what, the client only hides the affordances (see cli guards).

func (s *Store) AllUsers(ctx context.Context) ([]models.User, error) {
	return s.api.Users(ctx)
}

func (s *Store) UserByID(ctx context.Context, id string) (*models.User, error) {
	return s.api.UserByID(ctx, id)
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return s.api.DeleteUser(ctx, id)
}

// UpdateUserRole changes another account's role. If the account happens to be
// the current identity, the local copy is refreshed from the response.
func (s *Store) UpdateUserRole(ctx context.Context, id string, role models.Role) (*models.User, error) {
	user, err := s.api.UpdateUserRole(ctx, id, role)
	if err != nil {
		return nil, err
	}
	s.refreshIfSelf(user)
	return user, nil
}

// UpgradeToAuthor promotes the current account to author and refreshes the
// local identity from the server's answer.
func (s *Store) UpgradeToAuthor(ctx context.Context) (*models.User, error) {
	user, err := s.api.UpgradeToAuthor(ctx)
	if err != nil {
		return nil, err
	}
	s.refreshIfSelf(user)
	return user, nil
}

func (s *Store) refreshIfSelf(user *models.User) {
	if user == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user != nil && s.user.ID == user.ID {
		u := *user
		s.user = &u
	}
}

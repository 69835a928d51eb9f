// Package session holds the client's identity: the bearer token, the account
// record behind it, and the authenticated flag. It is the single TokenSource
// for the API client, so swapping the token here is atomic with respect to
// every request issued afterwards. The only durable piece is the token file;
// identity is always re-verified against the server on startup.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/osmansemir/mindvale-cli/internal/api"
	"github.com/osmansemir/mindvale-cli/internal/logging"
	"github.com/osmansemir/mindvale-cli/internal/models"
	"github.com/osmansemir/mindvale-cli/internal/validator"
)

// Store is the identity store. All methods are safe for concurrent use.
type Store struct {
	mu            sync.RWMutex
	token         string
	user          *models.User
	authenticated bool

	api      *api.Client
	file     *tokenFile
	log      logging.Logger
	onExpire func()
}

// NewStore creates a Store and loads any previously persisted token. The
// token is not trusted until CheckAuth confirms it with the server.
func NewStore(tokenPath string, log logging.Logger) *Store {
	s := &Store{file: newTokenFile(tokenPath), log: log}
	if token, err := s.file.load(); err == nil {
		s.token = token
	}
	return s
}

// AttachClient binds the API client after construction. The client must have
// been built with this store as its TokenSource.
func (s *Store) AttachClient(c *api.Client) { s.api = c }

// OnSessionExpired registers a callback fired when a 401 tears down a live
// session. It is not fired when the session was already signed out, which
// mirrors "redirect unless already on the sign-in page".
func (s *Store) OnSessionExpired(fn func()) { s.onExpire = fn }

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether a server-verified identity is present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// User returns a copy of the current identity, or nil when signed out.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Role returns the current role, or the empty role when signed out.
func (s *Store) Role() models.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.Role
}

// Login authenticates and, on success, swaps token + identity in one state
// update and persists the token. The returned error carries the server's
// message on invalid credentials.
func (s *Store) Login(ctx context.Context, email, password string) (*models.User, error) {
	token, user, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.authenticated = true
	s.mu.Unlock()

	if err := s.file.save(token); err != nil {
		s.log.Warn(ctx, "could not persist token, session will not survive restart", "error", err)
	}
	return user, nil
}

// Register creates an account without signing in. Input is validated locally
// first; the first failing field is returned as a *validator.FieldError.
func (s *Store) Register(ctx context.Context, name, email, password string, role models.Role) error {
	v := validator.New()
	v.Check(name != "", "name", "must be provided")
	v.Check(v.IsMatch(email, validator.EmailRX), "email", "must be a valid email address")
	v.Check(len(password) >= 8, "password", "must be at least 8 characters")
	v.Check(role == models.RoleUser || role == models.RoleAuthor, "role", "must be user or author")
	if err := v.FirstError(); err != nil {
		return err
	}

	return s.api.Register(ctx, name, email, password, role)
}

// Logout clears token and identity unconditionally. It never fails: a token
// file that cannot be removed is logged and forgotten.
func (s *Store) Logout(ctx context.Context) {
	s.clear()
	if err := s.file.remove(); err != nil {
		s.log.Warn(ctx, "could not remove token file", "error", err)
	}
}

// HandleUnauthorized is the 401 hook for the API client: it performs the same
// teardown as Logout and fires the expiry callback if a live session was
// actually torn down.
func (s *Store) HandleUnauthorized() {
	wasAuthenticated := s.clear()
	_ = s.file.remove()
	if wasAuthenticated && s.onExpire != nil {
		s.onExpire()
	}
}

func (s *Store) clear() (wasAuthenticated bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wasAuthenticated = s.authenticated
	s.token = ""
	s.user = nil
	s.authenticated = false
	return wasAuthenticated
}

// CheckAuth validates any stored token on startup. A token whose exp claim
// has already passed is discarded without a round-trip; otherwise the token
// is verified with GET /auth/me and the identity populated from the server's
// answer. Client-side claims are never used for identity. Verification
// failures behave like Logout; only transport errors are returned.
func (s *Store) CheckAuth(ctx context.Context) (bool, error) {
	token := s.Token()
	if token == "" {
		return false, nil
	}

	if expired(token) {
		s.Logout(ctx)
		return false, nil
	}

	user, err := s.api.Me(ctx)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Status > 0 {
			// Server answered and refused the token: same as logout.
			// The 401 hook has already cleared state for that case.
			s.Logout(ctx)
			return false, nil
		}
		return false, err
	}

	s.mu.Lock()
	s.user = user
	s.authenticated = true
	s.mu.Unlock()
	return true, nil
}

// expired reports whether the token's exp claim is in the past. The claim is
// read without signature verification and is used only to skip a doomed
// round-trip; it never establishes identity.
func expired(token string) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}

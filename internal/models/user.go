package models

import "time"

// Role controls which actions the UI exposes. The server is the authority;
// roles here only hide affordances.
type Role string

const (
	RoleUser   Role = "user"
	RoleAuthor Role = "author"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAuthor || r == RoleAdmin
}

// CanWrite reports whether the role may create and manage own articles.
func (r Role) CanWrite() bool {
	return r == RoleAuthor || r == RoleAdmin
}

// CanReview reports whether the role may approve or reject submissions and
// manage users.
func (r Role) CanReview() bool {
	return r == RoleAdmin
}

// User is a platform account.
type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserRef is the shortened account shape embedded in articles
// (author, reviewedBy).
type UserRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

package api

import (
	"context"

	"github.com/osmansemir/mindvale-cli/internal/models"
)

// loginPath gets special 401 handling in the client: a refused sign-in keeps
// the server's message and never tears down an existing session.
const loginPath = "/auth/login"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type registerRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

type userResponse struct {
	User models.User `json:"user"`
}

// Login exchanges credentials for a bearer token and the account record.
func (c *Client) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	var resp loginResponse
	err := c.post(ctx, loginPath, loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", nil, err
	}
	return resp.Token, &resp.User, nil
}

// Register creates an account. It does not authenticate; callers sign in
// separately afterwards.
func (c *Client) Register(ctx context.Context, name, email, password string, role models.Role) error {
	return c.post(ctx, "/auth/register", registerRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     role,
	}, nil)
}

// Me verifies the current token with the server and returns the identity it
// belongs to. This is the only source of identity claims the client trusts.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var resp userResponse
	if err := c.get(ctx, "/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

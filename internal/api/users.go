package api

import (
	"context"
	"net/url"

	"github.com/osmansemir/mindvale-cli/internal/models"
)

type userListResponse struct {
	Users []models.User `json:"users"`
}

type roleRequest struct {
	Role models.Role `json:"role"`
}

// Users lists all accounts. Admin only; enforced server-side.
func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var resp userListResponse
	if err := c.get(ctx, "/users", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

func (c *Client) UserByID(ctx context.Context, id string) (*models.User, error) {
	var resp userResponse
	if err := c.get(ctx, "/users/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.delete(ctx, "/users/"+url.PathEscape(id))
}

func (c *Client) UpdateUserRole(ctx context.Context, id string, role models.Role) (*models.User, error) {
	var resp userResponse
	if err := c.put(ctx, "/users/"+url.PathEscape(id)+"/role", roleRequest{Role: role}, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// UpgradeToAuthor promotes the calling account from reader to author.
func (c *Client) UpgradeToAuthor(ctx context.Context) (*models.User, error) {
	var resp userResponse
	if err := c.put(ctx, "/users/me/upgrade-to-author", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

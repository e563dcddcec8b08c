package client

import (
	"context"
	"net/http"

	"github.com/Minahil-Hamza/taskdesk/internal/domain"
)

func (c *Client) Register(ctx context.Context, email, password string) (*domain.AuthResponse, error) {
	var resp domain.AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/register",
		domain.Credentials{Email: email, Password: password}, &resp, false, "Registration failed")
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*domain.AuthResponse, error) {
	var resp domain.AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/login",
		domain.Credentials{Email: email, Password: password}, &resp, false, "Login failed")
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

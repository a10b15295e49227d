package api

import (
	"context"
	"net/http"
	"net/url"
)

// RegisterRequest creates a new customer account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

// Register creates an account and returns the session credential for it.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (Session, error) {
	var session Session
	if err := c.do(ctx, http.MethodPost, "auth/register", nil, req, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	body := map[string]string{"email": email, "password": password}
	var session Session
	if err := c.do(ctx, http.MethodPost, "auth/login", nil, body, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Profile fetches the authenticated user's profile, addresses included.
func (c *Client) Profile(ctx context.Context) (User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "auth/profile", nil, nil, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// UpdateProfile replaces the user's display name and phone number. The
// backend takes these as query parameters rather than a body.
func (c *Client) UpdateProfile(ctx context.Context, name, phone string) error {
	query := url.Values{}
	query.Set("name", name)
	query.Set("phone", phone)
	return c.do(ctx, http.MethodPut, "auth/profile", query, nil, nil)
}

// AddAddress appends an address to the profile. When the address is marked
// default, the server demotes the others.
func (c *Client) AddAddress(ctx context.Context, address Address) error {
	return c.do(ctx, http.MethodPost, "auth/address", nil, address, nil)
}

// DeleteAddress removes an address from the profile.
func (c *Client) DeleteAddress(ctx context.Context, addressID string) error {
	return c.do(ctx, http.MethodDelete, "auth/address/"+url.PathEscape(addressID), nil, nil, nil)
}

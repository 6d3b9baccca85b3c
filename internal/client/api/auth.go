package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/recetario/internal/client/models"
)

// Login exchanges credentials for an access token. The form encoding matches
// the OAuth2 password flow the backend expects.
func (c *Client) Login(ctx context.Context, username, password string) (*models.Token, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var token models.Token
	err := c.do(ctx, http.MethodPost, c.endpoint("/token", nil),
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", &token)
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (c *Client) Register(ctx context.Context, in models.RegisterInput) (*models.User, error) {
	var user models.User
	if err := c.sendJSON(ctx, http.MethodPost, "/register", in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CurrentUser fetches the profile of the token holder.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.getJSON(ctx, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

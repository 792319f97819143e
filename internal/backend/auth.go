package backend

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"pizza-storefront/internal/model"
)

// Login exchanges credentials for the user record.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (model.User, error) {
	return c.userCall(ctx, http.MethodPost, "/api/auth/login", creds)
}

// Register creates an account and returns it.
func (c *Client) Register(ctx context.Context, reg model.Registration) (model.User, error) {
	return c.userCall(ctx, http.MethodPost, "/api/auth/register", reg)
}

// GoogleLogin exchanges a Google credential for the user record.
func (c *Client) GoogleLogin(ctx context.Context, token model.GoogleToken) (model.User, error) {
	return c.userCall(ctx, http.MethodPost, "/api/auth/google", token)
}

// UpdateProfile saves the delivery details of user id.
func (c *Client) UpdateProfile(ctx context.Context, id int64, update model.ProfileUpdate) (model.User, error) {
	return c.userCall(ctx, http.MethodPut, "/api/auth/update-profile/"+strconv.FormatInt(id, 10), update)
}

func (c *Client) userCall(ctx context.Context, method, path string, in interface{}) (model.User, error) {
	var user model.User
	if err := c.do(ctx, method, path, nil, in, &user); err != nil {
		return model.User{}, err
	}
	if err := user.Validate(); err != nil {
		return model.User{}, fmt.Errorf("invalid user in response: %w", err)
	}
	return user, nil
}

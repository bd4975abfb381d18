package api

import (
	"context"

	json "github.com/json-iterator/go"
	"github.com/zfogg/blogfront/pkg/client"
	"github.com/zfogg/blogfront/pkg/logger"
)

// Client issues the blog API's requests over a configured HTTP client.
type Client struct {
	c *client.Client
}

// New wraps c.
func New(c *client.Client) *Client {
	return &Client{c: c}
}

func (a *Client) postJSON(ctx context.Context, path string, body interface{}, out interface{}) error {
	reqBody, err := json.Marshal(body)
	if err != nil {
		return err
	}

	resp, err := a.c.R(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post(path)

	if err := CheckResponse(resp, err); err != nil {
		return err
	}

	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	return json.Unmarshal(resp.Body(), out)
}

// Login exchanges credentials for an access/refresh token pair.
func (a *Client) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	logger.Debug("Attempting login", "email", email)

	var tokens TokenPair
	if err := a.postJSON(ctx, "/auth/jwt/create/", Credentials{Email: email, Password: password}, &tokens); err != nil {
		return nil, err
	}

	logger.Debug("Login successful", "email", email)
	return &tokens, nil
}

// Refresh exchanges a refresh token for a new access token.
func (a *Client) Refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	logger.Debug("Refreshing access token")

	var out RefreshResponse
	if err := a.postJSON(ctx, "/auth/jwt/refresh/", RefreshRequest{Refresh: refreshToken}, &out); err != nil {
		return nil, err
	}

	logger.Debug("Access token refreshed")
	return &out, nil
}

// Verify checks token with the server. A nil error means the token is valid.
func (a *Client) Verify(ctx context.Context, token string) error {
	logger.Debug("Verifying access token")
	return a.postJSON(ctx, "/auth/jwt/verify/", VerifyRequest{Token: token}, nil)
}

// Register creates an account. The server emails an activation link.
func (a *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	logger.Debug("Registering account", "email", req.Email, "username", req.Username)

	var out RegisterResponse
	if err := a.postJSON(ctx, "/auth/users/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Activate confirms an account with the uid/token pair from the emailed link.
func (a *Client) Activate(ctx context.Context, uid, token string) error {
	logger.Debug("Activating account", "uid", uid)
	return a.postJSON(ctx, "/auth/users/activation/", ActivationRequest{UID: uid, Token: token}, nil)
}

// Me returns the profile of the bearer of the current access token.
func (a *Client) Me(ctx context.Context) (*UserDTO, error) {
	logger.Debug("Fetching current user")

	resp, err := a.c.R(ctx).Get("/auth/users/me/")
	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var user UserDTO
	if err := json.Unmarshal(resp.Body(), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

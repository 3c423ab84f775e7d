package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"eventhub-backend/internal/config"
)

// UserInfo is the provider-agnostic identity returned by the userinfo
// endpoints.
type UserInfo struct {
	ProviderID string
	Email      string
	Name       string
}

// Client fetches user identities from OAuth providers given an access
// token the frontend already obtained.
type Client struct {
	googleURL   string
	facebookURL string
	httpClient  *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		googleURL:   cfg.OAuth.GoogleUserInfoURL,
		facebookURL: cfg.OAuth.FacebookUserInfoURL,
		httpClient:  &http.Client{},
	}
}

// GoogleUserInfo exchanges a Google access token for the user's profile.
func (c *Client) GoogleUserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.googleURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach Google: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("invalid Google access token (status %d)", resp.StatusCode)
	}

	var payload struct {
		Sub   string `json:"sub"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode Google response: %w", err)
	}

	return &UserInfo{ProviderID: payload.Sub, Email: payload.Email, Name: payload.Name}, nil
}

// FacebookUserInfo exchanges a Facebook access token for the user's
// profile. Facebook may omit the email field for some accounts.
func (c *Client) FacebookUserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	endpoint := fmt.Sprintf("%s?fields=id,name,email&access_token=%s", c.facebookURL, url.QueryEscape(accessToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach Facebook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("invalid Facebook access token (status %d)", resp.StatusCode)
	}

	var payload struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode Facebook response: %w", err)
	}

	info := &UserInfo{ProviderID: payload.ID, Email: payload.Email, Name: payload.Name}
	if info.Email == "" {
		info.Email = payload.ID + "@facebook.com"
	}
	return info, nil
}

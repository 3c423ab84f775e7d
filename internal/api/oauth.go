package api

import (
	"context"
	"fmt"
	"net/http"

	"eventhub-backend/internal/models"
	"eventhub-backend/internal/oauth"

	"github.com/gin-gonic/gin"
)

// OAuthGoogle signs a user in with a Google access token, creating the
// account on first sight.
func (s *Server) OAuthGoogle(c *gin.Context) {
	s.socialAuth(c, "google", s.oauthClient.GoogleUserInfo)
}

// OAuthFacebook signs a user in with a Facebook access token.
func (s *Server) OAuthFacebook(c *gin.Context) {
	s.socialAuth(c, "facebook", s.oauthClient.FacebookUserInfo)
}

func (s *Server) socialAuth(c *gin.Context, provider string, fetch func(context.Context, string) (*oauth.UserInfo, error)) {
	var req models.SocialAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	info, err := fetch(ctx, req.AccessToken)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := req.Role
	if role == "" {
		role = "participant"
	}

	userID, err := s.findOrCreateOAuthUser(ctx, provider, info, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to authenticate user"})
		return
	}

	var user models.User
	err = s.db.Pool.QueryRow(ctx, `
		SELECT id, username, email, full_name, role, is_active, created_at
		FROM users WHERE id = $1
	`, userID).Scan(&user.ID, &user.Username, &user.Email, &user.FullName, &user.Role, &user.IsActive, &user.CreatedAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	token, err := s.jwtManager.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{User: user, Token: token})
}

// findOrCreateOAuthUser resolves an OAuth identity to a local user:
// an existing social_auth link wins, then a user with the same email is
// linked, and otherwise a fresh account is created with a username
// derived from the email local part.
func (s *Server) findOrCreateOAuthUser(ctx context.Context, provider string, info *oauth.UserInfo, role string) (int64, error) {
	var userID int64
	err := s.db.Pool.QueryRow(ctx,
		"SELECT user_id FROM social_auth WHERE provider = $1 AND provider_id = $2",
		provider, info.ProviderID,
	).Scan(&userID)
	if err == nil {
		return userID, nil
	}

	err = s.db.Pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", info.Email).Scan(&userID)
	if err != nil {
		username, err := s.uniqueUsername(ctx, info.Email)
		if err != nil {
			return 0, err
		}

		err = s.db.Pool.QueryRow(ctx, `
			INSERT INTO users (username, email, full_name, password_hash, role)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, username, info.Email, info.Name, "oauth_password", role).Scan(&userID)
		if err != nil {
			return 0, fmt.Errorf("failed to create oauth user: %w", err)
		}
	}

	_, err = s.db.Pool.Exec(ctx,
		"INSERT INTO social_auth (user_id, provider, provider_id) VALUES ($1, $2, $3)",
		userID, provider, info.ProviderID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to link social auth: %w", err)
	}
	return userID, nil
}

func (s *Server) uniqueUsername(ctx context.Context, email string) (string, error) {
	base := email
	for i, ch := range email {
		if ch == '@' {
			base = email[:i]
			break
		}
	}

	username := base
	counter := 1
	for {
		var id int64
		err := s.db.Pool.QueryRow(ctx, "SELECT id FROM users WHERE username = $1", username).Scan(&id)
		if err != nil {
			return username, nil
		}
		username = fmt.Sprintf("%s%d", base, counter)
		counter++
	}
}

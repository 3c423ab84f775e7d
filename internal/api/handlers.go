package api

import (
	"net/http"

	"eventhub-backend/internal/auth"
	"eventhub-backend/internal/config"
	"eventhub-backend/internal/database"
	"eventhub-backend/internal/email"
	"eventhub-backend/internal/models"
	"eventhub-backend/internal/oauth"

	"github.com/gin-gonic/gin"
)

type Server struct {
	db          *database.Database
	jwtManager  *auth.JWTManager
	config      *config.Config
	oauthClient *oauth.Client
	mailer      *email.Sender
}

func NewServer(db *database.Database, cfg *config.Config) *Server {
	return &Server{
		db:          db,
		jwtManager:  auth.NewJWTManager(cfg),
		config:      cfg,
		oauthClient: oauth.NewClient(cfg),
		mailer:      email.NewSender(cfg),
	}
}

// Auth Handlers
func (s *Server) Register(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	// Reject duplicate username or email up front
	var existingID int64
	err := s.db.Pool.QueryRow(ctx, "SELECT id FROM users WHERE username = $1 OR email = $2", req.Username, req.Email).Scan(&existingID)
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already exists"})
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	role := req.Role
	if role == "" {
		role = "participant"
	}

	var user models.User
	query := `
		INSERT INTO users (username, email, full_name, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, username, email, full_name, role, is_active, created_at
	`

	err = s.db.Pool.QueryRow(ctx, query, req.Username, req.Email, req.FullName, hashedPassword, role).Scan(
		&user.ID, &user.Username, &user.Email, &user.FullName, &user.Role, &user.IsActive, &user.CreatedAt,
	)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := s.jwtManager.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	response := models.LoginResponse{
		User:  user,
		Token: token,
	}

	c.JSON(http.StatusCreated, response)
}

func (s *Server) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	var user models.User

	query := `
		SELECT id, username, email, full_name, password_hash, role, is_active, created_at
		FROM users
		WHERE username = $1
	`

	err := s.db.Pool.QueryRow(ctx, query, req.Username).Scan(
		&user.ID, &user.Username, &user.Email, &user.FullName, &user.PasswordHash, &user.Role, &user.IsActive, &user.CreatedAt,
	)

	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := s.jwtManager.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	response := models.LoginResponse{
		User:  user,
		Token: token,
	}

	c.JSON(http.StatusOK, response)
}

func (s *Server) GetProfile(c *gin.Context) {
	userID, _ := c.Get("user_id")

	ctx := c.Request.Context()
	var user models.User

	query := `
		SELECT id, username, email, full_name, role, is_active, created_at
		FROM users
		WHERE id = $1
	`

	err := s.db.Pool.QueryRow(ctx, query, userID).Scan(
		&user.ID, &user.Username, &user.Email, &user.FullName, &user.Role, &user.IsActive, &user.CreatedAt,
	)

	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"eventhub-backend/internal/middleware"
	"eventhub-backend/internal/models"

	"github.com/gin-gonic/gin"
)

// Comment Handlers
func (s *Server) CreateComment(c *gin.Context) {
	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx := c.Request.Context()
	var comment models.Comment

	query := `
		INSERT INTO comments (user_id, event_id, content, rating)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, event_id, content, rating, created_at
	`

	err := s.db.Pool.QueryRow(ctx, query, userID, req.EventID, req.Content, req.Rating).Scan(
		&comment.ID, &comment.UserID, &comment.EventID, &comment.Content, &comment.Rating, &comment.CreatedAt,
	)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (s *Server) GetComment(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	ctx := c.Request.Context()
	var comment models.Comment

	query := `
		SELECT c.id, c.user_id, c.event_id, c.content, c.rating, c.created_at, u.username, u.full_name
		FROM comments c
		JOIN users u ON c.user_id = u.id
		WHERE c.id = $1
	`

	err = s.db.Pool.QueryRow(ctx, query, commentID).Scan(
		&comment.ID, &comment.UserID, &comment.EventID, &comment.Content, &comment.Rating,
		&comment.CreatedAt, &comment.Username, &comment.FullName,
	)

	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	c.JSON(http.StatusOK, comment)
}

func (s *Server) GetEventComments(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	s.listComments(c, "c.event_id = $1", eventID)
}

func (s *Server) GetUserComments(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	s.listComments(c, "c.user_id = $1", userID)
}

func (s *Server) listComments(c *gin.Context, where string, arg int64) {
	ctx := c.Request.Context()
	query := `
		SELECT c.id, c.user_id, c.event_id, c.content, c.rating, c.created_at, u.username, u.full_name
		FROM comments c
		JOIN users u ON c.user_id = u.id
		WHERE ` + where + `
		ORDER BY c.created_at DESC
	`

	rows, err := s.db.Pool.Query(ctx, query, arg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(
			&comment.ID, &comment.UserID, &comment.EventID, &comment.Content, &comment.Rating,
			&comment.CreatedAt, &comment.Username, &comment.FullName,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan comment"})
			return
		}
		comments = append(comments, comment)
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (s *Server) UpdateComment(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	var req models.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	tag, err := s.db.Pool.Exec(ctx,
		"UPDATE comments SET content = $1, rating = $2 WHERE id = $3",
		req.Content, req.Rating, commentID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment"})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment updated successfully"})
}

func (s *Server) DeleteComment(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	ctx := c.Request.Context()
	_, err = s.db.Pool.Exec(ctx, "DELETE FROM comments WHERE id = $1", commentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

// Share Handlers
func (s *Server) ShareEvent(c *gin.Context) {
	var req models.ShareEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	var eventTitle, eventLocation string
	var eventDate time.Time
	err := s.db.Pool.QueryRow(ctx, "SELECT title, date, location FROM events WHERE id = $1", req.EventID).Scan(
		&eventTitle, &eventDate, &eventLocation,
	)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	var share models.EventShare
	query := `
		INSERT INTO event_shares (event_id, share_type, recipient)
		VALUES ($1, $2, $3)
		RETURNING id, event_id, share_type, recipient, shared_at
	`

	err = s.db.Pool.QueryRow(ctx, query, req.EventID, req.ShareType, req.Recipient).Scan(
		&share.ID, &share.EventID, &share.ShareType, &share.Recipient, &share.SharedAt,
	)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create share"})
		return
	}

	// Email shares notify the recipient; best effort, failures are logged
	if req.ShareType == "email" && req.Recipient != nil {
		recipient := *req.Recipient
		go func() {
			if err := s.mailer.SendEventShare(recipient, eventTitle, eventDate, eventLocation); err != nil {
				log.Printf("Failed to send share email to %s: %v", recipient, err)
			}
		}()
	}

	c.JSON(http.StatusCreated, share)
}

func (s *Server) GetEventShare(c *gin.Context) {
	shareID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid share ID"})
		return
	}

	ctx := c.Request.Context()
	var share models.EventShare

	query := "SELECT id, event_id, share_type, recipient, shared_at FROM event_shares WHERE id = $1"
	err = s.db.Pool.QueryRow(ctx, query, shareID).Scan(
		&share.ID, &share.EventID, &share.ShareType, &share.Recipient, &share.SharedAt,
	)

	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Share not found"})
		return
	}

	c.JSON(http.StatusOK, share)
}

func (s *Server) GetEventShares(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	s.listShares(c, "WHERE event_id = $1", eventID)
}

func (s *Server) GetAllShares(c *gin.Context) {
	s.listShares(c, "", 0)
}

func (s *Server) listShares(c *gin.Context, where string, arg int64) {
	ctx := c.Request.Context()
	query := "SELECT id, event_id, share_type, recipient, shared_at FROM event_shares " + where + " ORDER BY shared_at DESC"

	var args []interface{}
	if where != "" {
		args = append(args, arg)
	}

	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shares"})
		return
	}
	defer rows.Close()

	var shares []models.EventShare
	for rows.Next() {
		var share models.EventShare
		err := rows.Scan(&share.ID, &share.EventID, &share.ShareType, &share.Recipient, &share.SharedAt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan share"})
			return
		}
		shares = append(shares, share)
	}

	c.JSON(http.StatusOK, gin.H{"shares": shares})
}

func (s *Server) DeleteEventShare(c *gin.Context) {
	shareID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid share ID"})
		return
	}

	ctx := c.Request.Context()
	_, err = s.db.Pool.Exec(ctx, "DELETE FROM event_shares WHERE id = $1", shareID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete share"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Share deleted successfully"})
}

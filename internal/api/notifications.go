package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"paperhub-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// notifyUser inserts a notification and pushes it to the user's open
// websocket connections. Polling clients pick it up on their next fetch.
func (s *Server) notifyUser(ctx context.Context, userID uuid.UUID, message string, paperID *uuid.UUID) {
	var n models.Notification
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO notifications (user_id, message, paper_id)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, message, paper_id, is_read, created_at
	`, userID, message, paperID).Scan(&n.ID, &n.UserID, &n.Message, &n.PaperID, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return
	}

	if s.hub != nil {
		s.hub.SendToUser(userID.String(), gin.H{"type": "notification", "notification": n})
	}
}

// GetNotifications lists the current user's notifications, newest first.
func (s *Server) GetNotifications(c *gin.Context) {
	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx := c.Request.Context()
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, user_id, message, paper_id, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.PaperID, &n.IsRead, &n.CreatedAt); err != nil {
			continue
		}
		notifications = append(notifications, n)
	}

	c.JSON(http.StatusOK, notifications)
}

// CreateNotification lets editors and admins message another role, e.g. an
// admin asking an editor to re-check a paper.
func (s *Server) CreateNotification(c *gin.Context) {
	var req models.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	var n models.Notification
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO notifications (user_id, message, paper_id)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, message, paper_id, is_read, created_at
	`, req.UserID, req.Message, req.PaperID).Scan(&n.ID, &n.UserID, &n.Message, &n.PaperID, &n.IsRead, &n.CreatedAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create notification"})
		return
	}

	if s.hub != nil {
		s.hub.SendToUser(n.UserID.String(), gin.H{"type": "notification", "notification": n})
	}

	c.JSON(http.StatusCreated, n)
}

// MarkNotificationRead flips the read flag. Marking an already-read
// notification again is a no-op, not an error.
func (s *Server) MarkNotificationRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx := c.Request.Context()

	var n models.Notification
	err = s.db.Pool.QueryRow(ctx, `
		UPDATE notifications
		SET is_read = TRUE
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, message, paper_id, is_read, created_at
	`, id, userID).Scan(&n.ID, &n.UserID, &n.Message, &n.PaperID, &n.IsRead, &n.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification as read"})
		return
	}

	c.JSON(http.StatusOK, n)
}

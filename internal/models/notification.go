package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification targets a single user. PaperID, when set, lets the client
// deep-link back to the paper the notification is about.
type Notification struct {
	ID        int64      `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	Message   string     `json:"message" db:"message"`
	PaperID   *uuid.UUID `json:"paper_id" db:"paper_id"`
	IsRead    bool       `json:"is_read" db:"is_read"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

type CreateNotificationRequest struct {
	UserID  uuid.UUID  `json:"user_id" binding:"required"`
	Message string     `json:"message" binding:"required"`
	PaperID *uuid.UUID `json:"paper_id"`
}

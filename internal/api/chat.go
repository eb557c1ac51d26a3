package api

import (
	"net/http"
	"time"

	"paperhub-backend/internal/database"
	"paperhub-backend/internal/models"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	db *database.Database
}

func NewChatHandler(db *database.Database) *ChatHandler {
	return &ChatHandler{db: db}
}

// SendMessage handles sending a new message
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req struct {
		ReceiverID     string  `json:"receiver_id" binding:"required"`
		Content        string  `json:"content"`
		AttachmentURL  *string `json:"attachment_url"`
		AttachmentName *string `json:"attachment_name"`
		AttachmentType *string `json:"attachment_type"`
		AttachmentSize *int    `json:"attachment_size"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	senderID := c.GetString("user_id")

	if req.Content == "" && req.AttachmentURL == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message must have content or attachment"})
		return
	}

	query := `
		INSERT INTO messages (
			sender_id, receiver_id, content,
			attachment_url, attachment_name, attachment_type, attachment_size, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, sender_id, receiver_id, content,
			attachment_url, attachment_name, attachment_type, attachment_size, is_read, created_at
	`

	var msg models.Message
	err := h.db.QueryRow(
		c.Request.Context(),
		query,
		senderID,
		req.ReceiverID,
		req.Content,
		req.AttachmentURL,
		req.AttachmentName,
		req.AttachmentType,
		req.AttachmentSize,
		time.Now(),
	).Scan(
		&msg.ID, &msg.SenderID, &msg.ReceiverID, &msg.Content,
		&msg.AttachmentURL, &msg.AttachmentName, &msg.AttachmentType, &msg.AttachmentSize,
		&msg.IsRead, &msg.CreatedAt,
	)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// GetMessages retrieves messages between the current user and a contact,
// marking the contact's unread messages as read in passing.
func (h *ChatHandler) GetMessages(c *gin.Context) {
	contactID := c.Query("contact_id")
	if contactID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "contact_id is required"})
		return
	}

	userID := c.GetString("user_id")

	updateQuery := `
		UPDATE messages
		SET is_read = TRUE
		WHERE sender_id = $1 AND receiver_id = $2 AND is_read = FALSE
	`
	_, _ = h.db.Exec(c.Request.Context(), updateQuery, contactID, userID)

	query := `
		SELECT id, sender_id, receiver_id, content,
			attachment_url, attachment_name, attachment_type, attachment_size, is_read, created_at
		FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY created_at ASC
	`

	rows, err := h.db.Query(c.Request.Context(), query, userID, contactID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(
			&msg.ID, &msg.SenderID, &msg.ReceiverID, &msg.Content,
			&msg.AttachmentURL, &msg.AttachmentName, &msg.AttachmentType, &msg.AttachmentSize,
			&msg.IsRead, &msg.CreatedAt,
		); err != nil {
			continue
		}
		messages = append(messages, msg)
	}

	c.JSON(http.StatusOK, messages)
}

// GetContacts retrieves the users the current user can chat with, based on
// the role pairing matrix.
func (h *ChatHandler) GetContacts(c *gin.Context) {
	userID := c.GetString("user_id")
	userRole := c.GetString("role")

	var roleFilter string
	switch userRole {
	case "author":
		roleFilter = "('editor', 'coordinator')"
	case "editor":
		roleFilter = "('author', 'coordinator', 'admin')"
	case "coordinator":
		roleFilter = "('author', 'editor', 'admin')"
	case "admin":
		roleFilter = "('editor', 'coordinator')"
	default:
		c.JSON(http.StatusOK, []models.Contact{})
		return
	}

	query := `
		SELECT id, name, email, role, avatar
		FROM users
		WHERE role IN ` + roleFilter + ` AND id != $1
		ORDER BY name ASC
	`

	rows, err := h.db.Query(c.Request.Context(), query, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contacts"})
		return
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		var contact models.Contact
		if err := rows.Scan(&contact.ID, &contact.Name, &contact.Email, &contact.Role, &contact.Avatar); err != nil {
			continue
		}

		var unreadCount int
		_ = h.db.QueryRow(
			c.Request.Context(),
			"SELECT COUNT(*) FROM messages WHERE sender_id = $1 AND receiver_id = $2 AND is_read = FALSE",
			contact.ID, userID,
		).Scan(&unreadCount)
		contact.UnreadCount = unreadCount

		var lastMsg models.Message
		err = h.db.QueryRow(
			c.Request.Context(),
			"SELECT content, created_at FROM messages WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1) ORDER BY created_at DESC LIMIT 1",
			contact.ID, userID,
		).Scan(&lastMsg.Content, &lastMsg.CreatedAt)
		if err == nil {
			contact.LastMessage = &lastMsg
		}

		contacts = append(contacts, contact)
	}

	c.JSON(http.StatusOK, contacts)
}

// GetUnreadCount retrieves the total unread message count for the current user.
func (h *ChatHandler) GetUnreadCount(c *gin.Context) {
	userID := c.GetString("user_id")

	var count int
	err := h.db.QueryRow(
		c.Request.Context(),
		"SELECT COUNT(*) FROM messages WHERE receiver_id = $1 AND is_read = FALSE",
		userID,
	).Scan(&count)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch unread count"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

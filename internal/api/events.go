package api

import (
	"errors"
	"net/http"

	"paperhub-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (s *Server) GetEvents(c *gin.Context) {
	status := c.Query("status")

	ctx := c.Request.Context()
	query := `
		SELECT e.id, e.title, e.description, e.category, e.status, e.image_url, e.date, e.location, e.coordinator_id,
			   e.created_at, e.updated_at, co.name as coordinator_name, co.email as coordinator_email
		FROM events e
		LEFT JOIN users co ON e.coordinator_id = co.id
	`

	var rows pgx.Rows
	var err error
	if status != "" {
		rows, err = s.db.Pool.Query(ctx, query+` WHERE e.status = $1 ORDER BY e.date ASC`, status)
	} else {
		rows, err = s.db.Pool.Query(ctx, query+` ORDER BY e.date ASC`)
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}
	defer rows.Close()

	events := []models.EventWithCoordinator{}
	for rows.Next() {
		var event models.EventWithCoordinator
		err := rows.Scan(
			&event.ID, &event.Title, &event.Description, &event.Category, &event.Status, &event.ImageURL,
			&event.Date, &event.Location, &event.CoordinatorID, &event.CreatedAt, &event.UpdatedAt,
			&event.CoordinatorName, &event.CoordinatorEmail,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan event"})
			return
		}
		events = append(events, event)
	}

	c.JSON(http.StatusOK, events)
}

func (s *Server) CreateEvent(c *gin.Context) {
	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("user_id")
	coordinatorID, err := uuid.Parse(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx := c.Request.Context()
	query := `
		INSERT INTO events (title, description, category, status, image_url, date, location, coordinator_id)
		VALUES ($1, $2, $3, 'draft', $4, $5, $6, $7)
		RETURNING id, title, description, category, status, image_url, date, location, coordinator_id, created_at, updated_at
	`

	var event models.Event
	err = s.db.Pool.QueryRow(ctx, query, req.Title, req.Description, req.Category, req.ImageURL, req.Date, req.Location, coordinatorID).Scan(
		&event.ID, &event.Title, &event.Description, &event.Category, &event.Status, &event.ImageURL,
		&event.Date, &event.Location, &event.CoordinatorID, &event.CreatedAt, &event.UpdatedAt,
	)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, event)
}

func (s *Server) UpdateEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	var req models.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	query := `
		UPDATE events
		SET title = $1, description = $2, category = $3, image_url = $4, date = $5, location = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING id, title, description, category, status, image_url, date, location, coordinator_id, created_at, updated_at
	`

	var event models.Event
	err = s.db.Pool.QueryRow(ctx, query, req.Title, req.Description, req.Category, req.ImageURL, req.Date, req.Location, eventID).Scan(
		&event.ID, &event.Title, &event.Description, &event.Category, &event.Status, &event.ImageURL,
		&event.Date, &event.Location, &event.CoordinatorID, &event.CreatedAt, &event.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		return
	}

	c.JSON(http.StatusOK, event)
}

func (s *Server) DeleteEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	ctx := c.Request.Context()
	_, err = s.db.Pool.Exec(ctx, "DELETE FROM events WHERE id = $1", eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

// PublishEvent moves a draft event to published. One-way: there is no
// unpublish.
func (s *Server) PublishEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	ctx := c.Request.Context()
	query := `
		UPDATE events
		SET status = 'published', updated_at = NOW()
		WHERE id = $1
		RETURNING id, title, description, category, status, image_url, date, location, coordinator_id, created_at, updated_at
	`

	var event models.Event
	err = s.db.Pool.QueryRow(ctx, query, eventID).Scan(
		&event.ID, &event.Title, &event.Description, &event.Category, &event.Status, &event.ImageURL,
		&event.Date, &event.Location, &event.CoordinatorID, &event.CreatedAt, &event.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish event"})
		return
	}

	c.JSON(http.StatusOK, event)
}

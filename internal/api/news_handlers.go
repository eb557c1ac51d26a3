package api

import (
	"errors"
	"net/http"

	"paperhub-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const newsColumns = `id, title, summary, content, category, status, COALESCE(image_url, ''), author_id, created_at, updated_at`

func scanNews(row pgx.Row, n *models.News) error {
	return row.Scan(
		&n.ID, &n.Title, &n.Summary, &n.Content, &n.Category, &n.Status,
		&n.ImageURL, &n.AuthorID, &n.CreatedAt, &n.UpdatedAt,
	)
}

func (s *Server) GetNews(c *gin.Context) {
	status := c.Query("status")

	ctx := c.Request.Context()
	query := `SELECT ` + newsColumns + ` FROM news`
	if status != "" {
		query += ` WHERE status = $1`
	}
	query += ` ORDER BY created_at DESC`

	var rows pgx.Rows
	var err error
	if status != "" {
		rows, err = s.db.Pool.Query(ctx, query, status)
	} else {
		rows, err = s.db.Pool.Query(ctx, query)
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch news"})
		return
	}
	defer rows.Close()

	newsList := []models.News{}
	for rows.Next() {
		var news models.News
		if err := scanNews(rows, &news); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan news"})
			return
		}
		newsList = append(newsList, news)
	}

	c.JSON(http.StatusOK, newsList)
}

func (s *Server) CreateNews(c *gin.Context) {
	var req models.CreateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("user_id")
	authorID, err := uuid.Parse(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx := c.Request.Context()
	query := `
		INSERT INTO news (title, summary, content, category, status, image_url, author_id)
		VALUES ($1, $2, $3, $4, 'draft', $5, $6)
		RETURNING ` + newsColumns

	var news models.News
	err = scanNews(s.db.Pool.QueryRow(ctx, query, req.Title, req.Summary, req.Content, req.Category, req.ImageURL, authorID), &news)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create news"})
		return
	}

	c.JSON(http.StatusCreated, news)
}

func (s *Server) UpdateNews(c *gin.Context) {
	newsID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid news ID"})
		return
	}

	var req models.UpdateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	query := `
		UPDATE news
		SET title = $1, summary = $2, content = $3, category = $4, image_url = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING ` + newsColumns

	var news models.News
	err = scanNews(s.db.Pool.QueryRow(ctx, query, req.Title, req.Summary, req.Content, req.Category, req.ImageURL, newsID), &news)
	if errors.Is(err, pgx.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "News not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update news"})
		return
	}

	c.JSON(http.StatusOK, news)
}

func (s *Server) DeleteNews(c *gin.Context) {
	newsID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid news ID"})
		return
	}

	ctx := c.Request.Context()
	_, err = s.db.Pool.Exec(ctx, "DELETE FROM news WHERE id = $1", newsID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete news"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "News deleted successfully"})
}

// PublishNews moves a draft article to published. One-way.
func (s *Server) PublishNews(c *gin.Context) {
	newsID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid news ID"})
		return
	}

	ctx := c.Request.Context()
	query := `
		UPDATE news
		SET status = 'published', updated_at = NOW()
		WHERE id = $1
		RETURNING ` + newsColumns

	var news models.News
	err = scanNews(s.db.Pool.QueryRow(ctx, query, newsID), &news)
	if errors.Is(err, pgx.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "News not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish news"})
		return
	}

	c.JSON(http.StatusOK, news)
}

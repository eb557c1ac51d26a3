package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetAdmins lists admin users, so editors know who receives their
// recommendations and messages.
func (s *Server) GetAdmins(c *gin.Context) {
	ctx := c.Request.Context()

	rows, err := s.db.Pool.Query(ctx,
		"SELECT id, name, email, role, avatar FROM users WHERE role = 'admin' ORDER BY name ASC")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch admins"})
		return
	}
	defer rows.Close()

	admins := []gin.H{}
	for rows.Next() {
		var id uuid.UUID
		var name, email, role, avatar string
		if err := rows.Scan(&id, &name, &email, &role, &avatar); err != nil {
			continue
		}
		admins = append(admins, gin.H{
			"id":     id,
			"name":   name,
			"email":  email,
			"role":   role,
			"avatar": avatar,
		})
	}

	c.JSON(http.StatusOK, admins)
}

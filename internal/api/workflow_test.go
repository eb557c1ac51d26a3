package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"paperhub-backend/internal/config"
	"paperhub-backend/internal/database"
	"paperhub-backend/internal/models"
	"paperhub-backend/internal/workflow"
	"paperhub-backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRouter wires the full API against the database named in the
// environment. Tests that use it are integration tests: without a reachable
// database they skip rather than fail.
func setupTestRouter(t *testing.T) (*gin.Engine, *database.Database) {
	t.Helper()

	cfg := config.New()
	db, err := database.NewConnection(cfg)
	if err != nil {
		t.Skipf("database not available, skipping: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		db.Close()
		t.Skipf("migrations failed, skipping: %v", err)
	}
	t.Cleanup(db.Close)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, db, cfg, ws.NewHub())
	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), "body: %s", w.Body.String())
}

// registerUser creates a throwaway user with a unique email and returns its
// id and token. The caller's cleanup deletes the row, cascading to papers,
// reviews and notifications.
func registerUser(t *testing.T, router *gin.Engine, db *database.Database, role string) (uuid.UUID, string) {
	t.Helper()

	email := fmt.Sprintf("%s-%s@test.example.com", role, uuid.New().String()[:8])
	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    email,
		"password": "password123",
		"name":     "Test " + role,
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, w.Code, "register %s: %s", role, w.Body.String())

	var resp models.LoginResponse
	decodeJSON(t, w, &resp)
	require.NotEmpty(t, resp.Token)

	t.Cleanup(func() {
		db.Pool.Exec(context.Background(), "DELETE FROM users WHERE id = $1", resp.User.ID)
	})
	return resp.User.ID, resp.Token
}

func TestPaperLifecycle(t *testing.T) {
	router, db := setupTestRouter(t)

	_, authorToken := registerUser(t, router, db, "author")
	_, editorToken := registerUser(t, router, db, "editor")
	adminID, adminToken := registerUser(t, router, db, "admin")

	// Author submits a paper.
	w := doJSON(t, router, http.MethodPost, "/api/v1/papers", authorToken, gin.H{
		"title":    "Integration Test Paper",
		"abstract": "Exercises the full lifecycle.",
		"file_url": "https://example.com/test.pdf",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var paper models.Paper
	decodeJSON(t, w, &paper)
	assert.Equal(t, workflow.StatusSubmitted, paper.Status)
	paperPath := "/api/v1/papers/" + paper.ID.String()

	// Editor cannot recommend before reviewing.
	w = doJSON(t, router, http.MethodPost, paperPath+"/recommend", editorToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// Editor reviews it.
	w = doJSON(t, router, http.MethodPost, "/api/v1/reviews", editorToken, gin.H{
		"paper_id":       paper.ID,
		"rating":         80,
		"comments":       "Solid methodology.",
		"recommendation": "accept",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// With a review on file the paper displays as under_review.
	w = doJSON(t, router, http.MethodGet, paperPath+"/summary", editorToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var summary models.PaperWithReviews
	decodeJSON(t, w, &summary)
	assert.Equal(t, workflow.StatusUnderReview, summary.Status)
	assert.Equal(t, 80.0, summary.AverageScore)
	assert.Equal(t, "1 Accept", summary.RecommendationSummary)

	// Author cannot approve their own paper.
	w = doJSON(t, router, http.MethodPut, paperPath, authorToken, gin.H{
		"title":  paper.Title,
		"status": workflow.StatusApproved,
	})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// Editor recommends it; admins get notified.
	w = doJSON(t, router, http.MethodPost, paperPath+"/recommend", editorToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeJSON(t, w, &paper)
	assert.Equal(t, workflow.StatusRecommended, paper.Status)

	w = doJSON(t, router, http.MethodGet, "/api/v1/notifications", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var notifications []models.Notification
	decodeJSON(t, w, &notifications)
	var linked *models.Notification
	for i := range notifications {
		n := notifications[i]
		if n.UserID == adminID && n.PaperID != nil && *n.PaperID == paper.ID {
			linked = &notifications[i]
			break
		}
	}
	require.NotNil(t, linked, "admin should be notified about the recommendation")
	assert.False(t, linked.IsRead)

	// Replaying the recommendation is rejected and fans out nothing.
	var notifyCount int
	require.NoError(t, db.Pool.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM notifications WHERE paper_id = $1", paper.ID).Scan(&notifyCount))

	w = doJSON(t, router, http.MethodPost, paperPath+"/recommend", editorToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	var afterReplay int
	require.NoError(t, db.Pool.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM notifications WHERE paper_id = $1", paper.ID).Scan(&afterReplay))
	assert.Equal(t, notifyCount, afterReplay, "replayed recommend must not notify again")

	// Marking read is idempotent.
	readPath := fmt.Sprintf("/api/v1/notifications/%d/read", linked.ID)
	w = doJSON(t, router, http.MethodPut, readPath, adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = doJSON(t, router, http.MethodPut, readPath, adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Admin approves, then publishes.
	w = doJSON(t, router, http.MethodPut, paperPath, adminToken, gin.H{
		"title":  paper.Title,
		"status": workflow.StatusApproved,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeJSON(t, w, &paper)
	assert.Equal(t, workflow.StatusApproved, paper.Status)

	w = doJSON(t, router, http.MethodPut, paperPath, adminToken, gin.H{
		"title":  paper.Title,
		"status": workflow.StatusPublished,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeJSON(t, w, &paper)
	assert.Equal(t, workflow.StatusPublished, paper.Status)

	// Published is terminal.
	w = doJSON(t, router, http.MethodPut, paperPath, adminToken, gin.H{
		"title":  paper.Title,
		"status": workflow.StatusSubmitted,
	})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
}

func TestReviewUpsert(t *testing.T) {
	router, db := setupTestRouter(t)

	_, authorToken := registerUser(t, router, db, "author")
	_, editorToken := registerUser(t, router, db, "editor")

	w := doJSON(t, router, http.MethodPost, "/api/v1/papers", authorToken, gin.H{
		"title":    "Upsert Test Paper",
		"abstract": "One review per reviewer.",
		"file_url": "https://example.com/upsert.pdf",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var paper models.Paper
	decodeJSON(t, w, &paper)

	review := gin.H{
		"paper_id":       paper.ID,
		"rating":         60,
		"comments":       "Needs work.",
		"recommendation": "major_revision",
	}
	w = doJSON(t, router, http.MethodPost, "/api/v1/reviews", editorToken, review)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var first models.Review
	decodeJSON(t, w, &first)

	// Resubmitting overwrites in place rather than adding a second row.
	review["rating"] = 90
	review["recommendation"] = "accept"
	w = doJSON(t, router, http.MethodPost, "/api/v1/reviews", editorToken, review)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var second models.Review
	decodeJSON(t, w, &second)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 90, second.Rating)

	var count int
	err := db.Pool.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM reviews WHERE paper_id = $1", paper.ID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPaperOwnership(t *testing.T) {
	router, db := setupTestRouter(t)

	_, ownerToken := registerUser(t, router, db, "author")
	_, otherToken := registerUser(t, router, db, "author")

	w := doJSON(t, router, http.MethodPost, "/api/v1/papers", ownerToken, gin.H{
		"title":    "Ownership Test Paper",
		"abstract": "Only the author may edit or delete.",
		"file_url": "https://example.com/ownership.pdf",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var paper models.Paper
	decodeJSON(t, w, &paper)
	paperPath := "/api/v1/papers/" + paper.ID.String()

	// Another author can neither edit nor delete it.
	w = doJSON(t, router, http.MethodPut, paperPath, otherToken, gin.H{
		"title": "Hijacked Title",
	})
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodDelete, paperPath, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	// The owner still can.
	w = doJSON(t, router, http.MethodPut, paperPath, ownerToken, gin.H{
		"title": "Revised Title",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodDelete, paperPath, ownerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestRoleGatesOnRoutes(t *testing.T) {
	router, db := setupTestRouter(t)

	_, authorToken := registerUser(t, router, db, "author")
	_, editorToken := registerUser(t, router, db, "editor")

	// Authors cannot file reviews.
	w := doJSON(t, router, http.MethodPost, "/api/v1/reviews", authorToken, gin.H{
		"paper_id":       uuid.New(),
		"rating":         50,
		"comments":       "x",
		"recommendation": "reject",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Editors cannot create events.
	w = doJSON(t, router, http.MethodPost, "/api/v1/events", editorToken, gin.H{
		"title": "Sneaky Event",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// No token at all gets 401.
	w = doJSON(t, router, http.MethodGet, "/api/v1/papers", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

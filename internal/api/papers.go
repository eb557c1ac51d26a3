package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"paperhub-backend/internal/models"
	"paperhub-backend/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const paperColumns = `id, title, abstract, content, file_url, author_id, status, type,
	institution_code, publication_id, publication_date, publication_type, journal_type, journal_name,
	fiscal_year, allocated_budget, external_budget, research_type, completion_status,
	pi_name, pi_gender, co_investigators, ethical_clearance, created_at, updated_at`

func scanPaper(row pgx.Row, p *models.Paper) error {
	return row.Scan(
		&p.ID, &p.Title, &p.Abstract, &p.Content, &p.FileURL, &p.AuthorID, &p.Status, &p.Type,
		&p.InstitutionCode, &p.PublicationID, &p.PublicationDate, &p.PublicationType, &p.JournalType, &p.JournalName,
		&p.FiscalYear, &p.AllocatedBudget, &p.ExternalBudget, &p.ResearchType, &p.CompletionStatus,
		&p.PIName, &p.PIGender, &p.CoInvestigators, &p.EthicalClearance, &p.CreatedAt, &p.UpdatedAt,
	)
}

// GetPapers returns the full paper collection with author info. Queue
// partitioning (editor/admin views) happens over this snapshot.
func (s *Server) GetPapers(c *gin.Context) {
	ctx := c.Request.Context()

	query := `
		SELECT p.id, p.title, p.abstract, p.content, p.file_url, p.author_id, p.status, p.type,
			   p.institution_code, p.publication_id, p.publication_date, p.publication_type, p.journal_type, p.journal_name,
			   p.fiscal_year, p.allocated_budget, p.external_budget, p.research_type, p.completion_status,
			   p.pi_name, p.pi_gender, p.co_investigators, p.ethical_clearance, p.created_at, p.updated_at,
			   u.name as author_name, u.email as author_email
		FROM papers p
		LEFT JOIN users u ON p.author_id = u.id
		ORDER BY p.created_at DESC
	`

	rows, err := s.db.Pool.Query(ctx, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch papers"})
		return
	}
	defer rows.Close()

	papers := []models.PaperWithAuthor{}
	for rows.Next() {
		var p models.PaperWithAuthor
		err := rows.Scan(
			&p.ID, &p.Title, &p.Abstract, &p.Content, &p.FileURL, &p.AuthorID, &p.Status, &p.Type,
			&p.InstitutionCode, &p.PublicationID, &p.PublicationDate, &p.PublicationType, &p.JournalType, &p.JournalName,
			&p.FiscalYear, &p.AllocatedBudget, &p.ExternalBudget, &p.ResearchType, &p.CompletionStatus,
			&p.PIName, &p.PIGender, &p.CoInvestigators, &p.EthicalClearance, &p.CreatedAt, &p.UpdatedAt,
			&p.AuthorName, &p.AuthorEmail,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan paper"})
			return
		}
		papers = append(papers, p)
	}

	c.JSON(http.StatusOK, papers)
}

// CreatePaper registers a new submission. Title, abstract and file are
// required; the paper lands in submitted.
func (s *Server) CreatePaper(c *gin.Context) {
	var req models.CreatePaperRequest
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

	paperType := req.Type
	if paperType == "" {
		paperType = "research"
	}

	ctx := c.Request.Context()
	query := `
		INSERT INTO papers (title, abstract, content, file_url, author_id, status, type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + paperColumns

	var paper models.Paper
	err = scanPaper(s.db.Pool.QueryRow(ctx, query,
		req.Title, req.Abstract, req.Content, req.FileURL, authorID, workflow.StatusSubmitted, paperType), &paper)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create paper"})
		return
	}

	c.JSON(http.StatusCreated, paper)
}

// reviewFacts gathers the transition preconditions for a paper: whether any
// review exists, and whether the acting user has one.
func (s *Server) reviewFacts(ctx context.Context, paperID, actorID uuid.UUID) (workflow.TransitionContext, error) {
	var tctx workflow.TransitionContext

	var total, own int
	err := s.db.Pool.QueryRow(ctx,
		"SELECT COUNT(*), COUNT(*) FILTER (WHERE reviewer_id = $2) FROM reviews WHERE paper_id = $1",
		paperID, actorID,
	).Scan(&total, &own)
	if err != nil {
		return tctx, err
	}

	tctx.PaperHasReviews = total > 0
	tctx.ActorHasReview = own > 0
	return tctx, nil
}

// UpdatePaper edits a paper and, when the request carries a new status, runs
// the transition through the lifecycle rules. The UPDATE is guarded by the
// status the transition was checked against, so a raced change loses cleanly.
func (s *Server) UpdatePaper(c *gin.Context) {
	paperID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper ID"})
		return
	}

	var req models.UpdatePaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	var currentStatus string
	var ownerID uuid.UUID
	err = s.db.Pool.QueryRow(ctx, "SELECT status, author_id FROM papers WHERE id = $1", paperID).Scan(&currentStatus, &ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Paper not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch paper"})
		return
	}

	// Authors may only touch their own papers. Editors and admins act on
	// papers regardless of ownership, gated by the transition rules.
	if c.GetString("role") == workflow.RoleAuthor && ownerID.String() != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your paper"})
		return
	}

	newStatus := currentStatus
	if req.Status != "" && req.Status != currentStatus {
		actorID, _ := uuid.Parse(c.GetString("user_id"))
		tctx, err := s.reviewFacts(ctx, paperID, actorID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
			return
		}
		if err := workflow.CanTransition(currentStatus, req.Status, c.GetString("role"), tctx); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		newStatus = req.Status
	}

	query := `
		UPDATE papers
		SET title = $1, abstract = $2, content = $3, file_url = COALESCE(NULLIF($4, ''), file_url),
			type = COALESCE(NULLIF($5, ''), type), status = $6, updated_at = NOW()
		WHERE id = $7 AND status = $8
		RETURNING ` + paperColumns

	var paper models.Paper
	err = scanPaper(s.db.Pool.QueryRow(ctx, query,
		req.Title, req.Abstract, req.Content, req.FileURL, req.Type, newStatus, paperID, currentStatus), &paper)
	if errors.Is(err, pgx.ErrNoRows) {
		c.JSON(http.StatusConflict, gin.H{"error": "Paper was modified by someone else, reload and retry"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update paper"})
		return
	}

	c.JSON(http.StatusOK, paper)
}

func (s *Server) DeletePaper(c *gin.Context) {
	paperID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper ID"})
		return
	}

	ctx := c.Request.Context()

	var ownerID uuid.UUID
	err = s.db.Pool.QueryRow(ctx, "SELECT author_id FROM papers WHERE id = $1", paperID).Scan(&ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Paper not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch paper"})
		return
	}

	if c.GetString("role") == workflow.RoleAuthor && ownerID.String() != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your paper"})
		return
	}

	_, err = s.db.Pool.Exec(ctx, "DELETE FROM papers WHERE id = $1", paperID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete paper"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Paper deleted successfully"})
}

// RecommendPaper moves a reviewed paper to recommended_for_publication and
// notifies every admin, linking the paper for deep-linking.
func (s *Server) RecommendPaper(c *gin.Context) {
	paperID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper ID"})
		return
	}

	editorID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx := c.Request.Context()

	var currentStatus, title string
	err = s.db.Pool.QueryRow(ctx, "SELECT status, title FROM papers WHERE id = $1", paperID).Scan(&currentStatus, &title)
	if errors.Is(err, pgx.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Paper not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch paper"})
		return
	}

	tctx, err := s.reviewFacts(ctx, paperID, editorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	if err := workflow.CanTransition(currentStatus, workflow.StatusRecommended, c.GetString("role"), tctx); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	query := `
		UPDATE papers
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING ` + paperColumns

	var paper models.Paper
	err = scanPaper(s.db.Pool.QueryRow(ctx, query, workflow.StatusRecommended, paperID, currentStatus), &paper)
	if errors.Is(err, pgx.ErrNoRows) {
		c.JSON(http.StatusConflict, gin.H{"error": "Paper was modified by someone else, reload and retry"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to recommend paper"})
		return
	}

	var editorName string
	s.db.Pool.QueryRow(ctx, "SELECT name FROM users WHERE id = $1", editorID).Scan(&editorName)

	message := fmt.Sprintf("%s recommended \"%s\" for publication", editorName, title)
	rows, err := s.db.Pool.Query(ctx, "SELECT id FROM users WHERE role = 'admin'")
	if err == nil {
		defer rows.Close()
		for rows.Next() {
			var adminID uuid.UUID
			if err := rows.Scan(&adminID); err != nil {
				continue
			}
			s.notifyUser(ctx, adminID, message, &paperID)
		}
	}

	c.JSON(http.StatusOK, paper)
}

// UpdatePaperDetails records the validated publication metadata attached by
// an editor or coordinator. A publication ID is generated when absent.
func (s *Server) UpdatePaperDetails(c *gin.Context) {
	paperID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper ID"})
		return
	}

	var req models.PaperDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	publicationID := req.PublicationID
	if publicationID == "" {
		publicationID = fmt.Sprintf("%s-%s", req.InstitutionCode, uuid.New().String()[:8])
	}

	var publicationDate interface{}
	if !req.PublicationDate.IsZero() {
		publicationDate = req.PublicationDate
	}

	ctx := c.Request.Context()
	query := `
		UPDATE papers
		SET institution_code = $1, publication_id = $2, publication_date = $3, publication_type = $4,
			journal_type = $5, journal_name = $6, fiscal_year = $7, allocated_budget = $8,
			external_budget = $9, research_type = $10, completion_status = $11,
			pi_name = $12, pi_gender = $13, co_investigators = $14, ethical_clearance = $15,
			updated_at = NOW()
		WHERE id = $16
		RETURNING ` + paperColumns

	var paper models.Paper
	err = scanPaper(s.db.Pool.QueryRow(ctx, query,
		req.InstitutionCode, publicationID, publicationDate, req.PublicationType,
		req.JournalType, req.JournalName, req.FiscalYear, req.AllocatedBudget,
		req.ExternalBudget, req.ResearchType, req.CompletionStatus,
		req.PIName, req.PIGender, req.CoInvestigators, req.EthicalClearance, paperID), &paper)
	if errors.Is(err, pgx.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Paper not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update paper details"})
		return
	}

	c.JSON(http.StatusOK, paper)
}

package api

import (
	"context"
	"errors"
	"net/http"

	"paperhub-backend/internal/models"
	"paperhub-backend/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (s *Server) loadPapers(ctx context.Context) ([]models.Paper, error) {
	rows, err := s.db.Pool.Query(ctx, "SELECT "+paperColumns+" FROM papers ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	papers := []models.Paper{}
	for rows.Next() {
		var p models.Paper
		if err := scanPaper(rows, &p); err != nil {
			return nil, err
		}
		papers = append(papers, p)
	}
	return papers, rows.Err()
}

func (s *Server) loadReviews(ctx context.Context) ([]models.Review, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, paper_id, reviewer_id, rating, comments, recommendation
		FROM reviews
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.PaperID, &r.ReviewerID, &r.Rating, &r.Comments, &r.Recommendation); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// GetPaperQueues serves the role-specific dashboard partition. Editors get
// their for-review/reviewed split, admins the pending/approved/rejected/
// validated buckets. The partition is recomputed per request from the live
// tables.
func (s *Server) GetPaperQueues(c *gin.Context) {
	ctx := c.Request.Context()
	role := c.GetString("role")

	papers, err := s.loadPapers(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch papers"})
		return
	}
	reviews, err := s.loadReviews(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	reviewCounts := make(map[uuid.UUID]int)
	for _, r := range reviews {
		reviewCounts[r.PaperID]++
	}
	for i := range papers {
		papers[i].Status = workflow.EffectiveStatus(papers[i].Status, reviewCounts[papers[i].ID])
	}

	switch role {
	case workflow.RoleEditor:
		editorID, err := uuid.Parse(c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}
		reviewable := []models.Paper{}
		for _, p := range papers {
			if p.Status == workflow.StatusSubmitted || p.Status == workflow.StatusUnderReview {
				reviewable = append(reviewable, p)
			}
		}
		q := workflow.PartitionForEditor(reviewable, reviews, editorID)
		c.JSON(http.StatusOK, gin.H{
			"for_review": q.ForReview,
			"reviewed":   q.Reviewed,
		})

	case workflow.RoleAdmin:
		q := workflow.PartitionForAdmin(papers, reviewCounts)
		c.JSON(http.StatusOK, gin.H{
			"pending":   q.Pending,
			"approved":  q.Approved,
			"rejected":  q.Rejected,
			"validated": q.Validated,
		})

	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "No queue view for this role"})
	}
}

// GetPaperSummary returns one paper with its review aggregate: the displayed
// status, average rating and recommendation tally.
func (s *Server) GetPaperSummary(c *gin.Context) {
	paperID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paper ID"})
		return
	}

	ctx := c.Request.Context()

	var paper models.PaperWithReviews
	query := `
		SELECT p.id, p.title, p.abstract, p.content, p.file_url, p.author_id, p.status, p.type,
			   p.institution_code, p.publication_id, p.publication_date, p.publication_type, p.journal_type, p.journal_name,
			   p.fiscal_year, p.allocated_budget, p.external_budget, p.research_type, p.completion_status,
			   p.pi_name, p.pi_gender, p.co_investigators, p.ethical_clearance, p.created_at, p.updated_at,
			   u.name as author_name, u.email as author_email
		FROM papers p
		LEFT JOIN users u ON p.author_id = u.id
		WHERE p.id = $1
	`
	err = s.db.Pool.QueryRow(ctx, query, paperID).Scan(
		&paper.ID, &paper.Title, &paper.Abstract, &paper.Content, &paper.FileURL, &paper.AuthorID, &paper.Status, &paper.Type,
		&paper.InstitutionCode, &paper.PublicationID, &paper.PublicationDate, &paper.PublicationType, &paper.JournalType, &paper.JournalName,
		&paper.FiscalYear, &paper.AllocatedBudget, &paper.ExternalBudget, &paper.ResearchType, &paper.CompletionStatus,
		&paper.PIName, &paper.PIGender, &paper.CoInvestigators, &paper.EthicalClearance, &paper.CreatedAt, &paper.UpdatedAt,
		&paper.AuthorName, &paper.AuthorEmail,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Paper not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch paper"})
		return
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, paper_id, reviewer_id, rating, comments, recommendation
		FROM reviews
		WHERE paper_id = $1
		ORDER BY created_at DESC
	`, paperID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.PaperID, &r.ReviewerID, &r.Rating, &r.Comments, &r.Recommendation); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan review"})
			return
		}
		reviews = append(reviews, r)
	}

	paper.Status = workflow.EffectiveStatus(paper.Status, len(reviews))
	paper.Reviews = reviews
	paper.AverageScore = workflow.AverageScore(reviews)
	paper.RecommendationSummary = workflow.RecommendationSummary(reviews)

	c.JSON(http.StatusOK, paper)
}

package api

import (
	"errors"
	"net/http"

	"paperhub-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (s *Server) GetReviews(c *gin.Context) {
	ctx := c.Request.Context()

	paperID := c.Query("paper_id")
	var query string
	var args []interface{}

	if paperID != "" {
		query = `
			SELECT r.id, r.paper_id, r.reviewer_id, r.rating,
				   r.problem_statement, r.literature_review, r.methodology, r.results, r.conclusion,
				   r.originality, r.clarity_organization, r.contribution_knowledge, r.technical_quality,
				   r.comments, r.recommendation, r.created_at, r.updated_at,
				   reviewer.name as reviewer_name, reviewer.email as reviewer_email,
				   p.title as paper_title
			FROM reviews r
			LEFT JOIN users reviewer ON r.reviewer_id = reviewer.id
			LEFT JOIN papers p ON r.paper_id = p.id
			WHERE r.paper_id = $1
			ORDER BY r.created_at DESC
		`
		args = append(args, paperID)
	} else {
		query = `
			SELECT r.id, r.paper_id, r.reviewer_id, r.rating,
				   r.problem_statement, r.literature_review, r.methodology, r.results, r.conclusion,
				   r.originality, r.clarity_organization, r.contribution_knowledge, r.technical_quality,
				   r.comments, r.recommendation, r.created_at, r.updated_at,
				   reviewer.name as reviewer_name, reviewer.email as reviewer_email,
				   p.title as paper_title
			FROM reviews r
			LEFT JOIN users reviewer ON r.reviewer_id = reviewer.id
			LEFT JOIN papers p ON r.paper_id = p.id
			ORDER BY r.created_at DESC
		`
	}

	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}
	defer rows.Close()

	reviews := []models.ReviewWithReviewer{}
	for rows.Next() {
		var r models.ReviewWithReviewer
		err := rows.Scan(
			&r.ID, &r.PaperID, &r.ReviewerID, &r.Rating,
			&r.ProblemStatement, &r.LiteratureReview, &r.Methodology, &r.Results, &r.Conclusion,
			&r.Originality, &r.ClarityOrg, &r.Contribution, &r.TechnicalQuality,
			&r.Comments, &r.Recommendation, &r.CreatedAt, &r.UpdatedAt,
			&r.ReviewerName, &r.ReviewerEmail, &r.PaperTitle,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan review"})
			return
		}
		reviews = append(reviews, r)
	}

	c.JSON(http.StatusOK, reviews)
}

// CreateReview upserts the editor's review of a paper. One review per
// (paper, reviewer); resubmission overwrites the previous one.
func (s *Server) CreateReview(c *gin.Context) {
	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("user_id")
	reviewerID, err := uuid.Parse(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx := c.Request.Context()

	var paper models.Paper
	err = s.db.Pool.QueryRow(ctx, "SELECT id, status FROM papers WHERE id = $1", req.PaperID).Scan(&paper.ID, &paper.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Paper not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch paper"})
		return
	}
	if !paper.CanReview() {
		c.JSON(http.StatusConflict, gin.H{"error": "Paper is not open for review"})
		return
	}

	query := `
		INSERT INTO reviews (paper_id, reviewer_id, rating,
			problem_statement, literature_review, methodology, results, conclusion,
			originality, clarity_organization, contribution_knowledge, technical_quality,
			comments, recommendation)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (paper_id, reviewer_id) DO UPDATE SET
			rating = EXCLUDED.rating,
			problem_statement = EXCLUDED.problem_statement,
			literature_review = EXCLUDED.literature_review,
			methodology = EXCLUDED.methodology,
			results = EXCLUDED.results,
			conclusion = EXCLUDED.conclusion,
			originality = EXCLUDED.originality,
			clarity_organization = EXCLUDED.clarity_organization,
			contribution_knowledge = EXCLUDED.contribution_knowledge,
			technical_quality = EXCLUDED.technical_quality,
			comments = EXCLUDED.comments,
			recommendation = EXCLUDED.recommendation,
			updated_at = NOW()
		RETURNING id, paper_id, reviewer_id, rating,
			problem_statement, literature_review, methodology, results, conclusion,
			originality, clarity_organization, contribution_knowledge, technical_quality,
			comments, recommendation, created_at, updated_at
	`

	var review models.Review
	err = s.db.Pool.QueryRow(ctx, query,
		req.PaperID, reviewerID, req.Rating,
		req.ProblemStatement, req.LiteratureReview, req.Methodology, req.Results, req.Conclusion,
		req.Originality, req.ClarityOrg, req.Contribution, req.TechnicalQuality,
		req.Comments, req.Recommendation,
	).Scan(
		&review.ID, &review.PaperID, &review.ReviewerID, &review.Rating,
		&review.ProblemStatement, &review.LiteratureReview, &review.Methodology, &review.Results, &review.Conclusion,
		&review.Originality, &review.ClarityOrg, &review.Contribution, &review.TechnicalQuality,
		&review.Comments, &review.Recommendation, &review.CreatedAt, &review.UpdatedAt,
	)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	c.JSON(http.StatusCreated, review)
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Paper is a submitted research artifact moving through the review and
// publication workflow.
type Paper struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Abstract  string    `json:"abstract" db:"abstract"`
	Content   string    `json:"content" db:"content"`
	FileURL   string    `json:"file_url" db:"file_url"`
	AuthorID  uuid.UUID `json:"author_id" db:"author_id"`
	Status    string    `json:"status" db:"status"`
	Type      string    `json:"type" db:"type"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Validated publication details, filled in by an editor after review.
	InstitutionCode  string     `json:"institution_code" db:"institution_code"`
	PublicationID    string     `json:"publication_id" db:"publication_id"`
	PublicationDate  *time.Time `json:"publication_date" db:"publication_date"`
	PublicationType  string     `json:"publication_type" db:"publication_type"`
	JournalType      string     `json:"journal_type" db:"journal_type"`
	JournalName      string     `json:"journal_name" db:"journal_name"`
	FiscalYear       string     `json:"fiscal_year" db:"fiscal_year"`
	AllocatedBudget  float64    `json:"allocated_budget" db:"allocated_budget"`
	ExternalBudget   float64    `json:"external_budget" db:"external_budget"`
	ResearchType     string     `json:"research_type" db:"research_type"`
	CompletionStatus string     `json:"completion_status" db:"completion_status"`
	PIName           string     `json:"pi_name" db:"pi_name"`
	PIGender         string     `json:"pi_gender" db:"pi_gender"`
	CoInvestigators  string     `json:"co_investigators" db:"co_investigators"`
	EthicalClearance string     `json:"ethical_clearance" db:"ethical_clearance"`
}

// CreatePaperRequest covers author submission. Title, abstract and file are
// all required; a paper without a file never reaches the database.
type CreatePaperRequest struct {
	Title    string `json:"title" binding:"required,max=500"`
	Abstract string `json:"abstract" binding:"required"`
	Content  string `json:"content"`
	FileURL  string `json:"file_url" binding:"required"`
	Type     string `json:"type" binding:"omitempty,oneof=research thesis review case_study short_communication"`
}

type UpdatePaperRequest struct {
	Title    string `json:"title" binding:"required,max=500"`
	Abstract string `json:"abstract"`
	Content  string `json:"content"`
	FileURL  string `json:"file_url"`
	Type     string `json:"type" binding:"omitempty,oneof=research thesis review case_study short_communication"`
	Status   string `json:"status" binding:"omitempty,oneof=draft submitted under_review recommended_for_publication approved rejected published"`
}

// PaperDetailsRequest carries the validated publication metadata an editor
// or coordinator attaches via PUT /papers/:id/details.
type PaperDetailsRequest struct {
	InstitutionCode  string    `json:"institution_code" binding:"required"`
	PublicationID    string    `json:"publication_id"`
	PublicationDate  time.Time `json:"publication_date"`
	PublicationType  string    `json:"publication_type"`
	JournalType      string    `json:"journal_type"`
	JournalName      string    `json:"journal_name"`
	FiscalYear       string    `json:"fiscal_year"`
	AllocatedBudget  float64   `json:"allocated_budget"`
	ExternalBudget   float64   `json:"external_budget"`
	ResearchType     string    `json:"research_type"`
	CompletionStatus string    `json:"completion_status"`
	PIName           string    `json:"pi_name" binding:"required"`
	PIGender         string    `json:"pi_gender"`
	CoInvestigators  string    `json:"co_investigators"`
	EthicalClearance string    `json:"ethical_clearance"`
}

type PaperWithAuthor struct {
	Paper
	AuthorName  string `json:"author_name" db:"author_name"`
	AuthorEmail string `json:"author_email" db:"author_email"`
}

type PaperWithReviews struct {
	PaperWithAuthor
	Reviews               []Review `json:"reviews,omitempty"`
	AverageScore          float64  `json:"average_score"`
	RecommendationSummary string   `json:"recommendation_summary,omitempty"`
}

func (p *Paper) IsDraft() bool {
	return p.Status == "draft"
}

func (p *Paper) IsSubmitted() bool {
	return p.Status == "submitted"
}

func (p *Paper) IsPublished() bool {
	return p.Status == "published"
}

func (p *Paper) CanEdit() bool {
	return p.IsDraft()
}

// CanReview reports whether the paper is in a state editors may review.
func (p *Paper) CanReview() bool {
	return p.Status == "submitted" || p.Status == "under_review"
}

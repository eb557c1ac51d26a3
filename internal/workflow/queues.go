package workflow

import (
	"github.com/google/uuid"

	"paperhub-backend/internal/models"
)

// Queue partitioning is recomputed from raw collections on every call rather
// than cached, so there is no invalidation state to get wrong.

// EditorQueues splits papers into those the editor still has to review and
// those they have already reviewed. A paper stays in ForReview until this
// specific editor submits a review; other editors' reviews do not move it.
type EditorQueues struct {
	ForReview []models.Paper
	Reviewed  []models.Paper
}

func PartitionForEditor(papers []models.Paper, reviews []models.Review, editorID uuid.UUID) EditorQueues {
	reviewedPapers := make(map[uuid.UUID]bool)
	for _, r := range reviews {
		if r.ReviewerID == editorID {
			reviewedPapers[r.PaperID] = true
		}
	}

	var q EditorQueues
	for _, p := range papers {
		if reviewedPapers[p.ID] {
			q.Reviewed = append(q.Reviewed, p)
		} else {
			q.ForReview = append(q.ForReview, p)
		}
	}
	return q
}

// AdminQueues partitions papers for the admin dashboard. Validated is
// independent of status: any paper whose publication details have been
// filled in by an editor shows up there.
type AdminQueues struct {
	Pending   []models.Paper
	Approved  []models.Paper
	Rejected  []models.Paper
	Validated []models.Paper
}

func PartitionForAdmin(papers []models.Paper, reviewCounts map[uuid.UUID]int) AdminQueues {
	var q AdminQueues
	for _, p := range papers {
		switch {
		case p.Status == StatusRecommended:
			q.Pending = append(q.Pending, p)
		case p.Status == StatusUnderReview && reviewCounts[p.ID] > 0:
			q.Pending = append(q.Pending, p)
		case p.Status == StatusApproved:
			q.Approved = append(q.Approved, p)
		case p.Status == StatusRejected:
			q.Rejected = append(q.Rejected, p)
		}
		if IsValidated(&p) {
			q.Validated = append(q.Validated, p)
		}
	}
	return q
}

// IsValidated reports whether an editor has attached publication details.
// Presence of a PI name or institution code is the agreed proxy.
func IsValidated(p *models.Paper) bool {
	return p.PIName != "" || p.InstitutionCode != ""
}

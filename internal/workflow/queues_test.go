package workflow

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paperhub-backend/internal/models"
)

func paper(status string) models.Paper {
	return models.Paper{ID: uuid.New(), Status: status}
}

func TestPartitionForEditor(t *testing.T) {
	editor := uuid.New()
	otherEditor := uuid.New()

	reviewed := paper(StatusUnderReview)
	unreviewed := paper(StatusSubmitted)
	reviewedByOther := paper(StatusUnderReview)

	papers := []models.Paper{reviewed, unreviewed, reviewedByOther}
	reviews := []models.Review{
		{PaperID: reviewed.ID, ReviewerID: editor},
		{PaperID: reviewedByOther.ID, ReviewerID: otherEditor},
	}

	q := PartitionForEditor(papers, reviews, editor)

	// Every paper lands in exactly one queue.
	assert.Len(t, q.ForReview, 2)
	require.Len(t, q.Reviewed, 1)
	assert.Equal(t, reviewed.ID, q.Reviewed[0].ID)

	// Another editor's review does not move a paper out of ForReview.
	ids := []uuid.UUID{q.ForReview[0].ID, q.ForReview[1].ID}
	assert.Contains(t, ids, reviewedByOther.ID)
	assert.Contains(t, ids, unreviewed.ID)
}

func TestPartitionForEditorEmpty(t *testing.T) {
	q := PartitionForEditor(nil, nil, uuid.New())
	assert.Empty(t, q.ForReview)
	assert.Empty(t, q.Reviewed)
}

func TestPartitionForAdmin(t *testing.T) {
	recommended := paper(StatusRecommended)
	inReview := paper(StatusUnderReview)
	approved := paper(StatusApproved)
	rejected := paper(StatusRejected)
	submitted := paper(StatusSubmitted)

	validated := paper(StatusApproved)
	validated.PIName = "Dr. Abebe"

	papers := []models.Paper{recommended, inReview, approved, rejected, submitted, validated}
	counts := map[uuid.UUID]int{
		recommended.ID: 2,
		inReview.ID:    1,
	}

	q := PartitionForAdmin(papers, counts)

	pendingIDs := make([]uuid.UUID, 0, len(q.Pending))
	for _, p := range q.Pending {
		pendingIDs = append(pendingIDs, p.ID)
	}
	assert.Contains(t, pendingIDs, recommended.ID)
	assert.Contains(t, pendingIDs, inReview.ID)
	assert.Len(t, q.Pending, 2)

	assert.Len(t, q.Approved, 2)
	require.Len(t, q.Rejected, 1)
	assert.Equal(t, rejected.ID, q.Rejected[0].ID)

	// Validation is orthogonal to status.
	require.Len(t, q.Validated, 1)
	assert.Equal(t, validated.ID, q.Validated[0].ID)
}

func TestIsValidated(t *testing.T) {
	p := paper(StatusApproved)
	assert.False(t, IsValidated(&p))

	p.InstitutionCode = "SMU-01"
	assert.True(t, IsValidated(&p))

	p = paper(StatusSubmitted)
	p.PIName = "Dr. Hana"
	assert.True(t, IsValidated(&p))
}

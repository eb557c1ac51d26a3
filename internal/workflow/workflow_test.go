package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paperhub-backend/internal/models"
)

func TestCanTransitionHappyPath(t *testing.T) {
	withReview := TransitionContext{PaperHasReviews: true, ActorHasReview: true}

	tests := []struct {
		name string
		from string
		to   string
		role string
		ctx  TransitionContext
	}{
		{"author submits draft", StatusDraft, StatusSubmitted, RoleAuthor, TransitionContext{}},
		{"editor starts review", StatusSubmitted, StatusUnderReview, RoleEditor, TransitionContext{}},
		{"editor recommends after reviewing", StatusUnderReview, StatusRecommended, RoleEditor, withReview},
		{"editor recommends from submitted", StatusSubmitted, StatusRecommended, RoleEditor, withReview},
		{"admin approves recommended", StatusRecommended, StatusApproved, RoleAdmin, withReview},
		{"admin rejects recommended", StatusRecommended, StatusRejected, RoleAdmin, TransitionContext{}},
		{"admin publishes approved", StatusApproved, StatusPublished, RoleAdmin, TransitionContext{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, CanTransition(tt.from, tt.to, tt.role, tt.ctx))
		})
	}
}

func TestCanTransitionDenied(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		role string
		ctx  TransitionContext
	}{
		{"author cannot recommend", StatusUnderReview, StatusRecommended, RoleAuthor, TransitionContext{ActorHasReview: true}},
		{"coordinator cannot approve", StatusRecommended, StatusApproved, RoleCoordinator, TransitionContext{PaperHasReviews: true}},
		{"editor cannot approve", StatusRecommended, StatusApproved, RoleEditor, TransitionContext{PaperHasReviews: true}},
		{"editor without own review cannot recommend", StatusUnderReview, StatusRecommended, RoleEditor, TransitionContext{PaperHasReviews: true}},
		{"admin cannot approve unreviewed paper", StatusRecommended, StatusApproved, RoleAdmin, TransitionContext{}},
		{"no skipping straight to approved", StatusSubmitted, StatusApproved, RoleAdmin, TransitionContext{PaperHasReviews: true}},
		{"re-recommending a recommended paper", StatusRecommended, StatusRecommended, RoleEditor, TransitionContext{PaperHasReviews: true}},
		{"re-recommending without own review", StatusRecommended, StatusRecommended, RoleEditor, TransitionContext{}},
		{"published is terminal", StatusPublished, StatusDraft, RoleAdmin, TransitionContext{}},
		{"rejected is terminal", StatusRejected, StatusSubmitted, RoleAuthor, TransitionContext{}},
		{"cannot unpublish", StatusPublished, StatusApproved, RoleAdmin, TransitionContext{}},
		{"unknown target status", StatusSubmitted, "archived", RoleAdmin, TransitionContext{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanTransition(tt.from, tt.to, tt.role, tt.ctx)
			require.Error(t, err)

			var terr *TransitionError
			require.ErrorAs(t, err, &terr)
			assert.Equal(t, tt.from, terr.From)
			assert.Equal(t, tt.to, terr.To)
		})
	}
}

// Self-loops are denied for every status and role: the endpoints behind a
// transition have side effects, so replaying one must not succeed.
func TestCanTransitionDeniesSelfLoops(t *testing.T) {
	roles := []string{RoleAuthor, RoleEditor, RoleAdmin, RoleCoordinator}
	statuses := []string{StatusDraft, StatusSubmitted, StatusUnderReview, StatusRecommended, StatusApproved, StatusRejected, StatusPublished}
	ctx := TransitionContext{PaperHasReviews: true, ActorHasReview: true}

	for _, role := range roles {
		for _, status := range statuses {
			assert.Error(t, CanTransition(status, status, role, ctx),
				"%s -> %s should be denied for %s", status, status, role)
		}
	}
}

// Once published, no role can reach any other status from there.
func TestPublishedHasNoOutgoingEdges(t *testing.T) {
	roles := []string{RoleAuthor, RoleEditor, RoleAdmin, RoleCoordinator}
	targets := []string{StatusDraft, StatusSubmitted, StatusUnderReview, StatusRecommended, StatusApproved, StatusRejected}
	ctx := TransitionContext{PaperHasReviews: true, ActorHasReview: true}

	for _, role := range roles {
		for _, to := range targets {
			assert.Error(t, CanTransition(StatusPublished, to, role, ctx),
				"published -> %s should be denied for %s", to, role)
		}
	}
}

func TestEffectiveStatus(t *testing.T) {
	assert.Equal(t, StatusUnderReview, EffectiveStatus(StatusSubmitted, 1))
	assert.Equal(t, StatusUnderReview, EffectiveStatus(StatusSubmitted, 3))
	assert.Equal(t, StatusSubmitted, EffectiveStatus(StatusSubmitted, 0))

	// Only submitted is rewritten for display.
	assert.Equal(t, StatusRecommended, EffectiveStatus(StatusRecommended, 2))
	assert.Equal(t, StatusPublished, EffectiveStatus(StatusPublished, 2))
	assert.Equal(t, StatusDraft, EffectiveStatus(StatusDraft, 0))
}

func TestAverageScore(t *testing.T) {
	assert.Equal(t, 0.0, AverageScore(nil))
	assert.Equal(t, 0.0, AverageScore([]models.Review{}))

	assert.Equal(t, 85.0, AverageScore([]models.Review{{Rating: 80}, {Rating: 90}}))

	// Rounded to one decimal place.
	assert.Equal(t, 83.3, AverageScore([]models.Review{{Rating: 80}, {Rating: 90}, {Rating: 80}}))
	assert.Equal(t, 76.0, AverageScore([]models.Review{{Rating: 76}}))
}

func TestRecommendationSummary(t *testing.T) {
	assert.Equal(t, "", RecommendationSummary(nil))

	reviews := []models.Review{
		{Recommendation: RecommendAccept},
		{Recommendation: RecommendReject},
		{Recommendation: RecommendAccept},
	}
	assert.Equal(t, "2 Accept, 1 Reject", RecommendationSummary(reviews))

	reviews = append(reviews, models.Review{Recommendation: RecommendMinorRevision})
	assert.Equal(t, "2 Accept, 1 Minor Revision, 1 Reject", RecommendationSummary(reviews))
}

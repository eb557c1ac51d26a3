package workflow

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"paperhub-backend/internal/models"
)

// Paper statuses. A paper holds exactly one at a time.
const (
	StatusDraft       = "draft"
	StatusSubmitted   = "submitted"
	StatusUnderReview = "under_review"
	StatusRecommended = "recommended_for_publication"
	StatusApproved    = "approved"
	StatusRejected    = "rejected"
	StatusPublished   = "published"
)

// User roles. Fixed at registration, no self-service change.
const (
	RoleAuthor      = "author"
	RoleEditor      = "editor"
	RoleAdmin       = "admin"
	RoleCoordinator = "coordinator"
)

// Review recommendations.
const (
	RecommendAccept        = "accept"
	RecommendMinorRevision = "minor_revision"
	RecommendMajorRevision = "major_revision"
	RecommendReject        = "reject"
)

var validStatuses = map[string]bool{
	StatusDraft:       true,
	StatusSubmitted:   true,
	StatusUnderReview: true,
	StatusRecommended: true,
	StatusApproved:    true,
	StatusRejected:    true,
	StatusPublished:   true,
}

func IsValidStatus(status string) bool {
	return validStatuses[status]
}

// TransitionContext carries the facts a transition precondition needs beyond
// the (from, to, role) triple.
type TransitionContext struct {
	// PaperHasReviews is true when at least one review exists for the paper.
	PaperHasReviews bool
	// ActorHasReview is true when the acting editor has submitted a review
	// for this paper.
	ActorHasReview bool
}

// TransitionError describes a rejected status transition. The message is
// returned verbatim to the client.
type TransitionError struct {
	From   string
	To     string
	Role   string
	Reason string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move paper from %s to %s as %s: %s", e.From, e.To, e.Role, e.Reason)
}

// CanTransition checks whether role may move a paper from one status to
// another. The server is authoritative: the UI hides forbidden controls, but
// every transition is re-checked here before any row is touched.
func CanTransition(from, to, role string, ctx TransitionContext) error {
	deny := func(reason string) error {
		return &TransitionError{From: from, To: to, Role: role, Reason: reason}
	}

	if !IsValidStatus(from) {
		return deny("unknown current status")
	}
	if !IsValidStatus(to) {
		return deny("unknown target status")
	}

	// No self-loops: endpoints carry side effects (notification fan-out), so
	// re-running an already-applied transition is rejected like any other
	// disallowed move.
	switch {
	case from == StatusDraft && to == StatusSubmitted:
		if role != RoleAuthor && role != RoleAdmin {
			return deny("only the author can submit")
		}
		return nil

	case from == StatusSubmitted && to == StatusUnderReview:
		// Normally derived from review existence (see EffectiveStatus), but
		// accepted from editors so persisting clients are not rejected.
		if role != RoleEditor && role != RoleAdmin {
			return deny("only an editor can begin a review")
		}
		return nil

	case (from == StatusSubmitted || from == StatusUnderReview) && to == StatusRecommended:
		if role != RoleEditor {
			return deny("only an editor can recommend for publication")
		}
		if !ctx.ActorHasReview {
			return deny("editor must review the paper before recommending it")
		}
		return nil

	case from == StatusRecommended && to == StatusApproved:
		if role != RoleAdmin {
			return deny("only an admin can approve")
		}
		if !ctx.PaperHasReviews {
			return deny("paper has no reviews")
		}
		return nil

	case from == StatusRecommended && to == StatusRejected:
		if role != RoleAdmin {
			return deny("only an admin can reject")
		}
		return nil

	case from == StatusApproved && to == StatusPublished:
		if role != RoleAdmin {
			return deny("only an admin can publish")
		}
		return nil
	}

	return deny("transition not allowed")
}

// EffectiveStatus reports the status a queue should display. A submitted
// paper that already has reviews reads as under_review; the stored status is
// never rewritten from here.
func EffectiveStatus(status string, reviewCount int) string {
	if status == StatusSubmitted && reviewCount > 0 {
		return StatusUnderReview
	}
	return status
}

// AverageScore returns the mean rating rounded to one decimal place, and 0
// when there are no reviews.
func AverageScore(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	mean := float64(sum) / float64(len(reviews))
	return math.Round(mean*10) / 10
}

var recommendationLabels = map[string]string{
	RecommendAccept:        "Accept",
	RecommendMinorRevision: "Minor Revision",
	RecommendMajorRevision: "Major Revision",
	RecommendReject:        "Reject",
}

// RecommendationSummary tallies recommendations and renders them as
// "{count} {label}" fragments joined by commas, e.g. "2 Accept, 1 Reject".
// Empty input yields the empty string.
func RecommendationSummary(reviews []models.Review) string {
	counts := make(map[string]int)
	for _, r := range reviews {
		counts[r.Recommendation]++
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		label, ok := recommendationLabels[k]
		if !ok {
			label = k
		}
		parts = append(parts, fmt.Sprintf("%d %s", counts[k], label))
	}
	return strings.Join(parts, ", ")
}

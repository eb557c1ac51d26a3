package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngagementMessage(t *testing.T) {
	assert.Equal(t, `Alice liked your news: Portal Open`,
		engagementMessage("Alice", "like", "news", "Portal Open"))
	assert.Equal(t, `Bob commented on your event: Symposium`,
		engagementMessage("Bob", "comment", "event", "Symposium"))
	assert.Equal(t, `Carol shared your news: Portal Open`,
		engagementMessage("Carol", "share", "news", "Portal Open"))
}

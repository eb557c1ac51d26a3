package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginAllowed(t *testing.T) {
	allowed := []string{"http://localhost:3000", "https://portal.example.com"}

	assert.True(t, originAllowed("http://localhost:3000", allowed))
	assert.True(t, originAllowed("https://portal.example.com", allowed))
	assert.False(t, originAllowed("https://evil.example.com", allowed))
	assert.False(t, originAllowed("http://localhost:3001", allowed))

	// Non-browser clients send no Origin header.
	assert.True(t, originAllowed("", allowed))

	// Wildcard opens it up.
	assert.True(t, originAllowed("https://anywhere.example.com", []string{"*"}))
}

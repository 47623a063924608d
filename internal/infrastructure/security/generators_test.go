package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateULID(t *testing.T) {
	a, b := GenerateULID(), GenerateULID()
	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
	assert.True(t, IsULID(a))
	assert.False(t, IsULID("not-a-ulid"))
}

func TestGenerateComponentID(t *testing.T) {
	id := GenerateComponentID("text")
	assert.True(t, strings.HasPrefix(id, "text-"))
	assert.Equal(t, strings.ToLower(id), id)
	assert.Len(t, GenerateComponentID(""), 26)
}

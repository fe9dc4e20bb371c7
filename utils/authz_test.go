package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskify/taskify-api/models"
)

func TestCanAccessResource(t *testing.T) {
	assert.True(t, CanAccessResource([]string{models.RoleUser}, "u1", "u1"))
	assert.False(t, CanAccessResource([]string{models.RoleUser}, "u1", "u2"))
	assert.True(t, CanAccessResource([]string{models.RoleAdmin}, "u1", "u2"))
	assert.True(t, CanAccessResource(nil, "u1", "u1"))
	assert.False(t, CanAccessResource(nil, "u1", "u2"))
}

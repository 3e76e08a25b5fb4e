package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash := HashPassword("builder#1")
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "builder#1", hash)
	assert.True(t, CheckPassword("builder#1", hash))
	assert.False(t, CheckPassword("wrong", hash))
	assert.False(t, CheckPassword("builder#1", "not-a-hash"))
}

func TestNewIDIsUnique(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

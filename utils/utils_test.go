package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringIn(t *testing.T) {
	options := []string{"euclid", "haversine"}

	assert.True(t, StringIn("euclid", options))
	assert.True(t, StringIn("haversine", options))
	assert.False(t, StringIn("manhattan", options))
	assert.False(t, StringIn("", options))
	assert.False(t, StringIn("euclid", nil))
}

func TestIfThenElse(t *testing.T) {
	assert.Equal(t, "a", IfThenElse(true, "a", "b"))
	assert.Equal(t, "b", IfThenElse(false, "a", "b"))
}

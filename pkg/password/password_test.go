package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	h, err := Hash("customer123")
	require.NoError(t, err)
	assert.NotEqual(t, "customer123", h)

	assert.NoError(t, Compare(h, "customer123"))
	assert.ErrorIs(t, Compare(h, "wrong"), ErrMismatch)
}

func TestCompare_MalformedHash(t *testing.T) {
	err := Compare("not-a-hash", "x")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMismatch)
}

package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	list, err := List()
	require.NoError(t, err)
	require.NotEmpty(t, list)

	assert.Equal(t, "0001_init", list[0].Version)
	assert.Contains(t, list[0].SQL, "appointments_active_start_uniq")
	require.Len(t, list, 2)
	assert.Contains(t, list[1].SQL, "appointments_no_overlap")
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].Version, list[i].Version)
	}
}

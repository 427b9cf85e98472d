package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_DollarPlaceholders(t *testing.T) {
	query, args, err := Select("id").
		From("appointments").
		Where(squirrel.Lt{"start_at": 2}).
		Where(squirrel.Gt{"end_at": 1}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM appointments WHERE start_at < $1 AND end_at > $2", query)
	assert.Equal(t, []interface{}{2, 1}, args)
}

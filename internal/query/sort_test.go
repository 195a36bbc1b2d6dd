package query

import (
	"testing"

	"github.com/stretchr/testify/require"

	appErr "github.com/techstock/inventory/pkg/errors"
)

func TestResolveSortDefaults(t *testing.T) {
	s, err := ResolveSort("", "")
	require.NoError(t, err)
	require.Equal(t, DefaultSort, s)
	require.Equal(t, "created_at DESC", s.OrderClause())
}

func TestResolveSortAllowedFields(t *testing.T) {
	for _, field := range []string{"name", "type", "location", "environment", "vendor", "created_at", "updated_at"} {
		s, err := ResolveSort(field, "asc")
		require.NoError(t, err, field)
		require.Equal(t, field+" ASC", s.OrderClause())

		s, err = ResolveSort(field, "desc")
		require.NoError(t, err, field)
		require.Equal(t, field+" DESC", s.OrderClause())
	}
}

func TestResolveSortDirectionDefaultsToAsc(t *testing.T) {
	s, err := ResolveSort("name", "")
	require.NoError(t, err)
	require.Equal(t, "name ASC", s.OrderClause())
}

func TestResolveSortRejectsUnknownField(t *testing.T) {
	for _, field := range []string{"id; DROP TABLE resource", "tags_json", "password", "azure_id"} {
		_, err := ResolveSort(field, "asc")
		require.Error(t, err, field)
		require.True(t, appErr.IsCode(err, appErr.CodeInvalid))
		require.Contains(t, err.Error(), field)
	}
}

func TestResolveSortRejectsUnknownDirection(t *testing.T) {
	_, err := ResolveSort("name", "sideways")
	require.Error(t, err)
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))
}

func TestResolveSortCaseInsensitive(t *testing.T) {
	s, err := ResolveSort("NAME", "DESC")
	require.NoError(t, err)
	require.Equal(t, "name DESC", s.OrderClause())
}

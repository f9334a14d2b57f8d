package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"
)

func TestGenerateID(t *testing.T) {
	t.Parallel()

	id := GenerateID()
	_, err := uuid.Parse(id)
	require.NoError(t, err, "GenerateID should return a valid UUID")
	require.NotEqual(t, id, GenerateID())
}

func TestGenerateSortableID(t *testing.T) {
	t.Parallel()

	first := GenerateSortableID()
	second := GenerateSortableID()

	_, err := ulid.Parse(first)
	require.NoError(t, err, "GenerateSortableID should return a valid ULID")
	require.Len(t, first, 26)
	require.Less(t, first, second, "IDs generated in sequence should sort in creation order")
}

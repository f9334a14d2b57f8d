package utils

import (
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// GenerateID returns a new unique identifier string
func GenerateID() string {
	return uuid.New().String()
}

// GenerateSortableID returns a lexically sortable identifier. IDs generated
// in one process sort in creation order.
func GenerateSortableID() string {
	return ulid.Make().String()
}

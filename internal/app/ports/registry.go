package ports

import (
	"context"

	"chat4g/internal/app/domain/participant"
)

// RegistryPort is the in-memory viewer cache. GetOrCreate hydrates a new
// viewer from the repository on first sighting; Lookup never creates.
// Indices are append-only and never reused.
type RegistryPort interface {
	GetOrCreate(ctx context.Context, username, channel string) *participant.Viewer
	Lookup(username string) (*participant.Viewer, bool)
	Index(username string) (int, bool)
	Len() int
}

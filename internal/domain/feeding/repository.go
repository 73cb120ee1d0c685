package feeding

import (
	"context"

	"github.com/google/uuid"
)

// FeedingRepository appends and lists feeding events. There is no update or
// delete: the log is append-only.
type FeedingRepository interface {
	Save(ctx context.Context, feeding *Feeding) error
	// FindByPetID returns the pet's feedings, most recent fed_at first.
	FindByPetID(ctx context.Context, petID uuid.UUID) ([]*Feeding, error)
}

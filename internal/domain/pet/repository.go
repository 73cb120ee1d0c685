package pet

import (
	"context"

	"github.com/google/uuid"
)

// PetRepository defines persistence operations for pet profiles.
type PetRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Pet, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*Pet, error)
	List(ctx context.Context, page, limit int) ([]*Pet, int64, error)
	Save(ctx context.Context, pet *Pet) error
	Update(ctx context.Context, pet *Pet) error
	// Delete removes the pet together with its toy links, feedings and photo.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ToyLinkRepository maintains the many-to-many relation between pets and toys.
type ToyLinkRepository interface {
	// AddToy links toyID to petID; linking an existing pair is a no-op.
	AddToy(ctx context.Context, petID, toyID uuid.UUID) error
	ToyIDs(ctx context.Context, petID uuid.UUID) ([]uuid.UUID, error)
}

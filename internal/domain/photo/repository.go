package photo

import (
	"context"

	"github.com/google/uuid"
)

// PhotoRepository defines persistence operations for pet photos.
type PhotoRepository interface {
	// FindByPetID returns the pet's current photo or a NotFound error.
	FindByPetID(ctx context.Context, petID uuid.UUID) (*PetPhoto, error)
	// Replace atomically stores photo as the pet's only photo and returns the
	// photo it evicted, or nil when the pet had none.
	Replace(ctx context.Context, photo *PetPhoto) (*PetPhoto, error)
}

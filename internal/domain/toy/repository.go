package toy

import (
	"context"

	"github.com/google/uuid"
)

// ToyRepository defines persistence operations for toys.
type ToyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Toy, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Toy, error)
	// FindNotLinkedToPet returns every toy the pet is not linked to.
	FindNotLinkedToPet(ctx context.Context, petID uuid.UUID) ([]*Toy, error)
	List(ctx context.Context, page, limit int) ([]*Toy, int64, error)
	Save(ctx context.Context, toy *Toy) error
	Update(ctx context.Context, toy *Toy) error
	Delete(ctx context.Context, id uuid.UUID) error
}

package toy

import (
	"time"

	"github.com/google/uuid"

	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/domain"
)

// Toy is a toy shared by any number of pets. Toys are not owner-scoped.
type Toy struct {
	id        uuid.UUID
	name      string
	color     string
	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewToy creates a toy.
func NewToy(name, color string) (*Toy, error) {
	if name == "" {
		return nil, domain.NewValidationError("toy name is required")
	}
	now := time.Now().UTC()
	return &Toy{
		id:        uuid.New(),
		name:      name,
		color:     color,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Toy from persistence.
func Reconstruct(id uuid.UUID, name, color string, version int64, createdAt, updatedAt time.Time) *Toy {
	return &Toy{
		id:        id,
		name:      name,
		color:     color,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Getters.
func (t *Toy) ID() uuid.UUID        { return t.id }
func (t *Toy) Name() string         { return t.name }
func (t *Toy) Color() string        { return t.color }
func (t *Toy) Version() int64       { return t.version }
func (t *Toy) CreatedAt() time.Time { return t.createdAt }
func (t *Toy) UpdatedAt() time.Time { return t.updatedAt }

// Update replaces non-empty fields.
func (t *Toy) Update(name, color string) {
	if name != "" {
		t.name = name
	}
	if color != "" {
		t.color = color
	}
	t.version++
	t.updatedAt = time.Now().UTC()
}

// Without returns the toys in all whose id is not in exclude, preserving order.
func Without(all []*Toy, exclude []uuid.UUID) []*Toy {
	skip := make(map[uuid.UUID]struct{}, len(exclude))
	for _, id := range exclude {
		skip[id] = struct{}{}
	}
	out := make([]*Toy, 0, len(all))
	for _, t := range all {
		if _, ok := skip[t.id]; !ok {
			out = append(out, t)
		}
	}
	return out
}

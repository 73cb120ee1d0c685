package pet

import (
	"time"

	"github.com/google/uuid"

	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/domain"
)

// Pet is the aggregate root for a pet profile.
type Pet struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	name        string
	breed       string
	description string
	age         int
	version     int64
	createdAt   time.Time
	updatedAt   time.Time
}

// NewPet creates a new pet profile with validated fields.
func NewPet(ownerID uuid.UUID, name, breed, description string, age int) (*Pet, error) {
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}
	if name == "" {
		return nil, domain.NewValidationError("pet name is required")
	}
	if age < 0 {
		return nil, domain.NewValidationError("pet age cannot be negative")
	}

	now := time.Now().UTC()
	return &Pet{
		id:          uuid.New(),
		ownerID:     ownerID,
		name:        name,
		breed:       breed,
		description: description,
		age:         age,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds a Pet from persistence data (no validation).
func Reconstruct(
	id, ownerID uuid.UUID,
	name, breed, description string,
	age int,
	version int64,
	createdAt, updatedAt time.Time,
) *Pet {
	return &Pet{
		id:          id,
		ownerID:     ownerID,
		name:        name,
		breed:       breed,
		description: description,
		age:         age,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// --- Getters ---

func (p *Pet) ID() uuid.UUID         { return p.id }
func (p *Pet) OwnerID() uuid.UUID    { return p.ownerID }
func (p *Pet) Name() string          { return p.name }
func (p *Pet) Breed() string         { return p.breed }
func (p *Pet) Description() string   { return p.description }
func (p *Pet) Age() int              { return p.age }
func (p *Pet) Version() int64        { return p.version }
func (p *Pet) CreatedAt() time.Time  { return p.createdAt }
func (p *Pet) UpdatedAt() time.Time  { return p.updatedAt }

// --- Behavior ---

// IsOwnedBy checks if the pet belongs to the given owner.
func (p *Pet) IsOwnedBy(ownerID uuid.UUID) bool {
	return p.ownerID == ownerID
}

// Update applies partial updates to the editable profile fields. The name
// is fixed at creation. Nil arguments leave the field untouched.
func (p *Pet) Update(breed, description *string, age *int) error {
	if age != nil && *age < 0 {
		return domain.NewValidationError("pet age cannot be negative")
	}
	if breed != nil {
		p.breed = *breed
	}
	if description != nil {
		p.description = *description
	}
	if age != nil {
		p.age = *age
	}
	p.version++
	p.updatedAt = time.Now().UTC()
	return nil
}

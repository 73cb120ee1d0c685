package feeding

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/domain"
)

// Meal identifies which meal of the day a feeding was.
type Meal string

const (
	MealBreakfast Meal = "B"
	MealLunch     Meal = "L"
	MealDinner    Meal = "D"
)

// Meals lists every meal kind in serving order.
var Meals = []Meal{MealBreakfast, MealLunch, MealDinner}

// IsValid returns true if the meal is recognized.
func (m Meal) IsValid() bool {
	return m == MealBreakfast || m == MealLunch || m == MealDinner
}

// Label returns the display name of the meal.
func (m Meal) Label() string {
	switch m {
	case MealBreakfast:
		return "Breakfast"
	case MealLunch:
		return "Lunch"
	case MealDinner:
		return "Dinner"
	default:
		return string(m)
	}
}

// Feeding is a single append-only feeding event for one pet.
type Feeding struct {
	id        uuid.UUID
	petID     uuid.UUID
	fedAt     time.Time
	meal      Meal
	createdAt time.Time
}

// NewFeeding creates a feeding event for petID.
func NewFeeding(petID uuid.UUID, fedAt time.Time, meal Meal) (*Feeding, error) {
	if petID == uuid.Nil {
		return nil, domain.NewValidationError("pet ID is required")
	}
	if fedAt.IsZero() {
		return nil, domain.NewValidationError("feeding time is required")
	}
	if !meal.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid meal: %q", meal))
	}
	return &Feeding{
		id:        uuid.New(),
		petID:     petID,
		fedAt:     fedAt.UTC(),
		meal:      meal,
		createdAt: time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a Feeding from persistence.
func Reconstruct(id, petID uuid.UUID, fedAt time.Time, meal Meal, createdAt time.Time) *Feeding {
	return &Feeding{
		id:        id,
		petID:     petID,
		fedAt:     fedAt,
		meal:      meal,
		createdAt: createdAt,
	}
}

func (f *Feeding) ID() uuid.UUID        { return f.id }
func (f *Feeding) PetID() uuid.UUID     { return f.petID }
func (f *Feeding) FedAt() time.Time     { return f.fedAt }
func (f *Feeding) Meal() Meal           { return f.meal }
func (f *Feeding) CreatedAt() time.Time { return f.createdAt }

// FedForDay reports whether feedings contain at least one entry for every
// meal kind on the UTC calendar day of day.
func FedForDay(feedings []*Feeding, day time.Time) bool {
	y, m, d := day.UTC().Date()
	seen := make(map[Meal]bool, len(Meals))
	for _, f := range feedings {
		fy, fm, fd := f.fedAt.UTC().Date()
		if fy == y && fm == m && fd == d {
			seen[f.meal] = true
		}
	}
	return len(seen) >= len(Meals)
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	petDomain "github.com/Kilat-Pet-Delivery/service-petcare/internal/domain/pet"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/domain"
)

// PetModel is the GORM model for the pets table.
type PetModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Breed       string    `gorm:"type:varchar(100)"`
	Description string    `gorm:"type:varchar(250)"`
	Age         int       `gorm:"type:int;not null;default:0"`
	Version     int64     `gorm:"not null;default:1"`
	CreatedAt   time.Time `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt   time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

func (PetModel) TableName() string { return "pets" }

// PetToyModel is the join row linking a pet to a toy.
type PetToyModel struct {
	PetID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	ToyID     uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

func (PetToyModel) TableName() string { return "pet_toys" }

// GormPetRepository implements PetRepository and ToyLinkRepository using GORM.
type GormPetRepository struct {
	db *gorm.DB
}

func NewGormPetRepository(db *gorm.DB) *GormPetRepository {
	return &GormPetRepository{db: db}
}

func (r *GormPetRepository) FindByID(ctx context.Context, id uuid.UUID) (*petDomain.Pet, error) {
	var model PetModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Pet", id.String())
		}
		return nil, fmt.Errorf("failed to find pet by ID: %w", err)
	}
	return toPetDomain(&model), nil
}

func (r *GormPetRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*petDomain.Pet, error) {
	var models []PetModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find owner pets: %w", err)
	}
	pets := make([]*petDomain.Pet, len(models))
	for i, m := range models {
		pets[i] = toPetDomain(&m)
	}
	return pets, nil
}

// List retrieves every pet, newest first, with pagination.
func (r *GormPetRepository) List(ctx context.Context, page, limit int) ([]*petDomain.Pet, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&PetModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count pets: %w", err)
	}

	var models []PetModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list pets: %w", err)
	}

	pets := make([]*petDomain.Pet, len(models))
	for i, m := range models {
		pets[i] = toPetDomain(&m)
	}
	return pets, total, nil
}

func (r *GormPetRepository) Save(ctx context.Context, pet *petDomain.Pet) error {
	model := toPetModel(pet)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save pet: %w", err)
	}
	return nil
}

// Update persists profile changes with optimistic locking.
func (r *GormPetRepository) Update(ctx context.Context, pet *petDomain.Pet) error {
	model := toPetModel(pet)
	previousVersion := pet.Version() - 1

	result := r.db.WithContext(ctx).
		Model(&PetModel{}).
		Where("id = ? AND version = ?", model.ID, previousVersion).
		Updates(map[string]interface{}{
			"breed":       model.Breed,
			"description": model.Description,
			"age":         model.Age,
			"version":     model.Version,
			"updated_at":  model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update pet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("pet was modified by another transaction")
	}
	return nil
}

// Delete removes the pet and everything that hangs off it in one transaction.
func (r *GormPetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pet_id = ?", id).Delete(&PetToyModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete pet toys: %w", err)
		}
		if err := tx.Where("pet_id = ?", id).Delete(&FeedingModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete feedings: %w", err)
		}
		if err := tx.Where("pet_id = ?", id).Delete(&PhotoModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete photo: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&PetModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete pet: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.NewNotFoundError("Pet", id.String())
		}
		return nil
	})
}

// AddToy links a toy to a pet. Linking an existing pair does nothing.
func (r *GormPetRepository) AddToy(ctx context.Context, petID, toyID uuid.UUID) error {
	link := PetToyModel{PetID: petID, ToyID: toyID, CreatedAt: time.Now().UTC()}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error; err != nil {
		return fmt.Errorf("failed to link toy to pet: %w", err)
	}
	return nil
}

func (r *GormPetRepository) ToyIDs(ctx context.Context, petID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&PetToyModel{}).
		Where("pet_id = ?", petID).
		Order("created_at ASC").
		Pluck("toy_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list pet toys: %w", err)
	}
	return ids, nil
}

// --- Conversions ---

func toPetModel(p *petDomain.Pet) *PetModel {
	return &PetModel{
		ID:          p.ID(),
		OwnerID:     p.OwnerID(),
		Name:        p.Name(),
		Breed:       p.Breed(),
		Description: p.Description(),
		Age:         p.Age(),
		Version:     p.Version(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

func toPetDomain(m *PetModel) *petDomain.Pet {
	return petDomain.Reconstruct(
		m.ID, m.OwnerID,
		m.Name, m.Breed, m.Description,
		m.Age,
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	)
}

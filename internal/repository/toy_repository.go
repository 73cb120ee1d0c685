package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	toyDomain "github.com/Kilat-Pet-Delivery/service-petcare/internal/domain/toy"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/domain"
)

// ToyModel is the GORM model for the toys table.
type ToyModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(50);not null"`
	Color     string    `gorm:"type:varchar(20);not null"`
	Version   int64     `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

func (ToyModel) TableName() string { return "toys" }

// GormToyRepository implements ToyRepository using GORM.
type GormToyRepository struct {
	db *gorm.DB
}

// NewGormToyRepository creates a new GormToyRepository.
func NewGormToyRepository(db *gorm.DB) *GormToyRepository {
	return &GormToyRepository{db: db}
}

// FindByID retrieves a toy by ID.
func (r *GormToyRepository) FindByID(ctx context.Context, id uuid.UUID) (*toyDomain.Toy, error) {
	var model ToyModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Toy", id.String())
		}
		return nil, fmt.Errorf("failed to find toy by ID: %w", err)
	}
	return toToyDomain(&model), nil
}

// FindByIDs returns the toys with the given IDs ordered by name. Unknown IDs are skipped.
func (r *GormToyRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*toyDomain.Toy, error) {
	if len(ids) == 0 {
		return []*toyDomain.Toy{}, nil
	}
	var models []ToyModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("name ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find toys: %w", err)
	}
	return toToyDomains(models), nil
}

// FindNotLinkedToPet returns every toy that has no link row for petID.
func (r *GormToyRepository) FindNotLinkedToPet(ctx context.Context, petID uuid.UUID) ([]*toyDomain.Toy, error) {
	linked := r.db.Model(&PetToyModel{}).Select("toy_id").Where("pet_id = ?", petID)

	var models []ToyModel
	if err := r.db.WithContext(ctx).
		Where("id NOT IN (?)", linked).
		Order("name ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find available toys: %w", err)
	}
	return toToyDomains(models), nil
}

// List retrieves toys with pagination.
func (r *GormToyRepository) List(ctx context.Context, page, limit int) ([]*toyDomain.Toy, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&ToyModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count toys: %w", err)
	}

	var models []ToyModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list toys: %w", err)
	}

	return toToyDomains(models), total, nil
}

// Save persists a new toy.
func (r *GormToyRepository) Save(ctx context.Context, t *toyDomain.Toy) error {
	if err := r.db.WithContext(ctx).Create(toToyModel(t)).Error; err != nil {
		return fmt.Errorf("failed to save toy: %w", err)
	}
	return nil
}

// Update persists changes with optimistic locking.
func (r *GormToyRepository) Update(ctx context.Context, t *toyDomain.Toy) error {
	model := toToyModel(t)
	expectedVersion := t.Version() - 1

	result := r.db.WithContext(ctx).
		Model(&ToyModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"name":       model.Name,
			"color":      model.Color,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update toy: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("toy was modified by another transaction")
	}
	return nil
}

// Delete removes a toy and its pet links.
func (r *GormToyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("toy_id = ?", id).Delete(&PetToyModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete toy links: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&ToyModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete toy: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.NewNotFoundError("Toy", id.String())
		}
		return nil
	})
}

func toToyModel(t *toyDomain.Toy) *ToyModel {
	return &ToyModel{
		ID:        t.ID(),
		Name:      t.Name(),
		Color:     t.Color(),
		Version:   t.Version(),
		CreatedAt: t.CreatedAt(),
		UpdatedAt: t.UpdatedAt(),
	}
}

func toToyDomain(m *ToyModel) *toyDomain.Toy {
	return toyDomain.Reconstruct(m.ID, m.Name, m.Color, m.Version, m.CreatedAt, m.UpdatedAt)
}

func toToyDomains(models []ToyModel) []*toyDomain.Toy {
	toys := make([]*toyDomain.Toy, len(models))
	for i, m := range models {
		toys[i] = toToyDomain(&m)
	}
	return toys
}

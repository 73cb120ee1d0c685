package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	feedingDomain "github.com/Kilat-Pet-Delivery/service-petcare/internal/domain/feeding"
)

// FeedingModel is the GORM model for the feedings table.
type FeedingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	PetID     uuid.UUID `gorm:"type:uuid;not null;index:idx_feedings_pet_fed_at,priority:1"`
	FedAt     time.Time `gorm:"type:timestamptz;not null;index:idx_feedings_pet_fed_at,priority:2,sort:desc"`
	Meal      string    `gorm:"type:varchar(1);not null;default:'B'"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

func (FeedingModel) TableName() string { return "feedings" }

// GormFeedingRepository implements FeedingRepository using GORM.
type GormFeedingRepository struct {
	db *gorm.DB
}

func NewGormFeedingRepository(db *gorm.DB) *GormFeedingRepository {
	return &GormFeedingRepository{db: db}
}

func (r *GormFeedingRepository) Save(ctx context.Context, f *feedingDomain.Feeding) error {
	model := FeedingModel{
		ID:        f.ID(),
		PetID:     f.PetID(),
		FedAt:     f.FedAt(),
		Meal:      string(f.Meal()),
		CreatedAt: f.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save feeding: %w", err)
	}
	return nil
}

func (r *GormFeedingRepository) FindByPetID(ctx context.Context, petID uuid.UUID) ([]*feedingDomain.Feeding, error) {
	var models []FeedingModel
	if err := r.db.WithContext(ctx).
		Where("pet_id = ?", petID).
		Order("fed_at DESC").
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find feedings: %w", err)
	}

	feedings := make([]*feedingDomain.Feeding, len(models))
	for i, m := range models {
		feedings[i] = feedingDomain.Reconstruct(m.ID, m.PetID, m.FedAt.UTC(), feedingDomain.Meal(m.Meal), m.CreatedAt)
	}
	return feedings, nil
}

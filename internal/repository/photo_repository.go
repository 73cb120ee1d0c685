package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	photoDomain "github.com/Kilat-Pet-Delivery/service-petcare/internal/domain/photo"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/domain"
)

// PhotoModel is the GORM model for the pet_photos table. A pet has at most
// one photo, enforced by the unique index on pet_id.
type PhotoModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	PetID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	URL       string    `gorm:"type:varchar(200);not null"`
	ObjectKey string    `gorm:"type:varchar(200);not null"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null"`
}

// TableName sets the table name.
func (PhotoModel) TableName() string { return "pet_photos" }

// GormPhotoRepository implements PhotoRepository using GORM.
type GormPhotoRepository struct {
	db *gorm.DB
}

// NewGormPhotoRepository creates a new GormPhotoRepository.
func NewGormPhotoRepository(db *gorm.DB) *GormPhotoRepository {
	return &GormPhotoRepository{db: db}
}

// FindByPetID returns the pet's current photo.
func (r *GormPhotoRepository) FindByPetID(ctx context.Context, petID uuid.UUID) (*photoDomain.PetPhoto, error) {
	var model PhotoModel
	if err := r.db.WithContext(ctx).Where("pet_id = ?", petID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Photo", petID.String())
		}
		return nil, fmt.Errorf("failed to find photo: %w", err)
	}
	return toPhotoDomain(&model), nil
}

// Replace makes p the pet's only photo inside a transaction and returns the
// row it overwrote. The current row is locked first; when there is none the
// insert skips on a pet_id conflict, and a concurrent first upload that won
// that race is then locked and overwritten like any other current photo.
func (r *GormPhotoRepository) Replace(ctx context.Context, p *photoDomain.PetPhoto) (*photoDomain.PetPhoto, error) {
	var evicted *photoDomain.PetPhoto
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := toPhotoModel(p)

		prev, err := lockCurrentPhoto(tx, p.PetID())
		if err != nil {
			return err
		}
		if prev == nil {
			result := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "pet_id"}},
				DoNothing: true,
			}).Create(&model)
			if result.Error != nil {
				return fmt.Errorf("failed to store photo: %w", result.Error)
			}
			if result.RowsAffected == 1 {
				return nil
			}
			if prev, err = lockCurrentPhoto(tx, p.PetID()); err != nil {
				return err
			}
			if prev == nil {
				return fmt.Errorf("photo for pet %s vanished during replacement", p.PetID())
			}
		}

		evicted = toPhotoDomain(prev)
		if err := tx.Model(&PhotoModel{}).
			Where("pet_id = ?", p.PetID()).
			Updates(map[string]interface{}{
				"id":         model.ID,
				"url":        model.URL,
				"object_key": model.ObjectKey,
				"created_at": model.CreatedAt,
			}).Error; err != nil {
			return fmt.Errorf("failed to store photo: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return evicted, nil
}

// lockCurrentPhoto selects the pet's photo FOR UPDATE, returning nil when
// there is none.
func lockCurrentPhoto(tx *gorm.DB, petID uuid.UUID) (*PhotoModel, error) {
	var current PhotoModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("pet_id = ?", petID).
		First(&current).Error
	switch {
	case err == nil:
		return &current, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("failed to lock current photo: %w", err)
	}
}

func toPhotoModel(p *photoDomain.PetPhoto) PhotoModel {
	return PhotoModel{
		ID:        p.ID(),
		PetID:     p.PetID(),
		URL:       p.URL(),
		ObjectKey: p.ObjectKey(),
		CreatedAt: p.CreatedAt(),
	}
}

func toPhotoDomain(m *PhotoModel) *photoDomain.PetPhoto {
	return photoDomain.Reconstruct(m.ID, m.PetID, m.URL, m.ObjectKey, m.CreatedAt)
}

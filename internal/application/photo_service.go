package application

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	petDomain "github.com/Kilat-Pet-Delivery/service-petcare/internal/domain/pet"
	photoDomain "github.com/Kilat-Pet-Delivery/service-petcare/internal/domain/photo"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/events"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/domain"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/storage"
)

// PhotoStoreConfig locates uploaded photos: objects go to Bucket and their
// public URL is BaseURL + Bucket + "/" + key.
type PhotoStoreConfig struct {
	BaseURL string
	Bucket  string
}

// PhotoUpload is an uploaded file as received by the transport layer.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// PhotoDTO is the API response representation of a pet photo.
type PhotoDTO struct {
	ID        uuid.UUID `json:"id"`
	PetID     uuid.UUID `json:"pet_id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// UploadError reports a failed photo upload. Nothing was persisted.
type UploadError struct {
	PetID uuid.UUID
	Key   string
	Err   error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("photo upload for pet %s failed: %v", e.PetID, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// PhotoService replaces pets' photos.
type PhotoService struct {
	pets      petDomain.PetRepository
	photos    photoDomain.PhotoRepository
	store     storage.ObjectStore
	cfg       PhotoStoreConfig
	policy    AccessPolicy
	publisher EventPublisher
	logger    *zap.Logger
}

// NewPhotoService creates a new PhotoService. publisher may be nil.
func NewPhotoService(
	pets petDomain.PetRepository,
	photos photoDomain.PhotoRepository,
	store storage.ObjectStore,
	cfg PhotoStoreConfig,
	policy AccessPolicy,
	publisher EventPublisher,
	logger *zap.Logger,
) *PhotoService {
	return &PhotoService{
		pets:      pets,
		photos:    photos,
		store:     store,
		cfg:       cfg,
		policy:    policy,
		publisher: publisher,
		logger:    logger,
	}
}

// UploadPhoto stores upload under a fresh key and makes it the pet's only
// photo. A nil upload is a no-op returning (nil, nil).
func (s *PhotoService) UploadPhoto(ctx context.Context, userID, petID uuid.UUID, upload *PhotoUpload) (*PhotoDTO, error) {
	if upload == nil {
		return nil, nil
	}

	pet, err := s.pets.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(pet, userID); err != nil {
		return nil, err
	}

	key := photoDomain.NewObjectKey(upload.Filename)
	if err := s.store.Upload(ctx, s.cfg.Bucket, key, upload.Body, upload.ContentType); err != nil {
		s.logger.Error("failed to upload photo",
			zap.String("pet_id", petID.String()),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, &UploadError{PetID: petID, Key: key, Err: domain.NewUnavailableError("photo upload failed", err)}
	}

	url := photoDomain.ObjectURL(s.cfg.BaseURL, s.cfg.Bucket, key)
	p, err := photoDomain.NewPetPhoto(petID, url, key)
	if err != nil {
		s.discard(ctx, key)
		return nil, &UploadError{PetID: petID, Key: key, Err: domain.NewValidationError(err.Error())}
	}

	evicted, err := s.photos.Replace(ctx, p)
	if err != nil {
		s.logger.Error("failed to persist photo",
			zap.String("pet_id", petID.String()),
			zap.String("key", key),
			zap.Error(err),
		)
		s.discard(ctx, key)
		return nil, &UploadError{PetID: petID, Key: key, Err: domain.NewUnavailableError("photo could not be saved", err)}
	}

	evt := events.PhotoReplacedEvent{
		PetID:      petID,
		PhotoID:    p.ID(),
		URL:        p.URL(),
		Bucket:     s.cfg.Bucket,
		ObjectKey:  key,
		OccurredAt: time.Now().UTC(),
	}
	if evicted != nil {
		evt.EvictedObjectKey = evicted.ObjectKey()
	}

	s.logger.Info("pet photo replaced",
		zap.String("pet_id", petID.String()),
		zap.String("url", url),
		zap.String("evicted_key", evt.EvictedObjectKey),
	)
	publishEvent(ctx, s.publisher, s.logger, events.PetPhotoReplaced, petID.String(), evt)

	return toPhotoDTO(p), nil
}

// GetPhoto returns the pet's current photo or a NotFound error.
func (s *PhotoService) GetPhoto(ctx context.Context, userID, petID uuid.UUID) (*PhotoDTO, error) {
	pet, err := s.pets.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(pet, userID); err != nil {
		return nil, err
	}
	p, err := s.photos.FindByPetID(ctx, petID)
	if err != nil {
		return nil, err
	}
	return toPhotoDTO(p), nil
}

// discard removes an uploaded object that never became a pet's photo.
func (s *PhotoService) discard(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, s.cfg.Bucket, key); err != nil {
		s.logger.Warn("failed to discard orphaned photo object",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

func toPhotoDTO(p *photoDomain.PetPhoto) *PhotoDTO {
	return &PhotoDTO{
		ID:        p.ID(),
		PetID:     p.PetID(),
		URL:       p.URL(),
		CreatedAt: p.CreatedAt(),
	}
}

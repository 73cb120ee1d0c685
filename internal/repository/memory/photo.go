package memory

import (
	"context"

	"github.com/google/uuid"

	photoDomain "github.com/Kilat-Pet-Delivery/service-petcare/internal/domain/photo"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/domain"
)

// PhotoRepository implements photo.PhotoRepository.
type PhotoRepository struct {
	s *Store
}

func (r *PhotoRepository) FindByPetID(ctx context.Context, petID uuid.UUID) (*photoDomain.PetPhoto, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.photos[petID]
	if !ok {
		return nil, domain.NewNotFoundError("Photo", petID.String())
	}
	return p, nil
}

func (r *PhotoRepository) Replace(ctx context.Context, p *photoDomain.PetPhoto) (*photoDomain.PetPhoto, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.pets[p.PetID()]; !ok {
		return nil, domain.NewNotFoundError("Pet", p.PetID().String())
	}
	evicted := r.s.photos[p.PetID()]
	r.s.photos[p.PetID()] = p
	return evicted, nil
}

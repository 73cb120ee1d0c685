package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	feedingDomain "github.com/Kilat-Pet-Delivery/service-petcare/internal/domain/feeding"
)

// FeedingRepository implements feeding.FeedingRepository.
type FeedingRepository struct {
	s *Store
}

func (r *FeedingRepository) Save(ctx context.Context, f *feedingDomain.Feeding) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.feedings = append(r.s.feedings, f)
	return nil
}

func (r *FeedingRepository) FindByPetID(ctx context.Context, petID uuid.UUID) ([]*feedingDomain.Feeding, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*feedingDomain.Feeding, 0)
	for _, f := range r.s.feedings {
		if f.PetID() == petID {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].FedAt().After(out[j].FedAt()) })
	return out, nil
}

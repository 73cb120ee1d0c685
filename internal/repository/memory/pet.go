package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	petDomain "github.com/Kilat-Pet-Delivery/service-petcare/internal/domain/pet"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/domain"
)

// PetRepository implements pet.PetRepository and pet.ToyLinkRepository.
type PetRepository struct {
	s *Store
}

func (r *PetRepository) FindByID(ctx context.Context, id uuid.UUID) (*petDomain.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.pets[id]
	if !ok {
		return nil, domain.NewNotFoundError("Pet", id.String())
	}
	return clonePet(p), nil
}

func (r *PetRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*petDomain.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*petDomain.Pet, 0)
	for _, p := range r.s.pets {
		if p.OwnerID() == ownerID {
			out = append(out, clonePet(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().After(out[j].CreatedAt()) })
	return out, nil
}

func (r *PetRepository) List(ctx context.Context, page, limit int) ([]*petDomain.Pet, int64, error) {
	r.s.mu.RLock()
	all := make([]*petDomain.Pet, 0, len(r.s.pets))
	for _, p := range r.s.pets {
		all = append(all, clonePet(p))
	}
	r.s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt().After(all[j].CreatedAt()) })
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) || start < 0 {
		return []*petDomain.Pet{}, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *PetRepository) Save(ctx context.Context, p *petDomain.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.pets[p.ID()]; exists {
		return domain.NewConflictError("pet already exists")
	}
	r.s.pets[p.ID()] = clonePet(p)
	return nil
}

func (r *PetRepository) Update(ctx context.Context, p *petDomain.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.pets[p.ID()]
	if !ok || cur.Version() != p.Version()-1 {
		return domain.NewConflictError("pet was modified by another transaction")
	}
	r.s.pets[p.ID()] = clonePet(p)
	return nil
}

func (r *PetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.pets[id]; !ok {
		return domain.NewNotFoundError("Pet", id.String())
	}
	delete(r.s.pets, id)
	delete(r.s.photos, id)

	links := r.s.links[:0]
	for _, l := range r.s.links {
		if l.petID != id {
			links = append(links, l)
		}
	}
	r.s.links = links

	feedings := r.s.feedings[:0]
	for _, f := range r.s.feedings {
		if f.PetID() != id {
			feedings = append(feedings, f)
		}
	}
	r.s.feedings = feedings
	return nil
}

func (r *PetRepository) AddToy(ctx context.Context, petID, toyID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.pets[petID]; !ok {
		return domain.NewNotFoundError("Pet", petID.String())
	}
	if _, ok := r.s.toys[toyID]; !ok {
		return domain.NewNotFoundError("Toy", toyID.String())
	}
	if !r.s.linked(petID, toyID) {
		r.s.links = append(r.s.links, petToy{petID: petID, toyID: toyID})
	}
	return nil
}

func (r *PetRepository) ToyIDs(ctx context.Context, petID uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ids := make([]uuid.UUID, 0)
	for _, l := range r.s.links {
		if l.petID == petID {
			ids = append(ids, l.toyID)
		}
	}
	return ids, nil
}

func clonePet(p *petDomain.Pet) *petDomain.Pet {
	return petDomain.Reconstruct(
		p.ID(), p.OwnerID(),
		p.Name(), p.Breed(), p.Description(),
		p.Age(), p.Version(),
		p.CreatedAt(), p.UpdatedAt(),
	)
}

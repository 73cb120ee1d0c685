package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	toyDomain "github.com/Kilat-Pet-Delivery/service-petcare/internal/domain/toy"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/domain"
)

// ToyRepository implements toy.ToyRepository.
type ToyRepository struct {
	s *Store
}

func (r *ToyRepository) FindByID(ctx context.Context, id uuid.UUID) (*toyDomain.Toy, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.toys[id]
	if !ok {
		return nil, domain.NewNotFoundError("Toy", id.String())
	}
	return cloneToy(t), nil
}

func (r *ToyRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*toyDomain.Toy, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*toyDomain.Toy, 0, len(ids))
	for _, id := range ids {
		if t, ok := r.s.toys[id]; ok {
			out = append(out, cloneToy(t))
		}
	}
	sortToys(out)
	return out, nil
}

func (r *ToyRepository) FindNotLinkedToPet(ctx context.Context, petID uuid.UUID) ([]*toyDomain.Toy, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := make([]*toyDomain.Toy, 0, len(r.s.toys))
	for _, t := range r.s.toys {
		all = append(all, cloneToy(t))
	}
	sortToys(all)

	var linked []uuid.UUID
	for _, l := range r.s.links {
		if l.petID == petID {
			linked = append(linked, l.toyID)
		}
	}
	return toyDomain.Without(all, linked), nil
}

func (r *ToyRepository) List(ctx context.Context, page, limit int) ([]*toyDomain.Toy, int64, error) {
	r.s.mu.RLock()
	all := make([]*toyDomain.Toy, 0, len(r.s.toys))
	for _, t := range r.s.toys {
		all = append(all, cloneToy(t))
	}
	r.s.mu.RUnlock()

	sortToys(all)
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) || start < 0 {
		return []*toyDomain.Toy{}, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *ToyRepository) Save(ctx context.Context, t *toyDomain.Toy) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.toys[t.ID()]; exists {
		return domain.NewConflictError("toy already exists")
	}
	r.s.toys[t.ID()] = cloneToy(t)
	return nil
}

func (r *ToyRepository) Update(ctx context.Context, t *toyDomain.Toy) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.toys[t.ID()]
	if !ok || cur.Version() != t.Version()-1 {
		return domain.NewConflictError("toy was modified by another transaction")
	}
	r.s.toys[t.ID()] = cloneToy(t)
	return nil
}

func (r *ToyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.toys[id]; !ok {
		return domain.NewNotFoundError("Toy", id.String())
	}
	delete(r.s.toys, id)
	links := r.s.links[:0]
	for _, l := range r.s.links {
		if l.toyID != id {
			links = append(links, l)
		}
	}
	r.s.links = links
	return nil
}

func cloneToy(t *toyDomain.Toy) *toyDomain.Toy {
	return toyDomain.Reconstruct(t.ID(), t.Name(), t.Color(), t.Version(), t.CreatedAt(), t.UpdatedAt())
}

func sortToys(toys []*toyDomain.Toy) {
	sort.Slice(toys, func(i, j int) bool { return toys[i].Name() < toys[j].Name() })
}

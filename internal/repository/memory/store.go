// Package memory provides in-process repository implementations used in
// development mode and in service tests.
package memory

import (
	"sync"

	"github.com/google/uuid"

	feedingDomain "github.com/Kilat-Pet-Delivery/service-petcare/internal/domain/feeding"
	petDomain "github.com/Kilat-Pet-Delivery/service-petcare/internal/domain/pet"
	photoDomain "github.com/Kilat-Pet-Delivery/service-petcare/internal/domain/photo"
	toyDomain "github.com/Kilat-Pet-Delivery/service-petcare/internal/domain/toy"
)

type petToy struct {
	petID uuid.UUID
	toyID uuid.UUID
}

// Store holds every aggregate behind a single lock so cascading deletes stay
// consistent across repositories.
type Store struct {
	mu       sync.RWMutex
	pets     map[uuid.UUID]*petDomain.Pet
	toys     map[uuid.UUID]*toyDomain.Toy
	links    []petToy
	feedings []*feedingDomain.Feeding
	photos   map[uuid.UUID]*photoDomain.PetPhoto
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		pets:   make(map[uuid.UUID]*petDomain.Pet),
		toys:   make(map[uuid.UUID]*toyDomain.Toy),
		photos: make(map[uuid.UUID]*photoDomain.PetPhoto),
	}
}

func (s *Store) Pets() *PetRepository         { return &PetRepository{s: s} }
func (s *Store) Toys() *ToyRepository         { return &ToyRepository{s: s} }
func (s *Store) Feedings() *FeedingRepository { return &FeedingRepository{s: s} }
func (s *Store) Photos() *PhotoRepository     { return &PhotoRepository{s: s} }

func (s *Store) linked(petID, toyID uuid.UUID) bool {
	for _, l := range s.links {
		if l.petID == petID && l.toyID == toyID {
			return true
		}
	}
	return false
}

package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	petDomain "github.com/Kilat-Pet-Delivery/service-petcare/internal/domain/pet"
	toyDomain "github.com/Kilat-Pet-Delivery/service-petcare/internal/domain/toy"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/events"
)

// AssociationService links toys to pets and computes which toys a pet lacks.
type AssociationService struct {
	pets      petDomain.PetRepository
	links     petDomain.ToyLinkRepository
	toys      toyDomain.ToyRepository
	policy    AccessPolicy
	publisher EventPublisher
	logger    *zap.Logger
}

// NewAssociationService creates a new AssociationService. publisher may be nil.
func NewAssociationService(
	pets petDomain.PetRepository,
	links petDomain.ToyLinkRepository,
	toys toyDomain.ToyRepository,
	policy AccessPolicy,
	publisher EventPublisher,
	logger *zap.Logger,
) *AssociationService {
	return &AssociationService{
		pets:      pets,
		links:     links,
		toys:      toys,
		policy:    policy,
		publisher: publisher,
		logger:    logger,
	}
}

// AttachToy links toyID to petID. Attaching an already linked toy succeeds
// without creating a duplicate.
func (s *AssociationService) AttachToy(ctx context.Context, userID, petID, toyID uuid.UUID) error {
	pet, err := s.pets.FindByID(ctx, petID)
	if err != nil {
		return err
	}
	if err := s.policy.Authorize(pet, userID); err != nil {
		return err
	}
	if _, err := s.toys.FindByID(ctx, toyID); err != nil {
		return err
	}

	if err := s.links.AddToy(ctx, petID, toyID); err != nil {
		s.logger.Error("failed to attach toy", zap.Error(err))
		return fmt.Errorf("failed to attach toy: %w", err)
	}

	s.logger.Info("toy attached to pet",
		zap.String("pet_id", petID.String()),
		zap.String("toy_id", toyID.String()),
	)

	evt := events.ToyAttachedEvent{
		PetID:      petID,
		ToyID:      toyID,
		AttachedBy: userID,
		OccurredAt: time.Now().UTC(),
	}
	publishEvent(ctx, s.publisher, s.logger, events.PetToyAttached, petID.String(), evt)
	return nil
}

// PetToys returns the toys linked to petID ordered by name.
func (s *AssociationService) PetToys(ctx context.Context, userID, petID uuid.UUID) ([]ToyDTO, error) {
	if err := s.authorize(ctx, userID, petID); err != nil {
		return nil, err
	}
	ids, err := s.links.ToyIDs(ctx, petID)
	if err != nil {
		return nil, err
	}
	toys, err := s.toys.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return toToyDTOs(toys), nil
}

// AvailableToys returns every toy not yet linked to petID. It is recomputed
// on each call.
func (s *AssociationService) AvailableToys(ctx context.Context, userID, petID uuid.UUID) ([]ToyDTO, error) {
	if err := s.authorize(ctx, userID, petID); err != nil {
		return nil, err
	}
	toys, err := s.toys.FindNotLinkedToPet(ctx, petID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute available toys: %w", err)
	}
	return toToyDTOs(toys), nil
}

func (s *AssociationService) authorize(ctx context.Context, userID, petID uuid.UUID) error {
	pet, err := s.pets.FindByID(ctx, petID)
	if err != nil {
		return err
	}
	return s.policy.Authorize(pet, userID)
}

package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	feedingDomain "github.com/Kilat-Pet-Delivery/service-petcare/internal/domain/feeding"
	petDomain "github.com/Kilat-Pet-Delivery/service-petcare/internal/domain/pet"
	photoDomain "github.com/Kilat-Pet-Delivery/service-petcare/internal/domain/photo"
	toyDomain "github.com/Kilat-Pet-Delivery/service-petcare/internal/domain/toy"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/domain"
)

// CreatePetRequest is the request DTO for creating a pet profile.
type CreatePetRequest struct {
	Name        string `json:"name" form:"name" binding:"required,max=100"`
	Breed       string `json:"breed" form:"breed" binding:"max=100"`
	Description string `json:"description" form:"description" binding:"max=250"`
	Age         int    `json:"age" form:"age" binding:"gte=0"`
}

// UpdatePetRequest is the request DTO for updating a pet profile. The name
// cannot be changed; nil fields are left untouched.
type UpdatePetRequest struct {
	Breed       *string `json:"breed" form:"breed" binding:"omitempty,max=100"`
	Description *string `json:"description" form:"description" binding:"omitempty,max=250"`
	Age         *int    `json:"age" form:"age" binding:"omitempty,gte=0"`
}

// PetDTO is the API response representation of a pet profile.
type PetDTO struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Breed       string    `json:"breed"`
	Description string    `json:"description"`
	Age         int       `json:"age"`
	Version     int64     `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PetDetailDTO is everything the pet detail view shows.
type PetDetailDTO struct {
	Pet           PetDTO       `json:"pet"`
	Toys          []ToyDTO     `json:"toys"`
	AvailableToys []ToyDTO     `json:"available_toys"`
	Feedings      []FeedingDTO `json:"feedings"`
	Photo         *PhotoDTO    `json:"photo,omitempty"`
	FedForToday   bool         `json:"fed_for_today"`
}

// Repositories groups the stores the pet service reads from.
type Repositories struct {
	Pets     petDomain.PetRepository
	ToyLinks petDomain.ToyLinkRepository
	Toys     toyDomain.ToyRepository
	Feedings feedingDomain.FeedingRepository
	Photos   photoDomain.PhotoRepository
}

// PetService implements use cases for pet profile management.
type PetService struct {
	repos  Repositories
	policy AccessPolicy
	logger *zap.Logger
	now    func() time.Time
}

// NewPetService creates a new PetService.
func NewPetService(repos Repositories, policy AccessPolicy, logger *zap.Logger) *PetService {
	return &PetService{repos: repos, policy: policy, logger: logger, now: time.Now}
}

// CreatePet creates a new pet profile for the given owner.
func (s *PetService) CreatePet(ctx context.Context, ownerID uuid.UUID, req CreatePetRequest) (*PetDTO, error) {
	pet, err := petDomain.NewPet(ownerID, req.Name, req.Breed, req.Description, req.Age)
	if err != nil {
		return nil, err
	}

	if err := s.repos.Pets.Save(ctx, pet); err != nil {
		s.logger.Error("failed to create pet", zap.Error(err))
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}

	s.logger.Info("pet profile created",
		zap.String("pet_id", pet.ID().String()),
		zap.String("owner_id", ownerID.String()),
	)
	result := toPetDTO(pet)
	return &result, nil
}

// GetMyPets returns all pet profiles for the given owner, newest first.
func (s *PetService) GetMyPets(ctx context.Context, ownerID uuid.UUID) ([]PetDTO, error) {
	pets, err := s.repos.Pets.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pets: %w", err)
	}
	dtos := make([]PetDTO, len(pets))
	for i, p := range pets {
		dtos[i] = toPetDTO(p)
	}
	return dtos, nil
}

// PetStatsDTO summarises the catalogue for administrators.
type PetStatsDTO struct {
	TotalPets int64 `json:"total_pets"`
	TotalToys int64 `json:"total_toys"`
}

// ListAllPets returns every pet across owners with pagination.
func (s *PetService) ListAllPets(ctx context.Context, page, limit int) (*domain.PaginatedResult[PetDTO], error) {
	pets, total, err := s.repos.Pets.List(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}
	dtos := make([]PetDTO, len(pets))
	for i, p := range pets {
		dtos[i] = toPetDTO(p)
	}
	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// GetPetStats counts pets and toys.
func (s *PetService) GetPetStats(ctx context.Context) (*PetStatsDTO, error) {
	_, pets, err := s.repos.Pets.List(ctx, 1, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to count pets: %w", err)
	}
	_, toys, err := s.repos.Toys.List(ctx, 1, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to count toys: %w", err)
	}
	return &PetStatsDTO{TotalPets: pets, TotalToys: toys}, nil
}

// GetPetDetail assembles the detail view: the pet, its toys, the toys it
// does not have yet, its feeding log and its photo.
func (s *PetService) GetPetDetail(ctx context.Context, userID, petID uuid.UUID) (*PetDetailDTO, error) {
	pet, err := s.repos.Pets.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(pet, userID); err != nil {
		return nil, err
	}

	toyIDs, err := s.repos.ToyLinks.ToyIDs(ctx, petID)
	if err != nil {
		return nil, err
	}
	toys, err := s.repos.Toys.FindByIDs(ctx, toyIDs)
	if err != nil {
		return nil, err
	}
	available, err := s.repos.Toys.FindNotLinkedToPet(ctx, petID)
	if err != nil {
		return nil, err
	}
	feedings, err := s.repos.Feedings.FindByPetID(ctx, petID)
	if err != nil {
		return nil, err
	}

	detail := &PetDetailDTO{
		Pet:           toPetDTO(pet),
		Toys:          toToyDTOs(toys),
		AvailableToys: toToyDTOs(available),
		Feedings:      toFeedingDTOs(feedings),
		FedForToday:   feedingDomain.FedForDay(feedings, s.now()),
	}

	photo, err := s.repos.Photos.FindByPetID(ctx, petID)
	switch {
	case err == nil:
		detail.Photo = toPhotoDTO(photo)
	case domain.IsNotFound(err):
	default:
		return nil, err
	}

	return detail, nil
}

// UpdatePet updates a pet profile, verifying ownership.
func (s *PetService) UpdatePet(ctx context.Context, ownerID, petID uuid.UUID, req UpdatePetRequest) (*PetDTO, error) {
	pet, err := s.repos.Pets.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if !pet.IsOwnedBy(ownerID) {
		return nil, domain.NewForbiddenError("you do not own this pet profile")
	}

	if err := pet.Update(req.Breed, req.Description, req.Age); err != nil {
		return nil, err
	}

	if err := s.repos.Pets.Update(ctx, pet); err != nil {
		s.logger.Error("failed to update pet", zap.Error(err))
		return nil, fmt.Errorf("failed to update pet: %w", err)
	}

	s.logger.Info("pet profile updated", zap.String("pet_id", petID.String()))
	result := toPetDTO(pet)
	return &result, nil
}

// DeletePet deletes a pet profile with its toy links, feedings and photo,
// verifying ownership.
func (s *PetService) DeletePet(ctx context.Context, ownerID, petID uuid.UUID) error {
	pet, err := s.repos.Pets.FindByID(ctx, petID)
	if err != nil {
		return err
	}
	if !pet.IsOwnedBy(ownerID) {
		return domain.NewForbiddenError("you do not own this pet profile")
	}

	if err := s.repos.Pets.Delete(ctx, petID); err != nil {
		s.logger.Error("failed to delete pet", zap.Error(err))
		return fmt.Errorf("failed to delete pet: %w", err)
	}

	s.logger.Info("pet profile deleted", zap.String("pet_id", petID.String()))
	return nil
}

func toPetDTO(p *petDomain.Pet) PetDTO {
	return PetDTO{
		ID:          p.ID(),
		OwnerID:     p.OwnerID(),
		Name:        p.Name(),
		Breed:       p.Breed(),
		Description: p.Description(),
		Age:         p.Age(),
		Version:     p.Version(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	toyDomain "github.com/Kilat-Pet-Delivery/service-petcare/internal/domain/toy"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/domain"
)

// CreateToyRequest is the request DTO for creating a toy.
type CreateToyRequest struct {
	Name  string `json:"name" form:"name" binding:"required,max=50"`
	Color string `json:"color" form:"color" binding:"max=20"`
}

// UpdateToyRequest is the request DTO for updating a toy. Empty fields are kept.
type UpdateToyRequest struct {
	Name  string `json:"name" form:"name" binding:"max=50"`
	Color string `json:"color" form:"color" binding:"max=20"`
}

// ToyDTO is the API response representation of a toy.
type ToyDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToyService implements toy catalogue use cases. Toys are shared by all users.
type ToyService struct {
	repo   toyDomain.ToyRepository
	logger *zap.Logger
}

// NewToyService creates a new ToyService.
func NewToyService(repo toyDomain.ToyRepository, logger *zap.Logger) *ToyService {
	return &ToyService{repo: repo, logger: logger}
}

// CreateToy adds a toy to the catalogue.
func (s *ToyService) CreateToy(ctx context.Context, req CreateToyRequest) (*ToyDTO, error) {
	t, err := toyDomain.NewToy(req.Name, req.Color)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, t); err != nil {
		s.logger.Error("failed to create toy", zap.Error(err))
		return nil, fmt.Errorf("failed to create toy: %w", err)
	}

	s.logger.Info("toy created", zap.String("toy_id", t.ID().String()))
	result := toToyDTO(t)
	return &result, nil
}

// ListToys returns one page of the catalogue ordered by name.
func (s *ToyService) ListToys(ctx context.Context, page, limit int) (*domain.PaginatedResult[ToyDTO], error) {
	toys, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list toys: %w", err)
	}
	result := domain.NewPaginatedResult(toToyDTOs(toys), total, page, limit)
	return &result, nil
}

// GetToy returns a single toy.
func (s *ToyService) GetToy(ctx context.Context, id uuid.UUID) (*ToyDTO, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toToyDTO(t)
	return &result, nil
}

// UpdateToy renames or recolors a toy.
func (s *ToyService) UpdateToy(ctx context.Context, id uuid.UUID, req UpdateToyRequest) (*ToyDTO, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	t.Update(req.Name, req.Color)
	if err := s.repo.Update(ctx, t); err != nil {
		s.logger.Error("failed to update toy", zap.Error(err))
		return nil, fmt.Errorf("failed to update toy: %w", err)
	}

	s.logger.Info("toy updated", zap.String("toy_id", id.String()))
	result := toToyDTO(t)
	return &result, nil
}

// DeleteToy removes a toy and unlinks it from every pet.
func (s *ToyService) DeleteToy(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("toy deleted", zap.String("toy_id", id.String()))
	return nil
}

func toToyDTO(t *toyDomain.Toy) ToyDTO {
	return ToyDTO{
		ID:        t.ID(),
		Name:      t.Name(),
		Color:     t.Color(),
		CreatedAt: t.CreatedAt(),
		UpdatedAt: t.UpdatedAt(),
	}
}

func toToyDTOs(toys []*toyDomain.Toy) []ToyDTO {
	dtos := make([]ToyDTO, len(toys))
	for i, t := range toys {
		dtos[i] = toToyDTO(t)
	}
	return dtos
}

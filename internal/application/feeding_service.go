package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	feedingDomain "github.com/Kilat-Pet-Delivery/service-petcare/internal/domain/feeding"
	petDomain "github.com/Kilat-Pet-Delivery/service-petcare/internal/domain/pet"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/events"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/domain"
)

// AddFeedingForm is the input for logging a feeding. The target pet always
// comes from the request path, never from the payload.
type AddFeedingForm struct {
	Meal  string    `validate:"required,oneof=B L D"`
	FedAt time.Time `validate:"required"`
}

// AddFeedingRequest is the raw feeding payload as posted by a form or JSON
// client. A pet_id field, if any, is not bound.
type AddFeedingRequest struct {
	Meal  string `json:"meal" form:"meal"`
	FedAt string `json:"fed_at" form:"fed_at"`
}

// fedAtLayouts are tried in order. Date-only and datetime-local values are
// taken as UTC.
var fedAtLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Form converts the request, parsing fed_at. An empty fed_at yields a zero
// time that validation later rejects as missing.
func (r AddFeedingRequest) Form() (AddFeedingForm, error) {
	form := AddFeedingForm{Meal: strings.TrimSpace(r.Meal)}
	raw := strings.TrimSpace(r.FedAt)
	if raw == "" {
		return form, nil
	}
	for _, layout := range fedAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			form.FedAt = t.UTC()
			return form, nil
		}
	}
	return form, domain.NewValidationError(fmt.Sprintf("invalid feeding: fed_at %q is not a date (YYYY-MM-DD) or RFC 3339 timestamp", raw))
}

// FeedingDTO is the API response representation of a feeding.
type FeedingDTO struct {
	ID        uuid.UUID `json:"id"`
	PetID     uuid.UUID `json:"pet_id"`
	FedAt     time.Time `json:"fed_at"`
	Meal      string    `json:"meal"`
	MealLabel string    `json:"meal_label"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedingService appends to and reads pets' feeding logs.
type FeedingService struct {
	pets      petDomain.PetRepository
	feedings  feedingDomain.FeedingRepository
	policy    AccessPolicy
	publisher EventPublisher
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewFeedingService creates a new FeedingService. publisher may be nil.
func NewFeedingService(
	pets petDomain.PetRepository,
	feedings feedingDomain.FeedingRepository,
	policy AccessPolicy,
	publisher EventPublisher,
	logger *zap.Logger,
) *FeedingService {
	return &FeedingService{
		pets:      pets,
		feedings:  feedings,
		policy:    policy,
		publisher: publisher,
		validate:  validator.New(),
		logger:    logger,
	}
}

// AddFeeding validates form and appends it to petID's log. An invalid form
// returns a validation error and persists nothing.
func (s *FeedingService) AddFeeding(ctx context.Context, userID, petID uuid.UUID, form AddFeedingForm) (*FeedingDTO, error) {
	pet, err := s.pets.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(pet, userID); err != nil {
		return nil, err
	}

	if err := s.validate.StructCtx(ctx, form); err != nil {
		return nil, domain.NewValidationError(describeValidation(err))
	}

	f, err := feedingDomain.NewFeeding(pet.ID(), form.FedAt, feedingDomain.Meal(form.Meal))
	if err != nil {
		return nil, err
	}
	if err := s.feedings.Save(ctx, f); err != nil {
		s.logger.Error("failed to save feeding", zap.Error(err))
		return nil, fmt.Errorf("failed to save feeding: %w", err)
	}

	s.logger.Info("feeding logged",
		zap.String("pet_id", petID.String()),
		zap.String("meal", form.Meal),
	)

	evt := events.FeedingLoggedEvent{
		FeedingID:  f.ID(),
		PetID:      f.PetID(),
		Meal:       string(f.Meal()),
		FedAt:      f.FedAt(),
		OccurredAt: time.Now().UTC(),
	}
	publishEvent(ctx, s.publisher, s.logger, events.PetFeedingLogged, petID.String(), evt)

	result := toFeedingDTO(f)
	return &result, nil
}

// ListFeedings returns petID's feedings, most recent first.
func (s *FeedingService) ListFeedings(ctx context.Context, userID, petID uuid.UUID) ([]FeedingDTO, error) {
	pet, err := s.pets.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(pet, userID); err != nil {
		return nil, err
	}
	feedings, err := s.feedings.FindByPetID(ctx, petID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedings: %w", err)
	}
	return toFeedingDTOs(feedings), nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", strings.ToLower(fe.Field())))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", strings.ToLower(fe.Field()), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
	}
	return "invalid feeding: " + strings.Join(msgs, "; ")
}

func toFeedingDTO(f *feedingDomain.Feeding) FeedingDTO {
	return FeedingDTO{
		ID:        f.ID(),
		PetID:     f.PetID(),
		FedAt:     f.FedAt(),
		Meal:      string(f.Meal()),
		MealLabel: f.Meal().Label(),
		CreatedAt: f.CreatedAt(),
	}
}

func toFeedingDTOs(feedings []*feedingDomain.Feeding) []FeedingDTO {
	dtos := make([]FeedingDTO, len(feedings))
	for i, f := range feedings {
		dtos[i] = toFeedingDTO(f)
	}
	return dtos
}

package application

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	petDomain "github.com/Kilat-Pet-Delivery/service-petcare/internal/domain/pet"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/events"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/domain"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/kafka"
)

// EventPublisher publishes CloudEvents to a topic. *kafka.Producer satisfies it.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}

// AccessPolicy decides who may act on a pet in the workflow operations
// (detail view, feeding, toy association, photo upload).
type AccessPolicy struct {
	// EnforceOwnership restricts workflows to the pet's owner. When false
	// any authenticated caller may use them.
	EnforceOwnership bool
}

// Authorize returns a Forbidden error when the policy denies userID access to p.
func (a AccessPolicy) Authorize(p *petDomain.Pet, userID uuid.UUID) error {
	if a.EnforceOwnership && !p.IsOwnedBy(userID) {
		return domain.NewForbiddenError("you do not own this pet profile")
	}
	return nil
}

// publishEvent is best effort: failures are logged and never returned.
func publishEvent(ctx context.Context, publisher EventPublisher, logger *zap.Logger, eventType, key string, data interface{}) {
	if publisher == nil {
		return
	}

	cloudEvent, err := kafka.NewCloudEvent(events.Source, eventType, data)
	if err != nil {
		logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	cloudEvent.Subject = key

	if err := publisher.PublishEvent(ctx, events.TopicPetcareEvents, cloudEvent); err != nil {
		logger.Error("failed to publish event",
			zap.String("topic", events.TopicPetcareEvents),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

package events

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/kafka"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/storage"
)

// PhotoEvictionConsumer listens to petcare events and deletes the object of
// every photo evicted by a replacement.
type PhotoEvictionConsumer struct {
	consumer *kafka.Consumer
	store    storage.ObjectStore
	logger   *zap.Logger
}

// NewPhotoEvictionConsumer creates a new PhotoEvictionConsumer.
func NewPhotoEvictionConsumer(
	brokers []string,
	groupID string,
	store storage.ObjectStore,
	logger *zap.Logger,
) *PhotoEvictionConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, TopicPetcareEvents, logger)
	return &PhotoEvictionConsumer{
		consumer: consumer,
		store:    store,
		logger:   logger,
	}
}

// Start begins consuming petcare events. This blocks until the context is cancelled.
func (c *PhotoEvictionConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *PhotoEvictionConsumer) Close() error {
	return c.consumer.Close()
}

func (c *PhotoEvictionConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from petcare topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case PetPhotoReplaced:
		return c.handlePhotoReplaced(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled petcare event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *PhotoEvictionConsumer) handlePhotoReplaced(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt PhotoReplacedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse PhotoReplacedEvent data", zap.Error(err))
		return nil // Don't retry malformed data
	}

	if evt.EvictedObjectKey == "" || evt.EvictedObjectKey == evt.ObjectKey {
		return nil
	}

	if err := c.store.Delete(ctx, evt.Bucket, evt.EvictedObjectKey); err != nil {
		c.logger.Error("failed to delete evicted photo object",
			zap.String("pet_id", evt.PetID.String()),
			zap.String("object_key", evt.EvictedObjectKey),
			zap.Error(err),
		)
		return err
	}

	c.logger.Info("evicted photo object deleted",
		zap.String("pet_id", evt.PetID.String()),
		zap.String("object_key", evt.EvictedObjectKey),
	)
	return nil
}

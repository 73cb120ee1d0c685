package events

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/kafka"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/storage"
)

type failingStore struct{ storage.ObjectStore }

func (failingStore) Delete(ctx context.Context, bucket, key string) error {
	return errors.New("s3 down")
}

func photoReplacedMessage(t *testing.T, evt PhotoReplacedEvent) kafkago.Message {
	t.Helper()
	ce, err := kafka.NewCloudEvent(Source, PetPhotoReplaced, evt)
	require.NoError(t, err)
	raw, err := json.Marshal(ce)
	require.NoError(t, err)
	return kafkago.Message{Value: raw}
}

func TestPhotoEvictionConsumer_DeletesEvictedObject(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Upload(ctx, "pets", "old.png", strings.NewReader("old"), "image/png"))
	require.NoError(t, store.Upload(ctx, "pets", "new.png", strings.NewReader("new"), "image/png"))

	c := &PhotoEvictionConsumer{store: store, logger: zap.NewNop()}
	msg := photoReplacedMessage(t, PhotoReplacedEvent{
		PetID:            uuid.New(),
		Bucket:           "pets",
		ObjectKey:        "new.png",
		EvictedObjectKey: "old.png",
		OccurredAt:       time.Now(),
	})

	require.NoError(t, c.handleMessage(ctx, msg))

	_, ok := store.Get("pets", "old.png")
	assert.False(t, ok)
	_, ok = store.Get("pets", "new.png")
	assert.True(t, ok)
}

func TestPhotoEvictionConsumer_NothingEvicted(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Upload(ctx, "pets", "new.png", strings.NewReader("new"), "image/png"))

	c := &PhotoEvictionConsumer{store: store, logger: zap.NewNop()}
	msg := photoReplacedMessage(t, PhotoReplacedEvent{PetID: uuid.New(), Bucket: "pets", ObjectKey: "new.png"})

	require.NoError(t, c.handleMessage(ctx, msg))
	assert.Equal(t, 1, store.Len())
}

func TestPhotoEvictionConsumer_MalformedAndUnknown(t *testing.T) {
	c := &PhotoEvictionConsumer{store: failingStore{}, logger: zap.NewNop()}

	assert.NoError(t, c.handleMessage(context.Background(), kafkago.Message{Value: []byte("not json")}))

	ce, err := kafka.NewCloudEvent(Source, PetFeedingLogged, FeedingLoggedEvent{PetID: uuid.New()})
	require.NoError(t, err)
	raw, _ := json.Marshal(ce)
	assert.NoError(t, c.handleMessage(context.Background(), kafkago.Message{Value: raw}))
}

func TestPhotoEvictionConsumer_StoreFailureIsRetried(t *testing.T) {
	c := &PhotoEvictionConsumer{store: failingStore{}, logger: zap.NewNop()}
	msg := photoReplacedMessage(t, PhotoReplacedEvent{
		PetID:            uuid.New(),
		Bucket:           "pets",
		ObjectKey:        "new.png",
		EvictedObjectKey: "old.png",
	})
	assert.Error(t, c.handleMessage(context.Background(), msg))
}

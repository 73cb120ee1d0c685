package application

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	petDomain "github.com/Kilat-Pet-Delivery/service-petcare/internal/domain/pet"
	toyDomain "github.com/Kilat-Pet-Delivery/service-petcare/internal/domain/toy"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/kafka"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/repository/memory"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/storage"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []kafka.CloudEvent
}

func (p *recordingPublisher) PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

type fixture struct {
	store     *memory.Store
	objects   *storage.MemoryStore
	publisher *recordingPublisher

	pets         *PetService
	toys         *ToyService
	associations *AssociationService
	feedings     *FeedingService
	photos       *PhotoService
}

var testPhotoConfig = PhotoStoreConfig{
	BaseURL: "https://s3.us-east-2.amazonaws.com/",
	Bucket:  "catcollector-pets",
}

func newFixture(t *testing.T, policy AccessPolicy) *fixture {
	t.Helper()
	store := memory.NewStore()
	objects := storage.NewMemoryStore()
	pub := &recordingPublisher{}
	log := zap.NewNop()

	repos := Repositories{
		Pets:     store.Pets(),
		ToyLinks: store.Pets(),
		Toys:     store.Toys(),
		Feedings: store.Feedings(),
		Photos:   store.Photos(),
	}
	return &fixture{
		store:        store,
		objects:      objects,
		publisher:    pub,
		pets:         NewPetService(repos, policy, log),
		toys:         NewToyService(store.Toys(), log),
		associations: NewAssociationService(store.Pets(), store.Pets(), store.Toys(), policy, pub, log),
		feedings:     NewFeedingService(store.Pets(), store.Feedings(), policy, pub, log),
		photos:       NewPhotoService(store.Pets(), store.Photos(), objects, testPhotoConfig, policy, pub, log),
	}
}

func (f *fixture) pet(t *testing.T, ownerID uuid.UUID, name string) *petDomain.Pet {
	t.Helper()
	p, err := petDomain.NewPet(ownerID, name, "Tabby", "", 2)
	require.NoError(t, err)
	require.NoError(t, f.store.Pets().Save(context.Background(), p))
	return p
}

func (f *fixture) toy(t *testing.T, name string) *toyDomain.Toy {
	t.Helper()
	toy, err := toyDomain.NewToy(name, "blue")
	require.NoError(t, err)
	require.NoError(t, f.store.Toys().Save(context.Background(), toy))
	return toy
}

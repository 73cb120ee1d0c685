package events

import (
	"time"

	"github.com/google/uuid"
)

// Source identifies this service in CloudEvent envelopes.
const Source = "service-petcare"

// TopicPetcareEvents carries every pet lifecycle event.
const TopicPetcareEvents = "petcare.events"

const (
	PetToyAttached   = "petcare.pet.toy_attached"
	PetFeedingLogged = "petcare.pet.feeding_logged"
	PetPhotoReplaced = "petcare.pet.photo_replaced"
)

// ToyAttachedEvent is published when a toy is linked to a pet.
type ToyAttachedEvent struct {
	PetID      uuid.UUID `json:"pet_id"`
	ToyID      uuid.UUID `json:"toy_id"`
	AttachedBy uuid.UUID `json:"attached_by"`
	OccurredAt time.Time `json:"occurred_at"`
}

// FeedingLoggedEvent is published when a feeding is appended to a pet's log.
type FeedingLoggedEvent struct {
	FeedingID  uuid.UUID `json:"feeding_id"`
	PetID      uuid.UUID `json:"pet_id"`
	Meal       string    `json:"meal"`
	FedAt      time.Time `json:"fed_at"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PhotoReplacedEvent is published after a pet's photo row has been replaced.
// EvictedObjectKey is empty when the pet had no previous photo.
type PhotoReplacedEvent struct {
	PetID            uuid.UUID `json:"pet_id"`
	PhotoID          uuid.UUID `json:"photo_id"`
	URL              string    `json:"url"`
	Bucket           string    `json:"bucket"`
	ObjectKey        string    `json:"object_key"`
	EvictedObjectKey string    `json:"evicted_object_key,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}

package photo

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PetPhoto is the single current photo of a pet.
type PetPhoto struct {
	id        uuid.UUID
	petID     uuid.UUID
	url       string
	objectKey string
	createdAt time.Time
}

// NewPetPhoto creates a photo record for petID.
func NewPetPhoto(petID uuid.UUID, url, objectKey string) (*PetPhoto, error) {
	if petID == uuid.Nil {
		return nil, fmt.Errorf("pet ID is required")
	}
	if url == "" {
		return nil, fmt.Errorf("photo URL is required")
	}
	return &PetPhoto{
		id:        uuid.New(),
		petID:     petID,
		url:       url,
		objectKey: objectKey,
		createdAt: time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a PetPhoto from persistence.
func Reconstruct(id, petID uuid.UUID, url, objectKey string, createdAt time.Time) *PetPhoto {
	return &PetPhoto{
		id:        id,
		petID:     petID,
		url:       url,
		objectKey: objectKey,
		createdAt: createdAt,
	}
}

// Getters.
func (p *PetPhoto) ID() uuid.UUID        { return p.id }
func (p *PetPhoto) PetID() uuid.UUID     { return p.petID }
func (p *PetPhoto) URL() string          { return p.url }
func (p *PetPhoto) ObjectKey() string    { return p.objectKey }
func (p *PetPhoto) CreatedAt() time.Time { return p.createdAt }

// NewObjectKey returns a unique object key for an uploaded file: 32 hex
// characters from a random UUID followed by the file's extension.
func NewObjectKey(filename string) string {
	id := uuid.New()
	return hex.EncodeToString(id[:]) + Extension(filename)
}

// Extension returns the substring of filename from its last '.', dot
// included. A name without a dot has no extension.
func Extension(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return ""
	}
	return filename[i:]
}

// ObjectURL joins the public base URL, bucket and key. baseURL is expected
// to end with '/', e.g. "https://s3.us-east-2.amazonaws.com/".
func ObjectURL(baseURL, bucket, key string) string {
	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return baseURL + bucket + "/" + key
}

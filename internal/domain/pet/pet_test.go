package pet

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/domain"
)

func TestNewPet_Validation(t *testing.T) {
	owner := uuid.New()

	_, err := NewPet(uuid.Nil, "Biscuit", "", "", 1)
	assert.True(t, domain.IsValidation(err))

	_, err = NewPet(owner, "", "", "", 1)
	assert.True(t, domain.IsValidation(err))

	_, err = NewPet(owner, "Biscuit", "", "", -1)
	assert.True(t, domain.IsValidation(err))

	p, err := NewPet(owner, "Biscuit", "Tabby", "loud", 3)
	require.NoError(t, err)
	assert.True(t, p.IsOwnedBy(owner))
	assert.False(t, p.IsOwnedBy(uuid.New()))
	assert.Equal(t, int64(1), p.Version())
}

func TestPet_Update(t *testing.T) {
	p, err := NewPet(uuid.New(), "Biscuit", "Tabby", "loud", 3)
	require.NoError(t, err)

	desc := "sleepy"
	require.NoError(t, p.Update(nil, &desc, nil))
	assert.Equal(t, "Tabby", p.Breed())
	assert.Equal(t, "sleepy", p.Description())
	assert.Equal(t, 3, p.Age())
	assert.Equal(t, int64(2), p.Version())

	neg := -4
	err = p.Update(nil, nil, &neg)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, int64(2), p.Version())
}

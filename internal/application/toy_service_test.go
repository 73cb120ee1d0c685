package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/domain"
)

func TestToyLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, AccessPolicy{})

	for _, name := range []string{"Yarn", "Ball", "Mouse"} {
		_, err := f.toys.CreateToy(ctx, CreateToyRequest{Name: name, Color: "red"})
		require.NoError(t, err)
	}

	page, err := f.toys.ListToys(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Ball", page.Items[0].Name)

	updated, err := f.toys.UpdateToy(ctx, page.Items[0].ID, UpdateToyRequest{Color: "green"})
	require.NoError(t, err)
	assert.Equal(t, "Ball", updated.Name)
	assert.Equal(t, "green", updated.Color)

	require.NoError(t, f.toys.DeleteToy(ctx, updated.ID))
	_, err = f.toys.GetToy(ctx, updated.ID)
	assert.True(t, domain.IsNotFound(err))

	_, err = f.toys.CreateToy(ctx, CreateToyRequest{})
	assert.True(t, domain.IsValidation(err))
}

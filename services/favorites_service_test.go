package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/my-lord1/food-delivery-backend/repository"
)

func TestToggleFavoriteRestaurant(t *testing.T) {
	db := openTestDB(t)
	svc := NewFavoritesService(
		repository.NewUserRepository(db),
		repository.NewRestaurantRepository(db),
		repository.NewMenuRepository(db),
	)
	owner := createUser(t, db, "owner@example.com")
	u := createUser(t, db, "user@example.com")
	rest := createRestaurant(t, db, owner.ID, 0, 0)

	fav, err := svc.ToggleRestaurant(u.ID, rest.ID)
	require.NoError(t, err)
	assert.True(t, fav)

	list, err := svc.Restaurants(u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, rest.ID, list[0].ID)

	fav, err = svc.ToggleRestaurant(u.ID, rest.ID)
	require.NoError(t, err)
	assert.False(t, fav)

	list, err = svc.Restaurants(u.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestToggleFavoriteMenuItem(t *testing.T) {
	db := openTestDB(t)
	svc := NewFavoritesService(
		repository.NewUserRepository(db),
		repository.NewRestaurantRepository(db),
		repository.NewMenuRepository(db),
	)
	owner := createUser(t, db, "owner@example.com")
	u := createUser(t, db, "user@example.com")
	rest := createRestaurant(t, db, owner.ID, 0, 0)
	item := createMenuItem(t, db, rest.ID, "Biryani", 30000)

	fav, err := svc.ToggleMenuItem(u.ID, item.ID)
	require.NoError(t, err)
	assert.True(t, fav)

	items, err := svc.MenuItems(u.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)

	fav, err = svc.ToggleMenuItem(u.ID, item.ID)
	require.NoError(t, err)
	assert.False(t, fav)
}

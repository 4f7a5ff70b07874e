package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/my-lord1/food-delivery-backend/pkg/apperr"
	"github.com/my-lord1/food-delivery-backend/repository"
)

func TestNotifyPersistsAndPushes(t *testing.T) {
	db := openTestDB(t)
	pusher := &recordingPusher{}
	svc := NewNotificationService(repository.NewNotificationRepository(db), pusher)
	u := createUser(t, db, "user@example.com")

	n, err := svc.Notify(u.ID, TmplOrderConfirmed("ORD12345678001"), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "order_confirmed", n.Type)
	assert.False(t, n.IsRead)
	require.Len(t, pusher.events, 1)

	items, total, unread, err := svc.ListForUser(u.ID, false, 1, 10)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.EqualValues(t, 1, total)
	assert.EqualValues(t, 1, unread)
}

func TestNotificationReadLifecycle(t *testing.T) {
	db := openTestDB(t)
	svc := NewNotificationService(repository.NewNotificationRepository(db), nil)
	u := createUser(t, db, "user@example.com")

	first, err := svc.Notify(u.ID, TmplOrderConfirmed("ORD1"), nil, nil)
	require.NoError(t, err)
	_, err = svc.Notify(u.ID, TmplOrderDelivered("ORD1"), nil, nil)
	require.NoError(t, err)

	read, err := svc.MarkRead(u.ID, first.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)
	assert.NotNil(t, read.ReadAt)

	_, _, unread, err := svc.ListForUser(u.ID, false, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)

	require.NoError(t, svc.MarkAllRead(u.ID))
	_, _, unread, err = svc.ListForUser(u.ID, false, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 0, unread)

	// unread-only filter
	items, _, _, err := svc.ListForUser(u.ID, true, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestNotificationClearAll(t *testing.T) {
	db := openTestDB(t)
	svc := NewNotificationService(repository.NewNotificationRepository(db), nil)
	u := createUser(t, db, "user@example.com")
	other := createUser(t, db, "other@example.com")

	for _, num := range []string{"ORD1", "ORD2", "ORD3"} {
		_, err := svc.Notify(u.ID, TmplOrderConfirmed(num), nil, nil)
		require.NoError(t, err)
	}
	_, err := svc.Notify(other.ID, TmplOrderConfirmed("ORD4"), nil, nil)
	require.NoError(t, err)

	require.NoError(t, svc.ClearAll(u.ID))

	_, total, _, err := svc.ListForUser(u.ID, false, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)

	// other users keep theirs
	_, total, _, err = svc.ListForUser(other.ID, false, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestNotificationOwnership(t *testing.T) {
	db := openTestDB(t)
	svc := NewNotificationService(repository.NewNotificationRepository(db), nil)
	u := createUser(t, db, "user@example.com")
	other := createUser(t, db, "other@example.com")

	n, err := svc.Notify(u.ID, TmplOrderConfirmed("ORD1"), nil, nil)
	require.NoError(t, err)

	_, err = svc.MarkRead(other.ID, n.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	err = svc.Delete(other.ID, n.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	require.NoError(t, svc.Delete(u.ID, n.ID))
	_, _, _, err = svc.ListForUser(u.ID, false, 1, 10)
	require.NoError(t, err)
}

package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_TouchKeepsActiveSessionAlive(t *testing.T) {
	store := NewStore(time.Hour, time.Minute)
	sess := store.Create("user-1")

	got, err := store.Touch(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
}

func TestStore_TouchUnknownSession(t *testing.T) {
	store := NewStore(time.Hour, time.Minute)

	_, err := store.Touch("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_InactivityExpiresSession(t *testing.T) {
	store := NewStore(10*time.Millisecond, time.Minute)
	sess := store.Create("user-1")

	time.Sleep(25 * time.Millisecond)

	_, err := store.Touch(sess.ID)
	assert.ErrorIs(t, err, ErrSessionExpired)

	// Expired session is gone, not just flagged
	_, err = store.Touch(sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_PINVerification(t *testing.T) {
	store := NewStore(time.Hour, time.Hour)
	sess := store.Create("user-1")

	assert.False(t, store.IsPINVerified(sess.ID))

	require.NoError(t, store.MarkPINVerified(sess.ID))
	assert.True(t, store.IsPINVerified(sess.ID))
}

func TestStore_PINVerificationExpiresAfterGrace(t *testing.T) {
	store := NewStore(time.Hour, 10*time.Millisecond)
	sess := store.Create("user-1")

	require.NoError(t, store.MarkPINVerified(sess.ID))
	time.Sleep(25 * time.Millisecond)

	assert.False(t, store.IsPINVerified(sess.ID))
}

func TestStore_Sweep(t *testing.T) {
	store := NewStore(10*time.Millisecond, time.Minute)
	a := store.Create("user-1")
	b := store.Create("user-2")
	require.Equal(t, 2, store.ActiveCount())

	time.Sleep(25 * time.Millisecond)
	removed := store.Sweep()

	assert.ElementsMatch(t, []string{a.ID, b.ID}, removed)
	assert.Equal(t, 0, store.ActiveCount())
}

func TestStore_Revoke(t *testing.T) {
	store := NewStore(time.Hour, time.Minute)
	sess := store.Create("user-1")

	store.Revoke(sess.ID)
	_, err := store.Touch(sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

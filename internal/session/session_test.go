package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	token, err := store.Create(ctx, "admin@merchantfeeadvocate.com", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := store.Validate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "admin@merchantfeeadvocate.com", email)
}

func TestMemoryStoreUnknownToken(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Validate(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	token, err := store.Create(ctx, "admin@merchantfeeadvocate.com", -time.Second)
	require.NoError(t, err)

	_, err = store.Validate(ctx, token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStoreRevoke(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	token, err := store.Create(ctx, "admin@merchantfeeadvocate.com", time.Minute)
	require.NoError(t, err)
	require.NoError(t, store.Revoke(ctx, token))

	_, err = store.Validate(ctx, token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

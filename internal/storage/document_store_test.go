package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocumentStore(t *testing.T) {
	ctx := context.Background()

	t.Run("opens in-memory bucket", func(t *testing.T) {
		store, err := NewDocumentStore(ctx, "mem://")
		require.NoError(t, err)
		defer store.Close()

		assert.NotNil(t, store)
	})

	t.Run("fails on invalid bucket url", func(t *testing.T) {
		_, err := NewDocumentStore(ctx, "bogus://bucket")
		assert.Error(t, err)
	})
}

func TestDocumentStore_SaveAndDelete(t *testing.T) {
	ctx := context.Background()

	store, err := NewDocumentStore(ctx, "mem://")
	require.NoError(t, err)
	defer store.Close()

	key, err := store.Save(ctx, "maids/m1/photo.jpg", []byte("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "maids/m1/photo.jpg", key)

	err = store.Delete(ctx, key)
	assert.NoError(t, err)

	// Deleting a missing key surfaces the bucket error
	err = store.Delete(ctx, key)
	assert.Error(t, err)
}

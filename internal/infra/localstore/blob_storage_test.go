package localstore

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
)

func createTestStorage(t *testing.T) service.SnapshotStorage {
	t.Helper()
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewWithBucket(context.Background(), bucket, logger)
}

func TestBlobStorage_SaveLoadRoundTrip(t *testing.T) {
	storage := createTestStorage(t)

	saved := entity.Session{
		AccessToken: "token-123",
		User: entity.User{
			ID:        "u1",
			Email:     "test@example.com",
			FirstName: "Test",
			LastName:  "User",
		},
	}
	require.NoError(t, storage.Save("authdata", saved))

	var loaded entity.Session
	require.NoError(t, storage.Load("authdata", &loaded))
	assert.Equal(t, saved, loaded)
}

func TestBlobStorage_LoadMissingKey(t *testing.T) {
	storage := createTestStorage(t)

	var out entity.Session
	err := storage.Load("authdata", &out)
	assert.ErrorIs(t, err, service.ErrKeyNotFound)
}

func TestBlobStorage_SaveReplacesPriorValue(t *testing.T) {
	storage := createTestStorage(t)

	require.NoError(t, storage.Save("usr", entity.RememberedCredentials{Email: "a@b.c", Password: "one"}))
	require.NoError(t, storage.Save("usr", entity.RememberedCredentials{Email: "a@b.c", Password: "two"}))

	var creds entity.RememberedCredentials
	require.NoError(t, storage.Load("usr", &creds))
	assert.Equal(t, "two", creds.Password)
}

func TestBlobStorage_DeleteIsIdempotent(t *testing.T) {
	storage := createTestStorage(t)

	require.NoError(t, storage.Save("prodList", entity.Catalog{}))
	require.NoError(t, storage.Delete("prodList"))
	require.NoError(t, storage.Delete("prodList"))

	var out entity.Catalog
	assert.ErrorIs(t, storage.Load("prodList", &out), service.ErrKeyNotFound)
}

package repositories_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorapp/internal/repositories"
)

func newSQLiteSessionRepo(t *testing.T) *repositories.GORMSessionRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := repositories.OpenDatabase("sqlite", dsn)
	require.NoError(t, err)
	return repositories.NewGORMSessionRepository(db)
}

func TestGORMSessionRepository_SetGet(t *testing.T) {
	repo := newSQLiteSessionRepo(t)
	ctx := context.Background()

	_, err := repo.Get(ctx, "vendorToken")
	assert.ErrorIs(t, err, repositories.ErrKeyNotFound)

	require.NoError(t, repo.Set(ctx, "vendorToken", "first"))
	value, err := repo.Get(ctx, "vendorToken")
	require.NoError(t, err)
	assert.Equal(t, "first", value)

	// Set overwrites.
	require.NoError(t, repo.Set(ctx, "vendorToken", "second"))
	value, err = repo.Get(ctx, "vendorToken")
	require.NoError(t, err)
	assert.Equal(t, "second", value)
}

func TestGORMSessionRepository_DeleteAndClear(t *testing.T) {
	repo := newSQLiteSessionRepo(t)
	ctx := context.Background()

	for _, key := range []string{"vendorToken", "vendorId", "vendorData", "fcmToken"} {
		require.NoError(t, repo.Set(ctx, key, key+"-value"))
	}

	require.NoError(t, repo.Delete(ctx, "vendorToken", "missing"))
	_, err := repo.Get(ctx, "vendorToken")
	assert.ErrorIs(t, err, repositories.ErrKeyNotFound)

	value, err := repo.Get(ctx, "vendorId")
	require.NoError(t, err)
	assert.Equal(t, "vendorId-value", value)

	require.NoError(t, repo.Clear(ctx))
	for _, key := range []string{"vendorId", "vendorData", "fcmToken"} {
		_, err := repo.Get(ctx, key)
		assert.ErrorIs(t, err, repositories.ErrKeyNotFound, key)
	}
}

func TestOpenDatabase_UnsupportedDriver(t *testing.T) {
	_, err := repositories.OpenDatabase("oracle", "whatever")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported session database driver")
}

package admins

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library-manager/internal/database"
	"github.com/mrlokans/library-manager/internal/entities"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "admins.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.DB)
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	admin := &entities.Admin{Username: "admin", Password: "hash"}
	require.NoError(t, repo.Create(ctx, admin))
	assert.NotZero(t, admin.ID)

	byName, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, byName.ID)

	byID, err := repo.GetByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", byID.Username)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRepository_GetByUsername_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetByUsername(context.Background(), "nobody")

	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_GetByUsername_IsExactMatch(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &entities.Admin{Username: "admin", Password: "hash"}))

	_, err := repo.GetByUsername(ctx, "adm%")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_Create_DuplicateUsername(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &entities.Admin{Username: "admin", Password: "a"}))

	err := repo.Create(ctx, &entities.Admin{Username: "admin", Password: "b"})

	assert.ErrorIs(t, err, database.ErrDuplicate)
}

package repository_test

import (
	"context"
	"testing"

	"providerrisk/cmd/internal/domain/database/repository"
	"providerrisk/cmd/internal/domain/entity"
	"providerrisk/cmd/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewUserRepository(db)

	user := &entity.User{Email: "analista@ejemplo.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, entity.RoleAnalyst, user.Role)

	exists, err := repo.ExistsByEmail(ctx, "analista@ejemplo.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "nadie@ejemplo.com")
	require.NoError(t, err)
	assert.False(t, exists)

	found, err := repo.FindByEmail(ctx, "analista@ejemplo.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, user.Email, byID.Email)

	missing, err := repo.FindByEmail(ctx, "nadie@ejemplo.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	err = repo.Create(ctx, &entity.User{Email: "analista@ejemplo.com", PasswordHash: "other"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

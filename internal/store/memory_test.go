package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paddyguard/paddyguard-backend/internal/models"
)

func testSeed() AdminSeed {
	return AdminSeed{Email: "admin@paddy.com", Mobile: "0000000000", PasswordHash: "hashed-admin"}
}

func TestMemoryDirectoryInitializeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	dir := NewMemoryDirectory(testSeed())

	for i := 0; i < 3; i++ {
		require.NoError(t, dir.Initialize(ctx))
	}

	admins, err := dir.ListByRole(ctx, models.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "admin@paddy.com", admins[0].Email)
	assert.Equal(t, "0000000000", admins[0].Mobile)
}

func TestMemoryDirectoryCreateUserUniqueness(t *testing.T) {
	ctx := context.Background()
	dir := NewMemoryDirectory(testSeed())
	require.NoError(t, dir.Initialize(ctx))

	user, err := dir.CreateUser(ctx, "farmer@example.com", "5551234567", "hash1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleFarmer, user.Role)
	assert.NotEmpty(t, user.ID)

	before := dir.Count()

	_, err = dir.CreateUser(ctx, "farmer@example.com", "5559999999", "hash2")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Equal(t, before, dir.Count(), "failed registration must not change the store")

	_, err = dir.CreateUser(ctx, "other@example.com", "5551234567", "hash3")
	assert.ErrorIs(t, err, ErrDuplicateMobile)
	assert.Equal(t, before, dir.Count())

	// The admin seed's mobile is taken too.
	_, err = dir.CreateUser(ctx, "third@example.com", "0000000000", "hash4")
	assert.ErrorIs(t, err, ErrDuplicateMobile)
}

func TestMemoryDirectoryFindAndUpdate(t *testing.T) {
	ctx := context.Background()
	dir := NewMemoryDirectory(testSeed())
	_, err := dir.CreateUser(ctx, "farmer@example.com", "5551234567", "old-hash")
	require.NoError(t, err)

	user, err := dir.FindByMobile(ctx, "5551234567")
	require.NoError(t, err)
	assert.Equal(t, "farmer@example.com", user.Email)

	_, err = dir.FindByMobile(ctx, "5550000000")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = dir.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, dir.UpdatePassword(ctx, "5551234567", "new-hash"))
	user, err = dir.FindByEmail(ctx, "farmer@example.com")
	require.NoError(t, err)
	assert.Equal(t, "new-hash", user.PasswordHash)

	assert.ErrorIs(t, dir.UpdatePassword(ctx, "5550000000", "x"), ErrUserNotFound)
}

func TestMemoryDirectoryListByRoleInsertionOrder(t *testing.T) {
	ctx := context.Background()
	dir := NewMemoryDirectory(testSeed())
	require.NoError(t, dir.Initialize(ctx))

	emails := []string{"a@example.com", "b@example.com", "c@example.com"}
	for i, email := range emails {
		_, err := dir.CreateUser(ctx, email, "555000000"+string(rune('0'+i)), "hash")
		require.NoError(t, err)
	}

	farmers, err := dir.ListByRole(ctx, models.RoleFarmer)
	require.NoError(t, err)
	require.Len(t, farmers, 3)
	for i, email := range emails {
		assert.Equal(t, email, farmers[i].Email)
	}
}

package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "shoplist/internal/errors"
)

func TestTagService_ResolveOrCreate(t *testing.T) {
	repos, _ := newTestDB(t)
	svc := NewCategoryService(repos.Categories)
	user := createTestUser(t, repos, "user@example.com")
	ctx := context.Background()

	created, err := svc.ResolveOrCreate(ctx, "produce", user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Produce", created.Name)
	assert.Equal(t, user.ID, created.UserID)
	assert.True(t, created.Private)

	// Same name, different casing: must resolve to the same row.
	resolved, err := svc.ResolveOrCreate(ctx, "PRODUCE", user.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, resolved.ID)

	tags, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestTagService_ResolveOrCreate_ScopedToOwner(t *testing.T) {
	repos, _ := newTestDB(t)
	svc := NewStoreService(repos.Stores)
	alice := createTestUser(t, repos, "alice@example.com")
	bob := createTestUser(t, repos, "bob@example.com")
	ctx := context.Background()

	aliceStore, err := svc.ResolveOrCreate(ctx, "Costco", alice.ID)
	require.NoError(t, err)

	// Bob resolving the same name gets his own row, never Alice's.
	bobStore, err := svc.ResolveOrCreate(ctx, "Costco", bob.ID)
	require.NoError(t, err)
	assert.NotEqual(t, aliceStore.ID, bobStore.ID)
	assert.Equal(t, bob.ID, bobStore.UserID)
}

func TestTagService_SameNameAcrossKinds(t *testing.T) {
	repos, _ := newTestDB(t)
	categorySvc := NewCategoryService(repos.Categories)
	storeSvc := NewStoreService(repos.Stores)
	user := createTestUser(t, repos, "user@example.com")
	ctx := context.Background()

	// Categories and stores live in separate tables with independent
	// uniqueness, so the same name may exist as both.
	category, err := categorySvc.ResolveOrCreate(ctx, "Costco", user.ID)
	require.NoError(t, err)
	store, err := storeSvc.ResolveOrCreate(ctx, "Costco", user.ID)
	require.NoError(t, err)

	assert.Equal(t, "Costco", category.Name)
	assert.Equal(t, "Costco", store.Name)

	categories, err := categorySvc.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, categories, 1)
	stores, err := storeSvc.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, stores, 1)
}

func TestTagService_ResolveOrCreate_EmptyName(t *testing.T) {
	repos, _ := newTestDB(t)
	svc := NewCategoryService(repos.Categories)
	user := createTestUser(t, repos, "user@example.com")

	_, err := svc.ResolveOrCreate(context.Background(), "  ", user.ID)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestTagService_List_SharedFirst(t *testing.T) {
	repos, tx := newTestDB(t)
	svc := NewCategoryService(repos.Categories)
	seeder := NewSeedService(repos, tx)
	user := createTestUser(t, repos, "user@example.com")
	ctx := context.Background()

	_, err := seeder.EnsureDefaults(ctx, "defaults@default.com", "defaultpass123")
	require.NoError(t, err)

	_, err = svc.ResolveOrCreate(ctx, "Aquarium Supplies", user.ID)
	require.NoError(t, err)

	tags, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, tags, len(DefaultCategories)+1)

	// Shared defaults sort before the user's own private tag even though
	// "Aquarium Supplies" is alphabetically first.
	assert.False(t, tags[0].Private)
	last := tags[len(tags)-1]
	assert.True(t, last.Private)
	assert.Equal(t, "Aquarium Supplies", last.Name)

	// Shared block itself is alphabetical.
	assert.Equal(t, "Bakery", tags[0].Name)
}

func TestTagService_List_ExcludesOtherUsersPrivateTags(t *testing.T) {
	repos, _ := newTestDB(t)
	svc := NewCategoryService(repos.Categories)
	alice := createTestUser(t, repos, "alice@example.com")
	bob := createTestUser(t, repos, "bob@example.com")
	ctx := context.Background()

	_, err := svc.ResolveOrCreate(ctx, "Secret Snacks", alice.ID)
	require.NoError(t, err)

	tags, err := svc.List(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestTagService_Delete_NullsItemReferences(t *testing.T) {
	repos, tx := newTestDB(t)
	tagSvc := NewCategoryService(repos.Categories)
	itemSvc := NewItemService(repos, tx)
	user := createTestUser(t, repos, "user@example.com")
	ctx := context.Background()

	item, err := itemSvc.Create(ctx, user.ID, ItemSpec{
		Name:     "apples",
		Price:    decimal.RequireFromString("2.50"),
		Category: &TagSpec{Name: "Produce"},
	})
	require.NoError(t, err)
	require.NotNil(t, item.Category)

	require.NoError(t, tagSvc.Delete(ctx, *item.CategoryID, user.ID))

	// The item survives with the reference cleared.
	got, err := itemSvc.Get(ctx, item.ID, user.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)
	assert.Nil(t, got.Category)
}

func TestTagService_Delete_OtherUsersTagIsNotFound(t *testing.T) {
	repos, _ := newTestDB(t)
	svc := NewStoreService(repos.Stores)
	alice := createTestUser(t, repos, "alice@example.com")
	bob := createTestUser(t, repos, "bob@example.com")
	ctx := context.Background()

	store, err := svc.ResolveOrCreate(ctx, "Safeway", alice.ID)
	require.NoError(t, err)

	err = svc.Delete(ctx, store.ID, bob.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Still there for Alice.
	tags, err := svc.List(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestSeedService_EnsureDefaults_Idempotent(t *testing.T) {
	repos, tx := newTestDB(t)
	seeder := NewSeedService(repos, tx)
	ctx := context.Background()

	created, err := seeder.EnsureDefaults(ctx, "defaults@default.com", "defaultpass123")
	require.NoError(t, err)
	assert.Equal(t, len(DefaultStores)+len(DefaultCategories), created)

	// Second run creates nothing and keeps everything shared.
	created, err = seeder.EnsureDefaults(ctx, "defaults@default.com", "defaultpass123")
	require.NoError(t, err)
	assert.Zero(t, created)

	user := createTestUser(t, repos, "user@example.com")
	stores, err := NewStoreService(repos.Stores).List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, stores, len(DefaultStores))
	for _, s := range stores {
		assert.False(t, s.Private)
	}

	owner, err := repos.Users.FindByEmail(ctx, "defaults@default.com")
	require.NoError(t, err)
	assert.NotZero(t, owner.ID)
}

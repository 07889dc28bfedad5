package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "shoplist/internal/errors"
)

func TestItemService_Create(t *testing.T) {
	repos, tx := newTestDB(t)
	svc := NewItemService(repos, tx)
	user := createTestUser(t, repos, "user@example.com")
	ctx := context.Background()

	item, err := svc.Create(ctx, user.ID, ItemSpec{
		Name:  "fish sticks",
		Price: decimal.RequireFromString("9.99"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Fish Sticks", item.Name)
	assert.True(t, item.Price.Equal(decimal.RequireFromString("9.99")))
	assert.Equal(t, user.ID, item.UserID)
	assert.Nil(t, item.Category)
	assert.Nil(t, item.Store)
}

func TestItemService_Create_WithInlineTags(t *testing.T) {
	repos, tx := newTestDB(t)
	svc := NewItemService(repos, tx)
	user := createTestUser(t, repos, "user@example.com")
	ctx := context.Background()

	item, err := svc.Create(ctx, user.ID, ItemSpec{
		Name:     "milk",
		Price:    decimal.RequireFromString("4.25"),
		Category: &TagSpec{Name: "dairy"},
		Store:    &TagSpec{Name: "superstore"},
	})
	require.NoError(t, err)

	require.NotNil(t, item.Category)
	assert.Equal(t, "Dairy", item.Category.Name)
	assert.True(t, item.Category.Private)
	require.NotNil(t, item.Store)
	assert.Equal(t, "Superstore", item.Store.Name)

	// Creating again with the same tag names reuses the tag rows.
	again, err := svc.Create(ctx, user.ID, ItemSpec{
		Name:     "cheese",
		Price:    decimal.RequireFromString("7.00"),
		Category: &TagSpec{Name: "Dairy"},
	})
	require.NoError(t, err)
	assert.Equal(t, item.Category.ID, again.Category.ID)
}

func TestItemService_Create_ReusesExistingName(t *testing.T) {
	repos, tx := newTestDB(t)
	svc := NewItemService(repos, tx)
	user := createTestUser(t, repos, "user@example.com")
	ctx := context.Background()

	first, err := svc.Create(ctx, user.ID, ItemSpec{Name: "bread", Price: decimal.RequireFromString("3.00")})
	require.NoError(t, err)

	second, err := svc.Create(ctx, user.ID, ItemSpec{Name: "Bread", Price: decimal.RequireFromString("3.50")})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Price.Equal(decimal.RequireFromString("3.50")))

	items, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestItemService_Create_InvalidPrice(t *testing.T) {
	repos, tx := newTestDB(t)
	svc := NewItemService(repos, tx)
	user := createTestUser(t, repos, "user@example.com")
	ctx := context.Background()

	tests := []struct {
		name  string
		price string
	}{
		{"negative", "-1.00"},
		{"too many decimals", "1.999"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, user.ID, ItemSpec{
				Name:  "bad " + tt.name,
				Price: decimal.RequireFromString(tt.price),
			})
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestItemService_Update_ResolvesNewCategory(t *testing.T) {
	repos, tx := newTestDB(t)
	svc := NewItemService(repos, tx)
	user := createTestUser(t, repos, "user@example.com")
	ctx := context.Background()

	item, err := svc.Create(ctx, user.ID, ItemSpec{Name: "carrots", Price: decimal.RequireFromString("1.20")})
	require.NoError(t, err)
	require.Nil(t, item.CategoryID)

	// Patching with an unseen category name creates it, private, owned by
	// the requester.
	updated, err := svc.Update(ctx, item.ID, user.ID, ItemPatch{Category: &TagSpec{Name: "produce"}})
	require.NoError(t, err)
	require.NotNil(t, updated.Category)
	assert.Equal(t, "Produce", updated.Category.Name)
	assert.Equal(t, user.ID, updated.Category.UserID)
	assert.True(t, updated.Category.Private)
}

func TestItemService_Update_ReplacesLinkKeepsTagRow(t *testing.T) {
	repos, tx := newTestDB(t)
	itemSvc := NewItemService(repos, tx)
	tagSvc := NewStoreService(repos.Stores)
	user := createTestUser(t, repos, "user@example.com")
	ctx := context.Background()

	item, err := itemSvc.Create(ctx, user.ID, ItemSpec{
		Name:  "dog food",
		Price: decimal.RequireFromString("20.00"),
		Store: &TagSpec{Name: "Petsmart"},
	})
	require.NoError(t, err)
	oldStoreID := *item.StoreID

	updated, err := itemSvc.Update(ctx, item.ID, user.ID, ItemPatch{Store: &TagSpec{Name: "Costco"}})
	require.NoError(t, err)
	assert.NotEqual(t, oldStoreID, *updated.StoreID)
	assert.Equal(t, "Costco", updated.Store.Name)

	// The previously linked store row is left intact.
	stores, err := tagSvc.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, stores, 2)
}

func TestItemService_Update_RenameToExistingName(t *testing.T) {
	repos, tx := newTestDB(t)
	svc := NewItemService(repos, tx)
	user := createTestUser(t, repos, "user@example.com")
	ctx := context.Background()

	_, err := svc.Create(ctx, user.ID, ItemSpec{Name: "milk", Price: decimal.RequireFromString("4.25")})
	require.NoError(t, err)
	bread, err := svc.Create(ctx, user.ID, ItemSpec{Name: "bread", Price: decimal.RequireFromString("3.00")})
	require.NoError(t, err)

	// Renaming onto a name the owner already uses is a conflict, not an
	// internal failure.
	name := "Milk"
	_, err = svc.Update(ctx, bread.ID, user.ID, ItemPatch{Name: &name})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateName)

	// Both rows survive unchanged.
	items, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Bread", items[0].Name)
	assert.Equal(t, "Milk", items[1].Name)
}

func TestItemService_Update_OmittedFieldsUntouched(t *testing.T) {
	repos, tx := newTestDB(t)
	svc := NewItemService(repos, tx)
	user := createTestUser(t, repos, "user@example.com")
	ctx := context.Background()

	item, err := svc.Create(ctx, user.ID, ItemSpec{
		Name:     "eggs",
		Price:    decimal.RequireFromString("5.49"),
		Category: &TagSpec{Name: "Dairy"},
	})
	require.NoError(t, err)

	newPrice := decimal.RequireFromString("5.99")
	updated, err := svc.Update(ctx, item.ID, user.ID, ItemPatch{Price: &newPrice})
	require.NoError(t, err)

	assert.Equal(t, "Eggs", updated.Name)
	assert.True(t, updated.Price.Equal(newPrice))
	require.NotNil(t, updated.Category)
	assert.Equal(t, "Dairy", updated.Category.Name)
	assert.Equal(t, user.ID, updated.UserID)
}

func TestItemService_OwnershipIsolation(t *testing.T) {
	repos, tx := newTestDB(t)
	svc := NewItemService(repos, tx)
	alice := createTestUser(t, repos, "alice@example.com")
	bob := createTestUser(t, repos, "bob@example.com")
	ctx := context.Background()

	item, err := svc.Create(ctx, alice.ID, ItemSpec{Name: "wine", Price: decimal.RequireFromString("15.00")})
	require.NoError(t, err)

	_, err = svc.Get(ctx, item.ID, bob.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	name := "stolen"
	_, err = svc.Update(ctx, item.ID, bob.ID, ItemPatch{Name: &name})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = svc.Delete(ctx, item.ID, bob.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Alice still owns it, untouched.
	got, err := svc.Get(ctx, item.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wine", got.Name)
}

func TestItemService_List_OrderedByName(t *testing.T) {
	repos, tx := newTestDB(t)
	svc := NewItemService(repos, tx)
	user := createTestUser(t, repos, "user@example.com")
	ctx := context.Background()

	for _, name := range []string{"zucchini", "apples", "milk"} {
		_, err := svc.Create(ctx, user.ID, ItemSpec{Name: name, Price: decimal.RequireFromString("1.00")})
		require.NoError(t, err)
	}

	items, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Apples", items[0].Name)
	assert.Equal(t, "Milk", items[1].Name)
	assert.Equal(t, "Zucchini", items[2].Name)
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"shoplist/internal/model"
)

// Repositories bundles one repository per aggregate, all bound to the
// same database handle. Reconciliations receive a transaction-scoped
// bundle so every row they touch commits or rolls back together.
type Repositories struct {
	Users      UserRepository
	Categories TagRepository[model.Category]
	Stores     TagRepository[model.Store]
	Items      ItemRepository
	ShopLists  ShopListRepository
}

// New builds a Repositories bundle over db.
func New(db *gorm.DB) Repositories {
	return Repositories{
		Users:      NewUserRepository(db),
		Categories: NewCategoryRepository(db),
		Stores:     NewStoreRepository(db),
		Items:      NewItemRepository(db),
		ShopLists:  NewShopListRepository(db),
	}
}

// TxManager runs a function against a transaction-scoped Repositories
// bundle. An error from fn rolls the whole transaction back.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

type txManager struct {
	db *gorm.DB
}

// NewTxManager creates a TxManager over db.
func NewTxManager(db *gorm.DB) TxManager {
	return &txManager{db: db}
}

func (m *txManager) WithTransaction(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, New(tx))
	})
}

package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shoplist/internal/model"
)

// ShopListRepository defines shopping-list persistence operations,
// including the items membership (a many-to-many relation).
type ShopListRepository interface {
	Create(ctx context.Context, list *model.ShopList) error
	Save(ctx context.Context, list *model.ShopList) error
	FindOwned(ctx context.Context, id, ownerID uint) (*model.ShopList, error)
	ListOwned(ctx context.Context, ownerID uint) ([]model.ShopList, error)
	// ReplaceItems swaps the entire membership for the given set.
	ReplaceItems(ctx context.Context, list *model.ShopList, items []model.Item) error
	// AppendItems adds to the membership without touching prior members.
	AppendItems(ctx context.Context, list *model.ShopList, items []model.Item) error
	// Delete removes the list and its membership rows; member items are kept.
	Delete(ctx context.Context, id, ownerID uint) error
}

type shopListRepository struct {
	db *gorm.DB
}

// NewShopListRepository creates a new shopping-list repository.
func NewShopListRepository(db *gorm.DB) ShopListRepository {
	return &shopListRepository{db: db}
}

// Create persists the list row only; membership is managed separately
// through ReplaceItems/AppendItems.
func (r *shopListRepository) Create(ctx context.Context, list *model.ShopList) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(list).Error
}

func (r *shopListRepository) Save(ctx context.Context, list *model.ShopList) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(list).Error
}

func (r *shopListRepository) FindOwned(ctx context.Context, id, ownerID uint) (*model.ShopList, error) {
	var list model.ShopList
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("items.name asc") }).
		Preload("Items.Category").Preload("Items.Store").
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *shopListRepository) ListOwned(ctx context.Context, ownerID uint) ([]model.ShopList, error) {
	var lists []model.ShopList
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("items.name asc") }).
		Preload("Items.Category").Preload("Items.Store").
		Where("user_id = ?", ownerID).
		Order("active desc, id desc").
		Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

func (r *shopListRepository) ReplaceItems(ctx context.Context, list *model.ShopList, items []model.Item) error {
	assoc := r.db.WithContext(ctx).Model(list).Association("Items")
	if len(items) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(&items)
}

func (r *shopListRepository) AppendItems(ctx context.Context, list *model.ShopList, items []model.Item) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(list).Association("Items").Append(&items)
}

func (r *shopListRepository) Delete(ctx context.Context, id, ownerID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var list model.ShopList
		if err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&list).Error; err != nil {
			return err
		}
		if err := tx.Model(&list).Association("Items").Clear(); err != nil {
			return err
		}
		return tx.Delete(&list).Error
	})
}

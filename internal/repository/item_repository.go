package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shoplist/internal/model"
)

// ItemRepository defines item persistence operations. Lookups by name
// expect the title-cased form the models store.
type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	Save(ctx context.Context, item *model.Item) error
	FindOwned(ctx context.Context, id, ownerID uint) (*model.Item, error)
	FindByNameAndOwner(ctx context.Context, name string, ownerID uint) (*model.Item, error)
	ListOwned(ctx context.Context, ownerID uint) ([]model.Item, error)
	Delete(ctx context.Context, id, ownerID uint) error
}

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new item repository.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Save persists the item's own columns; links are carried by the
// CategoryID/StoreID fields, never by cascading association writes.
func (r *itemRepository) Save(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(item).Error
}

func (r *itemRepository) FindOwned(ctx context.Context, id, ownerID uint) (*model.Item, error) {
	var item model.Item
	if err := r.db.WithContext(ctx).
		Preload("Category").Preload("Store").
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) FindByNameAndOwner(ctx context.Context, name string, ownerID uint) (*model.Item, error) {
	var item model.Item
	if err := r.db.WithContext(ctx).
		Where("name = ? AND user_id = ?", name, ownerID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) ListOwned(ctx context.Context, ownerID uint) ([]model.Item, error) {
	var items []model.Item
	if err := r.db.WithContext(ctx).
		Preload("Category").Preload("Store").
		Where("user_id = ?", ownerID).
		Order("name asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) Delete(ctx context.Context, id, ownerID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&model.Item{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

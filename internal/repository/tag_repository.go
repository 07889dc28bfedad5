package repository

import (
	"context"

	"gorm.io/gorm"

	"shoplist/internal/model"
)

// TagRepository defines persistence operations shared by Category and
// Store. One generic implementation serves both tables; each
// instantiation knows which items column references it.
type TagRepository[T any] interface {
	Create(ctx context.Context, tag *T) error
	Save(ctx context.Context, tag *T) error
	FindOwned(ctx context.Context, id, ownerID uint) (*T, error)
	FindByNameAndOwner(ctx context.Context, name string, ownerID uint) (*T, error)
	// ListVisible returns the owner's tags plus anyone's shared
	// (private=false) tags, shared first, then alphabetically.
	ListVisible(ctx context.Context, ownerID uint) ([]T, error)
	// Delete removes an owned tag and nulls the reference on any item
	// that pointed to it. The items themselves are kept.
	Delete(ctx context.Context, id, ownerID uint) error
}

type tagRepository[T any] struct {
	db *gorm.DB
	// items column to null when a tag of this kind is deleted
	refColumn string
}

// NewCategoryRepository creates the Category instantiation.
func NewCategoryRepository(db *gorm.DB) TagRepository[model.Category] {
	return &tagRepository[model.Category]{db: db, refColumn: "category_id"}
}

// NewStoreRepository creates the Store instantiation.
func NewStoreRepository(db *gorm.DB) TagRepository[model.Store] {
	return &tagRepository[model.Store]{db: db, refColumn: "store_id"}
}

func (r *tagRepository[T]) Create(ctx context.Context, tag *T) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *tagRepository[T]) Save(ctx context.Context, tag *T) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

func (r *tagRepository[T]) FindOwned(ctx context.Context, id, ownerID uint) (*T, error) {
	var tag T
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository[T]) FindByNameAndOwner(ctx context.Context, name string, ownerID uint) (*T, error) {
	var tag T
	if err := r.db.WithContext(ctx).
		Where("name = ? AND user_id = ?", name, ownerID).
		First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository[T]) ListVisible(ctx context.Context, ownerID uint) ([]T, error) {
	var tags []T
	if err := r.db.WithContext(ctx).
		Where("user_id = ? OR private = ?", ownerID, false).
		Order("private asc, name asc").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository[T]) Delete(ctx context.Context, id, ownerID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tag T
		if err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&tag).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Item{}).
			Where(r.refColumn+" = ?", id).
			Update(r.refColumn, nil).Error; err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "shoplist/internal/errors"
	"shoplist/internal/model"
	"shoplist/internal/repository"
)

// TagSpec is an inline category/store reference inside an item payload.
type TagSpec struct {
	Name string `json:"name" validate:"required,max=64"`
}

// ItemSpec describes the desired state of an item, possibly with inline
// tag definitions to resolve against the owner's tags.
type ItemSpec struct {
	Name     string          `json:"name" validate:"required,max=64"`
	Price    decimal.Decimal `json:"price" validate:"required"`
	Category *TagSpec        `json:"category,omitempty"`
	Store    *TagSpec        `json:"store,omitempty"`
}

// ItemPatch is a partial item update. Nil fields are left untouched; a
// supplied Category/Store replaces the prior link (the prior tag row
// itself is kept).
type ItemPatch struct {
	Name     *string          `json:"name,omitempty" validate:"omitempty,max=64"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Category *TagSpec         `json:"category,omitempty"`
	Store    *TagSpec         `json:"store,omitempty"`
}

// ItemService materializes items from payloads that may carry inline
// category/store sub-payloads.
type ItemService interface {
	Create(ctx context.Context, ownerID uint, spec ItemSpec) (*model.Item, error)
	Update(ctx context.Context, id, ownerID uint, patch ItemPatch) (*model.Item, error)
	Get(ctx context.Context, id, ownerID uint) (*model.Item, error)
	List(ctx context.Context, ownerID uint) ([]model.Item, error)
	Delete(ctx context.Context, id, ownerID uint) error
}

type itemService struct {
	repos repository.Repositories
	tx    repository.TxManager
}

// NewItemService creates a new item service.
func NewItemService(repos repository.Repositories, tx repository.TxManager) ItemService {
	return &itemService{repos: repos, tx: tx}
}

// Create resolves the spec against the owner's items: an existing item
// of the same name is converged on the spec, otherwise a fresh item is
// created. Inline tags and the item write commit together.
func (s *itemService) Create(ctx context.Context, ownerID uint, spec ItemSpec) (*model.Item, error) {
	if err := validateItemSpec(spec); err != nil {
		return nil, err
	}

	var itemID uint
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, repos repository.Repositories) error {
		item, err := reconcileItem(ctx, repos, ownerID, spec)
		if err != nil {
			return err
		}
		itemID = item.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, itemID, ownerID)
}

func (s *itemService) Update(ctx context.Context, id, ownerID uint, patch ItemPatch) (*model.Item, error) {
	if err := validateItemPatch(patch); err != nil {
		return nil, err
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context, repos repository.Repositories) error {
		item, err := repos.Items.FindOwned(ctx, id, ownerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("find item: %w", err)
		}

		if patch.Name != nil {
			item.Name = *patch.Name
		}
		if patch.Price != nil {
			item.Price = *patch.Price
		}
		if patch.Category != nil {
			item.CategoryID = nil
			item.Category = nil
			cat, err := resolveOrCreateTag(ctx, repos.Categories, newCategory, patch.Category.Name, ownerID)
			if err != nil {
				return err
			}
			item.CategoryID = &cat.ID
		}
		if patch.Store != nil {
			item.StoreID = nil
			item.Store = nil
			store, err := resolveOrCreateTag(ctx, repos.Stores, newStore, patch.Store.Name, ownerID)
			if err != nil {
				return err
			}
			item.StoreID = &store.ID
		}

		if err := repos.Items.Save(ctx, item); err != nil {
			// A rename can land on a name the owner already uses; unlike
			// the get-or-create paths there is no row to converge on, so
			// the conflict is reported back to the caller.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: %q", apperrors.ErrDuplicateName, item.Name)
			}
			return fmt.Errorf("save item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id, ownerID)
}

func (s *itemService) Get(ctx context.Context, id, ownerID uint) (*model.Item, error) {
	item, err := s.repos.Items.FindOwned(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find item: %w", err)
	}
	return item, nil
}

func (s *itemService) List(ctx context.Context, ownerID uint) ([]model.Item, error) {
	return s.repos.Items.ListOwned(ctx, ownerID)
}

func (s *itemService) Delete(ctx context.Context, id, ownerID uint) error {
	if err := s.repos.Items.Delete(ctx, id, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// reconcileItem is the shared item get-or-create used by item creation
// and list reconciliation. Resolution is always scoped to ownerID, so a
// payload can never attach another user's item by name. Provided fields
// are applied to a reused row; inline tags replace the prior links.
func reconcileItem(ctx context.Context, repos repository.Repositories, ownerID uint, spec ItemSpec) (*model.Item, error) {
	name := model.TitleCase(spec.Name)

	item, err := repos.Items.FindByNameAndOwner(ctx, name, ownerID)
	switch {
	case err == nil:
		item.Price = spec.Price
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = &model.Item{Name: name, UserID: ownerID, Price: spec.Price}
		if err := repos.Items.Create(ctx, item); err != nil {
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, fmt.Errorf("create item: %w", err)
			}
			// Lost the race; the constraint already guarantees the row.
			item, err = repos.Items.FindByNameAndOwner(ctx, name, ownerID)
			if err != nil {
				return nil, fmt.Errorf("find item after conflict: %w", err)
			}
			item.Price = spec.Price
		}
	default:
		return nil, fmt.Errorf("find item: %w", err)
	}

	if spec.Category != nil {
		item.CategoryID = nil
		item.Category = nil
		cat, err := resolveOrCreateTag(ctx, repos.Categories, newCategory, spec.Category.Name, ownerID)
		if err != nil {
			return nil, err
		}
		item.CategoryID = &cat.ID
	}
	if spec.Store != nil {
		item.StoreID = nil
		item.Store = nil
		store, err := resolveOrCreateTag(ctx, repos.Stores, newStore, spec.Store.Name, ownerID)
		if err != nil {
			return nil, err
		}
		item.StoreID = &store.ID
	}

	if err := repos.Items.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}
	return item, nil
}

func validateItemSpec(spec ItemSpec) error {
	if model.TitleCase(spec.Name) == "" {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, apperrors.ErrEmptyName)
	}
	return validatePrice(spec.Price)
}

func validateItemPatch(patch ItemPatch) error {
	if patch.Name != nil && model.TitleCase(*patch.Name) == "" {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, apperrors.ErrEmptyName)
	}
	if patch.Price != nil {
		return validatePrice(*patch.Price)
	}
	return nil
}

// validatePrice enforces a non-negative amount with at most two decimal
// places (fixed currency precision).
func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() || !price.Equal(price.Round(2)) {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, apperrors.ErrInvalidPrice)
	}
	return nil
}

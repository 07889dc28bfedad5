package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "shoplist/internal/errors"
	"shoplist/internal/model"
	"shoplist/internal/repository"
)

// ListSpec describes a new shopping list. A blank title gets the
// generated placeholder once the list has an id.
type ListSpec struct {
	Title string     `json:"title" validate:"max=64"`
	Items []ItemSpec `json:"items"`
}

// ListPatch is a partial list update. A non-nil Items slice replaces the
// entire membership (replace, not merge); nil leaves it untouched.
type ListPatch struct {
	Title  *string     `json:"title,omitempty" validate:"omitempty,max=64"`
	Active *bool       `json:"active,omitempty"`
	Items  *[]ItemSpec `json:"items,omitempty"`
}

// ShopListService creates and updates shopping lists together with
// their nested item membership in single atomic operations.
type ShopListService interface {
	Create(ctx context.Context, ownerID uint, spec ListSpec) (*model.ShopList, error)
	Update(ctx context.Context, id, ownerID uint, patch ListPatch) (*model.ShopList, error)
	// AddItems is the additive variant: resolved items join the existing
	// membership instead of replacing it.
	AddItems(ctx context.Context, id, ownerID uint, specs []ItemSpec) (*model.ShopList, error)
	Get(ctx context.Context, id, ownerID uint) (*model.ShopList, error)
	List(ctx context.Context, ownerID uint) ([]model.ShopList, error)
	Delete(ctx context.Context, id, ownerID uint) error
}

type shopListService struct {
	repos repository.Repositories
	tx    repository.TxManager
}

// NewShopListService creates a new shopping-list service.
func NewShopListService(repos repository.Repositories, tx repository.TxManager) ShopListService {
	return &shopListService{repos: repos, tx: tx}
}

func (s *shopListService) Create(ctx context.Context, ownerID uint, spec ListSpec) (*model.ShopList, error) {
	for _, item := range spec.Items {
		if err := validateItemSpec(item); err != nil {
			return nil, err
		}
	}

	var listID uint
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, repos repository.Repositories) error {
		list := &model.ShopList{UserID: ownerID, Title: spec.Title, Active: true}
		if err := repos.ShopLists.Create(ctx, list); err != nil {
			return fmt.Errorf("create list: %w", err)
		}

		// The placeholder title needs the assigned id, so a blank title
		// is a two-phase write.
		if list.Title == "" {
			list.Title = list.DefaultTitle()
			if err := repos.ShopLists.Save(ctx, list); err != nil {
				return fmt.Errorf("assign default title: %w", err)
			}
		}

		members, err := reconcileMembers(ctx, repos, ownerID, spec.Items)
		if err != nil {
			return err
		}
		if err := repos.ShopLists.AppendItems(ctx, list, members); err != nil {
			return fmt.Errorf("link items: %w", err)
		}

		listID = list.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, listID, ownerID)
}

func (s *shopListService) Update(ctx context.Context, id, ownerID uint, patch ListPatch) (*model.ShopList, error) {
	if patch.Items != nil {
		for _, item := range *patch.Items {
			if err := validateItemSpec(item); err != nil {
				return nil, err
			}
		}
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context, repos repository.Repositories) error {
		list, err := findOwnedList(ctx, repos, id, ownerID)
		if err != nil {
			return err
		}

		if patch.Title != nil {
			list.Title = *patch.Title
		}
		if patch.Active != nil {
			list.Active = *patch.Active
		}
		if err := repos.ShopLists.Save(ctx, list); err != nil {
			return fmt.Errorf("save list: %w", err)
		}

		if patch.Items != nil {
			members, err := reconcileMembers(ctx, repos, ownerID, *patch.Items)
			if err != nil {
				return err
			}
			if err := repos.ShopLists.ReplaceItems(ctx, list, members); err != nil {
				return fmt.Errorf("replace items: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id, ownerID)
}

func (s *shopListService) AddItems(ctx context.Context, id, ownerID uint, specs []ItemSpec) (*model.ShopList, error) {
	for _, item := range specs {
		if err := validateItemSpec(item); err != nil {
			return nil, err
		}
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context, repos repository.Repositories) error {
		list, err := findOwnedList(ctx, repos, id, ownerID)
		if err != nil {
			return err
		}

		members, err := reconcileMembers(ctx, repos, ownerID, specs)
		if err != nil {
			return err
		}
		if err := repos.ShopLists.AppendItems(ctx, list, members); err != nil {
			return fmt.Errorf("link items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id, ownerID)
}

func (s *shopListService) Get(ctx context.Context, id, ownerID uint) (*model.ShopList, error) {
	list, err := s.repos.ShopLists.FindOwned(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find list: %w", err)
	}
	list.ComputeTotal()
	return list, nil
}

func (s *shopListService) List(ctx context.Context, ownerID uint) ([]model.ShopList, error) {
	lists, err := s.repos.ShopLists.ListOwned(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	for i := range lists {
		lists[i].ComputeTotal()
	}
	return lists, nil
}

func (s *shopListService) Delete(ctx context.Context, id, ownerID uint) error {
	if err := s.repos.ShopLists.Delete(ctx, id, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("delete list: %w", err)
	}
	return nil
}

func findOwnedList(ctx context.Context, repos repository.Repositories, id, ownerID uint) (*model.ShopList, error) {
	list, err := repos.ShopLists.FindOwned(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find list: %w", err)
	}
	return list, nil
}

// reconcileMembers resolves every spec to a persisted item owned by
// ownerID. Duplicate names within one payload collapse onto the same row.
func reconcileMembers(ctx context.Context, repos repository.Repositories, ownerID uint, specs []ItemSpec) ([]model.Item, error) {
	members := make([]model.Item, 0, len(specs))
	seen := make(map[uint]struct{}, len(specs))
	for _, spec := range specs {
		item, err := reconcileItem(ctx, repos, ownerID, spec)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		members = append(members, *item)
	}
	return members, nil
}

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

// TagService exposes operations over an owned tag kind (Category or
// Store). Reads include shared tags from other owners; writes are
// strictly owner-scoped.
type TagService[T any] interface {
	// ResolveOrCreate returns the owner's tag with the given name,
	// creating a private one if absent. Idempotent: a concurrent
	// duplicate insert is absorbed by retrying the lookup.
	ResolveOrCreate(ctx context.Context, name string, ownerID uint) (*T, error)
	// List returns the owner's tags plus shared ones, shared first.
	List(ctx context.Context, ownerID uint) ([]T, error)
	// Delete removes an owned tag; items referencing it keep existing
	// with the reference nulled.
	Delete(ctx context.Context, id, ownerID uint) error
}

type tagService[T any] struct {
	repo  repository.TagRepository[T]
	build func(name string, ownerID uint) *T
}

// NewCategoryService creates the Category tag service.
func NewCategoryService(repo repository.TagRepository[model.Category]) TagService[model.Category] {
	return &tagService[model.Category]{repo: repo, build: newCategory}
}

// NewStoreService creates the Store tag service.
func NewStoreService(repo repository.TagRepository[model.Store]) TagService[model.Store] {
	return &tagService[model.Store]{repo: repo, build: newStore}
}

func newCategory(name string, ownerID uint) *model.Category {
	return &model.Category{OwnedTag: model.OwnedTag{Name: name, UserID: ownerID, Private: true}}
}

func newStore(name string, ownerID uint) *model.Store {
	return &model.Store{OwnedTag: model.OwnedTag{Name: name, UserID: ownerID, Private: true}}
}

func (s *tagService[T]) ResolveOrCreate(ctx context.Context, name string, ownerID uint) (*T, error) {
	return resolveOrCreateTag(ctx, s.repo, s.build, name, ownerID)
}

func (s *tagService[T]) List(ctx context.Context, ownerID uint) ([]T, error) {
	return s.repo.ListVisible(ctx, ownerID)
}

func (s *tagService[T]) Delete(ctx context.Context, id, ownerID uint) error {
	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}

// resolveOrCreateTag implements get-or-create by (name, owner). The
// name is title-cased before lookup so differently-cased inputs collide
// on the same row. The unique constraint is the authority on races: a
// duplicate-key failure means another request created the row first, so
// the lookup is retried instead of propagating the constraint error.
func resolveOrCreateTag[T any](
	ctx context.Context,
	repo repository.TagRepository[T],
	build func(name string, ownerID uint) *T,
	name string,
	ownerID uint,
) (*T, error) {
	name = model.TitleCase(name)
	if name == "" {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, apperrors.ErrEmptyName)
	}

	tag, err := repo.FindByNameAndOwner(ctx, name, ownerID)
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find tag: %w", err)
	}

	created := build(name, ownerID)
	if err := repo.Create(ctx, created); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repo.FindByNameAndOwner(ctx, name, ownerID)
		}
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return created, nil
}

package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"shoplist/internal/model"
	"shoplist/internal/repository"
)

// DefaultStores are the shared store tags every user sees.
var DefaultStores = []string{
	"Walmart",
	"Costco",
	"Superstore",
	"Loblaws",
	"Freshco",
	"Petsmart",
	"Save-On-Foods",
	"Safeway",
}

// DefaultCategories are the shared category tags every user sees.
var DefaultCategories = []string{
	"Grocery",
	"Produce",
	"Chemicals",
	"Paper Goods",
	"Frozen",
	"Dairy",
	"Meats",
	"Deli",
	"Bakery",
	"Pharmacy",
	"Health & Beauty",
	"Pet Food",
	"Pet Treats",
	"Pet Supplies",
	"General Merchandise",
}

// SeedService populates the shared default tags under an explicit
// defaults owner. Running it repeatedly is safe: existing rows are
// reused and flipped to shared if needed.
type SeedService interface {
	EnsureDefaults(ctx context.Context, ownerEmail, ownerPassword string) (created int, err error)
}

type seedService struct {
	repos repository.Repositories
	tx    repository.TxManager
}

// NewSeedService creates a new seed service.
func NewSeedService(repos repository.Repositories, tx repository.TxManager) SeedService {
	return &seedService{repos: repos, tx: tx}
}

func (s *seedService) EnsureDefaults(ctx context.Context, ownerEmail, ownerPassword string) (int, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(ownerPassword), bcryptCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	owner, err := s.repos.Users.FindByEmailOrCreate(ctx, &model.User{
		Name:         "Defaults",
		Email:        ownerEmail,
		PasswordHash: string(hash),
	})
	if err != nil {
		return 0, fmt.Errorf("ensure defaults owner: %w", err)
	}

	created := 0
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, repos repository.Repositories) error {
		for _, name := range DefaultStores {
			madeNew, err := ensureSharedTag(ctx, repos.Stores, newStore, name, owner.ID)
			if err != nil {
				return err
			}
			if madeNew {
				created++
			}
		}
		for _, name := range DefaultCategories {
			madeNew, err := ensureSharedTag(ctx, repos.Categories, newCategory, name, owner.ID)
			if err != nil {
				return err
			}
			if madeNew {
				created++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

// ensureSharedTag resolves the tag under the defaults owner and forces
// it shared (private=false).
func ensureSharedTag[T any](
	ctx context.Context,
	repo repository.TagRepository[T],
	build func(name string, ownerID uint) *T,
	name string,
	ownerID uint,
) (createdNew bool, err error) {
	existing, findErr := repo.FindByNameAndOwner(ctx, model.TitleCase(name), ownerID)
	if findErr == nil {
		return false, shareTag(ctx, repo, existing)
	}

	tag, err := resolveOrCreateTag(ctx, repo, build, name, ownerID)
	if err != nil {
		return false, err
	}
	return true, shareTag(ctx, repo, tag)
}

func shareTag[T any](ctx context.Context, repo repository.TagRepository[T], tag *T) error {
	fields := any(tag).(interface{ Tag() *model.OwnedTag }).Tag()
	if !fields.Private {
		return nil
	}
	fields.Private = false
	return repo.Save(ctx, tag)
}

package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shoplist/internal/model"
	"shoplist/internal/repository"
)

// newTestDB opens a fresh in-memory SQLite database per test so the
// services run against real constraints and transactions.
func newTestDB(t *testing.T) (repository.Repositories, repository.TxManager) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Store{},
		&model.Item{},
		&model.ShopList{},
	))

	return repository.New(db), repository.NewTxManager(db)
}

func createTestUser(t *testing.T, repos repository.Repositories, email string) *model.User {
	t.Helper()

	user := &model.User{Name: "Test User", Email: email, PasswordHash: "x"}
	require.NoError(t, repos.Users.Create(context.Background(), user))
	return user
}

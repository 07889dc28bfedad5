package model

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// TitleCase normalizes an entity name so lookups on the same name collide
// regardless of input casing ("produce" and "Produce" are the same row).
// A fresh caser per call: cases.Caser is not safe for concurrent use.
func TitleCase(s string) string {
	return cases.Title(language.English).String(strings.TrimSpace(s))
}

// OwnedTag holds the shared shape of Category and Store: a named,
// user-owned entity with a private/shared visibility flag. The
// (name, user) pair is unique per concrete table.
type OwnedTag struct {
	ID uint `json:"id" gorm:"primaryKey"`
	// The composite unique index is left unnamed so GORM derives a name
	// per concrete table; a literal name here would collide between the
	// categories and stores tables on databases with a global index
	// namespace (SQLite).
	Name      string    `json:"name" gorm:"size:64;not null;uniqueIndex:,composite:name_owner"`
	UserID    uint      `json:"-" gorm:"not null;uniqueIndex:,composite:name_owner;index"`
	// Private defaults to true on creation and is not client-settable.
	// No column default: a zero value here must reach the database as-is
	// (shared defaults are seeded with private=false).
	Private   bool      `json:"private" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeSave title-cases the name at write time, mirroring the unique
// constraint's case-insensitive intent.
func (t *OwnedTag) BeforeSave(tx *gorm.DB) error {
	t.Name = TitleCase(t.Name)
	return nil
}

// Tag exposes the shared fields from the concrete Category/Store types.
func (t *OwnedTag) Tag() *OwnedTag {
	return t
}

// Category groups items (Produce, Dairy, ...).
type Category struct {
	OwnedTag
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// Store is a shop where items are bought (Walmart, Costco, ...).
type Store struct {
	OwnedTag
	User User `json:"-" gorm:"foreignKey:UserID"`
}

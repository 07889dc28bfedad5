package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Item is a purchasable entry owned by a user. Category and store are
// weak links: deleting the referenced tag nulls the reference, the item
// itself stays. The (name, user) pair is unique.
type Item struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	Name       string          `json:"name" gorm:"size:64;not null;uniqueIndex:idx_item_name_owner"`
	UserID     uint            `json:"-" gorm:"not null;uniqueIndex:idx_item_name_owner;index"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	CategoryID *uint           `json:"-" gorm:"index"`
	StoreID    *uint           `json:"-" gorm:"index"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Relations
	User     User      `json:"-" gorm:"foreignKey:UserID"`
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Store    *Store    `json:"store,omitempty" gorm:"foreignKey:StoreID;constraint:OnDelete:SET NULL"`
}

// BeforeSave title-cases the item name at write time.
func (i *Item) BeforeSave(tx *gorm.DB) error {
	i.Name = TitleCase(i.Name)
	return nil
}

package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TitlePrefix is combined with the list's own id to form the default
// title of a list created without one (list 7 -> "ShopList7").
const TitlePrefix = "ShopList"

// ShopList is a user-owned shopping list. Items are shared membership:
// the same item may belong to several lists, so deleting a list never
// deletes its items.
type ShopList struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"-" gorm:"not null;index"`
	Title     string    `json:"title" gorm:"size:64;not null"`
	Active    bool      `json:"active" gorm:"not null;default:true;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User  User   `json:"-" gorm:"foreignKey:UserID"`
	Items []Item `json:"items" gorm:"many2many:shoplist_items"`

	// Total is derived from the member items on every read, never stored.
	Total decimal.Decimal `json:"total" gorm:"-"`
}

// AfterFind normalizes a memberless list to an empty slice so it
// serializes as [] rather than null.
func (l *ShopList) AfterFind(tx *gorm.DB) error {
	if l.Items == nil {
		l.Items = []Item{}
	}
	return nil
}

// DefaultTitle returns the generated placeholder title for this list.
// Only meaningful once the list has an id.
func (l *ShopList) DefaultTitle() string {
	return fmt.Sprintf("%s%d", TitlePrefix, l.ID)
}

// ComputeTotal recomputes Total from the loaded member items.
func (l *ShopList) ComputeTotal() {
	total := decimal.Zero
	for _, item := range l.Items {
		total = total.Add(item.Price)
	}
	l.Total = total
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item represents a listing owned by a user, optionally tagged with a category.
type Item struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"size:100;not null"`
	Description string          `json:"description,omitempty" gorm:"size:500"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	CategoryID  *uint           `json:"category_id" gorm:"index"`
	OwnerID     uint            `json:"owner_id" gorm:"not null;index"`
	ImageURL    string          `json:"image_url,omitempty" gorm:"size:255"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relations
	Category *Category `json:"-" gorm:"foreignKey:CategoryID"`
	Owner    User      `json:"-" gorm:"foreignKey:OwnerID"`
}

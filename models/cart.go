package models

import "time"

type Cart struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"products"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	CartID    string    `gorm:"size:36;uniqueIndex:idx_cart_product" json:"-"`
	ProductID string    `gorm:"size:36;uniqueIndex:idx_cart_product" json:"product"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	AddedAt   time.Time `json:"added_at"`

	// Product is filled in at read time; it stays nil when the referenced
	// product has been deleted from the catalog.
	Product *Product `gorm:"-" json:"product_data,omitempty"`
}

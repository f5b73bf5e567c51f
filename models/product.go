package models

import "time"

type Product struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"not null" json:"description"`
	Code        string    `gorm:"uniqueIndex;not null" json:"code"` // Natural key, unique across the catalog
	Price       float64   `gorm:"not null" json:"price"`
	Stock       int       `gorm:"not null" json:"stock"`
	Category    string    `gorm:"index;not null" json:"category"`
	Status      bool      `gorm:"not null" json:"status"` // Defaulted to true by the catalog service, persisted as given
	Thumbnails  []string  `gorm:"serializer:json" json:"thumbnails"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

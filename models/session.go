package models

import "time"

// CartSession binds an anonymous session to its cart. One cart per session.
type CartSession struct {
	SessionID string    `gorm:"primaryKey;size:64" json:"session_id"`
	CartID    string    `gorm:"size:36;index" json:"cart_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

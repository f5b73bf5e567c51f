// Package gormstore is the postgres-backed implementation of the store
// contracts.
package gormstore

import (
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

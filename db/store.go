// Package db provides the dessert record store.
package db

import (
	"context"
	"errors"

	"dessert-api/models"
)

// ErrNotFound is returned when no dessert has the requested id.
var ErrNotFound = errors.New("dessert not found")

// Store hands out per-request sessions over a pooled database.
type Store interface {
	// Session acquires a connection from the pool. The caller must Close it.
	Session(ctx context.Context) (Session, error)

	// Migrate creates the desserts table if it does not exist.
	Migrate(ctx context.Context) error

	// Close releases the pool.
	Close()
}

// Session is a scoped handle to one pooled connection.
type Session interface {
	ListDesserts(ctx context.Context) ([]models.Dessert, error)

	// GetDessert returns ErrNotFound if the id is absent.
	GetDessert(ctx context.Context, id string) (*models.Dessert, error)

	CreateDessert(ctx context.Context, d *models.Dessert) error

	// UpdateDessert overwrites every column of an existing row.
	// Returns ErrNotFound if no row matched.
	UpdateDessert(ctx context.Context, d *models.Dessert) error

	// DeleteDessert returns ErrNotFound if no row matched.
	DeleteDessert(ctx context.Context, id string) error

	// Close returns the connection to the pool. Safe to call more than once.
	Close()
}

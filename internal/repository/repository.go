// Package repository persists games. Two backends share one contract:
// MongoDB (the default) and a gorm-managed SQL table.
package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"juegos/backend/internal/models"
)

var (
	ErrNotFound  = errors.New("game not found")
	ErrInvalidID = errors.New("invalid game id")
)

// GameRepository is implemented by every game store.
type GameRepository interface {
	FindAll(ctx context.Context) ([]models.Game, error)
	FindByID(ctx context.Context, id string) (models.Game, error)
	Insert(ctx context.Context, game models.Game) (models.Game, error)
	UpdateFields(ctx context.Context, id string, update models.GameUpdate) error
	DeleteByID(ctx context.Context, id string) error
}

// ValidateID reports ErrInvalidID unless id is a 24 character hex ObjectID.
// Both backends key records by ObjectID hex so ids are portable between them.
func ValidateID(id string) error {
	if !primitive.IsValidObjectID(id) {
		return ErrInvalidID
	}
	return nil
}

// NewID returns a fresh ObjectID hex string.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

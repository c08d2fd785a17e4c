// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Guess model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/calibrated/internal/domain"
)

// CreateGuess inserts a new guess row.
func CreateGuess(ctx context.Context, db *gorm.DB, questionID string, value float64, name *string) (*domain.Guess, error) {
	g := &domain.Guess{
		ID:         uuid.NewString(),
		QuestionID: questionID,
		Value:      value,
		Name:       name,
		CreatedAt:  time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(g).Error; err != nil {
		return nil, err
	}
	return g, nil
}

// GetGuess fetches a guess by ID.
func GetGuess(ctx context.Context, db *gorm.DB, id string) (*domain.Guess, error) {
	var g domain.Guess
	if err := db.WithContext(ctx).Where("id = ?", id).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

// ListGuesses returns all guesses of a question ordered deterministically
// (CreatedAt ASC, ID ASC).
func ListGuesses(ctx context.Context, db *gorm.DB, questionID string) ([]domain.Guess, error) {
	var out []domain.Guess
	err := db.WithContext(ctx).
		Where("question_id = ?", questionID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

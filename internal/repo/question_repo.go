// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Question
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, so they can
// run inside transactions. They follow the "thin repository" approach: no
// business rules, only persistence and query composition.
//
// Error semantics:
//   - A missing question is reported as gorm.ErrRecordNotFound (exported
//     here as ErrNotFound).
//   - Any other driver error is propagated unchanged.
package repo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/calibrated/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = gorm.ErrRecordNotFound

// NewQuestion carries the validated attributes of a question to insert.
type NewQuestion struct {
	Title         string
	Description   *string
	MinValue      float64
	MaxValue      float64
	TrueAnswer    float64
	Unit          *string
	IsCurrency    bool
	RevealPIN     *string
	DiscordUserID *string
}

// CreateQuestion inserts a new open question with a random UUID and a UTC
// creation timestamp.
func CreateQuestion(ctx context.Context, db *gorm.DB, in NewQuestion) (*domain.Question, error) {
	q := &domain.Question{
		ID:            uuid.NewString(),
		Title:         in.Title,
		Description:   in.Description,
		MinValue:      in.MinValue,
		MaxValue:      in.MaxValue,
		TrueAnswer:    in.TrueAnswer,
		Unit:          in.Unit,
		IsCurrency:    in.IsCurrency,
		RevealPIN:     in.RevealPIN,
		DiscordUserID: in.DiscordUserID,
		CreatedAt:     time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(q).Error; err != nil {
		return nil, err
	}
	return q, nil
}

// GetQuestion fetches a question by its full ID, or ErrNotFound.
func GetQuestion(ctx context.Context, db *gorm.DB, id string) (*domain.Question, error) {
	var q domain.Question
	if err := db.WithContext(ctx).Where("id = ?", id).First(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

// FindQuestionsByPrefix returns up to limit questions whose ID starts with
// prefix. LIKE wildcards in prefix are matched literally.
func FindQuestionsByPrefix(ctx context.Context, db *gorm.DB, prefix string, limit int) ([]domain.Question, error) {
	var out []domain.Question
	q := db.WithContext(ctx).
		Where(`id LIKE ? ESCAPE '\'`, escapeLike(prefix)+"%").
		Order("created_at ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

// MarkRevealed sets revealed_at on an open question. It reports false when
// the question was already revealed (or does not exist), leaving the stored
// timestamp untouched.
func MarkRevealed(ctx context.Context, db *gorm.DB, id string, at time.Time) (bool, error) {
	res := db.WithContext(ctx).
		Model(&domain.Question{}).
		Where("id = ? AND revealed_at IS NULL", id).
		Update("revealed_at", at)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// CountQuestions returns the total number of questions.
func CountQuestions(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.Question{}).Count(&total).Error
	return total, err
}

// ListQuestionsPage returns questions newest first.
func ListQuestionsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Question, error) {
	var out []domain.Question
	err := db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

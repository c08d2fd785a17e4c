// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the small aggregate query used to build
// ETags for question reads.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/calibrated/internal/domain"
)

// GuessStats returns the number of guesses on a question and the newest
// guess creation time (nil when there are none).
func GuessStats(ctx context.Context, db *gorm.DB, questionID string) (count int64, maxCreatedAt *time.Time, err error) {
	scope := func() *gorm.DB {
		return db.WithContext(ctx).Model(&domain.Guess{}).Where("question_id = ?", questionID)
	}

	if err = scope().Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Avoid MAX() -> TEXT in SQLite.
	var row struct {
		CreatedAt time.Time
	}
	if err = scope().Select("created_at").Order("created_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.CreatedAt, nil
}

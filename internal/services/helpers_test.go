package services

import (
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/calibrated/internal/domain"
)

// ---------- test helpers ----------

func newSvcDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := db.AutoMigrate(&domain.Question{}, &domain.Guess{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// seedQuestion inserts a question with a fixed ID, bypassing validation.
func seedQuestion(t *testing.T, db *gorm.DB, id string, mutate ...func(*domain.Question)) *domain.Question {
	t.Helper()
	q := &domain.Question{
		ID:         id,
		Title:      "How many?",
		MinValue:   0,
		MaxValue:   100,
		TrueAnswer: 42,
		CreatedAt:  time.Now().UTC(),
	}
	for _, m := range mutate {
		m(q)
	}
	if err := db.Create(q).Error; err != nil {
		t.Fatalf("seed question: %v", err)
	}
	return q
}

func strp(s string) *string { return &s }

package repo

import (
	"context"
	"testing"
	"time"

	"github.com/tbourn/calibrated/internal/domain"
)

func TestGuessStats_CountError_NoTable(t *testing.T) {
	db := newTestDB(t)
	if _, _, err := GuessStats(context.Background(), db, "q1"); err == nil {
		t.Fatalf("expected error due to missing guesses table")
	}
}

func TestGuessStats_ZeroRows(t *testing.T) {
	db := newTestDB(t, &domain.Question{}, &domain.Guess{})
	count, maxAt, err := GuessStats(context.Background(), db, "q1")
	if err != nil {
		t.Fatalf("GuessStats: %v", err)
	}
	if count != 0 || maxAt != nil {
		t.Fatalf("expected (0, nil), got (%d, %v)", count, maxAt)
	}
}

func TestGuessStats_FilterAndMax(t *testing.T) {
	db := newTestDB(t, &domain.Question{}, &domain.Guess{})
	now := time.Now().UTC()
	for _, id := range []string{"q1", "q2"} {
		if err := db.Create(&domain.Question{ID: id, Title: id, MinValue: 0, MaxValue: 10, CreatedAt: now}).Error; err != nil {
			t.Fatalf("seed question: %v", err)
		}
	}

	t1 := time.Date(2025, 1, 2, 15, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC)
	t3 := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	rows := []domain.Guess{
		{ID: "g1", QuestionID: "q1", Value: 1, CreatedAt: t1},
		{ID: "g2", QuestionID: "q1", Value: 2, CreatedAt: t2},
		{ID: "g3", QuestionID: "q2", Value: 3, CreatedAt: t3},
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("seed guesses: %v", err)
	}

	count, maxAt, err := GuessStats(context.Background(), db, "q1")
	if err != nil {
		t.Fatalf("GuessStats: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected count 2, got %d", count)
	}
	if maxAt == nil || !maxAt.Equal(t2) {
		t.Fatalf("expected max %v, got %v", t2, maxAt)
	}
}

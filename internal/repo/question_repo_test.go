package repo

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tbourn/calibrated/internal/domain"
)

func TestCreateAndGetQuestion(t *testing.T) {
	db := newTestDB(t, &domain.Question{}, &domain.Guess{})
	ctx := context.Background()

	q, err := CreateQuestion(ctx, db, NewQuestion{
		Title:      "Jellybeans",
		MinValue:   0,
		MaxValue:   100,
		TrueAnswer: 42,
		Unit:       strp("beans"),
		RevealPIN:  strp("1234"),
	})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	if len(q.ID) != 36 || q.RevealedAt != nil || q.CreatedAt.IsZero() {
		t.Fatalf("unexpected created question: %+v", q)
	}

	got, err := GetQuestion(ctx, db, q.ID)
	if err != nil {
		t.Fatalf("GetQuestion: %v", err)
	}
	if got.Title != "Jellybeans" || got.TrueAnswer != 42 || got.RevealPIN == nil || *got.RevealPIN != "1234" {
		t.Fatalf("readback mismatch: %+v", got)
	}

	if _, err := GetQuestion(ctx, db, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindQuestionsByPrefix(t *testing.T) {
	db := newTestDB(t, &domain.Question{})
	ctx := context.Background()
	now := time.Now().UTC()

	for _, id := range []string{"abcdef01-aaaa", "abcdef02-bbbb", "zzzzzzz9-cccc", "a%c_ef00-dddd"} {
		q := &domain.Question{ID: id, Title: id, MinValue: 0, MaxValue: 1, CreatedAt: now}
		if err := db.Create(q).Error; err != nil {
			t.Fatalf("seed %s: %v", id, err)
		}
	}

	got, err := FindQuestionsByPrefix(ctx, db, "abcdef0", 0)
	if err != nil || len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d (%v)", len(got), err)
	}

	got, err = FindQuestionsByPrefix(ctx, db, "abcdef0", 1)
	if err != nil || len(got) != 1 {
		t.Fatalf("limit not applied: %d (%v)", len(got), err)
	}

	got, err = FindQuestionsByPrefix(ctx, db, "zzzz", 2)
	if err != nil || len(got) != 1 || got[0].ID != "zzzzzzz9-cccc" {
		t.Fatalf("unique prefix lookup failed: %+v (%v)", got, err)
	}

	// Wildcards must be literal: "a%" must not match "abcdef..".
	got, err = FindQuestionsByPrefix(ctx, db, "a%", 5)
	if err != nil || len(got) != 1 || !strings.HasPrefix(got[0].ID, "a%c_") {
		t.Fatalf("wildcard not escaped: %+v (%v)", got, err)
	}
	got, err = FindQuestionsByPrefix(ctx, db, "______", 5)
	if err != nil || len(got) != 0 {
		t.Fatalf("underscore must be literal, got %+v (%v)", got, err)
	}
}

func TestMarkRevealed_OneWay(t *testing.T) {
	db := newTestDB(t, &domain.Question{})
	ctx := context.Background()

	q, err := CreateQuestion(ctx, db, NewQuestion{Title: "t", MinValue: 0, MaxValue: 10, TrueAnswer: 5})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}

	first := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	ok, err := MarkRevealed(ctx, db, q.ID, first)
	if err != nil || !ok {
		t.Fatalf("first reveal: ok=%v err=%v", ok, err)
	}

	ok, err = MarkRevealed(ctx, db, q.ID, first.Add(time.Hour))
	if err != nil || ok {
		t.Fatalf("second reveal must not update: ok=%v err=%v", ok, err)
	}

	got, _ := GetQuestion(ctx, db, q.ID)
	if got.RevealedAt == nil || !got.RevealedAt.Equal(first) {
		t.Fatalf("revealed_at changed: %v", got.RevealedAt)
	}

	ok, err = MarkRevealed(ctx, db, "missing", first)
	if err != nil || ok {
		t.Fatalf("missing question: ok=%v err=%v", ok, err)
	}
}

func TestListQuestionsPage_NewestFirst(t *testing.T) {
	db := newTestDB(t, &domain.Question{})
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"q1", "q2", "q3"} {
		q := &domain.Question{ID: id, Title: id, MinValue: 0, MaxValue: 1, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		if err := db.Create(q).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	total, err := CountQuestions(ctx, db)
	if err != nil || total != 3 {
		t.Fatalf("CountQuestions = %d, %v", total, err)
	}

	page, err := ListQuestionsPage(ctx, db, 0, 2)
	if err != nil || len(page) != 2 || page[0].ID != "q3" || page[1].ID != "q2" {
		t.Fatalf("page 1 unexpected: %+v (%v)", page, err)
	}
	page, err = ListQuestionsPage(ctx, db, 2, 2)
	if err != nil || len(page) != 1 || page[0].ID != "q1" {
		t.Fatalf("page 2 unexpected: %+v (%v)", page, err)
	}
}

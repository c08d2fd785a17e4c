package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/calibrated/internal/repo"
)

// ErrNoReplay reports that no stored result exists for an idempotency key.
var ErrNoReplay = errors.New("no stored result for idempotency key")

// IdempotencyService remembers which guess an Idempotency-Key produced so a
// retried submission returns the original guess instead of inserting again.
// Keys are scoped per question.
type IdempotencyService struct {
	DB  *gorm.DB
	TTL time.Duration
}

// NewIdempotencyService returns a service keeping records for ttl
// (24h when ttl <= 0).
func NewIdempotencyService(db *gorm.DB, ttl time.Duration) *IdempotencyService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &IdempotencyService{DB: db, TTL: ttl}
}

// Exists reports whether an unexpired record exists for key on the question
// named by ident. Unknown questions simply report false.
func (s *IdempotencyService) Exists(ctx context.Context, ident, key string, now time.Time) (bool, error) {
	q, err := ResolveQuestion(ctx, s.DB, ident)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrAmbiguous) {
			return false, nil
		}
		return false, err
	}
	_, err = repo.GetIdempotency(ctx, s.DB, q.ID, key, now)
	if errors.Is(err, repo.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Replay returns the guess recorded for key, or ErrNoReplay.
func (s *IdempotencyService) Replay(ctx context.Context, ident, key string) (*SubmittedGuess, error) {
	q, err := ResolveQuestion(ctx, s.DB, ident)
	if err != nil {
		return nil, err
	}
	rec, err := repo.GetIdempotency(ctx, s.DB, q.ID, key, time.Now().UTC())
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNoReplay
	}
	if err != nil {
		return nil, persistence("read idempotency record", err)
	}
	g, err := repo.GetGuess(ctx, s.DB, rec.GuessID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNoReplay
	}
	if err != nil {
		return nil, persistence("read guess", err)
	}
	return &SubmittedGuess{ID: g.ID, QuestionID: g.QuestionID, Value: g.Value, Name: g.Name}, nil
}

// Remember records that key produced guessID. A concurrent duplicate is not
// an error: the first record wins.
func (s *IdempotencyService) Remember(ctx context.Context, questionID, key, guessID string) error {
	_, err := repo.CreateIdempotency(ctx, s.DB, questionID, key, guessID, http.StatusCreated, s.TTL)
	if err == nil || errors.Is(err, repo.ErrDuplicate) {
		return nil
	}
	return persistence("store idempotency record", err)
}

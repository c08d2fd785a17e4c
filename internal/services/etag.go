package services

import (
	"context"
	"fmt"

	"github.com/tbourn/calibrated/internal/repo"
)

// ETag returns a weak validator for the read of the question named by ident.
// It changes whenever a guess is added or the question is revealed.
func (s *QuestionService) ETag(ctx context.Context, ident string) (string, error) {
	q, err := ResolveQuestion(ctx, s.DB, ident)
	if err != nil {
		return "", err
	}
	count, latest, err := repo.GuessStats(ctx, s.DB, q.ID)
	if err != nil {
		return "", persistence("read guess stats", err)
	}
	var latestNs, revealedNs int64
	if latest != nil {
		latestNs = latest.UnixNano()
	}
	if q.RevealedAt != nil {
		revealedNs = q.RevealedAt.UnixNano()
	}
	return fmt.Sprintf(`W/"q:%s:%d:%d:%d"`, q.ID, count, latestNs, revealedNs), nil
}

package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/calibrated/internal/domain"
	"github.com/tbourn/calibrated/internal/repo"
)

// ResolveQuestion maps a caller-supplied identifier to exactly one question.
//
// Identifiers of at most domain.ShortIDLength characters are matched as a
// prefix of the full ID (zero matches: ErrNotFound; several: ErrAmbiguous).
// Longer identifiers are looked up exactly. Matching ignores case: IDs are
// stored as lowercase UUIDs, and SQLite's LIKE would otherwise fold case
// for short ids only. Store failures are returned as
// *PersistenceError. ResolveQuestion never writes.
func ResolveQuestion(ctx context.Context, db *gorm.DB, ident string) (*domain.Question, error) {
	ident = strings.ToLower(strings.TrimSpace(ident))
	if ident == "" {
		return nil, ErrNotFound
	}

	if len(ident) <= domain.ShortIDLength {
		// Two rows are enough to detect ambiguity.
		matches, err := repo.FindQuestionsByPrefix(ctx, db, ident, 2)
		if err != nil {
			return nil, persistence("resolve question", err)
		}
		switch len(matches) {
		case 0:
			return nil, ErrNotFound
		case 1:
			return &matches[0], nil
		default:
			return nil, ErrAmbiguous
		}
	}

	q, err := repo.GetQuestion(ctx, db, ident)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, persistence("resolve question", err)
	}
	return q, nil
}

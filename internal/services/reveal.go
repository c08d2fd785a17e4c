package services

import "github.com/tbourn/calibrated/internal/domain"

// RevealRequest carries the caller's credentials for a reveal.
type RevealRequest struct {
	PIN      *string
	AuthorID *string
}

// AuthorizeReveal decides whether an open question may be revealed.
//
// Order of checks: the recorded author is always allowed; a question without
// a PIN is open to everyone; otherwise a missing PIN yields ErrPinRequired
// and a non-matching PIN (exact, case-sensitive) yields ErrInvalidPin.
// Already-revealed questions are handled by the caller and never reach the
// gate. The gate does not persist anything.
func AuthorizeReveal(q *domain.Question, req RevealRequest) error {
	if isAuthor(q, req.AuthorID) {
		return nil
	}
	if !q.HasPIN() {
		return nil
	}
	if req.PIN == nil || *req.PIN == "" {
		return ErrPinRequired
	}
	if *req.PIN != *q.RevealPIN {
		return ErrInvalidPin
	}
	return nil
}

func isAuthor(q *domain.Question, authorID *string) bool {
	return authorID != nil && *authorID != "" &&
		q.DiscordUserID != nil && *q.DiscordUserID != "" &&
		*authorID == *q.DiscordUserID
}

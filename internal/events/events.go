// Package events publishes question lifecycle changes so that open viewer
// sessions can reconcile their local projection against the authoritative
// store. Subscribers de-duplicate on record ID.
package events

import (
	"context"
	"time"
)

// Event types.
const (
	TypeGuessCreated     = "guess.created"
	TypeQuestionRevealed = "question.revealed"
)

// Event is the JSON payload published on a question's channel.
type Event struct {
	Type       string    `json:"type"`
	QuestionID string    `json:"question_id"`
	GuessID    string    `json:"guess_id,omitempty"`
	Value      *float64  `json:"value,omitempty"`
	Name       *string   `json:"name,omitempty"`
	TrueAnswer *float64  `json:"true_answer,omitempty"`
	At         time.Time `json:"at"`
}

// Publisher delivers events to subscribers.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Nop discards every event. It is used when no change feed is configured.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, Event) error { return nil }

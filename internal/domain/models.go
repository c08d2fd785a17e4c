// Package domain defines the persistence models for questions and guesses.
// These types are mapped with GORM and shared by the repository, service,
// and transport layers.
package domain

import "time"

// ShortIDLength is the number of leading characters of a question ID used in
// shareable links.
const ShortIDLength = 7

// Question is a bounded-range estimation prompt with a hidden true answer.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - MinValue / MaxValue: inclusive guess bounds (MinValue < MaxValue).
//   - TrueAnswer: never exposed to readers until RevealedAt is set.
//   - RevealPIN: optional shared secret guarding the reveal.
//   - RevealedAt: nil while open; set once and never cleared.
//   - DiscordUserID: chat-integration author, allowed to reveal without PIN.
type Question struct {
	ID            string     `json:"id"              gorm:"type:char(36);primaryKey"`
	Title         string     `json:"title"           gorm:"type:varchar(255);not null"`
	Description   *string    `json:"description"     gorm:"type:text"`
	MinValue      float64    `json:"min_value"       gorm:"not null"`
	MaxValue      float64    `json:"max_value"       gorm:"not null"`
	TrueAnswer    float64    `json:"-"               gorm:"not null"`
	Unit          *string    `json:"unit"            gorm:"type:varchar(32)"`
	IsCurrency    bool       `json:"is_currency"     gorm:"not null;default:false"`
	RevealPIN     *string    `json:"-"               gorm:"column:reveal_pin;type:varchar(64)"`
	RevealedAt    *time.Time `json:"revealed_at"`
	CreatedAt     time.Time  `json:"created_at"      gorm:"index:idx_questions_created"`
	DiscordUserID *string    `json:"discord_user_id" gorm:"type:varchar(64);index"`
}

// TableName returns the database table name for Question.
func (Question) TableName() string { return "questions" }

// ShortID returns the shareable prefix of the question ID.
func (q *Question) ShortID() string { return ShortID(q.ID) }

// Revealed reports whether the answer has been disclosed.
func (q *Question) Revealed() bool { return q.RevealedAt != nil }

// HasPIN reports whether a reveal PIN is configured.
func (q *Question) HasPIN() bool { return q.RevealPIN != nil && *q.RevealPIN != "" }

// GuessAfterReveal reports whether g was created strictly after the reveal.
// It is always false while the question is open.
func (q *Question) GuessAfterReveal(g *Guess) bool {
	if q.RevealedAt == nil || g.CreatedAt.IsZero() {
		return false
	}
	return g.CreatedAt.After(*q.RevealedAt)
}

// Guess is a single numeric submission against a question. Guesses are
// immutable once written.
type Guess struct {
	ID         string    `json:"id"          gorm:"type:char(36);primaryKey"`
	QuestionID string    `json:"question_id" gorm:"type:char(36);not null;index:idx_question_guesses,priority:1"`
	Value      float64   `json:"value"       gorm:"not null"`
	Name       *string   `json:"name"        gorm:"type:varchar(100)"`
	CreatedAt  time.Time `json:"created_at"  gorm:"index:idx_question_guesses,priority:2"`

	Question Question `json:"-" gorm:"foreignKey:QuestionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Guess.
func (Guess) TableName() string { return "guesses" }

// ShortID truncates id to ShortIDLength characters.
func ShortID(id string) string {
	if len(id) <= ShortIDLength {
		return id
	}
	return id[:ShortIDLength]
}

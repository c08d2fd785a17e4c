// Package services – QuestionService
//
// This file implements QuestionService, the component that owns the
// question/guess lifecycle: creating questions, reading a question with its
// guesses, accepting guesses, and revealing the true answer. Identifier
// resolution, guess validation, and reveal authorization are delegated to
// ResolveQuestion, ValidateGuess, and AuthorizeReveal respectively.
//
// Each operation issues at most one write. Failures of the store surface as
// *PersistenceError and are never retried.
//
// Observability: all public methods are OpenTelemetry-instrumented and
// update the domain Prometheus counters.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/calibrated/internal/domain"
	"github.com/tbourn/calibrated/internal/events"
	"github.com/tbourn/calibrated/internal/observability"
	"github.com/tbourn/calibrated/internal/repo"
)

// CreateQuestionInput is the authoring request for a new question.
type CreateQuestionInput struct {
	Title       string
	Description *string
	MinValue    float64
	MaxValue    float64
	TrueAnswer  float64
	Unit        *string
	IsCurrency  bool
	RevealPIN   *string
	// AuthorID is the chat-integration user who created the question.
	AuthorID *string
}

// CreatedQuestion identifies a newly created question.
type CreatedQuestion struct {
	ID      string `json:"id"`
	ShortID string `json:"shortId"`
}

// QuestionView is the public projection of a question. TrueAnswer is set
// only once the question is revealed; the PIN itself is never exposed.
type QuestionView struct {
	ID            string     `json:"id"`
	ShortID       string     `json:"shortId"`
	Title         string     `json:"title"`
	Description   *string    `json:"description"`
	MinValue      float64    `json:"minValue"`
	MaxValue      float64    `json:"maxValue"`
	Revealed      bool       `json:"revealed"`
	RevealedAt    *time.Time `json:"revealedAt"`
	TrueAnswer    *float64   `json:"trueAnswer"`
	Unit          *string    `json:"unit"`
	IsCurrency    bool       `json:"isCurrency"`
	HasPIN        bool       `json:"hasPin"`
	DiscordUserID *string    `json:"discordUserId"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// GuessView is a guess as returned to readers.
type GuessView struct {
	ID          string    `json:"id"`
	Value       float64   `json:"value"`
	Name        *string   `json:"name"`
	CreatedAt   time.Time `json:"createdAt"`
	AfterReveal bool      `json:"afterReveal"`
}

// QuestionDetail is a question together with all of its guesses in
// creation order.
type QuestionDetail struct {
	Question QuestionView `json:"question"`
	Guesses  []GuessView  `json:"guesses"`
}

// SubmittedGuess is the result of a successful guess submission.
type SubmittedGuess struct {
	ID         string  `json:"id"`
	QuestionID string  `json:"-"`
	Value      float64 `json:"value"`
	Name       *string `json:"name"`
}

// RevealResult carries the disclosed answer.
type RevealResult struct {
	TrueAnswer float64   `json:"trueAnswer"`
	RevealedAt time.Time `json:"revealedAt"`
	// AlreadyRevealed is true when the question had been revealed before
	// this call (including by a concurrent caller).
	AlreadyRevealed bool `json:"-"`
}

// QuestionService implements the question/guess use-cases.
type QuestionService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Events receives change notifications after writes commit.
	Events events.Publisher
	// Now is the clock used for reveal timestamps; time.Now when nil.
	Now func() time.Time
}

// NewQuestionService constructs a QuestionService. A nil publisher is
// replaced with events.Nop.
func NewQuestionService(db *gorm.DB, pub events.Publisher) *QuestionService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &QuestionService{DB: db, Events: pub}
}

var tracer = otel.Tracer("services/QuestionService")

// Create validates the input and persists a new open question.
func (s *QuestionService) Create(ctx context.Context, in CreateQuestionInput) (*CreatedQuestion, error) {
	ctx, span := tracer.Start(ctx, "Create")
	defer span.End()

	if err := validateQuestion(&in); err != nil {
		endSpan(span, err)
		return nil, err
	}

	q, err := repo.CreateQuestion(ctx, s.DB, repo.NewQuestion{
		Title:         in.Title,
		Description:   in.Description,
		MinValue:      in.MinValue,
		MaxValue:      in.MaxValue,
		TrueAnswer:    in.TrueAnswer,
		Unit:          in.Unit,
		IsCurrency:    in.IsCurrency,
		RevealPIN:     in.RevealPIN,
		DiscordUserID: in.AuthorID,
	})
	if err != nil {
		err = persistence("create question", err)
		endSpan(span, err)
		return nil, err
	}

	observability.QuestionCreated()
	span.SetAttributes(attribute.String("question.id", q.ID))
	return &CreatedQuestion{ID: q.ID, ShortID: q.ShortID()}, nil
}

// Get resolves ident and returns the question with its guesses. The true
// answer is included only if the question has been revealed.
func (s *QuestionService) Get(ctx context.Context, ident string) (*QuestionDetail, error) {
	ctx, span := tracer.Start(ctx, "Get", trace.WithAttributes(attribute.String("question.ident", ident)))
	defer span.End()

	q, err := ResolveQuestion(ctx, s.DB, ident)
	if err != nil {
		endSpan(span, err)
		return nil, err
	}

	rows, err := repo.ListGuesses(ctx, s.DB, q.ID)
	if err != nil {
		err = persistence("fetch guesses", err)
		endSpan(span, err)
		return nil, err
	}

	guesses := make([]GuessView, 0, len(rows))
	for i := range rows {
		g := &rows[i]
		guesses = append(guesses, GuessView{
			ID:          g.ID,
			Value:       g.Value,
			Name:        g.Name,
			CreatedAt:   g.CreatedAt,
			AfterReveal: q.GuessAfterReveal(g),
		})
	}
	span.SetAttributes(attribute.Int("guesses", len(guesses)))
	return &QuestionDetail{Question: NewQuestionView(q), Guesses: guesses}, nil
}

// SubmitGuess resolves ident, checks the value against the question bounds,
// and stores the guess. Guesses are accepted after reveal as well.
func (s *QuestionService) SubmitGuess(ctx context.Context, ident string, value float64, name *string) (*SubmittedGuess, error) {
	ctx, span := tracer.Start(ctx, "SubmitGuess", trace.WithAttributes(attribute.String("question.ident", ident)))
	defer span.End()

	g, err := s.submit(ctx, ident, value, name)
	observability.GuessSubmitted(guessResult(err))
	endSpan(span, err)
	return g, err
}

func (s *QuestionService) submit(ctx context.Context, ident string, value float64, name *string) (*SubmittedGuess, error) {
	if !finite(value) {
		return nil, invalid("value", "value must be a number")
	}

	q, err := ResolveQuestion(ctx, s.DB, ident)
	if err != nil {
		return nil, err
	}
	if err := ValidateGuess(q.MinValue, q.MaxValue, value); err != nil {
		return nil, err
	}

	g, err := repo.CreateGuess(ctx, s.DB, q.ID, value, clipName(name))
	if err != nil {
		return nil, persistence("submit guess", err)
	}

	v := g.Value
	s.publish(ctx, events.Event{
		Type:       events.TypeGuessCreated,
		QuestionID: q.ID,
		GuessID:    g.ID,
		Value:      &v,
		Name:       g.Name,
		At:         g.CreatedAt,
	})
	return &SubmittedGuess{ID: g.ID, QuestionID: q.ID, Value: g.Value, Name: g.Name}, nil
}

// Reveal discloses the true answer of the question identified by ident.
//
// An already-revealed question returns its stored answer without checking
// credentials. Otherwise AuthorizeReveal decides, and on success revealed_at
// is set with a single conditional update, so only the first of several
// concurrent reveals stores its timestamp; the others return the stored one.
func (s *QuestionService) Reveal(ctx context.Context, ident string, req RevealRequest) (*RevealResult, error) {
	ctx, span := tracer.Start(ctx, "Reveal", trace.WithAttributes(attribute.String("question.ident", ident)))
	defer span.End()

	res, err := s.reveal(ctx, ident, req)
	observability.RevealAttempted(revealOutcome(res, err))
	endSpan(span, err)
	return res, err
}

func (s *QuestionService) reveal(ctx context.Context, ident string, req RevealRequest) (*RevealResult, error) {
	q, err := ResolveQuestion(ctx, s.DB, ident)
	if err != nil {
		return nil, err
	}
	if q.Revealed() {
		return &RevealResult{TrueAnswer: q.TrueAnswer, RevealedAt: *q.RevealedAt, AlreadyRevealed: true}, nil
	}

	if err := AuthorizeReveal(q, req); err != nil {
		return nil, err
	}

	at := s.now().UTC()
	updated, err := repo.MarkRevealed(ctx, s.DB, q.ID, at)
	if err != nil {
		return nil, persistence("reveal answer", err)
	}
	if !updated {
		// Lost a race with another reveal: report what was stored.
		cur, err := repo.GetQuestion(ctx, s.DB, q.ID)
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, persistence("reveal answer", err)
		}
		if cur.RevealedAt == nil {
			return nil, persistence("reveal answer", errors.New("reveal was not recorded"))
		}
		return &RevealResult{TrueAnswer: cur.TrueAnswer, RevealedAt: *cur.RevealedAt, AlreadyRevealed: true}, nil
	}

	answer := q.TrueAnswer
	s.publish(ctx, events.Event{
		Type:       events.TypeQuestionRevealed,
		QuestionID: q.ID,
		TrueAnswer: &answer,
		At:         at,
	})
	return &RevealResult{TrueAnswer: answer, RevealedAt: at}, nil
}

// List returns a page of questions, newest first, in their public projection.
func (s *QuestionService) List(ctx context.Context, page, pageSize int) ([]QuestionView, int64, error) {
	ctx, span := tracer.Start(ctx, "List",
		trace.WithAttributes(
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	total, err := repo.CountQuestions(ctx, s.DB)
	if err != nil {
		return nil, 0, persistence("list questions", err)
	}
	if total == 0 {
		return []QuestionView{}, 0, nil
	}

	rows, err := repo.ListQuestionsPage(ctx, s.DB, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, persistence("list questions", err)
	}
	out := make([]QuestionView, 0, len(rows))
	for i := range rows {
		out = append(out, NewQuestionView(&rows[i]))
	}
	return out, total, nil
}

// NewQuestionView projects q for readers, hiding the answer until reveal.
func NewQuestionView(q *domain.Question) QuestionView {
	v := QuestionView{
		ID:            q.ID,
		ShortID:       q.ShortID(),
		Title:         q.Title,
		Description:   q.Description,
		MinValue:      q.MinValue,
		MaxValue:      q.MaxValue,
		Revealed:      q.Revealed(),
		RevealedAt:    q.RevealedAt,
		Unit:          q.Unit,
		IsCurrency:    q.IsCurrency,
		HasPIN:        q.HasPIN(),
		DiscordUserID: q.DiscordUserID,
		CreatedAt:     q.CreatedAt,
	}
	if q.Revealed() {
		answer := q.TrueAnswer
		v.TrueAnswer = &answer
	}
	return v
}

func (s *QuestionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// publish notifies subscribers. The write has already committed, so a
// failure here is logged and otherwise ignored.
func (s *QuestionService) publish(ctx context.Context, ev events.Event) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, ev); err != nil {
		log.Warn().Err(err).
			Str("event", ev.Type).
			Str("question_id", ev.QuestionID).
			Msg("change feed publish failed")
	}
}

func guessResult(err error) string {
	if err == nil {
		return "accepted"
	}
	return Kind(err)
}

func revealOutcome(res *RevealResult, err error) string {
	switch {
	case err != nil:
		return Kind(err)
	case res.AlreadyRevealed:
		return "already_revealed"
	default:
		return "revealed"
	}
}

// endSpan records unexpected failures on the span. Expected client errors
// (not found, validation, PIN) leave the span status unset.
func endSpan(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.SetAttributes(attribute.String("error.kind", Kind(err)))
	var pe *PersistenceError
	if errors.As(err, &pe) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

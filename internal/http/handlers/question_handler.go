// Question HTTP handlers.
//
// This file exposes the REST endpoints for questions and guesses:
//   - POST /questions                 (create a question)
//   - GET  /questions                 (paginated feed, newest first)
//   - GET  /questions/{id}            (question + guesses, ETag aware)
//   - POST /questions/{id}/guesses    (submit a guess, Idempotency-Key aware)
//   - POST /questions/{id}/reveal     (reveal the true answer)
//
// {id} is either the 7-character short id or the full id. Handlers only bind
// and shape JSON; all rules live in the services package.
package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/calibrated/internal/http/middleware"
	"github.com/tbourn/calibrated/internal/services"
	"github.com/tbourn/calibrated/internal/utils"
)

// QuestionService is the question/guess use-case surface the handlers need.
type QuestionService interface {
	Create(ctx context.Context, in services.CreateQuestionInput) (*services.CreatedQuestion, error)
	Get(ctx context.Context, ident string) (*services.QuestionDetail, error)
	SubmitGuess(ctx context.Context, ident string, value float64, name *string) (*services.SubmittedGuess, error)
	Reveal(ctx context.Context, ident string, req services.RevealRequest) (*services.RevealResult, error)
	List(ctx context.Context, page, pageSize int) ([]services.QuestionView, int64, error)
	ETag(ctx context.Context, ident string) (string, error)
}

// IdempotencyService stores and replays guess submissions by key.
type IdempotencyService interface {
	Replay(ctx context.Context, ident, key string) (*services.SubmittedGuess, error)
	Remember(ctx context.Context, questionID, key, guessID string) error
}

// Handlers groups the HTTP endpoints.
type Handlers struct {
	questions QuestionService
	idem      IdempotencyService
}

// New binds handlers to their services. idem may be nil, which disables
// Idempotency-Key replays.
func New(questions QuestionService, idem IdempotencyService) *Handlers {
	return &Handlers{questions: questions, idem: idem}
}

//
// DTOs
//

// CreateQuestionRequest is the JSON payload for creating a question. The
// numeric fields are pointers so that a missing value is rejected rather
// than read as zero.
type CreateQuestionRequest struct {
	Title       string   `json:"title" example:"How many jelly beans are in the jar?"`
	Description *string  `json:"description,omitempty" example:"Count includes the ones stuck to the lid"`
	MinValue    *float64 `json:"minValue" example:"0"`
	MaxValue    *float64 `json:"maxValue" example:"2000"`
	TrueAnswer  *float64 `json:"trueAnswer" example:"1234"`
	Unit        *string  `json:"unit,omitempty" example:"beans"`
	IsCurrency  bool     `json:"isCurrency,omitempty" example:"false"`
	RevealPin   *string  `json:"revealPin,omitempty" example:"1234"`
}

// SubmitGuessRequest is the JSON payload for a guess.
type SubmitGuessRequest struct {
	Value *float64 `json:"value" example:"1100"`
	Name  *string  `json:"name,omitempty" example:"Ana"`
}

// RevealRequest is the JSON payload for a reveal. The body may be empty.
type RevealRequest struct {
	Pin *string `json:"pin,omitempty" example:"1234"`
}

// RevealResponse carries the disclosed answer.
type RevealResponse struct {
	TrueAnswer float64   `json:"trueAnswer" example:"1234"`
	RevealedAt time.Time `json:"revealedAt"`
}

// ListQuestionsResponse wraps a page of questions.
type ListQuestionsResponse struct {
	Questions  []services.QuestionView `json:"questions"`
	Pagination Pagination              `json:"pagination"`
}

//
// Handlers
//

// CreateQuestion godoc
// @ID          createQuestion
// @Summary     Create a question
// @Description Creates an open question with inclusive bounds and a hidden true answer.
// @Tags        Questions
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.CreateQuestionRequest  true  "Question"
// @Success     201   {object}  services.CreatedQuestion
// @Failure     400   {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /questions [post]
func (h *Handlers) CreateQuestion(c *gin.Context) {
	var req CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if req.MinValue == nil || req.MaxValue == nil || req.TrueAnswer == nil {
		fail(c, http.StatusBadRequest, ErrCodeValidationFailed, "invalid number values")
		return
	}

	out, err := h.questions.Create(c.Request.Context(), services.CreateQuestionInput{
		Title:       req.Title,
		Description: req.Description,
		MinValue:    *req.MinValue,
		MaxValue:    *req.MaxValue,
		TrueAnswer:  *req.TrueAnswer,
		Unit:        req.Unit,
		IsCurrency:  req.IsCurrency,
		RevealPIN:   req.RevealPin,
	})
	if err != nil {
		failService(c, err)
		return
	}
	c.Header("Location", c.FullPath()+"/"+out.ShortID)
	ok(c, http.StatusCreated, out)
}

// ListQuestions godoc
// @ID          listQuestions
// @Summary     List questions
// @Description Returns questions newest first. Answers appear only once revealed.
// @Tags        Questions
// @Produce     json
// @Param       page       query  int  false  "Page number"     minimum(1) default(1)
// @Param       page_size  query  int  false  "Items per page"  minimum(1) maximum(100) default(20)
// @Success     200  {object}  handlers.ListQuestionsResponse
// @Failure     400  {object}  handlers.ErrorResponse
// @Router      /questions [get]
func (h *Handlers) ListQuestions(c *gin.Context) {
	page, pageSize := utils.ClampPage(
		utils.AtoiDefault(c.Query("page"), 1),
		utils.AtoiDefault(c.Query("page_size"), 20),
		100,
	)

	items, total, err := h.questions.List(c.Request.Context(), page, pageSize)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, ListQuestionsResponse{
		Questions:  items,
		Pagination: newPagination(page, pageSize, total),
	})
}

// GetQuestion godoc
// @ID          getQuestion
// @Summary     Get a question with its guesses
// @Description Resolves a short or full id. The true answer is included only after reveal.
// @Description Supports conditional requests via ETag / If-None-Match.
// @Tags        Questions
// @Produce     json
// @Param       id             path    string  true   "Short id (7 chars) or full id"
// @Param       If-None-Match  header  string  false  "ETag from a previous response"
// @Success     200  {object}  services.QuestionDetail
// @Success     304  "Not modified"
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /questions/{id} [get]
func (h *Handlers) GetQuestion(c *gin.Context) {
	ctx := c.Request.Context()
	ident := c.Param("id")

	// Best effort: a failure here falls through to Get, which reports it.
	if etag, err := h.questions.ETag(ctx, ident); err == nil {
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	d, err := h.questions.Get(ctx, ident)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, d)
}

// SubmitGuess godoc
// @ID          submitGuess
// @Summary     Submit a guess
// @Description Accepts a value within the question's inclusive bounds, also after reveal.
// @Description Retrying with the same Idempotency-Key returns the original guess.
// @Tags        Guesses
// @Accept      json
// @Produce     json
// @Param       id               path    string  true   "Short id (7 chars) or full id"
// @Param       Idempotency-Key  header  string  false  "Key for safe retries"
// @Param       body             body    handlers.SubmitGuessRequest  true  "Guess"
// @Success     201  {object}  services.SubmittedGuess
// @Failure     400  {object}  handlers.ErrorResponse  "Out of range or invalid"
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /questions/{id}/guesses [post]
func (h *Handlers) SubmitGuess(c *gin.Context) {
	ctx := c.Request.Context()
	ident := c.Param("id")
	key, _ := middleware.GetIdempotencyKey(c)

	if key != "" && h.idem != nil && middleware.IsReplay(c) {
		prev, err := h.idem.Replay(ctx, ident, key)
		if err == nil {
			c.Header("Idempotency-Replayed", "true")
			ok(c, http.StatusCreated, prev)
			return
		}
		if !errors.Is(err, services.ErrNoReplay) {
			failService(c, err)
			return
		}
	}

	var req SubmitGuessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if req.Value == nil {
		failField(c, http.StatusBadRequest, ErrCodeValidationFailed, "value must be a number", "value")
		return
	}

	g, err := h.questions.SubmitGuess(ctx, ident, *req.Value, req.Name)
	if err != nil {
		failService(c, err)
		return
	}

	if key != "" && h.idem != nil {
		if err := h.idem.Remember(ctx, g.QuestionID, key, g.ID); err != nil {
			middleware.LoggerFrom(c).Warn().Err(err).Str("question_id", g.QuestionID).Msg("idempotency record not stored")
		}
	}
	ok(c, http.StatusCreated, g)
}

// RevealAnswer godoc
// @ID          revealAnswer
// @Summary     Reveal the true answer
// @Description Reveals once; later calls return the stored answer without a PIN.
// @Tags        Questions
// @Accept      json
// @Produce     json
// @Param       id    path  string  true   "Short id (7 chars) or full id"
// @Param       body  body  handlers.RevealRequest  false  "PIN for protected questions"
// @Success     200  {object}  handlers.RevealResponse
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     401  {object}  handlers.ErrorResponse  "PIN required or invalid"
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /questions/{id}/reveal [post]
func (h *Handlers) RevealAnswer(c *gin.Context) {
	var req RevealRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	res, err := h.questions.Reveal(c.Request.Context(), c.Param("id"), services.RevealRequest{PIN: req.Pin})
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, RevealResponse{TrueAnswer: res.TrueAnswer, RevealedAt: res.RevealedAt})
}

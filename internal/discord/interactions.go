// Package discord serves the Discord interactions webhook: a slash command
// that creates a question, buttons and modals that submit guesses, and a
// reveal button that posts the ranked results back to the channel.
//
// Discord signs every request with Ed25519 over timestamp+body; unsigned or
// forged requests are rejected with 401 before the payload is parsed.
package discord

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gin-gonic/gin"

	"github.com/tbourn/calibrated/internal/format"
	"github.com/tbourn/calibrated/internal/http/handlers"
	"github.com/tbourn/calibrated/internal/http/middleware"
	"github.com/tbourn/calibrated/internal/services"
	"github.com/tbourn/calibrated/internal/sysutil"
)

// Custom id prefixes for buttons and modals. The short id follows the colon.
const (
	prefixGuess      = "guess:"
	prefixReveal     = "reveal:"
	prefixGuessModal = "guess_modal:"
	prefixRevealPin  = "reveal_pin:"

	fieldValue = "value"
	fieldName  = "name"
	fieldPin   = "pin"
)

// QuestionService is the subset of the question use-cases the webhook drives.
type QuestionService interface {
	Create(ctx context.Context, in services.CreateQuestionInput) (*services.CreatedQuestion, error)
	Get(ctx context.Context, ident string) (*services.QuestionDetail, error)
	SubmitGuess(ctx context.Context, ident string, value float64, name *string) (*services.SubmittedGuess, error)
	Reveal(ctx context.Context, ident string, req services.RevealRequest) (*services.RevealResult, error)
}

// Handler answers Discord interactions.
type Handler struct {
	svc     QuestionService
	key     ed25519.PublicKey
	command string
	appURL  string
	now     func() time.Time
}

// NewHandler decodes the application's hex public key and binds the handler
// to svc. appURL is the base of the share links posted to channels.
func NewHandler(svc QuestionService, publicKeyHex, command, appURL string) (*Handler, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(publicKeyHex))
	if err != nil || len(raw) != ed25519.PublicKeySize {
		return nil, errors.New("discord: public key must be 32 hex-encoded bytes")
	}
	if command == "" {
		command = "calibrate"
	}
	return &Handler{
		svc:     svc,
		key:     ed25519.PublicKey(raw),
		command: command,
		appURL:  strings.TrimRight(appURL, "/"),
		now:     time.Now,
	}, nil
}

// Interactions godoc
// @ID          discordInteractions
// @Summary     Discord interactions webhook
// @Description Verifies the Ed25519 signature and answers PING, the slash command, buttons and modals.
// @Tags        Discord
// @Accept      json
// @Produce     json
// @Param       X-Signature-Ed25519    header  string  true  "Request signature"
// @Param       X-Signature-Timestamp  header  string  true  "Signature timestamp"
// @Success     200  {object}  object
// @Failure     400  {object}  handlers.ErrorResponse
// @Failure     401  {object}  handlers.ErrorResponse
// @Router      /discord/interactions [post]
func (h *Handler) Interactions(c *gin.Context) {
	if c.GetHeader("X-Signature-Ed25519") == "" || c.GetHeader("X-Signature-Timestamp") == "" {
		handlers.Fail(c, http.StatusUnauthorized, "invalid_signature", "missing signature headers")
		return
	}
	if !discordgo.VerifyInteraction(c.Request, h.key) {
		handlers.Fail(c, http.StatusUnauthorized, "invalid_signature", "invalid request signature")
		return
	}

	var in discordgo.Interaction
	if err := c.ShouldBindJSON(&in); err != nil {
		handlers.Fail(c, http.StatusBadRequest, handlers.ErrCodeBadRequest, "invalid interaction payload")
		return
	}

	resp := h.dispatch(c.Request.Context(), &in)
	if resp == nil {
		handlers.Fail(c, http.StatusBadRequest, handlers.ErrCodeBadRequest, "unknown interaction")
		return
	}
	middleware.LoggerFrom(c).Debug().
		Int("interaction_type", int(in.Type)).
		Int("response_type", int(resp.Type)).
		Msg("discord interaction")
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) dispatch(ctx context.Context, in *discordgo.Interaction) *discordgo.InteractionResponse {
	switch in.Type {
	case discordgo.InteractionPing:
		return &discordgo.InteractionResponse{Type: discordgo.InteractionResponsePong}

	case discordgo.InteractionApplicationCommand:
		data := in.ApplicationCommandData()
		if data.Name != h.command {
			return nil
		}
		return h.createQuestion(ctx, userID(in), data.Options)

	case discordgo.InteractionMessageComponent:
		id := in.MessageComponentData().CustomID
		switch {
		case strings.HasPrefix(id, prefixGuess):
			return h.guessModal(ctx, strings.TrimPrefix(id, prefixGuess))
		case strings.HasPrefix(id, prefixReveal):
			return h.reveal(ctx, strings.TrimPrefix(id, prefixReveal), services.RevealRequest{AuthorID: userID(in)})
		}

	case discordgo.InteractionModalSubmit:
		data := in.ModalSubmitData()
		fields := textInputs(data.Components)
		switch {
		case strings.HasPrefix(data.CustomID, prefixGuessModal):
			return h.submitGuess(ctx, strings.TrimPrefix(data.CustomID, prefixGuessModal), fields)
		case strings.HasPrefix(data.CustomID, prefixRevealPin):
			pin := fields[fieldPin]
			return h.reveal(ctx, strings.TrimPrefix(data.CustomID, prefixRevealPin),
				services.RevealRequest{PIN: &pin, AuthorID: userID(in)})
		}
	}
	return nil
}

func (h *Handler) createQuestion(ctx context.Context, author *string, opts []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionResponse {
	o := optionMap(opts)
	minV, okMin := o.number("min")
	maxV, okMax := o.number("max")
	answer, okAns := o.number("answer")
	if !okMin || !okMax || !okAns {
		return ephemeral("❌ Error: min, max and answer must be numbers")
	}

	in := services.CreateQuestionInput{
		Title:       o.str("question"),
		Description: o.optStr("description"),
		MinValue:    minV,
		MaxValue:    maxV,
		TrueAnswer:  answer,
		Unit:        o.optStr("unit"),
		IsCurrency:  o.boolean("currency"),
		RevealPIN:   o.optStr("pin"),
		AuthorID:    author,
	}
	out, err := h.svc.Create(ctx, in)
	if err != nil {
		return ephemeral("❌ Error: " + userMessage(err))
	}

	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    questionMessage(in, h.appURL+"/q/"+out.ShortID),
			Components: questionButtons(out.ShortID),
		},
	}
}

func (h *Handler) guessModal(ctx context.Context, shortID string) *discordgo.InteractionResponse {
	d, err := h.svc.Get(ctx, shortID)
	if err != nil {
		return ephemeral("❌ " + userMessage(err))
	}
	q := d.Question
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   prefixGuessModal + shortID,
			Title:      truncate(q.Title, 45),
			Components: guessModalRows(q),
		},
	}
}

func (h *Handler) submitGuess(ctx context.Context, shortID string, fields map[string]string) *discordgo.InteractionResponse {
	value, err := parseNumber(fields[fieldValue])
	if err != nil {
		return ephemeral("❌ Your guess must be a number")
	}
	var name *string
	if n := strings.TrimSpace(fields[fieldName]); n != "" {
		name = &n
	}

	g, err := h.svc.SubmitGuess(ctx, shortID, value, name)
	if err != nil {
		return ephemeral("❌ " + userMessage(err))
	}
	return ephemeral(fmt.Sprintf("✅ Guess recorded: **%s**", format.Number(g.Value)))
}

func (h *Handler) reveal(ctx context.Context, shortID string, req services.RevealRequest) *discordgo.InteractionResponse {
	res, err := h.svc.Reveal(ctx, shortID, req)
	switch {
	case errors.Is(err, services.ErrPinRequired):
		return &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseModal,
			Data: &discordgo.InteractionResponseData{
				CustomID:   prefixRevealPin + shortID,
				Title:      "Enter reveal PIN",
				Components: pinModalRows(),
			},
		}
	case err != nil:
		return ephemeral("❌ " + userMessage(err))
	}

	d, err := h.svc.Get(ctx, shortID)
	if err != nil {
		return ephemeral("❌ " + userMessage(err))
	}
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: resultsMessage(d, res, h.now()),
		},
	}
}

func ephemeral(msg string) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}
}

// userID is the invoking user: Member.User in guilds, User in DMs.
func userID(in *discordgo.Interaction) *string {
	var id string
	if in.Member != nil && in.Member.User != nil {
		id = in.Member.User.ID
	}
	if in.User != nil {
		id = sysutil.FirstNonEmpty(id, in.User.ID)
	}
	if id == "" {
		return nil
	}
	return &id
}

func userMessage(err error) string {
	var (
		ve *services.ValidationError
		oe *services.OutOfRangeError
	)
	switch {
	case errors.Is(err, services.ErrNotFound):
		return "Question not found"
	case errors.Is(err, services.ErrAmbiguous):
		return "Ambiguous question id"
	case errors.Is(err, services.ErrInvalidPin):
		return "Invalid PIN"
	case errors.As(err, &ve):
		return ve.Message
	case errors.As(err, &oe):
		return oe.Error()
	default:
		return "Something went wrong, try again"
	}
}

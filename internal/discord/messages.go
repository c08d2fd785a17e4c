package discord

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"

	"github.com/tbourn/calibrated/internal/format"
	"github.com/tbourn/calibrated/internal/services"
	"github.com/tbourn/calibrated/internal/sysutil"
)

// maxResultLines caps the ranked guesses listed in a reveal message.
const maxResultLines = 10

func questionMessage(in services.CreateQuestionInput, url string) string {
	lines := []string{"**" + in.Title + "**"}
	if in.Description != nil && strings.TrimSpace(*in.Description) != "" {
		lines = append(lines, "", "Details: "+strings.TrimSpace(*in.Description))
	}
	lines = append(lines,
		"", "Range: "+format.Range(in.MinValue, in.MaxValue, in.Unit, in.IsCurrency),
		"", "[Guess Here]("+url+")",
	)
	return strings.Join(lines, "\n")
}

func questionButtons(shortID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Guess", Style: discordgo.PrimaryButton, CustomID: prefixGuess + shortID},
			discordgo.Button{Label: "Reveal", Style: discordgo.SecondaryButton, CustomID: prefixReveal + shortID},
		}},
	}
}

func guessModalRows(q services.QuestionView) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:    fieldValue,
				Label:       "Your guess",
				Style:       discordgo.TextInputShort,
				Placeholder: format.Range(q.MinValue, q.MaxValue, q.Unit, q.IsCurrency),
				Required:    true,
				MaxLength:   32,
			},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:  fieldName,
				Label:     "Name (optional)",
				Style:     discordgo.TextInputShort,
				MaxLength: 64,
			},
		}},
	}
}

func pinModalRows() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:  fieldPin,
				Label:     "PIN",
				Style:     discordgo.TextInputShort,
				Required:  true,
				MaxLength: 64,
			},
		}},
	}
}

// resultsMessage lists guesses closest first with winners marked.
func resultsMessage(d *services.QuestionDetail, res *services.RevealResult, now time.Time) string {
	q := d.Question
	val := func(v float64) string { return format.Value(v, q.Unit, q.IsCurrency) }

	var b strings.Builder
	fmt.Fprintf(&b, "🎯 **%s**\n", q.Title)
	fmt.Fprintf(&b, "Answer: **%s** (revealed %s)\n", val(res.TrueAnswer), humanize.RelTime(res.RevealedAt, now, "ago", "from now"))

	ranked := services.RankGuesses(d.Guesses, res.TrueAnswer)
	if len(ranked) == 0 {
		b.WriteString("\nNo guesses were submitted.")
		return b.String()
	}
	b.WriteString("\n")
	for i, g := range ranked {
		if i == maxResultLines {
			fmt.Fprintf(&b, "…and %s more\n", humanize.Comma(int64(len(ranked)-maxResultLines)))
			break
		}
		mark := ""
		if g.Winner {
			mark = " 🏆"
		}
		fmt.Fprintf(&b, "%d. %s: %s (off by %s)%s\n", g.Rank, displayName(g.Name), val(g.Value), format.Number(g.Distance), mark)
	}
	return strings.TrimRight(b.String(), "\n")
}

func displayName(name *string) string {
	if name == nil {
		return "Anonymous"
	}
	return sysutil.FirstNonEmpty(strings.TrimSpace(*name), "Anonymous")
}

// textInputs flattens modal rows into custom_id -> value.
func textInputs(rows []discordgo.MessageComponent) map[string]string {
	out := map[string]string{}
	var walk func([]discordgo.MessageComponent)
	walk = func(cs []discordgo.MessageComponent) {
		for _, c := range cs {
			switch v := c.(type) {
			case *discordgo.ActionsRow:
				walk(v.Components)
			case discordgo.ActionsRow:
				walk(v.Components)
			case *discordgo.TextInput:
				out[v.CustomID] = v.Value
			case discordgo.TextInput:
				out[v.CustomID] = v.Value
			}
		}
	}
	walk(rows)
	return out
}

// parseNumber accepts "1,234", "$50" and surrounding spaces.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	return strconv.ParseFloat(s, 64)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

type options map[string]interface{}

func optionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) options {
	m := options{}
	for _, o := range opts {
		if o != nil {
			m[o.Name] = o.Value
		}
	}
	return m
}

func (o options) str(name string) string {
	s, _ := o[name].(string)
	return s
}

func (o options) optStr(name string) *string {
	s := strings.TrimSpace(o.str(name))
	if s == "" {
		return nil
	}
	return &s
}

func (o options) number(name string) (float64, bool) {
	switch v := o[name].(type) {
	case float64:
		return v, true
	case string:
		f, err := parseNumber(v)
		return f, err == nil
	default:
		return 0, false
	}
}

func (o options) boolean(name string) bool {
	b, _ := o[name].(bool)
	return b
}

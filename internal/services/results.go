package services

import (
	"math"
	"sort"
)

// RankedGuess is a guess annotated with its distance from the true answer.
type RankedGuess struct {
	GuessView
	Distance float64 `json:"distance"`
	Rank     int     `json:"rank"`
	Winner   bool    `json:"winner"`
}

// RankGuesses orders guesses by absolute distance from answer, closest
// first; ties keep creation order. Every guess at the minimal distance is a
// winner, and tied guesses share a rank.
func RankGuesses(guesses []GuessView, answer float64) []RankedGuess {
	out := make([]RankedGuess, len(guesses))
	for i, g := range guesses {
		out[i] = RankedGuess{GuessView: g, Distance: math.Abs(g.Value - answer)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	for i := range out {
		switch {
		case i == 0:
			out[i].Rank = 1
		case out[i].Distance == out[i-1].Distance:
			out[i].Rank = out[i-1].Rank
		default:
			out[i].Rank = i + 1
		}
		out[i].Winner = out[i].Distance == out[0].Distance
	}
	return out
}

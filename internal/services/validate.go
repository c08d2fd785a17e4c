package services

import (
	"math"
	"strings"
	"unicode/utf8"
)

const (
	maxTitleRunes = 255
	maxNameRunes  = 100
	maxUnitRunes  = 32
	maxPinRunes   = 64
)

// ValidateGuess checks min <= value <= max and returns an *OutOfRangeError
// carrying both bounds otherwise.
func ValidateGuess(min, max, value float64) error {
	if value < min || value > max {
		return &OutOfRangeError{Min: min, Max: max, Value: value}
	}
	return nil
}

func validateQuestion(in *CreateQuestionInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return invalid("title", "title is required")
	}
	if utf8.RuneCountInString(in.Title) > maxTitleRunes {
		return invalid("title", "title must be at most 255 characters")
	}
	if !finite(in.MinValue) || !finite(in.MaxValue) || !finite(in.TrueAnswer) {
		return invalid("values", "invalid number values")
	}
	if in.MinValue >= in.MaxValue {
		return invalid("maxValue", "min must be less than max")
	}
	if in.TrueAnswer < in.MinValue || in.TrueAnswer > in.MaxValue {
		return invalid("trueAnswer", "answer must be between min and max")
	}

	in.Description = trimmedOrNil(in.Description)
	in.Unit = trimmedOrNil(in.Unit)
	if in.Unit != nil && utf8.RuneCountInString(*in.Unit) > maxUnitRunes {
		return invalid("unit", "unit must be at most 32 characters")
	}
	// PINs are compared exactly, so only the empty PIN is normalized away.
	if in.RevealPIN != nil && *in.RevealPIN == "" {
		in.RevealPIN = nil
	}
	if in.RevealPIN != nil && utf8.RuneCountInString(*in.RevealPIN) > maxPinRunes {
		return invalid("revealPin", "PIN must be at most 64 characters")
	}
	in.AuthorID = trimmedOrNil(in.AuthorID)
	return nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// trimmedOrNil trims s and maps blank values to nil.
func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

// clipName trims a display name and caps it by rune length.
func clipName(s *string) *string {
	s = trimmedOrNil(s)
	if s != nil && utf8.RuneCountInString(*s) > maxNameRunes {
		c := string([]rune(*s)[:maxNameRunes])
		s = &c
	}
	return s
}

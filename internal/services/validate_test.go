package services

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidateGuess(t *testing.T) {
	cases := []struct {
		v    float64
		ok   bool
		name string
	}{
		{0, true, "lower bound"},
		{100, true, "upper bound"},
		{42.5, true, "inside"},
		{-0.0001, false, "below"},
		{100.0001, false, "above"},
	}
	for _, tc := range cases {
		err := ValidateGuess(0, 100, tc.v)
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected err %v", tc.name, err)
		}
		if !tc.ok {
			var oe *OutOfRangeError
			if !errors.As(err, &oe) {
				t.Fatalf("%s: want OutOfRangeError, got %v", tc.name, err)
			}
			if oe.Min != 0 || oe.Max != 100 || oe.Value != tc.v {
				t.Fatalf("%s: bounds not carried: %+v", tc.name, oe)
			}
			if oe.Error() != "value must be between 0 and 100" {
				t.Fatalf("%s: message %q", tc.name, oe.Error())
			}
		}
	}
}

func TestValidateQuestion_Rejects(t *testing.T) {
	base := func() CreateQuestionInput {
		return CreateQuestionInput{Title: "T", MinValue: 0, MaxValue: 10, TrueAnswer: 5}
	}
	cases := []struct {
		name  string
		mut   func(*CreateQuestionInput)
		field string
	}{
		{"blank title", func(in *CreateQuestionInput) { in.Title = "   " }, "title"},
		{"long title", func(in *CreateQuestionInput) { in.Title = strings.Repeat("x", 256) }, "title"},
		{"min equals max", func(in *CreateQuestionInput) { in.MaxValue = 0 }, "maxValue"},
		{"min above max", func(in *CreateQuestionInput) { in.MinValue = 11 }, "maxValue"},
		{"answer below", func(in *CreateQuestionInput) { in.TrueAnswer = -1 }, "trueAnswer"},
		{"answer above", func(in *CreateQuestionInput) { in.TrueAnswer = 10.5 }, "trueAnswer"},
		{"NaN", func(in *CreateQuestionInput) { in.TrueAnswer = math.NaN() }, "values"},
		{"Inf", func(in *CreateQuestionInput) { in.MaxValue = math.Inf(1) }, "values"},
		{"long unit", func(in *CreateQuestionInput) { in.Unit = strp(strings.Repeat("u", 33)) }, "unit"},
		{"long pin", func(in *CreateQuestionInput) { in.RevealPIN = strp(strings.Repeat("9", 65)) }, "revealPin"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base()
			tc.mut(&in)
			err := validateQuestion(&in)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("want ValidationError, got %v", err)
			}
			if ve.Field != tc.field {
				t.Fatalf("field = %q, want %q", ve.Field, tc.field)
			}
		})
	}
}

func TestValidateQuestion_Normalizes(t *testing.T) {
	in := CreateQuestionInput{
		Title:       "  Jelly beans  ",
		Description: strp("   "),
		MinValue:    0,
		MaxValue:    10,
		TrueAnswer:  10,
		Unit:        strp(" beans "),
		RevealPIN:   strp(""),
		AuthorID:    strp(" u1 "),
	}
	if err := validateQuestion(&in); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := CreateQuestionInput{
		Title:      "Jelly beans",
		MinValue:   0,
		MaxValue:   10,
		TrueAnswer: 10,
		Unit:       strp("beans"),
		AuthorID:   strp("u1"),
	}
	if diff := cmp.Diff(want, in); diff != "" {
		t.Fatalf("normalized input mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateQuestion_PinIsNotTrimmed(t *testing.T) {
	in := CreateQuestionInput{Title: "T", MaxValue: 1, RevealPIN: strp(" 12 ")}
	if err := validateQuestion(&in); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if in.RevealPIN == nil || *in.RevealPIN != " 12 " {
		t.Fatalf("pin altered: %v", in.RevealPIN)
	}
}

func TestClipName(t *testing.T) {
	if clipName(strp("  ")) != nil {
		t.Fatal("blank name should be nil")
	}
	got := clipName(strp(strings.Repeat("é", 120)))
	if got == nil || len([]rune(*got)) != maxNameRunes {
		t.Fatalf("name not clipped: %v", got)
	}
}

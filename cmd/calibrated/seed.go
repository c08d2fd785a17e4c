package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tbourn/calibrated/internal/services"
)

type seedGuess struct {
	value float64
	name  string
}

type seedQuestion struct {
	in      services.CreateQuestionInput
	guesses []seedGuess
	reveal  bool
}

func ptr(s string) *string { return &s }

// sampleQuestions covers an open question, a revealed one and a
// PIN-protected one.
func sampleQuestions() []seedQuestion {
	return []seedQuestion{
		{
			in: services.CreateQuestionInput{
				Title:       "How many jelly beans are in the jar?",
				Description: ptr("Count includes the ones stuck to the lid"),
				MinValue:    0, MaxValue: 2000, TrueAnswer: 1234,
				Unit: ptr("beans"),
			},
			guesses: []seedGuess{{1100, "Ana"}, {1500, "Bo"}, {900, ""}},
			reveal:  true,
		},
		{
			in: services.CreateQuestionInput{
				Title:    "What will the Q3 ad budget be?",
				MinValue: 0, MaxValue: 500000, TrueAnswer: 125000,
				IsCurrency: true,
				RevealPIN:  ptr("2468"),
			},
			guesses: []seedGuess{{100000, "Ana"}, {150000, "Cy"}},
		},
		{
			in: services.CreateQuestionInput{
				Title:    "How many minutes will the release deploy take?",
				MinValue: 0, MaxValue: 120, TrueAnswer: 42,
				Unit: ptr("minutes"),
			},
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample questions and print their share links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer closeDB(db)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			svc := services.NewQuestionService(db, nil)
			out := cmd.OutOrStdout()

			for _, sq := range sampleQuestions() {
				q, err := svc.Create(ctx, sq.in)
				if err != nil {
					return fmt.Errorf("seed %q: %w", sq.in.Title, err)
				}
				for _, g := range sq.guesses {
					var name *string
					if g.name != "" {
						name = ptr(g.name)
					}
					if _, err := svc.SubmitGuess(ctx, q.ID, g.value, name); err != nil {
						return fmt.Errorf("seed guess for %s: %w", q.ShortID, err)
					}
				}
				if sq.reveal {
					if _, err := svc.Reveal(ctx, q.ID, services.RevealRequest{}); err != nil {
						return fmt.Errorf("seed reveal for %s: %w", q.ShortID, err)
					}
				}
				fmt.Fprintf(out, "%s\t%s/q/%s\t%s\n", q.ShortID, a.cfg.AppURL, q.ShortID, sq.in.Title)
			}
			return nil
		},
	}
}

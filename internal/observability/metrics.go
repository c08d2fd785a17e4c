package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	questionsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "calibrated_questions_created_total",
			Help: "Total number of questions created.",
		},
	)

	// guesses counts submissions by outcome ("accepted", "out_of_range", ...).
	guesses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calibrated_guesses_total",
			Help: "Guess submissions by result.",
		},
		[]string{"result"},
	)

	// reveals counts reveal attempts by outcome ("revealed", "already_revealed",
	// "pin_required", "invalid_pin", ...).
	reveals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calibrated_reveals_total",
			Help: "Reveal attempts by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(questionsCreated, guesses, reveals)
}

// QuestionCreated records a successful question creation.
func QuestionCreated() { questionsCreated.Inc() }

// GuessSubmitted records a guess submission outcome.
func GuessSubmitted(result string) { guesses.WithLabelValues(result).Inc() }

// RevealAttempted records a reveal outcome.
func RevealAttempted(outcome string) { reveals.WithLabelValues(outcome).Inc() }

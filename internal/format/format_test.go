package format

import "testing"

func strp(s string) *string { return &s }

func TestNumber(t *testing.T) {
	cases := map[float64]string{
		0:       "0",
		42:      "42",
		1234:    "1,234",
		1234567: "1,234,567",
		0.5:     "0.5",
		-2500:   "-2,500",
		1234.25: "1,234.25",
	}
	for in, want := range cases {
		if got := Number(in); got != want {
			t.Errorf("Number(%v) = %q; want %q", in, got, want)
		}
	}
}

func TestValue(t *testing.T) {
	tests := []struct {
		name     string
		v        float64
		unit     *string
		currency bool
		want     string
	}{
		{"plain", 1500, nil, false, "1,500"},
		{"unit", 12, strp("beans"), false, "12 beans"},
		{"blank unit", 12, strp("  "), false, "12"},
		{"currency default", 1500, nil, true, "$1,500"},
		{"currency custom", 20, strp("€"), true, "€20"},
		{"negative currency", -5, nil, true, "-$5"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Value(tc.v, tc.unit, tc.currency); got != tc.want {
				t.Fatalf("Value = %q; want %q", got, tc.want)
			}
		})
	}
}

func TestRange(t *testing.T) {
	if got := Range(0, 1000, strp("kg"), false); got != "0 kg – 1,000 kg" {
		t.Fatalf("Range = %q", got)
	}
}

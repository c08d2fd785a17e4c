// Package format renders question values for human-facing text such as chat
// replies.
package format

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// Number renders v with thousands separators and at most three fraction
// digits, e.g. 1234567 -> "1,234,567".
func Number(v float64) string {
	return printer.Sprintf("%v", number.Decimal(v))
}

// Value renders v with its unit. Currency values are prefixed with the unit
// (default "$"); other units are appended after a space.
func Value(v float64, unit *string, isCurrency bool) string {
	n := Number(v)
	u := ""
	if unit != nil {
		u = strings.TrimSpace(*unit)
	}
	switch {
	case isCurrency:
		if u == "" {
			u = "$"
		}
		if strings.HasPrefix(n, "-") {
			return "-" + u + n[1:]
		}
		return u + n
	case u != "":
		return n + " " + u
	default:
		return n
	}
}

// Range renders the inclusive bounds of a question.
func Range(min, max float64, unit *string, isCurrency bool) string {
	return Value(min, unit, isCurrency) + " – " + Value(max, unit, isCurrency)
}

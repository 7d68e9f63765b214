// Package score turns raw client-reported typing metrics into the
// validated, rounded values that get persisted on a run record.
//
// Parsing is deliberately permissive: malformed numeric input never
// fails a submission, it degrades to zero.
package score

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Suspicious-result thresholds for contest runs. Results beyond these
// are flagged for manual review, not rejected.
var (
	SuspiciousWpmAbove      = decimal.NewFromInt(200)
	SuspiciousAccuracyBelow = decimal.NewFromInt(40)
)

var hundred = decimal.NewFromInt(100)

// RawMetrics holds untrusted form fields as submitted by the client.
// Any field may be empty or non-numeric.
type RawMetrics struct {
	Wpm        string
	Accuracy   string
	FinalScore string
}

// Result is the normalized triple stored on a run record. All values
// carry exactly two fractional digits.
type Result struct {
	Wpm        decimal.Decimal
	Accuracy   decimal.Decimal
	FinalScore decimal.Decimal
}

// ParseDecimalOrDefault parses raw as a decimal number, substituting
// def when raw is empty or unparseable. It never returns an error.
func ParseDecimalOrDefault(raw string, def decimal.Decimal) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return def
	}
	return d
}

// ClampAccuracy clamps d into [0, 100].
func ClampAccuracy(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(hundred) {
		return hundred
	}
	return d
}

// ClampWpm clamps d to be non-negative.
func ClampWpm(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Round2 rounds d to exactly two fractional digits, half-up.
func Round2(d decimal.Decimal) decimal.Decimal {
	// decimal.Round rounds half away from zero, which is half-up for
	// the non-negative values that reach storage.
	return d.Round(2)
}

// Compute validates and normalizes raw client metrics.
//
// Accuracy is clamped into [0, 100] and wpm to >= 0 before rounding.
// When the client supplied a parseable final score it wins (after
// rounding); otherwise the score is computed as wpm * accuracy / 100.
func Compute(raw RawMetrics) Result {
	wpm := ClampWpm(ParseDecimalOrDefault(raw.Wpm, decimal.Zero))
	acc := ClampAccuracy(ParseDecimalOrDefault(raw.Accuracy, decimal.Zero))

	wpm = Round2(wpm)
	acc = Round2(acc)

	var final decimal.Decimal
	if supplied, err := decimal.NewFromString(strings.TrimSpace(raw.FinalScore)); err == nil {
		final = Round2(supplied)
	} else {
		final = Round2(wpm.Mul(acc).Div(hundred))
	}

	return Result{
		Wpm:        wpm,
		Accuracy:   acc,
		FinalScore: final,
	}
}

// IsSuspicious reports whether a contest result is statistically
// implausible: wpm above 200 or accuracy below 40. Advisory only.
func IsSuspicious(wpm, accuracy decimal.Decimal) bool {
	return wpm.GreaterThan(SuspiciousWpmAbove) || accuracy.LessThan(SuspiciousAccuracyBelow)
}

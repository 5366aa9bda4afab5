package output

import (
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// nonFinite renders NaN and the infinities, which decimal cannot represent
func nonFinite(v float64) (string, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64), true
	}
	return "", false
}

// groupInt groups thousands of an integral decimal. Values past int64 are
// printed ungrouped rather than wrapped.
func groupInt(d decimal.Decimal) string {
	if b := d.BigInt(); !b.IsInt64() {
		return b.String()
	}
	return printer.Sprintf("%d", d.IntPart())
}

// FormatUnits rounds a unit count half-to-even and groups thousands: 1234.5 -> "1,234"
func FormatUnits(v float64) string {
	if s, ok := nonFinite(v); ok {
		return s
	}
	return groupInt(decimal.NewFromFloat(v).RoundBank(0))
}

// FormatPercent renders a probability as a percentage with two decimals: 0.2 -> "20.00%"
func FormatPercent(p float64) string {
	if s, ok := nonFinite(p); ok {
		return s
	}
	return decimal.NewFromFloat(p).Shift(2).StringFixedBank(2) + "%"
}

// FormatCost renders a cost with two decimals and grouped thousands: 1234.5 -> "1,234.50"
func FormatCost(c float64) string {
	if s, ok := nonFinite(c); ok {
		return s
	}
	d := decimal.NewFromFloat(c).RoundBank(2)
	whole := d.Truncate(0)
	cents := d.Sub(whole).Abs().Shift(2).IntPart()

	sign := ""
	if d.IsNegative() && whole.IsZero() {
		sign = "-"
	}
	return sign + groupInt(whole) + fmt.Sprintf(".%02d", cents)
}

// FormatDistance rounds a distance to one decimal: 1000 -> "1000.0"
func FormatDistance(d float64) string {
	if s, ok := nonFinite(d); ok {
		return s
	}
	return decimal.NewFromFloat(d).StringFixedBank(1)
}

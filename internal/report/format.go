package report

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FormatUSD renders an amount as dollars and cents with thousands separators, e.g. "$28,500.00"
func FormatUSD(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "n/a"
	}

	d := decimal.NewFromFloat(amount).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	whole := d.Truncate(0)
	cents := d.Sub(whole).Mul(hundred).IntPart()

	return fmt.Sprintf("%s$%s.%02d", sign, humanize.Comma(whole.IntPart()), cents)
}

// FormatPayback renders a payback period in years, or "not applicable" when it is not finite
func FormatPayback(years float64) string {
	if math.IsNaN(years) || math.IsInf(years, 0) {
		return "not applicable"
	}
	return fmt.Sprintf("%s years", decimal.NewFromFloat(years).StringFixed(1))
}

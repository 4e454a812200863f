// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency prefixes amounts when no symbol is configured.
const DefaultCurrency = "₹"

// DateLayout renders expense dates, e.g. "15 Jan 2024".
const DateLayout = "2 Jan 2006"

// FormatAmount renders d with the currency symbol, Indian digit grouping and
// at most three fraction digits, trailing zeros trimmed.
// e.g., 123456.5 -> "₹1,23,456.5"
func FormatAmount(currency string, d decimal.Decimal) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	s := d.Round(3).String()
	intPart, frac, _ := strings.Cut(s, ".")
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return sign + currency + s
	}
	out := sign + currency + GroupIndian(n)
	if frac != "" {
		out += "." + frac
	}
	return out
}

// GroupIndian adds separators the en-IN way: the last three digits, then
// pairs. e.g., 1234567 -> "12,34,567"
func GroupIndian(n int64) string {
	if n < 0 {
		return "-" + GroupIndian(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	head, tail := s[:len(s)-3], s[len(s)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}

// FormatDate renders t as "15 Jan 2024", or "-" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(DateLayout)
}

// FormatTrend renders a month-over-month change, e.g. "+12.5% vs last month".
func FormatTrend(trend float64) string {
	sign := ""
	if trend >= 0 {
		sign = "+"
	}
	return sign + strconv.FormatFloat(trend, 'f', -1, 64) + "% vs last month"
}

// FormatShare formats a 0-100 share as a percentage string.
func FormatShare(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatCount returns "1 transaction" or "N transactions".
func FormatCount(n int) string {
	if n == 1 {
		return "1 transaction"
	}
	return fmt.Sprintf("%d transactions", n)
}

// Truncate shortens s to max display runes, ending with an ellipsis.
func Truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}

// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatAmount formats a currency value with the configured symbol and
// comma-separated thousands. e.g., 1234.5 -> "R1,234.50"
func FormatAmount(symbol string, d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + FormatAmount(symbol, d.Neg())
	}

	fixed := d.StringFixed(2)
	intPart := fixed
	fracPart := ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, fracPart = fixed[:i], fixed[i:]
	}
	return symbol + groupThousands(intPart) + fracPart
}

// FormatSignedAmount renders an explicit sign, used for cashflow deltas.
func FormatSignedAmount(symbol string, d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + FormatAmount(symbol, d.Neg())
	}
	return "+" + FormatAmount(symbol, d)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	return groupThousands(strconv.FormatInt(n, 10))
}

func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatDate renders a short day-and-month form for in-month listings.
func FormatDate(t time.Time) string {
	return t.Format("02 Jan")
}

// FormatFullDate renders a full date.
func FormatFullDate(t time.Time) string {
	return t.Format("02 Jan 2006")
}

// FormatMonth renders a month heading, e.g. "March 2024".
func FormatMonth(year, month int) string {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

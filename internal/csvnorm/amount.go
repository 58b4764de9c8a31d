package csvnorm

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var amountCharPattern = regexp.MustCompile(`[^0-9,.\-+()]`)

// NormalizeAmount parses a monetary value written in Brazilian (1.234,56) or
// US (1,234.56) convention. It returns the absolute amount, whether the raw
// value was negative, and whether parsing succeeded. Zero amounts are
// rejected: a movement of nothing is always a data error.
func NormalizeAmount(raw string) (decimal.Decimal, bool, bool) {
	cleaned := amountCharPattern.ReplaceAllString(strings.TrimSpace(raw), "")
	if cleaned == "" {
		return decimal.Zero, false, false
	}

	negative := strings.Contains(cleaned, "-") || strings.HasPrefix(cleaned, "(")
	cleaned = strings.NewReplacer("-", "", "+", "", "(", "", ")", "").Replace(cleaned)

	hasComma := strings.Contains(cleaned, ",")
	hasDot := strings.Contains(cleaned, ".")
	switch {
	case hasComma && hasDot:
		// Both separators present: the right-most one is the decimal mark.
		if strings.LastIndex(cleaned, ",") > strings.LastIndex(cleaned, ".") {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case hasComma:
		// A lone comma is decimal only in the X,XX form; otherwise it is a
		// thousands separator (1,234 means one thousand ...).
		tail := cleaned[strings.LastIndex(cleaned, ",")+1:]
		if len(tail) == 2 && strings.Count(cleaned, ",") == 1 {
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil || amount.IsZero() {
		return decimal.Zero, false, false
	}
	return amount.Abs(), negative, true
}

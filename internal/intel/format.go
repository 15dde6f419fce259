package intel

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rcavanagh/leadline/internal/lead"
)

// currencyPrinter applies en-US digit grouping. Intelligence amounts are
// whole-dollar, so fractional digits are always dropped.
var currencyPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatMoney renders a raw value as USD. Non-numeric input passes through
// unchanged rather than failing.
func FormatMoney(value any) string {
	amount, ok := coerceNumber(value)
	if !ok {
		return lead.CoerceString(value)
	}
	return currencyPrinter.Sprintf("$%.0f", amount)
}

// FormatDate reformats YYYY-MM-DD into MM/DD/YYYY. Any other shape passes
// through unchanged; this is a defensive fallback, not an error.
func FormatDate(value string) string {
	trimmed := strings.TrimSpace(value)
	parts := strings.Split(trimmed, "-")
	if len(parts) != 3 {
		return trimmed
	}
	return parts[1] + "/" + parts[2] + "/" + parts[0]
}

// PluralYears renders a delinquent-year count as plain text.
func PluralYears(count int) string {
	if count == 1 {
		return "1 year"
	}
	return strconv.Itoa(count) + " years"
}

func coerceNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func coerceInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

package gate

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// DaysUntilDeadline returns the number of whole days between local midnight
// today and the given YYYY-MM-DD calendar date. Missing or unparseable input
// returns ok=false, which callers must treat as "urgency unknown, do not
// alert" rather than an error.
func DaysUntilDeadline(dateString string) (int, bool) {
	return DaysUntilDeadlineAt(dateString, time.Now())
}

// DaysUntilDeadlineAt is DaysUntilDeadline against an explicit "now". The
// rendering engine shares it so field-level deadline tiers and the gate badge
// derive from the same arithmetic.
func DaysUntilDeadlineAt(dateString string, now time.Time) (int, bool) {
	trimmed := strings.TrimSpace(dateString)
	if trimmed == "" {
		return 0, false
	}
	deadline, err := time.ParseInLocation(dateLayout, trimmed, now.Location())
	if err != nil {
		return 0, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	// Both instants are local midnights, but a DST shift between them can
	// leave the difference at 23 or 25 hours per day. Ceil absorbs that.
	days := math.Ceil(deadline.Sub(today).Hours() / 24)
	return int(days), true
}

// BadgeText renders the redemption deadline badge label for a day count.
func BadgeText(days int) string {
	switch days {
	case 0:
		return "TODAY - Deadline Day!"
	case 1:
		return "1 Day Remaining"
	default:
		return fmt.Sprintf("%d Days Remaining", days)
	}
}

package csvnorm

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var dateCharPattern = regexp.MustCompile(`[^0-9/\-.]`)

// datePattern describes one of the accepted layouts and how to pull the
// (year, month, day) triple out of its capture groups.
type datePattern struct {
	re      *regexp.Regexp
	extract func(groups []string) (year, month, day int)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// Accepted layouts, tried in order. Two-digit years are expanded with the
// current century.
var datePatterns = []datePattern{
	{
		re: regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`),
		extract: func(g []string) (int, int, int) {
			return atoi(g[3]), atoi(g[2]), atoi(g[1])
		},
	},
	{
		re: regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{2})$`),
		extract: func(g []string) (int, int, int) {
			return expandYear(atoi(g[3])), atoi(g[2]), atoi(g[1])
		},
	},
	{
		re: regexp.MustCompile(`^(\d{4})/(\d{2})/(\d{2})$`),
		extract: func(g []string) (int, int, int) {
			return atoi(g[1]), atoi(g[2]), atoi(g[3])
		},
	},
	{
		re: regexp.MustCompile(`^(\d{2})(\d{2})(\d{4})$`),
		extract: func(g []string) (int, int, int) {
			return atoi(g[3]), atoi(g[2]), atoi(g[1])
		},
	},
	{
		re: regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})$`),
		extract: func(g []string) (int, int, int) {
			return atoi(g[1]), atoi(g[2]), atoi(g[3])
		},
	},
}

func expandYear(twoDigit int) int {
	century := (time.Now().Year() / 100) * 100
	return century + twoDigit
}

// NormalizeDate parses a date written in any of the accepted Brazilian or ISO
// layouts and returns it as YYYY-MM-DD, or "" when the value is not a valid
// calendar date.
func NormalizeDate(raw string) string {
	cleaned := dateCharPattern.ReplaceAllString(strings.TrimSpace(raw), "")
	// Dots and dashes are alternate spellings of the slash separator.
	cleaned = strings.NewReplacer("-", "/", ".", "/").Replace(cleaned)
	if cleaned == "" {
		return ""
	}

	for _, p := range datePatterns {
		groups := p.re.FindStringSubmatch(cleaned)
		if groups == nil {
			continue
		}
		year, month, day := p.extract(groups)
		if !isCalendarDate(year, month, day) {
			continue
		}
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	}
	return ""
}

// isCalendarDate validates the triple by round-tripping through time.Date,
// which normalizes overflow (31/02 becomes 02/03 or 03/03 and is rejected).
func isCalendarDate(year, month, day int) bool {
	if year < 1 || month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}

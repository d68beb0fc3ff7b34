// Package dateparse turns the loose date phrases that show up in meeting
// notes ("tomorrow", "next Friday", "in 3 days") into canonical YYYY-MM-DD
// strings relative to an explicit reference time.
package dateparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Layout is the canonical calendar date format used across the service.
const Layout = "2006-01-02"

// ParseError is returned when an expression cannot be normalized.
type ParseError struct {
	Expr   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot normalize date %q: %s", e.Expr, e.Reason)
}

var (
	canonicalRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	inDaysRe    = regexp.MustCompile(`^in (\S+) days?$`)
	daysAgoRe   = regexp.MustCompile(`^(\S+) days? ago$`)
	weekdayRe   = regexp.MustCompile(`^(?:(next|last|this) )?([a-z]+)$`)
)

var fillerPrefixes = []string{"by ", "on ", "due ", "before "}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"sun":       time.Sunday,
	"monday":    time.Monday,
	"mon":       time.Monday,
	"tuesday":   time.Tuesday,
	"tue":       time.Tuesday,
	"tues":      time.Tuesday,
	"wednesday": time.Wednesday,
	"wed":       time.Wednesday,
	"thursday":  time.Thursday,
	"thu":       time.Thursday,
	"thur":      time.Thursday,
	"thurs":     time.Thursday,
	"friday":    time.Friday,
	"fri":       time.Friday,
	"saturday":  time.Saturday,
	"sat":       time.Saturday,
}

// Normalize resolves expr against now and returns a YYYY-MM-DD date.
//
// Rules are tried in order: canonical date, today/tomorrow/yesterday,
// "in N days" / "N days ago", next/last week, then weekday names with an
// optional next/last/this qualifier. Matching is case-insensitive and
// ignores surrounding whitespace. Only the calendar date of now is used.
func Normalize(expr string, now time.Time) (string, error) {
	s := strings.Join(strings.Fields(strings.ToLower(expr)), " ")
	if s == "" {
		return "", &ParseError{Expr: expr, Reason: "empty expression"}
	}
	for _, p := range fillerPrefixes {
		if rest := strings.TrimPrefix(s, p); rest != s && rest != "" {
			s = rest
			break
		}
	}

	base := civilDate(now)

	if canonicalRe.MatchString(s) {
		if _, err := time.Parse(Layout, s); err != nil {
			return "", &ParseError{Expr: expr, Reason: "not a valid calendar date"}
		}
		return s, nil
	}

	switch s {
	case "today":
		return format(base), nil
	case "tomorrow":
		return format(base.AddDate(0, 0, 1)), nil
	case "yesterday":
		return format(base.AddDate(0, 0, -1)), nil
	case "next week":
		return format(base.AddDate(0, 0, 7)), nil
	case "last week":
		return format(base.AddDate(0, 0, -7)), nil
	}

	if m := inDaysRe.FindStringSubmatch(s); m != nil {
		n, err := dayCount(m[1])
		if err != nil {
			return "", &ParseError{Expr: expr, Reason: err.Error()}
		}
		return format(base.AddDate(0, 0, n)), nil
	}
	if m := daysAgoRe.FindStringSubmatch(s); m != nil {
		n, err := dayCount(m[1])
		if err != nil {
			return "", &ParseError{Expr: expr, Reason: err.Error()}
		}
		return format(base.AddDate(0, 0, -n)), nil
	}

	if m := weekdayRe.FindStringSubmatch(s); m != nil {
		wd, ok := weekdays[m[2]]
		if !ok {
			return "", &ParseError{Expr: expr, Reason: "unrecognized expression"}
		}
		return format(resolveWeekday(base, m[1], wd)), nil
	}

	return "", &ParseError{Expr: expr, Reason: "unrecognized expression"}
}

// resolveWeekday applies the qualifier rules to a weekday name.
//
//	""/"this": next occurrence strictly after base
//	"last":    most recent occurrence strictly before base
//	"next":    that weekday in the following Monday-start week
func resolveWeekday(base time.Time, qualifier string, wd time.Weekday) time.Time {
	cur := int(base.Weekday())
	target := int(wd)

	switch qualifier {
	case "last":
		back := (cur - target + 7) % 7
		if back == 0 {
			back = 7
		}
		return base.AddDate(0, 0, -back)
	case "next":
		monday := base.AddDate(0, 0, -mondayIndex(cur))
		return monday.AddDate(0, 0, 7+mondayIndex(target))
	default:
		ahead := (target - cur + 7) % 7
		if ahead == 0 {
			ahead = 7
		}
		return base.AddDate(0, 0, ahead)
	}
}

func mondayIndex(wd int) int {
	return (wd + 6) % 7
}

func dayCount(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("day count %q is not an integer", raw)
	}
	if n < 0 {
		return 0, fmt.Errorf("day count %d is negative", n)
	}
	return n, nil
}

// Parse reads a canonical YYYY-MM-DD date as UTC midnight.
func Parse(canonical string) (time.Time, error) {
	return time.Parse(Layout, canonical)
}

// Format renders the calendar date of t.
func Format(t time.Time) string {
	return format(civilDate(t))
}

// DaysBetween returns the number of calendar days from `from` to `to`.
// The result is negative when `to` is earlier.
func DaysBetween(from, to time.Time) int {
	a := civilDate(from)
	b := civilDate(to)
	// time.Duration saturates near 292 years
	return int((b.Unix() - a.Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

// civilDate drops the clock and zone of t, keeping its calendar date.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func format(t time.Time) string {
	return t.Format(Layout)
}

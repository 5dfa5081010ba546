package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/en"

	"fjacquet/spendlens/internal/dateutils"
	"fjacquet/spendlens/internal/logging"
)

// Bias tells a DateResolver which way to lean when a phrase is ambiguous.
type Bias int

const (
	BiasNone Bias = iota
	BiasPast
	BiasFuture
)

func (b Bias) String() string {
	switch b {
	case BiasPast:
		return "past"
	case BiasFuture:
		return "future"
	default:
		return "none"
	}
}

// DateResolver turns a natural-language date phrase into an instant
// relative to base. It reports false when nothing in text is a date.
type DateResolver interface {
	Resolve(text string, base time.Time, bias Bias) (time.Time, bool)
}

var (
	isoDatePattern   = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	slashDatePattern = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{4}|\d{2}))?\b`)
	periodPattern    = regexp.MustCompile(`(?i)\b(last|past|previous|next|this)\s+(week|month|year)\b`)
)

// WhenResolver resolves dates with the English rule set of
// github.com/olebedev/when. ISO dates and month-first slash dates are read
// before the rules run; "last month" style periods are tried after them.
type WhenResolver struct {
	parser *when.Parser
}

// NewWhenResolver builds a WhenResolver.
func NewWhenResolver() *WhenResolver {
	w := when.New(nil)
	w.Add(en.All...)
	return &WhenResolver{parser: w}
}

// Resolve implements DateResolver. A past-biased result that lands after the
// reference day moves back one week; a future-biased one that lands before it
// moves forward one week. Bare weekday names are the usual case.
func (r *WhenResolver) Resolve(text string, base time.Time, bias Bias) (time.Time, bool) {
	if resolved, ok := isoDate(text, base); ok {
		return resolved, true
	}
	if resolved, ok := slashDate(text, base); ok {
		return resolved, true
	}

	result, err := r.parser.Parse(slashDatePattern.ReplaceAllString(text, " "), base)
	if err != nil || result == nil {
		return periodOffset(text, base)
	}

	resolved := dateutils.StartOfDay(result.Time)
	switch bias {
	case BiasPast:
		if dateutils.CompareDates(resolved, base) > 0 {
			resolved = resolved.AddDate(0, 0, -7)
		}
	case BiasFuture:
		if dateutils.CompareDates(resolved, base) < 0 {
			resolved = resolved.AddDate(0, 0, 7)
		}
	}
	return resolved, true
}

// isoDate reads the first YYYY-MM-DD token of text.
func isoDate(text string, base time.Time) (time.Time, bool) {
	m := isoDatePattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	parsed, err := dateutils.ParseDate(m[1])
	if err != nil {
		return time.Time{}, false
	}
	y, mo, d := parsed.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, base.Location()), true
}

// slashDate reads the first M/D or M/D/Y token of text. A missing year is
// the year of base, two-digit years are in the 2000s.
func slashDate(text string, base time.Time) (time.Time, bool) {
	m := slashDatePattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year := base.Year()
	if m[3] != "" {
		year, _ = strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			year += 2000
		}
	}
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, base.Location())
	if t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// periodOffset moves base by one week, month or year for phrases such as
// "last week" or "next month". "this" keeps base. Month offsets clamp to
// the last day of the target month.
func periodOffset(text string, base time.Time) (time.Time, bool) {
	m := periodPattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	step := 1
	switch strings.ToLower(m[1]) {
	case "last", "past", "previous":
		step = -1
	case "this":
		step = 0
	}

	day := dateutils.StartOfDay(base)
	switch strings.ToLower(m[2]) {
	case "week":
		return day.AddDate(0, 0, 7*step), true
	case "month":
		return addMonths(day, step), true
	default:
		return addMonths(day, 12*step), true
	}
}

func addMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

// extractDate applies the keyword precedence: yesterday, tomorrow, past
// phrases ("last", "ago"), future phrases ("next"), then anything the
// resolver recognizes. Every miss falls back to the day of now.
func extractDate(logger logging.Logger, resolver DateResolver, text string, now time.Time) time.Time {
	today := dateutils.StartOfDay(now)
	if text == "" {
		logger.Warn("Empty text provided for date extraction")
		return today
	}

	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "yesterday"):
		result := today.AddDate(0, 0, -1)
		logger.Info("Parsed 'yesterday'", logging.Field{Key: logging.FieldDate, Value: dateutils.ToISODate(result)})
		return result

	case strings.Contains(lower, "tomorrow"):
		result := today.AddDate(0, 0, 1)
		logger.Info("Parsed 'tomorrow'", logging.Field{Key: logging.FieldDate, Value: dateutils.ToISODate(result)})
		return result

	case strings.Contains(lower, "last") || strings.Contains(lower, "ago"):
		return resolveOrToday(logger, resolver, text, now, BiasPast)

	case strings.Contains(lower, "next"):
		return resolveOrToday(logger, resolver, text, now, BiasFuture)

	default:
		return resolveOrToday(logger, resolver, text, now, BiasNone)
	}
}

func resolveOrToday(logger logging.Logger, resolver DateResolver, text string, now time.Time, bias Bias) time.Time {
	if resolved, ok := resolver.Resolve(text, now, bias); ok {
		resolved = dateutils.StartOfDay(resolved)
		logger.Info("Parsed date",
			logging.Field{Key: logging.FieldDate, Value: dateutils.ToISODate(resolved)},
			logging.Field{Key: "bias", Value: bias.String()})
		return resolved
	}
	logger.Info("No date found, defaulting to today")
	return dateutils.StartOfDay(now)
}

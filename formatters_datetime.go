package loctext

import (
	"strings"
	"time"

	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DateTimeFormatter renders timestamps with the patterns of one culture. The
// timestamp is rendered in its own location.
type DateTimeFormatter interface {
	FormatDate(t time.Time, style DateTimeStyle) string
	FormatTime(t time.Time, style DateTimeStyle) string
	FormatDateTime(t time.Time, dateStyle, timeStyle DateTimeStyle) string
}

type patternDateTimeFormatter struct {
	rules   FormattingRules
	printer *message.Printer
}

var _ DateTimeFormatter = (*patternDateTimeFormatter)(nil)

func newDateTimeFormatter(rules FormattingRules, printer *message.Printer) *patternDateTimeFormatter {
	return &patternDateTimeFormatter{rules: rules, printer: printer}
}

func (f *patternDateTimeFormatter) FormatDate(t time.Time, style DateTimeStyle) string {
	return f.render(f.rules.DatePatterns.pattern(style), t)
}

func (f *patternDateTimeFormatter) FormatTime(t time.Time, style DateTimeStyle) string {
	return f.render(f.rules.TimePatterns.pattern(style), t)
}

func (f *patternDateTimeFormatter) FormatDateTime(t time.Time, dateStyle, timeStyle DateTimeStyle) string {
	result := strings.ReplaceAll(f.rules.DateTimePattern, "{date}", f.FormatDate(t, dateStyle))
	return strings.ReplaceAll(result, "{time}", f.FormatTime(t, timeStyle))
}

func (f *patternDateTimeFormatter) render(pattern string, t time.Time) string {
	return placeholderPattern.ReplaceAllStringFunc(pattern, func(match string) string {
		if value, ok := f.field(match[1:len(match)-1], t); ok {
			return value
		}
		return match
	})
}

func (f *patternDateTimeFormatter) field(token string, t time.Time) (string, bool) {
	switch token {
	case "d":
		return f.digits(t.Day(), 1), true
	case "dd":
		return f.digits(t.Day(), 2), true
	case "M":
		return f.digits(int(t.Month()), 1), true
	case "MM":
		return f.digits(int(t.Month()), 2), true
	case "MMM":
		return f.rules.MonthAbbreviations[t.Month()-1], true
	case "MMMM":
		return f.rules.MonthNames[t.Month()-1], true
	case "yy":
		return f.digits(t.Year()%100, 2), true
	case "yyyy":
		return f.digits(t.Year(), 4), true
	case "EEE":
		return f.rules.DayAbbreviations[t.Weekday()], true
	case "EEEE":
		return f.rules.DayNames[t.Weekday()], true
	case "H":
		return f.digits(t.Hour(), 1), true
	case "HH":
		return f.digits(t.Hour(), 2), true
	case "h":
		return f.digits(clockHour(t.Hour()), 1), true
	case "hh":
		return f.digits(clockHour(t.Hour()), 2), true
	case "mm":
		return f.digits(t.Minute(), 2), true
	case "ss":
		return f.digits(t.Second(), 2), true
	case "a":
		return f.rules.DayPeriods[t.Hour()/12], true
	case "z":
		name, _ := t.Zone()
		return name, true
	case "zzzz":
		return t.Location().String(), true
	}
	return "", false
}

// digits renders a calendar field in the culture's numbering system, without
// grouping and zero padded to width.
func (f *patternDateTimeFormatter) digits(value, width int) string {
	return f.printer.Sprintf("%v", number.Decimal(value, number.MinIntegerDigits(width), number.NoSeparator()))
}

func clockHour(hour int) int {
	if hour%12 == 0 {
		return 12
	}
	return hour % 12
}

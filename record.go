package loctext

import (
	"time"
)

// Record describes how the string of a Text was produced, so that it can be
// produced again for another culture. The set of records is closed.
type Record interface {
	isRecord()
}

// LiteralRecord is a raw string. It never changes on regeneration.
type LiteralRecord struct {
	Source string
}

// DateRecord renders the date part of a timestamp.
type DateRecord struct {
	Timestamp time.Time
	Style     DateTimeStyle
	Location  *time.Location
	Culture   CultureID // explicit culture, empty for the current one
}

// TimeRecord renders the time of day of a timestamp.
type TimeRecord struct {
	Timestamp time.Time
	Style     DateTimeStyle
	Location  *time.Location
	Culture   CultureID
}

// DateTimeRecord renders a timestamp with the culture's date-time pattern.
type DateTimeRecord struct {
	Timestamp time.Time
	DateStyle DateTimeStyle
	TimeStyle DateTimeStyle
	Location  *time.Location
	Culture   CultureID
}

// TimespanRecord renders a duration as hours, minutes and seconds. It expands
// to a FormattedRecord over the localized "Timespan.FormatPattern".
type TimespanRecord struct {
	Duration time.Duration
	Culture  CultureID
}

// MemorySizeRecord renders a byte count with a binary unit prefix. It expands
// to a FormattedRecord over "Internationalization.ComputerMemoryFormatting".
type MemorySizeRecord struct {
	Bytes   uint64
	Options NumberFormattingOptions
	Culture CultureID
}

// NumberRecord renders an int64, uint64 or float64.
type NumberRecord struct {
	Value   any
	Options NumberFormattingOptions
	Culture CultureID
}

// LocalizedRecord looks a string up in the culture's catalog, falling back
// to Source when no locale of the culture defines Namespace.Key.
type LocalizedRecord struct {
	Namespace string
	Key       string
	Source    string
	Culture   CultureID
}

// FormattedRecord substitutes named arguments into a pattern. Both the
// pattern and the arguments are texts with records of their own.
type FormattedRecord struct {
	Pattern   Text
	Arguments NamedArguments
}

func (LiteralRecord) isRecord()    {}
func (DateRecord) isRecord()       {}
func (TimeRecord) isRecord()       {}
func (DateTimeRecord) isRecord()   {}
func (TimespanRecord) isRecord()   {}
func (MemorySizeRecord) isRecord() {}
func (NumberRecord) isRecord()     {}
func (LocalizedRecord) isRecord()  {}
func (FormattedRecord) isRecord()  {}

const (
	timespanNamespace = "Timespan"
	timespanKey       = "FormatPattern"
	timespanSource    = "{Hours}:{Minutes}:{Seconds}"

	memoryNamespace = "Internationalization"
	memoryKey       = "ComputerMemoryFormatting"
	memorySource    = "{Number} {Unit}"

	memoryPrefixes = "kMGTPEZY"
)

// cultureFor picks the culture a record is evaluated against, given the
// culture the record was pinned to.
type cultureFor func(pinned CultureID) *Culture

func fixedCulture(c *Culture) cultureFor {
	return func(CultureID) *Culture { return c }
}

// evaluate renders rec. It returns the record to store on the new text,
// which differs from rec only for FormattedRecord, whose nested texts are
// regenerated first.
func evaluate(rec Record, pick cultureFor) (Record, string, CultureID) {
	switch r := rec.(type) {
	case LiteralRecord:
		return r, r.Source, ""

	case DateRecord:
		c := pick(r.Culture)
		return r, c.dateTime.FormatDate(r.Timestamp.In(r.Location), r.Style), c.id

	case TimeRecord:
		c := pick(r.Culture)
		return r, c.dateTime.FormatTime(r.Timestamp.In(r.Location), r.Style), c.id

	case DateTimeRecord:
		c := pick(r.Culture)
		return r, c.dateTime.FormatDateTime(r.Timestamp.In(r.Location), r.DateStyle, r.TimeStyle), c.id

	case NumberRecord:
		c := pick(r.Culture)
		value, _ := toNumberValue(r.Value)
		return r, c.number.format(value, r.Options), c.id

	case LocalizedRecord:
		c := pick(r.Culture)
		if value, ok := c.LocalizedString(r.Namespace, r.Key); ok {
			return r, value, c.id
		}
		return r, r.Source, c.id

	case TimespanRecord:
		c := pick(r.Culture)
		_, display, _ := evaluate(r.expand(c.id), fixedCulture(c))
		return r, display, c.id

	case MemorySizeRecord:
		c := pick(r.Culture)
		_, display, _ := evaluate(r.expand(c.id), fixedCulture(c))
		return r, display, c.id

	case FormattedRecord:
		pattern := r.Pattern.regenerate(pick)
		var args NamedArguments
		values := make(map[string]string, len(r.Arguments))
		if r.Arguments != nil {
			args = make(NamedArguments, len(r.Arguments))
			for name, arg := range r.Arguments {
				arg = arg.regenerate(pick)
				args[name] = arg
				values[name] = arg.display
			}
		}
		return FormattedRecord{Pattern: pattern, Arguments: args}, substitute(pattern.display, values), compositeCulture(pattern, args)
	}
	panic("loctext: unknown record type")
}

// expand builds the composite the timespan renders through. Hours are the
// whole hours of the duration, at least two digits wide; minutes and seconds
// are exactly two digits. A negative duration carries its sign on the hours.
func (r TimespanRecord) expand(culture CultureID) FormattedRecord {
	d := r.Duration
	hours := int64(d / time.Hour)
	rest := d - time.Duration(hours)*time.Hour
	if rest < 0 {
		rest = -rest
	}
	minutes := int64(rest / time.Minute)
	seconds := int64((rest % time.Minute) / time.Second)

	hourOptions := NumberFormattingOptions{
		MinimumIntegralDigits: 2,
		MaximumIntegralDigits: defaultMaxIntegralDigits,
	}
	clockOptions := NumberFormattingOptions{
		MinimumIntegralDigits: 2,
		MaximumIntegralDigits: 2,
	}

	return FormattedRecord{
		Pattern: Text{record: LocalizedRecord{
			Namespace: timespanNamespace,
			Key:       timespanKey,
			Source:    timespanSource,
			Culture:   culture,
		}},
		Arguments: NamedArguments{
			"Hours":   Text{record: NumberRecord{Value: hours, Options: hourOptions, Culture: culture}},
			"Minutes": Text{record: NumberRecord{Value: minutes, Options: clockOptions, Culture: culture}},
			"Seconds": Text{record: NumberRecord{Value: seconds, Options: clockOptions, Culture: culture}},
		},
	}
}

// expand applies the memory size scaling: below 1024 the count is shown in
// bytes; otherwise it is shifted down by 1024 while it exceeds 1024*1024 and
// the remainder is shown as a fraction of 1024 with the matching prefix.
func (r MemorySizeRecord) expand(culture CultureID) FormattedRecord {
	var number Text
	unit := "B"

	if r.Bytes < 1024 {
		opts := r.Options
		opts.UseGrouping = false
		number = Text{record: NumberRecord{Value: r.Bytes, Options: opts, Culture: culture}}
	} else {
		n := r.Bytes
		prefix := 0
		for n > 1024*1024 {
			n >>= 10
			prefix++
		}
		value := float64(n) / 1024.0
		number = Text{record: NumberRecord{Value: value, Options: r.Options, Culture: culture}}
		unit = memoryPrefixes[prefix:prefix+1] + "B"
	}

	return FormattedRecord{
		Pattern: Text{record: LocalizedRecord{
			Namespace: memoryNamespace,
			Key:       memoryKey,
			Source:    memorySource,
			Culture:   culture,
		}},
		Arguments: NamedArguments{
			"Number": number,
			"Unit":   FromLiteral(unit),
		},
	}
}

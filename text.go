package loctext

import (
	"fmt"
	"maps"
	"slices"
	"unicode"
)

// Text is an immutable display string together with the record it was
// rendered from and the culture it was rendered for. The string is only ever
// recomputed by an explicit regeneration, which returns a new Text.
//
// The zero Text is an empty literal.
type Text struct {
	display string
	record  Record
	culture CultureID
}

// FromLiteral wraps s. Regenerating a literal returns it unchanged.
func FromLiteral(s string) Text {
	return Text{display: s, record: LiteralRecord{Source: s}}
}

// Format substitutes args into the {Name} placeholders of pattern.
// Placeholders without an argument are kept verbatim. Regenerating the result
// regenerates the pattern and every argument first.
func Format(pattern Text, args NamedArguments) Text {
	rec := FormattedRecord{Pattern: pattern}
	values := make(map[string]string, len(args))
	if len(args) > 0 {
		rec.Arguments = make(NamedArguments, len(args))
		for name, arg := range args {
			rec.Arguments[name] = arg
			values[name] = arg.display
		}
	}
	return Text{display: substitute(pattern.display, values), record: rec, culture: compositeCulture(pattern, rec.Arguments)}
}

// compositeCulture is the culture of the pattern, or for a literal pattern
// the culture of the first culture-bound argument by name.
func compositeCulture(pattern Text, args NamedArguments) CultureID {
	if pattern.culture != "" {
		return pattern.culture
	}
	for _, name := range slices.Sorted(maps.Keys(args)) {
		if c := args[name].culture; c != "" {
			return c
		}
	}
	return ""
}

// render evaluates rec against c into a new Text.
func render(rec Record, c *Culture) Text {
	return renderWith(rec, fixedCulture(c))
}

func renderWith(rec Record, pick cultureFor) Text {
	next, display, culture := evaluate(rec, pick)
	return Text{display: display, record: next, culture: culture}
}

// String returns the cached display string. It never regenerates.
func (t Text) String() string {
	return t.display
}

// IsEmpty reports whether the display string is empty.
func (t Text) IsEmpty() bool {
	return t.display == ""
}

// Culture returns the culture the string was rendered for, empty for
// culture independent texts such as literals.
func (t Text) Culture() CultureID {
	return t.culture
}

// Record returns the record the string was rendered from.
func (t Text) Record() Record {
	if t.record == nil {
		return LiteralRecord{Source: t.display}
	}
	return t.record
}

// IsLiteral reports whether the text is a raw string.
func (t Text) IsLiteral() bool {
	_, ok := t.Record().(LiteralRecord)
	return ok
}

// Regenerate renders the record again for c. Composite texts regenerate
// their nested texts for c as well.
func (t Text) Regenerate(c *Culture) Text {
	if c == nil {
		panic("loctext: regenerate with nil culture")
	}
	return t.regenerate(fixedCulture(c))
}

func (t Text) regenerate(pick cultureFor) Text {
	if t.record == nil {
		return t
	}
	return renderWith(t.record, pick)
}

// CompareTo orders t and other with the collator of the current culture of
// the default registry. It panics if that registry is not initialized; use
// Registry.CompareTo for a registry of your own.
func (t Text) CompareTo(other Text, level ComparisonLevel) CompareResult {
	result, err := std.CompareTo(t, other, level)
	if err != nil {
		panic(err)
	}
	return result
}

// EqualTo reports whether t and other collate equal at level.
func (t Text) EqualTo(other Text, level ComparisonLevel) bool {
	return t.CompareTo(other, level) == Equal
}

// CompareToCaseIgnored compares at Secondary strength.
func (t Text) CompareToCaseIgnored(other Text) CompareResult {
	return t.CompareTo(other, Secondary)
}

// EqualToCaseIgnored reports equality at Secondary strength.
func (t Text) EqualToCaseIgnored(other Text) bool {
	return t.EqualTo(other, Secondary)
}

// Direction resolves the overall direction of the display string.
func (t Text) Direction() Direction {
	return ComputeTextDirection(t.display)
}

func (t Text) GoString() string {
	return fmt.Sprintf("loctext.Text{%q, %T, %q}", t.display, t.Record(), t.culture)
}

// IsWhitespace reports whether r is a Unicode white space character.
func IsWhitespace(r rune) bool {
	return unicode.IsSpace(r)
}

// IsLetter reports whether r is a Unicode letter.
func IsLetter(r rune) bool {
	return unicode.IsLetter(r)
}

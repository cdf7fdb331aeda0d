package loctext

import (
	"fmt"

	"golang.org/x/text/language"
)

// CultureID identifies a culture by its canonical BCP 47 tag, e.g. "en-GB".
// Two identifiers are the same culture when their strings are equal.
type CultureID string

// ParseCultureID canonicalizes a locale identifier. Underscores are accepted
// as separators ("pt_BR" parses as "pt-BR").
func ParseCultureID(locale string) (CultureID, error) {
	tag, err := parseLocaleTag(locale)
	if err != nil {
		return "", err
	}
	return CultureID(tag.String()), nil
}

func (id CultureID) String() string {
	return string(id)
}

func parseLocaleTag(locale string) (language.Tag, error) {
	normalized := normalizeLocale(locale)
	if normalized == "" {
		return language.Und, fmt.Errorf("%w: empty identifier", ErrUnknownLocale)
	}
	tag, err := language.Parse(normalized)
	if err != nil || tag == language.Und {
		return language.Und, fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
	}
	return tag, nil
}

// DateTimeStyle selects one of the culture's date or time patterns.
type DateTimeStyle int

const (
	StyleDefault DateTimeStyle = iota
	StyleShort
	StyleMedium
	StyleLong
	StyleFull
)

func (s DateTimeStyle) String() string {
	switch s {
	case StyleShort:
		return "short"
	case StyleMedium:
		return "medium"
	case StyleLong:
		return "long"
	case StyleFull:
		return "full"
	default:
		return "default"
	}
}

// ParseDateTimeStyle maps a style name back to its DateTimeStyle.
func ParseDateTimeStyle(name string) (DateTimeStyle, error) {
	switch name {
	case "", "default":
		return StyleDefault, nil
	case "short":
		return StyleShort, nil
	case "medium":
		return StyleMedium, nil
	case "long":
		return StyleLong, nil
	case "full":
		return StyleFull, nil
	}
	return StyleDefault, fmt.Errorf("loctext: unknown date/time style %q", name)
}

// RoundingMode controls how fractional digits beyond the maximum are dropped.
type RoundingMode int

const (
	HalfToEven RoundingMode = iota
	HalfFromZero
	HalfToZero
	FromZero
	ToZero
	ToNegativeInfinity
	ToPositiveInfinity
)

const (
	defaultMaxIntegralDigits   = 309
	defaultMaxFractionalDigits = 3
)

// NumberFormattingOptions bounds the digits rendered for a number. The zero
// value is not the default, use DefaultNumberFormattingOptions.
type NumberFormattingOptions struct {
	UseGrouping             bool
	RoundingMode            RoundingMode
	MinimumIntegralDigits   int
	MaximumIntegralDigits   int
	MinimumFractionalDigits int
	MaximumFractionalDigits int
}

// DefaultNumberFormattingOptions groups digits, rounds half to even and keeps
// up to three fractional digits.
func DefaultNumberFormattingOptions() NumberFormattingOptions {
	return NumberFormattingOptions{
		UseGrouping:             true,
		RoundingMode:            HalfToEven,
		MinimumIntegralDigits:   1,
		MaximumIntegralDigits:   defaultMaxIntegralDigits,
		MinimumFractionalDigits: 0,
		MaximumFractionalDigits: defaultMaxFractionalDigits,
	}
}

// resolveNumberOptions copies opts, or the defaults for nil, and repairs
// inconsistent bounds.
func resolveNumberOptions(opts *NumberFormattingOptions) NumberFormattingOptions {
	if opts == nil {
		return DefaultNumberFormattingOptions()
	}
	o := *opts
	if o.MinimumIntegralDigits < 0 {
		o.MinimumIntegralDigits = 0
	}
	if o.MaximumIntegralDigits <= 0 || o.MaximumIntegralDigits > defaultMaxIntegralDigits {
		o.MaximumIntegralDigits = defaultMaxIntegralDigits
	}
	if o.MaximumIntegralDigits < o.MinimumIntegralDigits {
		o.MaximumIntegralDigits = o.MinimumIntegralDigits
	}
	if o.MinimumFractionalDigits < 0 {
		o.MinimumFractionalDigits = 0
	}
	if o.MaximumFractionalDigits < o.MinimumFractionalDigits {
		o.MaximumFractionalDigits = o.MinimumFractionalDigits
	}
	return o
}

// NamedArguments binds placeholder names to the texts substituted for them.
type NamedArguments map[string]Text

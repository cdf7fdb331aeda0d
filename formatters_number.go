package loctext

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// NumberFormatter renders numbers with the conventions of one culture.
type NumberFormatter interface {
	// FormatInt renders a signed integer.
	FormatInt(value int64, opts NumberFormattingOptions) string
	// FormatUint renders an unsigned integer.
	FormatUint(value uint64, opts NumberFormattingOptions) string
	// FormatFloat renders a floating point value, rounding it to
	// opts.MaximumFractionalDigits with opts.RoundingMode.
	FormatFloat(value float64, opts NumberFormattingOptions) string
}

// xtextNumberFormatter formats through a golang.org/x/text message.Printer,
// which is safe for concurrent use.
type xtextNumberFormatter struct {
	printer *message.Printer
}

var _ NumberFormatter = (*xtextNumberFormatter)(nil)

func newNumberFormatter(printer *message.Printer) *xtextNumberFormatter {
	return &xtextNumberFormatter{printer: printer}
}

func (f *xtextNumberFormatter) FormatInt(value int64, opts NumberFormattingOptions) string {
	return f.printer.Sprintf("%v", number.Decimal(value, numberOptions(opts, false)...))
}

func (f *xtextNumberFormatter) FormatUint(value uint64, opts NumberFormattingOptions) string {
	return f.printer.Sprintf("%v", number.Decimal(value, numberOptions(opts, false)...))
}

func (f *xtextNumberFormatter) FormatFloat(value float64, opts NumberFormattingOptions) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return f.printer.Sprintf("%v", number.Decimal(value))
	}
	value = roundFraction(value, opts.MaximumFractionalDigits, opts.RoundingMode)
	return f.printer.Sprintf("%v", number.Decimal(value, numberOptions(opts, true)...))
}

func (f *xtextNumberFormatter) format(value numberValue, opts NumberFormattingOptions) string {
	switch value.kind {
	case numberInt:
		return f.FormatInt(value.i, opts)
	case numberUint:
		return f.FormatUint(value.u, opts)
	default:
		return f.FormatFloat(value.f, opts)
	}
}

func numberOptions(opts NumberFormattingOptions, fractional bool) []number.Option {
	out := []number.Option{number.MinIntegerDigits(opts.MinimumIntegralDigits)}
	if opts.MaximumIntegralDigits < defaultMaxIntegralDigits {
		out = append(out, number.MaxIntegerDigits(opts.MaximumIntegralDigits))
	}
	if fractional {
		out = append(out,
			number.MinFractionDigits(opts.MinimumFractionalDigits),
			number.MaxFractionDigits(opts.MaximumFractionalDigits))
	} else if opts.MinimumFractionalDigits > 0 {
		out = append(out, number.MinFractionDigits(opts.MinimumFractionalDigits))
	}
	if !opts.UseGrouping {
		out = append(out, number.NoSeparator())
	}
	return out
}

// roundFraction rounds value to digits fractional digits. Rounding works on
// the shortest decimal form of value, so 2.0005 is a tie at three digits.
func roundFraction(value float64, digits int, mode RoundingMode) float64 {
	digits = max(digits, 0)
	intPart, frac, _ := strings.Cut(strconv.FormatFloat(math.Abs(value), 'f', -1, 64), ".")
	if len(frac) <= digits {
		return value
	}

	kept := []byte(intPart + frac[:digits])
	rest := frac[digits:]
	negative := math.Signbit(value)

	var up bool
	switch mode {
	case FromZero:
		up = true
	case ToZero:
	case ToPositiveInfinity:
		up = !negative
	case ToNegativeInfinity:
		up = negative
	default:
		// the shortest form has no trailing zeros, so "5" alone is a tie
		half := strings.Compare(rest, "5")
		switch mode {
		case HalfFromZero:
			up = half >= 0
		case HalfToZero:
			up = half > 0
		default:
			up = half > 0 || half == 0 && (kept[len(kept)-1]-'0')%2 == 1
		}
	}
	if up {
		kept = incrementDigits(kept)
	}

	point := len(kept) - digits
	text := string(kept[:point])
	if digits > 0 {
		text += "." + string(kept[point:])
	}
	rounded, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return value
	}
	if negative {
		rounded = -rounded
	}
	return rounded
}

// incrementDigits adds one to a decimal digit string, growing it on carry.
func incrementDigits(d []byte) []byte {
	for i := len(d) - 1; i >= 0; i-- {
		if d[i] < '9' {
			d[i]++
			return d
		}
		d[i] = '0'
	}
	return append([]byte{'1'}, d...)
}

type numberKind int

const (
	numberInt numberKind = iota
	numberUint
	numberFloat
)

// numberValue is the normalized form of the numbers AsNumber accepts.
type numberValue struct {
	kind numberKind
	i    int64
	u    uint64
	f    float64
}

// Interface returns the value as int64, uint64 or float64.
func (v numberValue) Interface() any {
	switch v.kind {
	case numberInt:
		return v.i
	case numberUint:
		return v.u
	default:
		return v.f
	}
}

func toNumberValue(value any) (numberValue, bool) {
	switch v := value.(type) {
	case int:
		return numberValue{kind: numberInt, i: int64(v)}, true
	case int8:
		return numberValue{kind: numberInt, i: int64(v)}, true
	case int16:
		return numberValue{kind: numberInt, i: int64(v)}, true
	case int32:
		return numberValue{kind: numberInt, i: int64(v)}, true
	case int64:
		return numberValue{kind: numberInt, i: v}, true
	case uint:
		return numberValue{kind: numberUint, u: uint64(v)}, true
	case uint8:
		return numberValue{kind: numberUint, u: uint64(v)}, true
	case uint16:
		return numberValue{kind: numberUint, u: uint64(v)}, true
	case uint32:
		return numberValue{kind: numberUint, u: uint64(v)}, true
	case uint64:
		return numberValue{kind: numberUint, u: v}, true
	case float32:
		return numberValue{kind: numberFloat, f: float64(v)}, true
	case float64:
		return numberValue{kind: numberFloat, f: v}, true
	}
	return numberValue{}, false
}

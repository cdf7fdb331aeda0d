package loctext

import (
	"fmt"
	"time"
)

// FormatOption adjusts a single formatting call.
type FormatOption func(*formatRequest)

type formatRequest struct {
	culture  CultureID
	timeZone string
}

// WithCulture formats for id instead of the current culture. The text
// remembers id and RegenerateCurrent keeps using it.
func WithCulture(id CultureID) FormatOption {
	return func(r *formatRequest) {
		r.culture = id
	}
}

// WithTimeZone renders timestamps in the named IANA zone instead of the
// timestamp's own location.
func WithTimeZone(name string) FormatOption {
	return func(r *formatRequest) {
		r.timeZone = name
	}
}

func newFormatRequest(opts []FormatOption) formatRequest {
	var req formatRequest
	for _, opt := range opts {
		if opt != nil {
			opt(&req)
		}
	}
	return req
}

// formatCulture resolves the target culture at call time.
func (r *Registry) formatCulture(req formatRequest) (*Culture, error) {
	if req.culture != "" {
		return r.Resolve(req.culture)
	}
	return r.CurrentCulture()
}

// pinned is the culture stored on the record: the canonical explicit
// culture, or empty when the call followed the current culture.
func (req formatRequest) pinned(c *Culture) CultureID {
	if req.culture == "" {
		return ""
	}
	return c.id
}

func (req formatRequest) location(t time.Time) (*time.Location, error) {
	if req.timeZone == "" {
		return t.Location(), nil
	}
	loc, err := time.LoadLocation(req.timeZone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimeZone, req.timeZone)
	}
	return loc, nil
}

// AsDate renders the date of t with the date pattern for style.
func (r *Registry) AsDate(t time.Time, style DateTimeStyle, opts ...FormatOption) (Text, error) {
	req := newFormatRequest(opts)
	c, err := r.formatCulture(req)
	if err != nil {
		return Text{}, err
	}
	loc, err := req.location(t)
	if err != nil {
		return Text{}, err
	}
	return render(DateRecord{Timestamp: t, Style: style, Location: loc, Culture: req.pinned(c)}, c), nil
}

// AsTime renders the time of day of t with the time pattern for style.
func (r *Registry) AsTime(t time.Time, style DateTimeStyle, opts ...FormatOption) (Text, error) {
	req := newFormatRequest(opts)
	c, err := r.formatCulture(req)
	if err != nil {
		return Text{}, err
	}
	loc, err := req.location(t)
	if err != nil {
		return Text{}, err
	}
	return render(TimeRecord{Timestamp: t, Style: style, Location: loc, Culture: req.pinned(c)}, c), nil
}

// AsDateTime renders t with the culture's date-time pattern.
func (r *Registry) AsDateTime(t time.Time, dateStyle, timeStyle DateTimeStyle, opts ...FormatOption) (Text, error) {
	req := newFormatRequest(opts)
	c, err := r.formatCulture(req)
	if err != nil {
		return Text{}, err
	}
	loc, err := req.location(t)
	if err != nil {
		return Text{}, err
	}
	return render(DateTimeRecord{
		Timestamp: t,
		DateStyle: dateStyle,
		TimeStyle: timeStyle,
		Location:  loc,
		Culture:   req.pinned(c),
	}, c), nil
}

// AsTimespan renders d as zero padded hours, minutes and seconds substituted
// into the culture's timespan pattern, e.g. "01:05:09".
func (r *Registry) AsTimespan(d time.Duration, opts ...FormatOption) (Text, error) {
	req := newFormatRequest(opts)
	c, err := r.formatCulture(req)
	if err != nil {
		return Text{}, err
	}
	return render(TimespanRecord{Duration: d, Culture: req.pinned(c)}, c), nil
}

// AsMemory renders a byte count, e.g. "512 B" or "1.5 kB". A nil options
// pointer uses DefaultNumberFormattingOptions.
func (r *Registry) AsMemory(bytes uint64, options *NumberFormattingOptions, opts ...FormatOption) (Text, error) {
	req := newFormatRequest(opts)
	c, err := r.formatCulture(req)
	if err != nil {
		return Text{}, err
	}
	return render(MemorySizeRecord{
		Bytes:   bytes,
		Options: resolveNumberOptions(options),
		Culture: req.pinned(c),
	}, c), nil
}

// AsNumber renders an integer or floating point value. A nil options
// pointer uses DefaultNumberFormattingOptions.
func (r *Registry) AsNumber(value any, options *NumberFormattingOptions, opts ...FormatOption) (Text, error) {
	n, ok := toNumberValue(value)
	if !ok {
		return Text{}, fmt.Errorf("%w: %T", ErrUnsupportedNumber, value)
	}
	req := newFormatRequest(opts)
	c, err := r.formatCulture(req)
	if err != nil {
		return Text{}, err
	}
	return render(NumberRecord{
		Value:   n.Interface(),
		Options: resolveNumberOptions(options),
		Culture: req.pinned(c),
	}, c), nil
}

// Localized renders the catalog string namespace.key, or source when no
// locale of the culture defines it.
func (r *Registry) Localized(namespace, key, source string, opts ...FormatOption) (Text, error) {
	req := newFormatRequest(opts)
	c, err := r.formatCulture(req)
	if err != nil {
		return Text{}, err
	}
	return render(LocalizedRecord{
		Namespace: namespace,
		Key:       key,
		Source:    source,
		Culture:   req.pinned(c),
	}, c), nil
}

// Regenerate renders t again for the culture id.
func (r *Registry) Regenerate(t Text, id CultureID) (Text, error) {
	c, err := r.Resolve(id)
	if err != nil {
		return Text{}, err
	}
	return t.Regenerate(c), nil
}

// RegenerateCurrent renders t again. Records formatted for an explicit
// culture keep it; all others follow the current culture.
func (r *Registry) RegenerateCurrent(t Text) (Text, error) {
	current, err := r.CurrentCulture()
	if err != nil {
		return Text{}, err
	}

	var resolveErr error
	out := t.regenerate(func(pinned CultureID) *Culture {
		if pinned == "" || resolveErr != nil {
			return current
		}
		c, err := r.Resolve(pinned)
		if err != nil {
			resolveErr = err
			return current
		}
		return c
	})
	if resolveErr != nil {
		return Text{}, resolveErr
	}
	return out, nil
}

// AsDate formats with the default registry.
func AsDate(t time.Time, style DateTimeStyle, opts ...FormatOption) (Text, error) {
	return std.AsDate(t, style, opts...)
}

// AsTime formats with the default registry.
func AsTime(t time.Time, style DateTimeStyle, opts ...FormatOption) (Text, error) {
	return std.AsTime(t, style, opts...)
}

// AsDateTime formats with the default registry.
func AsDateTime(t time.Time, dateStyle, timeStyle DateTimeStyle, opts ...FormatOption) (Text, error) {
	return std.AsDateTime(t, dateStyle, timeStyle, opts...)
}

// AsTimespan formats with the default registry.
func AsTimespan(d time.Duration, opts ...FormatOption) (Text, error) {
	return std.AsTimespan(d, opts...)
}

// AsMemory formats with the default registry.
func AsMemory(bytes uint64, options *NumberFormattingOptions, opts ...FormatOption) (Text, error) {
	return std.AsMemory(bytes, options, opts...)
}

// AsNumber formats with the default registry.
func AsNumber(value any, options *NumberFormattingOptions, opts ...FormatOption) (Text, error) {
	return std.AsNumber(value, options, opts...)
}

// Localized looks a string up with the default registry.
func Localized(namespace, key, source string, opts ...FormatOption) (Text, error) {
	return std.Localized(namespace, key, source, opts...)
}

// RegenerateCurrent regenerates with the default registry.
func RegenerateCurrent(t Text) (Text, error) {
	return std.RegenerateCurrent(t)
}

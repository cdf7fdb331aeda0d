package loctext

import (
	"fmt"
	"sort"
)

// LocaleMetadata describes one locale known to the culture data.
type LocaleMetadata struct {
	Code        string
	DisplayName string
	Active      bool
	Fallbacks   []string
}

// LocaleCatalog is an immutable snapshot of the locales declared by the
// culture data. Entries are kept sorted by code.
type LocaleCatalog struct {
	defaultLocale string
	entries       []LocaleMetadata
	index         map[string]int
}

// newLocaleCatalog validates definitions. When restrict is non empty only
// those locales stay active.
func newLocaleCatalog(defaultLocale string, definitions map[string]LocaleDefinition, restrict []string) (*LocaleCatalog, error) {
	if len(definitions) == 0 {
		return nil, fmt.Errorf("locale catalog: no locales defined")
	}

	c := &LocaleCatalog{index: make(map[string]int, len(definitions))}
	for code, def := range definitions {
		meta, err := metadataFor(code, def)
		if err != nil {
			return nil, err
		}
		if c.Has(meta.Code) {
			return nil, fmt.Errorf("locale catalog: duplicate locale %q", meta.Code)
		}
		c.index[meta.Code] = len(c.entries)
		c.entries = append(c.entries, meta)
	}
	c.reindex()

	if err := c.checkFallbacks(); err != nil {
		return nil, err
	}
	if err := c.restrictTo(normalizeLocales(restrict)); err != nil {
		return nil, err
	}
	if err := c.pickDefault(normalizeLocale(defaultLocale)); err != nil {
		return nil, err
	}
	return c, nil
}

func metadataFor(code string, def LocaleDefinition) (LocaleMetadata, error) {
	normalized := normalizeLocale(code)
	if normalized == "" {
		return LocaleMetadata{}, fmt.Errorf("locale catalog: empty locale code")
	}
	meta := LocaleMetadata{
		Code:        normalized,
		DisplayName: def.DisplayName,
		Active:      def.Active == nil || *def.Active,
	}
	meta.Fallbacks = dedupeFallbacks(normalized, def.Fallbacks)
	return meta, nil
}

func (c *LocaleCatalog) reindex() {
	sort.Slice(c.entries, func(i, j int) bool { return c.entries[i].Code < c.entries[j].Code })
	for i, e := range c.entries {
		c.index[e.Code] = i
	}
}

func (c *LocaleCatalog) checkFallbacks() error {
	for _, e := range c.entries {
		for _, fb := range e.Fallbacks {
			if !c.Has(fb) {
				return fmt.Errorf("locale catalog: %q references undefined fallback %q", e.Code, fb)
			}
		}
	}
	return nil
}

func (c *LocaleCatalog) restrictTo(codes []string) error {
	if len(codes) == 0 {
		return nil
	}
	keep := make(map[string]bool, len(codes))
	for _, code := range codes {
		if !c.Has(code) {
			return fmt.Errorf("locale catalog: locale %q is not defined", code)
		}
		keep[code] = true
	}
	for i := range c.entries {
		c.entries[i].Active = keep[c.entries[i].Code]
	}
	return nil
}

// pickDefault keeps the requested default when it is active, otherwise the
// first active code wins.
func (c *LocaleCatalog) pickDefault(requested string) error {
	if requested != "" {
		i, ok := c.index[requested]
		if !ok {
			return fmt.Errorf("locale catalog: default locale %q not defined", requested)
		}
		if c.entries[i].Active {
			c.defaultLocale = requested
			return nil
		}
	}
	if active := c.ActiveLocaleCodes(); len(active) > 0 {
		c.defaultLocale = active[0]
	}
	return nil
}

func (c *LocaleCatalog) lookup(locale string) (LocaleMetadata, bool) {
	if c == nil {
		return LocaleMetadata{}, false
	}
	i, ok := c.index[normalizeLocale(locale)]
	if !ok {
		return LocaleMetadata{}, false
	}
	return c.entries[i], true
}

// DefaultLocale returns the default locale, empty if nothing is active.
func (c *LocaleCatalog) DefaultLocale() string {
	if c == nil {
		return ""
	}
	return c.defaultLocale
}

// ActiveLocaleCodes returns the active locales in code order.
func (c *LocaleCatalog) ActiveLocaleCodes() []string {
	return c.codes(func(e LocaleMetadata) bool { return e.Active })
}

// AllLocaleCodes returns every locale in code order.
func (c *LocaleCatalog) AllLocaleCodes() []string {
	return c.codes(func(LocaleMetadata) bool { return true })
}

func (c *LocaleCatalog) codes(keep func(LocaleMetadata) bool) []string {
	if c == nil {
		return nil
	}
	var out []string
	for _, e := range c.entries {
		if keep(e) {
			out = append(out, e.Code)
		}
	}
	return out
}

func (c *LocaleCatalog) DisplayName(locale string) string {
	meta, _ := c.lookup(locale)
	return meta.DisplayName
}

// Fallbacks returns a copy of the declared fallback chain of locale.
func (c *LocaleCatalog) Fallbacks(locale string) []string {
	meta, _ := c.lookup(locale)
	if len(meta.Fallbacks) == 0 {
		return nil
	}
	return append([]string(nil), meta.Fallbacks...)
}

// IsActive reports whether locale may back a culture.
func (c *LocaleCatalog) IsActive(locale string) bool {
	meta, _ := c.lookup(locale)
	return meta.Active
}

func (c *LocaleCatalog) Has(locale string) bool {
	_, ok := c.lookup(locale)
	return ok
}

// Locale returns the metadata of locale.
func (c *LocaleCatalog) Locale(locale string) (LocaleMetadata, bool) {
	meta, ok := c.lookup(locale)
	if ok {
		meta.Fallbacks = c.Fallbacks(meta.Code)
	}
	return meta, ok
}

// dedupeFallbacks normalizes the chain, dropping blanks, repeats and the
// locale itself.
func dedupeFallbacks(locale string, fallbacks []string) []string {
	var out []string
	seen := map[string]bool{locale: true}
	for _, fb := range fallbacks {
		if fb = normalizeLocale(fb); fb != "" && !seen[fb] {
			seen[fb] = true
			out = append(out, fb)
		}
	}
	return out
}

package loctext

import (
	"fmt"
	"strings"

	jj "github.com/cloudfoundry/jibber_jabber"
)

// LocaleDetector reports the locale of the host system.
type LocaleDetector func() (string, error)

// Config captures how a Registry loads and selects its cultures.
type Config struct {
	DefaultCulture CultureID
	Cultures       []string
	Detector       LocaleDetector
	Resolver       *StaticFallbackResolver
	Loaders        []Loader

	cultureDataPath  string
	cultureOverrides map[string]string
}

// Option mutates Config during construction.
type Option func(*Config) error

// NewConfig builds Config via supplied options. Without options the system
// locale, as reported by the environment, becomes the current culture.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		Detector: jj.DetectIETF,
		Resolver: NewStaticFallbackResolver(),
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	cfg.Cultures = normalizeLocales(cfg.Cultures)
	return cfg, nil
}

// WithDefaultCulture selects the initial current culture. It takes precedence
// over the detected system locale and must resolve.
func WithDefaultCulture(locale string) Option {
	return func(c *Config) error {
		id, err := ParseCultureID(locale)
		if err != nil {
			return err
		}
		c.DefaultCulture = id
		return nil
	}
}

// WithCultures restricts the active locales of the culture data.
func WithCultures(locales ...string) Option {
	return func(c *Config) error {
		c.Cultures = append(c.Cultures, locales...)
		return nil
	}
}

// WithLocaleDetector replaces the system locale detection.
func WithLocaleDetector(detector LocaleDetector) Option {
	return func(c *Config) error {
		c.Detector = detector
		return nil
	}
}

// WithoutSystemLocale skips system locale detection, so the catalog default
// becomes the current culture unless WithDefaultCulture is given.
func WithoutSystemLocale() Option {
	return WithLocaleDetector(nil)
}

// WithFallback sets an explicit fallback chain used for formatting rules and
// localized strings of locale. Identifiers are canonicalized like culture
// ids, so "EN_us" configures "en-US".
func WithFallback(locale string, fallbacks ...string) Option {
	return func(c *Config) error {
		if strings.TrimSpace(locale) == "" {
			return nil
		}
		id, err := ParseCultureID(locale)
		if err != nil {
			return err
		}
		chain := make([]string, 0, len(fallbacks))
		for _, fallback := range fallbacks {
			fid, err := ParseCultureID(fallback)
			if err != nil {
				return fmt.Errorf("fallback of %s: %w", id, err)
			}
			chain = append(chain, string(fid))
		}
		c.Resolver.Set(string(id), chain...)
		return nil
	}
}

// WithCatalogFiles loads localized strings from .json or .yaml files, on top
// of the bundled catalog.
func WithCatalogFiles(paths ...string) Option {
	return func(c *Config) error {
		if len(paths) == 0 {
			return nil
		}
		c.Loaders = append(c.Loaders, NewFileLoader(paths...))
		return nil
	}
}

// WithCatalogLoader adds a loader for localized strings.
func WithCatalogLoader(loader Loader) Option {
	return func(c *Config) error {
		if loader != nil {
			c.Loaders = append(c.Loaders, loader)
		}
		return nil
	}
}

// WithCultureData merges a culture data file over the bundled data.
func WithCultureData(path string) Option {
	return func(c *Config) error {
		c.cultureDataPath = path
		return nil
	}
}

// WithCultureOverride merges the entries for locale from path.
func WithCultureOverride(locale, path string) Option {
	return func(c *Config) error {
		if c.cultureOverrides == nil {
			c.cultureOverrides = make(map[string]string)
		}
		c.cultureOverrides[locale] = path
		return nil
	}
}

func (cfg *Config) newCultureDataLoader() *CultureDataLoader {
	loader := NewCultureDataLoader(cfg.cultureDataPath)
	for locale, path := range cfg.cultureOverrides {
		loader.AddOverride(locale, path)
	}
	return loader
}

// applyCatalogFallbacks seeds the resolver with the catalog chains that were
// not configured explicitly.
func (cfg *Config) applyCatalogFallbacks(catalog *LocaleCatalog) {
	for _, locale := range catalog.AllLocaleCodes() {
		if chain := cfg.Resolver.Resolve(locale); len(chain) > 0 {
			continue
		}
		if fallbacks := catalog.Fallbacks(locale); len(fallbacks) > 0 {
			cfg.Resolver.Set(locale, fallbacks...)
		}
	}
}

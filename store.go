package loctext

import (
	"sort"
)

// Catalogs maps a locale to its localized strings, keyed "Namespace.Key".
type Catalogs map[string]map[string]string

// Store exposes read only access to localized strings.
type Store interface {
	// Get returns the string for locale/key and ok=false if missing
	Get(locale, key string) (string, bool)
	// Locales returns the list of locales known to the store
	Locales() []string
}

// Loader retrieves the catalogs used to seed a Store.
type Loader interface {
	Load() (Catalogs, error)
}

// LoaderFunc adapts a bare function to the Loader interface.
type LoaderFunc func() (Catalogs, error)

// Load implements Loader for LoaderFunc.
func (fn LoaderFunc) Load() (Catalogs, error) {
	return fn()
}

// StaticStore is an in memory store, read only after construction.
type StaticStore struct {
	catalogs Catalogs
	locales  []string
}

var _ Store = &StaticStore{}

// NewStaticStore builds an immutable snapshot of data.
func NewStaticStore(data Catalogs) *StaticStore {
	catalogs := make(Catalogs, len(data))
	locales := make([]string, 0, len(data))

	for locale, entries := range data {
		locale = normalizeLocale(locale)
		if locale == "" || entries == nil {
			continue
		}
		clone, exists := catalogs[locale]
		if !exists {
			clone = make(map[string]string, len(entries))
			catalogs[locale] = clone
			locales = append(locales, locale)
		}
		for key, value := range entries {
			clone[key] = value
		}
	}

	// make locales deterministic
	sort.Strings(locales)

	return &StaticStore{
		catalogs: catalogs,
		locales:  locales,
	}
}

// NewStaticStoreFromLoaders hydrates a StaticStore from loaders, later
// loaders overriding earlier ones key by key.
func NewStaticStoreFromLoaders(loaders ...Loader) (*StaticStore, error) {
	merged := make(Catalogs)
	for _, loader := range loaders {
		if loader == nil {
			continue
		}
		catalogs, err := loader.Load()
		if err != nil {
			return nil, err
		}
		mergeCatalogs(merged, catalogs)
	}
	return NewStaticStore(merged), nil
}

// Get returns the string for locale/key.
func (s *StaticStore) Get(locale, key string) (string, bool) {
	if s == nil {
		return "", false
	}
	entries, ok := s.catalogs[locale]
	if !ok {
		return "", false
	}
	value, ok := entries[key]
	return value, ok
}

// Locales returns a slice with all locale codes.
func (s *StaticStore) Locales() []string {
	if s == nil || len(s.locales) == 0 {
		return nil
	}
	out := make([]string, len(s.locales))
	copy(out, s.locales)
	return out
}

func mergeCatalogs(dst, src Catalogs) {
	for locale, entries := range src {
		locale = normalizeLocale(locale)
		target := dst[locale]
		if target == nil {
			target = make(map[string]string, len(entries))
			dst[locale] = target
		}
		for key, value := range entries {
			target[key] = value
		}
	}
}

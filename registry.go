package loctext

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/emirpasic/gods/maps/treemap"
)

// Registry is the table of loaded cultures plus the current culture
// selection. Reads load an immutable snapshot and never block; resolving a
// new culture or changing the selection publishes a new snapshot.
type Registry struct {
	mu    sync.Mutex // serializes writers
	state atomic.Pointer[snapshot]
}

// snapshot is never modified after it has been published.
type snapshot struct {
	source   *cultureSource
	current  *Culture
	cultures *treemap.Map // canonical id -> *Culture
}

// cultureSource is the locale data a registry was initialized with.
type cultureSource struct {
	data     *CultureData
	catalog  *LocaleCatalog
	resolver FallbackResolver
	strings  Store
}

// NewRegistry returns an uninitialized registry. Every operation except
// Initialize fails with ErrNotInitialized until Initialize succeeds.
func NewRegistry() *Registry {
	return &Registry{}
}

// Initialize loads the locale data and selects the initial current culture:
// the configured default, else the detected system locale, else the default
// locale of the culture data. It may only succeed once.
func (r *Registry) Initialize(opts ...Option) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state.Load() != nil {
		return ErrAlreadyInitialized
	}

	cfg, err := NewConfig(opts...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInitialization, err)
	}

	source, err := loadCultureSource(cfg)
	if err != nil {
		tracer().Errorf("cannot load locale data: %v", err)
		return fmt.Errorf("%w: %w", ErrInitialization, err)
	}

	current, err := source.initialCulture(cfg)
	if err != nil {
		tracer().Errorf("cannot select initial culture: %v", err)
		return fmt.Errorf("%w: %w", ErrInitialization, err)
	}

	empty := &snapshot{source: source, cultures: treemap.NewWithStringComparator()}
	r.state.Store(empty.with(current, current))
	return nil
}

// IsInitialized reports whether Initialize has succeeded.
func (r *Registry) IsInitialized() bool {
	return r.state.Load() != nil
}

// Resolve returns the culture for id, building and caching it on first use.
// Identifiers are canonicalized first, so "en_US" and "en-US" are the same
// culture. It fails with ErrUnknownLocale when no active locale backs id.
func (r *Registry) Resolve(id CultureID) (*Culture, error) {
	snap := r.state.Load()
	if snap == nil {
		return nil, ErrNotInitialized
	}
	key, err := ParseCultureID(string(id))
	if err != nil {
		return nil, err
	}
	if c, ok := snap.lookup(key); ok {
		return c, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolveLocked(key)
}

func (r *Registry) resolveLocked(key CultureID) (*Culture, error) {
	snap := r.state.Load()
	if c, ok := snap.lookup(key); ok {
		return c, nil
	}
	c, err := snap.source.build(string(key))
	if err != nil {
		return nil, err
	}
	r.state.Store(snap.with(c, snap.current))
	return c, nil
}

// CurrentCulture returns the process wide culture selection.
func (r *Registry) CurrentCulture() (*Culture, error) {
	snap := r.state.Load()
	if snap == nil {
		return nil, ErrNotInitialized
	}
	return snap.current, nil
}

// MustCurrentCulture is CurrentCulture for callers that treat a missing
// Initialize as a programming error. It panics with ErrNotInitialized.
func (r *Registry) MustCurrentCulture() *Culture {
	c, err := r.CurrentCulture()
	if err != nil {
		panic(err)
	}
	return c
}

// CompareTo orders the display strings of a and b with the collator of the
// current culture.
func (r *Registry) CompareTo(a, b Text, level ComparisonLevel) (CompareResult, error) {
	c, err := r.CurrentCulture()
	if err != nil {
		return Equal, err
	}
	return c.Compare(a.display, b.display, level), nil
}

// SetCurrentCulture atomically selects id as the current culture. Texts
// already rendered keep their strings until they are regenerated.
func (r *Registry) SetCurrentCulture(id CultureID) error {
	if r.state.Load() == nil {
		return ErrNotInitialized
	}
	key, err := ParseCultureID(string(id))
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.resolveLocked(key)
	if err != nil {
		return err
	}
	snap := r.state.Load()
	if snap.current == c {
		return nil
	}
	r.state.Store(snap.with(nil, c))
	tracer().Debugf("current culture is now %s", c.id)
	return nil
}

// LoadedCultures lists the identifiers of the cultures built so far, sorted.
func (r *Registry) LoadedCultures() []CultureID {
	snap := r.state.Load()
	if snap == nil {
		return nil
	}
	keys := snap.cultures.Keys()
	out := make([]CultureID, 0, len(keys))
	for _, key := range keys {
		out = append(out, CultureID(key.(string)))
	}
	return out
}

// AvailableCultures lists the active locales of the culture data, sorted.
func (r *Registry) AvailableCultures() []string {
	snap := r.state.Load()
	if snap == nil {
		return nil
	}
	return snap.source.catalog.ActiveLocaleCodes()
}

// Catalog exposes the locale metadata the registry was initialized with.
func (r *Registry) Catalog() *LocaleCatalog {
	snap := r.state.Load()
	if snap == nil {
		return nil
	}
	return snap.source.catalog
}

func (s *snapshot) lookup(id CultureID) (*Culture, bool) {
	value, ok := s.cultures.Get(string(id))
	if !ok {
		return nil, false
	}
	return value.(*Culture), true
}

// with copies the snapshot, adding c when non nil and selecting current.
func (s *snapshot) with(c, current *Culture) *snapshot {
	cultures := treemap.NewWithStringComparator()
	it := s.cultures.Iterator()
	for it.Next() {
		cultures.Put(it.Key(), it.Value())
	}
	if c != nil {
		cultures.Put(string(c.id), c)
	}
	return &snapshot{source: s.source, current: current, cultures: cultures}
}

func loadCultureSource(cfg *Config) (*cultureSource, error) {
	data, err := cfg.newCultureDataLoader().Load()
	if err != nil {
		return nil, err
	}

	catalog, err := newLocaleCatalog(data.DefaultLocale, data.Locales, cfg.Cultures)
	if err != nil {
		return nil, err
	}
	cfg.applyCatalogFallbacks(catalog)

	loaders := append([]Loader{embeddedLoader()}, cfg.Loaders...)
	store, err := NewStaticStoreFromLoaders(loaders...)
	if err != nil {
		return nil, err
	}

	return &cultureSource{
		data:     data,
		catalog:  catalog,
		resolver: cfg.Resolver,
		strings:  store,
	}, nil
}

// build constructs the culture for locale. The culture is backed by the
// active catalog locales on its resolution chain.
func (s *cultureSource) build(locale string) (*Culture, error) {
	tag, err := parseLocaleTag(locale)
	if err != nil {
		return nil, err
	}

	chain := resolutionChain(s.resolver, tag.String())
	var backing []string
	for _, candidate := range chain {
		if s.catalog.IsActive(candidate) {
			backing = append(backing, candidate)
		}
	}
	if len(backing) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
	}

	c := newCulture(tag, s.catalog.DisplayName(backing[0]), chain, s.data.rulesFor(backing), s.strings)
	tracer().Debugf("built culture %s from %v", c.id, backing)
	return c, nil
}

func (s *cultureSource) initialCulture(cfg *Config) (*Culture, error) {
	if cfg.DefaultCulture != "" {
		c, err := s.build(string(cfg.DefaultCulture))
		if err != nil {
			return nil, fmt.Errorf("default culture: %w", err)
		}
		return c, nil
	}

	if cfg.Detector != nil {
		locale, err := cfg.Detector()
		if err != nil {
			tracer().Errorf("cannot detect system locale: %v", err)
		} else if c, err := s.build(locale); err != nil {
			tracer().Infof("system locale %q is not available: %v", locale, err)
		} else {
			tracer().Infof("detected system locale %s", c.id)
			return c, nil
		}
	}

	c, err := s.build(s.catalog.DefaultLocale())
	if err != nil {
		return nil, fmt.Errorf("default locale: %w", err)
	}
	tracer().Infof("using default culture %s", c.id)
	return c, nil
}

var std = NewRegistry()

// Default returns the process wide registry used by the package level
// functions.
func Default() *Registry {
	return std
}

// Initialize initializes the default registry.
func Initialize(opts ...Option) error {
	return std.Initialize(opts...)
}

// Resolve resolves id with the default registry.
func Resolve(id CultureID) (*Culture, error) {
	return std.Resolve(id)
}

// CurrentCulture returns the current culture of the default registry.
func CurrentCulture() (*Culture, error) {
	return std.CurrentCulture()
}

// SetCurrentCulture changes the current culture of the default registry.
func SetCurrentCulture(id CultureID) error {
	return std.SetCurrentCulture(id)
}

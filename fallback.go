package loctext

import "sync"

// FallbackResolver resolves the ordered fallback chain of a locale.
type FallbackResolver interface {
	Resolve(locale string) []string
}

// StaticFallbackResolver keeps explicit fallback chains per locale.
type StaticFallbackResolver struct {
	mu     sync.RWMutex
	chains map[string][]string
}

var _ FallbackResolver = (*StaticFallbackResolver)(nil)

func NewStaticFallbackResolver() *StaticFallbackResolver {
	return &StaticFallbackResolver{chains: make(map[string][]string)}
}

// Set replaces the fallback chain for locale. An empty chain removes it.
func (s *StaticFallbackResolver) Set(locale string, fallbacks ...string) {
	if s == nil {
		return
	}
	locale = normalizeLocale(locale)
	if locale == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chains == nil {
		s.chains = make(map[string][]string)
	}
	if len(fallbacks) == 0 {
		delete(s.chains, locale)
		return
	}
	s.chains[locale] = dedupeFallbacks(locale, fallbacks)
}

func (s *StaticFallbackResolver) Resolve(locale string) []string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	chain, ok := s.chains[normalizeLocale(locale)]
	if !ok || len(chain) == 0 {
		return nil
	}
	out := make([]string, len(chain))
	copy(out, chain)
	return out
}

// resolutionChain is locale itself, followed by its explicit fallbacks and
// finally its CLDR parents.
func resolutionChain(resolver FallbackResolver, locale string) []string {
	chain := []string{locale}
	if resolver != nil {
		chain = appendUnique(chain, resolver.Resolve(locale)...)
	}
	return appendUnique(chain, localeParentChain(locale)...)
}

package loctext

import (
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// parentLocale returns the CLDR parent of locale, or "" at the root.
// Identifiers x/text cannot parse lose their last subtag instead.
func parentLocale(locale string) string {
	if locale == "" {
		return ""
	}
	tag, err := language.Parse(locale)
	if err != nil {
		if idx := strings.LastIndexByte(locale, '-'); idx > 0 {
			return locale[:idx]
		}
		return ""
	}
	if parent := tag.Parent(); parent != language.Und {
		return parent.String()
	}
	return ""
}

// localeParentChain lists the CLDR parents of locale, closest first
// ("es-MX" yields "es-419", "es").
func localeParentChain(locale string) []string {
	var chain []string
	for p := parentLocale(locale); p != "" && p != locale && !slices.Contains(chain, p); p = parentLocale(p) {
		chain = append(chain, p)
	}
	return chain
}

// normalizeLocale trims the identifier and replaces underscores with hyphens.
func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
}

// normalizeLocales normalizes, dedupes and sorts a locale list.
func normalizeLocales(locales []string) []string {
	var out []string
	for _, l := range locales {
		if l = normalizeLocale(l); l != "" {
			out = append(out, l)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// appendUnique appends the non empty values of src missing from dst.
func appendUnique(dst []string, src ...string) []string {
	for _, v := range src {
		if v != "" && !slices.Contains(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}

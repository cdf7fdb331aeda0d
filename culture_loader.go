package loctext

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

//go:embed data/culture_data.json
var defaultCultureDataJSON []byte

// CultureDataLoader loads culture data from the embedded defaults, an optional
// user file and per locale override files.
type CultureDataLoader struct {
	defaultPath string
	overrides   map[string]string
}

// NewCultureDataLoader creates a loader. An empty path loads the embedded data only.
func NewCultureDataLoader(defaultPath string) *CultureDataLoader {
	return &CultureDataLoader{
		defaultPath: defaultPath,
		overrides:   make(map[string]string),
	}
}

// AddOverride adds a locale specific override file.
func (l *CultureDataLoader) AddOverride(locale, path string) {
	l.overrides[normalizeLocale(locale)] = path
}

// Load reads and merges the configured sources. User data takes precedence
// over the embedded defaults, overrides take precedence over both.
func (l *CultureDataLoader) Load() (*CultureData, error) {
	var cultureData CultureData
	if err := json.Unmarshal(defaultCultureDataJSON, &cultureData); err != nil {
		return nil, fmt.Errorf("parse default culture data: %w", err)
	}

	if l.defaultPath != "" {
		userData, err := readCultureData(l.defaultPath)
		if err != nil {
			return nil, fmt.Errorf("load culture data: %w", err)
		}
		mergeCultureData(&cultureData, userData, "")
	}

	locales := make([]string, 0, len(l.overrides))
	for locale := range l.overrides {
		locales = append(locales, locale)
	}
	sort.Strings(locales)

	for _, locale := range locales {
		override, err := readCultureData(l.overrides[locale])
		if err != nil {
			return nil, fmt.Errorf("load culture override for %q: %w", locale, err)
		}
		mergeCultureData(&cultureData, override, locale)
	}

	return &cultureData, nil
}

func readCultureData(path string) (*CultureData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var parsed CultureData
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &parsed, nil
}

// mergeCultureData merges source into dest. When only is set, the merge is
// restricted to that locale.
func mergeCultureData(dest, source *CultureData, only string) {
	if source == nil {
		return
	}

	if only == "" && source.DefaultLocale != "" {
		dest.DefaultLocale = source.DefaultLocale
	}

	if source.Locales != nil {
		if dest.Locales == nil {
			dest.Locales = make(map[string]LocaleDefinition)
		}
		for k, v := range source.Locales {
			k = normalizeLocale(k)
			if only != "" && k != only {
				continue
			}
			dest.Locales[k] = v
		}
	}

	if source.FormattingRules != nil {
		if dest.FormattingRules == nil {
			dest.FormattingRules = make(map[string]FormattingRules)
		}
		for k, v := range source.FormattingRules {
			k = normalizeLocale(k)
			if only != "" && k != only {
				continue
			}
			// field level merge keeps the defaults for anything the file omits
			dest.FormattingRules[k] = v.inherit(dest.FormattingRules[k])
		}
	}
}

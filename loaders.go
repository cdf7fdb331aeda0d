package loctext

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/strings.yaml
var defaultCatalogYAML []byte

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// FileLoader reads localized string catalogs from .json or .yaml files.
// Both formats hold a locale -> key -> string mapping.
type FileLoader struct {
	paths []string
}

func NewFileLoader(paths ...string) *FileLoader {
	return &FileLoader{paths: append([]string(nil), paths...)}
}

func (l *FileLoader) Load() (Catalogs, error) {
	if l == nil || len(l.paths) == 0 {
		return nil, errors.New("loctext: no catalog paths configured")
	}

	catalogs := make(Catalogs)
	for _, path := range l.paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("loctext: read %s: %w", path, err)
		}

		src, err := decodeCatalogFile(path, data)
		if err != nil {
			return nil, fmt.Errorf("loctext: decode %s: %w", path, err)
		}
		mergeCatalogs(catalogs, src)
	}
	return catalogs, nil
}

// embeddedLoader returns the catalog bundled with the package.
func embeddedLoader() Loader {
	return LoaderFunc(func() (Catalogs, error) {
		catalogs, err := decodeCatalogYAML("data/strings.yaml", defaultCatalogYAML)
		if err != nil {
			return nil, fmt.Errorf("loctext: decode embedded catalog: %w", err)
		}
		return catalogs, nil
	})
}

func decodeCatalogFile(path string, data []byte) (Catalogs, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".json":
		return decodeCatalogJSON(path, data)
	case ".yaml", ".yml":
		return decodeCatalogYAML(path, data)
	default:
		return nil, fmt.Errorf("unsupported extension %s", ext)
	}
}

func decodeCatalogJSON(path string, data []byte) (Catalogs, error) {
	var raw map[string]map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return validateCatalogs(path, raw)
}

func decodeCatalogYAML(path string, data []byte) (Catalogs, error) {
	var raw map[string]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("yaml parse error: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("empty catalog yaml")
	}
	return validateCatalogs(path, raw)
}

func validateCatalogs(path string, raw map[string]map[string]string) (Catalogs, error) {
	catalogs := make(Catalogs, len(raw))
	for locale, entries := range raw {
		normalized := normalizeLocale(locale)
		if normalized == "" {
			return nil, fmt.Errorf("empty locale in %s", path)
		}
		catalog := make(map[string]string, len(entries))
		for key, value := range entries {
			if key == "" {
				return nil, fmt.Errorf("empty key in %s/%s", locale, path)
			}
			if !strings.Contains(key, ".") {
				return nil, fmt.Errorf("%s/%s: key must be namespace qualified", locale, key)
			}
			catalog[key] = value
		}
		catalogs[normalized] = catalog
	}
	return catalogs, nil
}

// PatternArguments lists the distinct placeholder names of pattern, sorted.
func PatternArguments(pattern string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(pattern, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	args := make([]string, 0, len(matches))
	for _, match := range matches {
		name := match[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		args = append(args, name)
	}

	sort.Strings(args)
	return args
}

// substitute replaces each {Name} of pattern with its value. Unknown names
// are left untouched.
func substitute(pattern string, values map[string]string) string {
	if len(values) == 0 || !strings.Contains(pattern, "{") {
		return pattern
	}
	return placeholderPattern.ReplaceAllStringFunc(pattern, func(match string) string {
		if value, ok := values[match[1:len(match)-1]]; ok {
			return value
		}
		return match
	})
}

func catalogKey(namespace, key string) string {
	return namespace + "." + key
}

package loctext

import (
	"errors"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestRegistryNotInitialized(t *testing.T) {
	r := NewRegistry()

	if r.IsInitialized() {
		t.Fatal("fresh registry reports initialized")
	}
	if _, err := r.CurrentCulture(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("CurrentCulture error = %v", err)
	}
	if _, err := r.Resolve("en"); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Resolve error = %v", err)
	}
	if err := r.SetCurrentCulture("en"); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("SetCurrentCulture error = %v", err)
	}
	if _, err := r.AsTimespan(0); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("AsTimespan error = %v", err)
	}
	if r.LoadedCultures() != nil || r.AvailableCultures() != nil || r.Catalog() != nil {
		t.Fatal("uninitialized registry exposes state")
	}
	expectPanic(t, "MustCurrentCulture", func() { r.MustCurrentCulture() })
}

func TestRegistryInitializeOnce(t *testing.T) {
	r := newTestRegistry(t)

	if !r.IsInitialized() {
		t.Fatal("registry not initialized")
	}
	if err := r.Initialize(); !errors.Is(err, ErrAlreadyInitialized) {
		t.Fatalf("second Initialize error = %v", err)
	}
}

func TestRegistryInitializeFailures(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{name: "unknown default culture", opts: []Option{WithoutSystemLocale(), WithDefaultCulture("zu")}},
		{name: "bad culture data", opts: []Option{WithCultureData(filepath.Join("testdata", "broken.json"))}},
		{name: "bad catalog", opts: []Option{WithCatalogFiles(filepath.Join("testdata", "unqualified.yaml"))}},
		{name: "undefined culture restriction", opts: []Option{WithCultures("xx")}},
		{name: "invalid option", opts: []Option{WithDefaultCulture("")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			teardown := gotestingadapter.QuickConfig(t, "loctext")
			defer teardown()

			r := NewRegistry()
			err := r.Initialize(tt.opts...)
			if !errors.Is(err, ErrInitialization) {
				t.Fatalf("Initialize error = %v, want ErrInitialization", err)
			}
			if r.IsInitialized() {
				t.Fatal("failed Initialize left the registry initialized")
			}
			// a failed attempt does not count
			if err := r.Initialize(WithoutSystemLocale()); err != nil {
				t.Fatalf("retry: %v", err)
			}
		})
	}
}

func TestRegistryInitialCulture(t *testing.T) {
	tests := []struct {
		name     string
		detector LocaleDetector
		want     CultureID
	}{
		{name: "detected", detector: func() (string, error) { return "de_AT", nil }, want: "de-AT"},
		{name: "detected unknown", detector: func() (string, error) { return "zu", nil }, want: "en"},
		{name: "detection error", detector: func() (string, error) { return "", errors.New("no locale") }, want: "en"},
		{name: "garbage", detector: func() (string, error) { return "C", nil }, want: "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			teardown := gotestingadapter.QuickConfig(t, "loctext")
			defer teardown()

			r := NewRegistry()
			if err := r.Initialize(WithLocaleDetector(tt.detector)); err != nil {
				t.Fatalf("Initialize: %v", err)
			}
			c, err := r.CurrentCulture()
			if err != nil {
				t.Fatalf("CurrentCulture: %v", err)
			}
			if c.ID() != tt.want {
				t.Fatalf("current culture = %q, want %q", c.ID(), tt.want)
			}
		})
	}
}

func TestRegistryDefaultCultureBeatsDetector(t *testing.T) {
	r := newTestRegistry(t,
		WithLocaleDetector(func() (string, error) { return "ja", nil }),
		WithDefaultCulture("fr"),
	)
	if c, _ := r.CurrentCulture(); c.ID() != "fr" {
		t.Fatalf("current culture = %q", c.ID())
	}
}

func TestRegistryResolve(t *testing.T) {
	r := newTestRegistry(t)

	a := mustResolve(t, r, "en_US")
	b := mustResolve(t, r, "en-US")
	if a != b {
		t.Fatal("equivalent identifiers resolved to different cultures")
	}
	if a.ID() != "en-US" {
		t.Fatalf("ID = %q", a.ID())
	}

	for _, id := range []CultureID{"zu", "", "!!"} {
		if _, err := r.Resolve(id); !errors.Is(err, ErrUnknownLocale) {
			t.Fatalf("Resolve(%q) error = %v", id, err)
		}
	}

	mustResolve(t, r, "de")
	want := []CultureID{"de", "en", "en-US"}
	if got := r.LoadedCultures(); !reflect.DeepEqual(got, want) {
		t.Fatalf("LoadedCultures = %v, want %v", got, want)
	}
}

func TestRegistryRestrictedCultures(t *testing.T) {
	r := newTestRegistry(t, WithCultures("en", "fr"))

	if got := r.AvailableCultures(); !reflect.DeepEqual(got, []string{"en", "fr"}) {
		t.Fatalf("AvailableCultures = %v", got)
	}
	if _, err := r.Resolve("de"); !errors.Is(err, ErrUnknownLocale) {
		t.Fatalf("Resolve(de) error = %v", err)
	}
	if err := r.SetCurrentCulture("de"); !errors.Is(err, ErrUnknownLocale) {
		t.Fatalf("SetCurrentCulture(de) error = %v", err)
	}
	if c, _ := r.CurrentCulture(); c.ID() != "en" {
		t.Fatalf("failed switch changed the current culture to %q", c.ID())
	}
	if r.Catalog().IsActive("de") {
		t.Fatal("catalog reports de active")
	}
}

func TestRegistrySetCurrentCulture(t *testing.T) {
	r := newTestRegistry(t)

	if err := r.SetCurrentCulture("fr_CA"); err != nil {
		t.Fatalf("SetCurrentCulture: %v", err)
	}
	c := r.MustCurrentCulture()
	if c.ID() != "fr-CA" {
		t.Fatalf("current = %q", c.ID())
	}
	if resolved := mustResolve(t, r, "fr-CA"); resolved != c {
		t.Fatal("current culture is not the cached instance")
	}
}

func TestRegistryCultureData(t *testing.T) {
	r := newTestRegistry(t,
		WithCultureData(filepath.Join("testdata", "culture_data.json")),
		WithCultureOverride("en", filepath.Join("testdata", "en_override.json")),
	)

	pt := mustResolve(t, r, "pt-BR")
	if pt.DisplayName() != "Português" {
		t.Fatalf("pt-BR display name = %q", pt.DisplayName())
	}
	if got, _ := r.AsDate(sampleTime, StyleLong, WithCulture("pt-BR")); got.String() != "5 de março de 2024" {
		t.Fatalf("pt-BR long date = %q", got)
	}
	if got, _ := r.AsDate(sampleTime, StyleMedium); got.String() != "5 Mar 2024" {
		t.Fatalf("overridden en medium date = %q", got)
	}
}

func TestRegistryFallbackChain(t *testing.T) {
	spellings := map[string][2]string{
		"canonical":  {"en-AU", "en-GB"},
		"mixed case": {"EN_au", "en_gb"},
	}

	for name, spelling := range spellings {
		t.Run(name, func(t *testing.T) {
			r := newTestRegistry(t, WithFallback(spelling[0], spelling[1]))

			got, err := r.AsDate(sampleTime, StyleShort, WithCulture("en-AU"))
			if err != nil {
				t.Fatalf("AsDate: %v", err)
			}
			if got.String() != "05/03/2024" {
				t.Fatalf("en-AU short date = %q", got)
			}
			if c := mustResolve(t, r, "en-AU"); c.DisplayName() != "English (United Kingdom)" {
				t.Fatalf("en-AU display name = %q", c.DisplayName())
			}
		})
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := newTestRegistry(t)
	ids := []CultureID{"en", "de", "fr", "ja", "es-MX"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				id := ids[(i+j)%len(ids)]
				if i%2 == 0 {
					if err := r.SetCurrentCulture(id); err != nil {
						t.Errorf("SetCurrentCulture(%q): %v", id, err)
						return
					}
					continue
				}
				c, err := r.CurrentCulture()
				if err != nil || c == nil {
					t.Errorf("CurrentCulture: %v", err)
					return
				}
				if _, err := r.AsMemory(1536, nil); err != nil {
					t.Errorf("AsMemory: %v", err)
					return
				}
				c.Compare("a", "B", Tertiary)
			}
		}(i)
	}
	wg.Wait()

	if got := r.LoadedCultures(); len(got) != len(ids) {
		t.Fatalf("LoadedCultures = %v", got)
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := newTestRegistry(t)
	useDefaultRegistry(t, r)

	if Default() != r {
		t.Fatal("Default() is not the installed registry")
	}
	if err := Initialize(); !errors.Is(err, ErrAlreadyInitialized) {
		t.Fatalf("Initialize error = %v", err)
	}
	if err := SetCurrentCulture("de"); err != nil {
		t.Fatalf("SetCurrentCulture: %v", err)
	}
	c, err := CurrentCulture()
	if err != nil || c.ID() != "de" {
		t.Fatalf("CurrentCulture = %v, %v", c, err)
	}
	if _, err := Resolve("ja"); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
}

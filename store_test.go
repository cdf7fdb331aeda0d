package loctext

import (
	"errors"
	"testing"
)

func TestStaticStoreGet(t *testing.T) {
	store := NewStaticStore(Catalogs{
		"en":    {"Greeting.Hello": "Hello"},
		"es_MX": {"Greeting.Hello": "Hola"},
	})

	tests := []struct {
		locale string
		key    string
		want   string
		ok     bool
	}{
		{locale: "en", key: "Greeting.Hello", want: "Hello", ok: true},
		{locale: "es-MX", key: "Greeting.Hello", want: "Hola", ok: true},
		{locale: "en", key: "Greeting.Missing", want: "", ok: false},
		{locale: "fr", key: "Greeting.Hello", want: "", ok: false},
	}

	for _, tc := range tests {
		got, ok := store.Get(tc.locale, tc.key)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("Get(%q,%q) = %q,%v want %q,%v", tc.locale, tc.key, got, ok, tc.want, tc.ok)
		}
	}

	locales := store.Locales()
	if len(locales) != 2 || locales[0] != "en" || locales[1] != "es-MX" {
		t.Fatalf("Locales() = %v", locales)
	}
}

func TestNewStaticStoreCopiesInput(t *testing.T) {
	src := Catalogs{"en": {"Greeting.Hello": "Hello"}}
	store := NewStaticStore(src)

	src["en"]["Greeting.Hello"] = "Changed"
	src["en"]["Greeting.New"] = "New"

	if got, _ := store.Get("en", "Greeting.Hello"); got != "Hello" {
		t.Fatalf("store changed with its input: %q", got)
	}
	if _, ok := store.Get("en", "Greeting.New"); ok {
		t.Fatal("store picked up a key added after construction")
	}
}

func TestNewStaticStoreFromLoaders(t *testing.T) {
	first := LoaderFunc(func() (Catalogs, error) {
		return Catalogs{"en": {"A.one": "1", "A.two": "2"}}, nil
	})
	second := LoaderFunc(func() (Catalogs, error) {
		return Catalogs{"en": {"A.two": "two"}, "de": {"A.one": "eins"}}, nil
	})

	store, err := NewStaticStoreFromLoaders(first, nil, second)
	if err != nil {
		t.Fatalf("NewStaticStoreFromLoaders: %v", err)
	}

	checks := map[[2]string]string{
		{"en", "A.one"}: "1",
		{"en", "A.two"}: "two",
		{"de", "A.one"}: "eins",
	}
	for k, want := range checks {
		if got, ok := store.Get(k[0], k[1]); !ok || got != want {
			t.Fatalf("Get(%q,%q) = %q,%v want %q", k[0], k[1], got, ok, want)
		}
	}

	boom := errors.New("boom")
	failing := LoaderFunc(func() (Catalogs, error) { return nil, boom })
	if _, err := NewStaticStoreFromLoaders(first, failing); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
}

func TestNilStaticStore(t *testing.T) {
	var store *StaticStore
	if _, ok := store.Get("en", "A.one"); ok {
		t.Fatal("nil store reported a hit")
	}
	if store.Locales() != nil {
		t.Fatal("nil store reported locales")
	}
}

package loctext

import (
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// sampleTime is Tuesday, 5 March 2024.
var sampleTime = time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

// newTestRegistry returns an initialized registry with "en" as current
// culture, independent of the host locale. Trace output goes to t.
func newTestRegistry(t *testing.T, opts ...Option) *Registry {
	t.Helper()
	teardown := gotestingadapter.QuickConfig(t, "loctext")
	t.Cleanup(teardown)

	base := []Option{WithoutSystemLocale(), WithDefaultCulture("en")}
	r := NewRegistry()
	if err := r.Initialize(append(base, opts...)...); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return r
}

// useDefaultRegistry installs r as the package registry for the test.
func useDefaultRegistry(t *testing.T, r *Registry) {
	t.Helper()
	previous := std
	std = r
	t.Cleanup(func() { std = previous })
}

func mustResolve(t *testing.T, r *Registry, id CultureID) *Culture {
	t.Helper()
	c, err := r.Resolve(id)
	if err != nil {
		t.Fatalf("Resolve(%q): %v", id, err)
	}
	return c
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected panic", name)
		}
	}()
	fn()
}

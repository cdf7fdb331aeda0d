/*
Package loctext implements localized text values that remember how they were
produced.

A Text caches its display string together with a Record describing the
formatter call behind it: a date, a duration, a byte count, a catalog
lookup, or a pattern with nested arguments. When the culture changes, callers
regenerate texts explicitly; until then String keeps returning what was
rendered before.

	if err := loctext.Initialize(loctext.WithDefaultCulture("en")); err != nil {
		log.Fatal(err)
	}
	size, _ := loctext.AsMemory(1536, nil)     // "1.5 kB"
	_ = loctext.SetCurrentCulture("fr")
	size, _ = loctext.RegenerateCurrent(size) // "1,5 kB"

Cultures live in a Registry, which must be initialized once before use.
Comparisons between texts use the collator of the current culture at a
chosen strength, see ComparisonLevel. The BiDi type computes paragraph
directions and directional runs for laying out mixed direction text.

Tracing

Diagnostics are written through the schuko tracer selected by the key
"loctext". Nothing is logged unless a trace selector has been configured.
*/
package loctext

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'loctext'.
func tracer() tracing.Trace {
	return tracing.Select("loctext")
}

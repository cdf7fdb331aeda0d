package loctext

import (
	"context"
	"sort"

	pool "github.com/jolestar/go-commons-pool"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ComparisonLevel is the collation strength, from coarsest to finest.
type ComparisonLevel int

const (
	// Primary compares base letters only: "café" = "Cafe".
	Primary ComparisonLevel = iota + 1
	// Secondary adds diacritics: "Cafe" = "cafe" but "café" != "cafe".
	Secondary
	// Tertiary adds case.
	Tertiary
	// Quaternary is the finest strength. It never equates texts that
	// Tertiary tells apart.
	Quaternary
)

// DefaultComparison is the finest strength short of Quaternary.
const DefaultComparison = Tertiary

func (l ComparisonLevel) String() string {
	switch l {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	case Tertiary:
		return "tertiary"
	case Quaternary:
		return "quaternary"
	}
	return "unknown"
}

// ParseComparisonLevel maps a level name back to its ComparisonLevel.
func ParseComparisonLevel(name string) (ComparisonLevel, bool) {
	for level := Primary; level <= Quaternary; level++ {
		if level.String() == name {
			return level, true
		}
	}
	return 0, false
}

func (l ComparisonLevel) valid() ComparisonLevel {
	if l < Primary || l > Quaternary {
		return DefaultComparison
	}
	return l
}

// CompareResult is the outcome of a collation.
type CompareResult int

const (
	Less    CompareResult = -1
	Equal   CompareResult = 0
	Greater CompareResult = 1
)

func (r CompareResult) String() string {
	switch r {
	case Less:
		return "less"
	case Greater:
		return "greater"
	}
	return "equal"
}

// newCollator builds a collator for tag with the strength of level encoded
// as the "ks" extension. Variable characters are never shifted, x/text
// then ignores them at every level.
func newCollator(tag language.Tag, level ComparisonLevel) *collate.Collator {
	strength := map[ComparisonLevel]string{
		Primary:    "level1",
		Secondary:  "level2",
		Tertiary:   "level3",
		Quaternary: "level4",
	}[level.valid()]

	if t, err := tag.SetTypeForKey("ks", strength); err == nil {
		tag = t
	}
	return collate.New(tag)
}

// collatorPool lends collators of one strength. A collate.Collator keeps
// iteration buffers and must not be used by two goroutines at once.
type collatorPool struct {
	ctx   context.Context
	opool *pool.ObjectPool
	tag   language.Tag
	level ComparisonLevel
}

func newCollatorPool(tag language.Tag, level ComparisonLevel) *collatorPool {
	p := &collatorPool{ctx: context.Background(), tag: tag, level: level}
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			return newCollator(tag, level), nil
		})
	config := pool.NewDefaultPoolConfig()
	config.MaxTotal = -1 // infinity
	config.BlockWhenExhausted = false
	p.opool = pool.NewObjectPool(p.ctx, factory, config)
	return p
}

// compare borrows a collator for the duration of one comparison.
func (p *collatorPool) compare(a, b string) CompareResult {
	o, err := p.opool.BorrowObject(p.ctx)
	if err != nil {
		tracer().Errorf("borrow %s collator for %s: %v", p.level, p.tag, err)
		return CompareResult(newCollator(p.tag, p.level).CompareString(a, b))
	}
	col := o.(*collate.Collator)
	result := CompareResult(col.CompareString(a, b))
	_ = p.opool.ReturnObject(p.ctx, col)
	return result
}

// SortPredicate orders texts with a collator owned by the predicate. It is
// bound to the culture it was built for and is not safe for concurrent use.
type SortPredicate struct {
	culture  CultureID
	level    ComparisonLevel
	collator *collate.Collator
}

// NewSortPredicate builds a predicate bound to the current culture of the
// default registry. It panics if the registry is not initialized.
func NewSortPredicate(level ComparisonLevel) *SortPredicate {
	return std.MustCurrentCulture().SortPredicate(level)
}

// Culture returns the culture whose collator the predicate uses.
func (p *SortPredicate) Culture() CultureID {
	return p.culture
}

// Compare orders a and b by their display strings.
func (p *SortPredicate) Compare(a, b Text) CompareResult {
	return CompareResult(p.collator.CompareString(a.display, b.display))
}

// CompareStrings orders two raw strings.
func (p *SortPredicate) CompareStrings(a, b string) CompareResult {
	return CompareResult(p.collator.CompareString(a, b))
}

// Less reports whether a sorts strictly before b.
func (p *SortPredicate) Less(a, b Text) bool {
	return p.Compare(a, b) == Less
}

// Sort orders texts in place, keeping equal elements in their original order.
func (p *SortPredicate) Sort(texts []Text) {
	sort.SliceStable(texts, func(i, j int) bool {
		return p.Less(texts[i], texts[j])
	})
}

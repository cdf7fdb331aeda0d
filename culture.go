package loctext

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Culture bundles the collators, formatters and localized strings of one
// locale. A Culture is immutable once built and is shared by every caller.
type Culture struct {
	id          CultureID
	tag         language.Tag
	displayName string
	chain       []string

	rules     FormattingRules
	dateTime  *patternDateTimeFormatter
	number    *xtextNumberFormatter
	strings   Store
	collators map[ComparisonLevel]*collatorPool
}

// newCulture builds the culture for tag. chain lists the locales whose data
// back it, nearest first, and is also the lookup order for localized strings.
func newCulture(tag language.Tag, displayName string, chain []string, rules FormattingRules, store Store) *Culture {
	printer := message.NewPrinter(tag)
	c := &Culture{
		id:          CultureID(tag.String()),
		tag:         tag,
		displayName: displayName,
		chain:       chain,
		rules:       rules,
		dateTime:    newDateTimeFormatter(rules, printer),
		number:      newNumberFormatter(printer),
		strings:     store,
		collators:   make(map[ComparisonLevel]*collatorPool, 4),
	}
	for level := Primary; level <= Quaternary; level++ {
		c.collators[level] = newCollatorPool(tag, level)
	}
	return c
}

// ID returns the canonical identifier of the culture.
func (c *Culture) ID() CultureID {
	return c.id
}

// Tag returns the language tag of the culture.
func (c *Culture) Tag() language.Tag {
	return c.tag
}

// DisplayName returns the catalog name of the locale backing the culture.
func (c *Culture) DisplayName() string {
	return c.displayName
}

// DateTimeFormatter returns the culture's date and time formatter.
func (c *Culture) DateTimeFormatter() DateTimeFormatter {
	return c.dateTime
}

// NumberFormatter returns the culture's number formatter.
func (c *Culture) NumberFormatter() NumberFormatter {
	return c.number
}

// FormattingRules returns the merged formatting rules of the culture.
func (c *Culture) FormattingRules() FormattingRules {
	return c.rules
}

// Compare orders a and b with the culture's collator at level.
func (c *Culture) Compare(a, b string, level ComparisonLevel) CompareResult {
	return c.collators[level.valid()].compare(a, b)
}

// EqualTo reports whether a and b collate equal at level.
func (c *Culture) EqualTo(a, b string, level ComparisonLevel) bool {
	return c.Compare(a, b, level) == Equal
}

// SortPredicate builds an ordering predicate owning its own collator, so
// sorting a list costs one collator construction.
func (c *Culture) SortPredicate(level ComparisonLevel) *SortPredicate {
	level = level.valid()
	return &SortPredicate{
		culture:  c.id,
		level:    level,
		collator: newCollator(c.tag, level),
	}
}

// LocalizedString looks key up in namespace along the culture's locale chain.
func (c *Culture) LocalizedString(namespace, key string) (string, bool) {
	if c.strings == nil {
		return "", false
	}
	qualified := catalogKey(namespace, key)
	for _, locale := range c.chain {
		if value, ok := c.strings.Get(locale, qualified); ok {
			return value, true
		}
	}
	return "", false
}

func (c *Culture) String() string {
	return string(c.id)
}

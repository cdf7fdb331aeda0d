package loctext

// CultureData is the locale database the registry is initialized from.
type CultureData struct {
	DefaultLocale   string                      `json:"default_locale"`
	Locales         map[string]LocaleDefinition `json:"locales"`
	FormattingRules map[string]FormattingRules  `json:"formatting_rules"`
}

// LocaleDefinition describes one locale of the catalog.
type LocaleDefinition struct {
	DisplayName string   `json:"display_name"`
	Active      *bool    `json:"active,omitempty"`
	Fallbacks   []string `json:"fallbacks,omitempty"`
}

// FormattingRules holds the calendrical patterns and names of a locale.
// Patterns use brace tokens: {d} {dd} {M} {MM} {MMM} {MMMM} {yy} {yyyy}
// {EEE} {EEEE} {H} {HH} {h} {hh} {mm} {ss} {a} {z} {zzzz}.
// Empty fields are inherited from the parent locale.
type FormattingRules struct {
	DatePatterns       StylePatterns `json:"date_patterns"`
	TimePatterns       StylePatterns `json:"time_patterns"`
	DateTimePattern    string        `json:"date_time_pattern"`
	MonthNames         []string      `json:"month_names"`
	MonthAbbreviations []string      `json:"month_abbreviations"`
	DayNames           []string      `json:"day_names"`
	DayAbbreviations   []string      `json:"day_abbreviations"`
	DayPeriods         []string      `json:"day_periods"`
}

// StylePatterns maps each DateTimeStyle to a pattern.
type StylePatterns struct {
	Short  string `json:"short"`
	Medium string `json:"medium"`
	Long   string `json:"long"`
	Full   string `json:"full"`
}

func (p StylePatterns) pattern(style DateTimeStyle) string {
	switch style {
	case StyleShort:
		return p.Short
	case StyleLong:
		return p.Long
	case StyleFull:
		return p.Full
	default:
		return p.Medium
	}
}

func (p StylePatterns) inherit(parent StylePatterns) StylePatterns {
	if p.Short == "" {
		p.Short = parent.Short
	}
	if p.Medium == "" {
		p.Medium = parent.Medium
	}
	if p.Long == "" {
		p.Long = parent.Long
	}
	if p.Full == "" {
		p.Full = parent.Full
	}
	return p
}

// inherit fills the empty fields of r from parent.
func (r FormattingRules) inherit(parent FormattingRules) FormattingRules {
	r.DatePatterns = r.DatePatterns.inherit(parent.DatePatterns)
	r.TimePatterns = r.TimePatterns.inherit(parent.TimePatterns)
	if r.DateTimePattern == "" {
		r.DateTimePattern = parent.DateTimePattern
	}
	if len(r.MonthNames) != 12 {
		r.MonthNames = parent.MonthNames
	}
	if len(r.MonthAbbreviations) != 12 {
		r.MonthAbbreviations = parent.MonthAbbreviations
	}
	if len(r.DayNames) != 7 {
		r.DayNames = parent.DayNames
	}
	if len(r.DayAbbreviations) != 7 {
		r.DayAbbreviations = parent.DayAbbreviations
	}
	if len(r.DayPeriods) != 2 {
		r.DayPeriods = parent.DayPeriods
	}
	return r
}

// rootFormattingRules backs every locale whose data lacks a field.
var rootFormattingRules = FormattingRules{
	DatePatterns: StylePatterns{
		Short:  "{yyyy}-{MM}-{dd}",
		Medium: "{yyyy} {MMM} {d}",
		Long:   "{yyyy} {MMMM} {d}",
		Full:   "{yyyy} {MMMM} {d}, {EEEE}",
	},
	TimePatterns: StylePatterns{
		Short:  "{HH}:{mm}",
		Medium: "{HH}:{mm}:{ss}",
		Long:   "{HH}:{mm}:{ss} {z}",
		Full:   "{HH}:{mm}:{ss} {zzzz}",
	},
	DateTimePattern:    "{date} {time}",
	MonthNames:         []string{"M01", "M02", "M03", "M04", "M05", "M06", "M07", "M08", "M09", "M10", "M11", "M12"},
	MonthAbbreviations: []string{"M01", "M02", "M03", "M04", "M05", "M06", "M07", "M08", "M09", "M10", "M11", "M12"},
	DayNames:           []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	DayAbbreviations:   []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	DayPeriods:         []string{"AM", "PM"},
}

// rulesFor merges the rules along chain, nearest locale winning.
func (d *CultureData) rulesFor(chain []string) FormattingRules {
	var merged FormattingRules
	if d != nil {
		for _, locale := range chain {
			if rules, ok := d.FormattingRules[locale]; ok {
				merged = merged.inherit(rules)
			}
		}
	}
	return merged.inherit(rootFormattingRules)
}

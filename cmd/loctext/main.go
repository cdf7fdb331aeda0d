package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	loctext "github.com/goliatone/go-loctext"
)

type cliConfig struct {
	locale   string
	zone     string
	date     string
	style    string
	duration time.Duration
	bytes    int64
	number   float64
	bidi     string
	base     string
	sort     string
	level    string
	catalogs listFlag
}

type listFlag struct {
	items []string
}

func (f *listFlag) String() string {
	return strings.Join(f.items, ",")
}

func (f *listFlag) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f.items = append(f.items, part)
	}
	return nil
}

func main() {
	cfg, err := parseFlags()
	if err != nil {
		reportError(err)
	}

	if err := run(cfg); err != nil {
		reportError(err)
	}
}

func reportError(err error) {
	fmt.Fprintf(os.Stderr, "loctext: %v\n", err)
	os.Exit(1)
}

func parseFlags() (cliConfig, error) {
	var cfg cliConfig

	flag.StringVar(&cfg.locale, "locale", "", "culture to format for (defaults to the system locale)")
	flag.StringVar(&cfg.zone, "tz", "", "IANA time zone for -date")
	flag.StringVar(&cfg.date, "date", "", "RFC 3339 timestamp to format")
	flag.StringVar(&cfg.style, "style", "medium", "date/time style: short, medium, long or full")
	flag.DurationVar(&cfg.duration, "duration", -1, "duration to format as a timespan")
	flag.Int64Var(&cfg.bytes, "bytes", -1, "byte count to format as a memory size")
	flag.Float64Var(&cfg.number, "number", 0, "number to format")
	flag.StringVar(&cfg.bidi, "bidi", "", "text to analyze for directional runs")
	flag.StringVar(&cfg.base, "base", "ltr", "paragraph direction for -bidi: ltr or rtl")
	flag.StringVar(&cfg.sort, "sort", "", "comma separated words to sort")
	flag.StringVar(&cfg.level, "level", "tertiary", "collation strength for -sort")
	flag.Var(&cfg.catalogs, "catalog", "localized string catalog (.json or .yaml). Repeat flag to add more.")

	flag.Parse()

	if cfg.base != "ltr" && cfg.base != "rtl" {
		return cliConfig{}, fmt.Errorf("invalid -base %q", cfg.base)
	}
	if _, ok := loctext.ParseComparisonLevel(cfg.level); !ok {
		return cliConfig{}, fmt.Errorf("invalid -level %q", cfg.level)
	}
	return cfg, nil
}

func run(cfg cliConfig) error {
	var opts []loctext.Option
	if cfg.locale != "" {
		opts = append(opts, loctext.WithDefaultCulture(cfg.locale))
	}
	if len(cfg.catalogs.items) > 0 {
		opts = append(opts, loctext.WithCatalogFiles(cfg.catalogs.items...))
	}
	if err := loctext.Initialize(opts...); err != nil {
		return err
	}

	culture, err := loctext.CurrentCulture()
	if err != nil {
		return err
	}
	fmt.Printf("culture:  %s (%s)\n", culture.ID(), culture.DisplayName())

	var printed bool
	if cfg.date != "" {
		if err := printDate(cfg); err != nil {
			return err
		}
		printed = true
	}
	if cfg.duration >= 0 {
		text, err := loctext.AsTimespan(cfg.duration)
		if err != nil {
			return err
		}
		fmt.Printf("timespan: %s\n", text)
		printed = true
	}
	if cfg.bytes >= 0 {
		text, err := loctext.AsMemory(uint64(cfg.bytes), nil)
		if err != nil {
			return err
		}
		fmt.Printf("memory:   %s\n", text)
		printed = true
	}
	if isFlagSet("number") {
		text, err := loctext.AsNumber(cfg.number, nil)
		if err != nil {
			return err
		}
		fmt.Printf("number:   %s\n", text)
		printed = true
	}
	if cfg.bidi != "" {
		printBiDi(cfg)
		printed = true
	}
	if cfg.sort != "" {
		printSorted(cfg)
		printed = true
	}

	if !printed {
		return errors.New("nothing to format, see -help")
	}
	return nil
}

func printDate(cfg cliConfig) error {
	ts, err := time.Parse(time.RFC3339, cfg.date)
	if err != nil {
		return fmt.Errorf("parse -date: %w", err)
	}
	style, err := loctext.ParseDateTimeStyle(cfg.style)
	if err != nil {
		return err
	}

	var opts []loctext.FormatOption
	if cfg.zone != "" {
		opts = append(opts, loctext.WithTimeZone(cfg.zone))
	}

	date, err := loctext.AsDate(ts, style, opts...)
	if err != nil {
		return err
	}
	clock, err := loctext.AsTime(ts, style, opts...)
	if err != nil {
		return err
	}
	both, err := loctext.AsDateTime(ts, style, style, opts...)
	if err != nil {
		return err
	}
	fmt.Printf("date:     %s\ntime:     %s\ndatetime: %s\n", date, clock, both)
	return nil
}

func printBiDi(cfg cliConfig) {
	base := loctext.LeftToRight
	if cfg.base == "rtl" {
		base = loctext.RightToLeft
	}
	analyzer := loctext.NewBiDi()
	fmt.Printf("bidi:     base %s, text %s\n", analyzer.ComputeBaseDirection(cfg.bidi), analyzer.ComputeTextDirection(cfg.bidi))

	runes := []rune(cfg.bidi)
	dir, runs := analyzer.ComputeTextDirectionRuns(cfg.bidi, base)
	fmt.Printf("runs:     %s paragraph resolves %s\n", base, dir)
	for _, run := range runs {
		fmt.Printf("          %-5s %3d %3d %q\n", run.Direction, run.Start, run.Length, string(runes[run.Start:run.Start+run.Length]))
	}
}

func printSorted(cfg cliConfig) {
	level, _ := loctext.ParseComparisonLevel(cfg.level)
	var texts []loctext.Text
	for _, word := range strings.Split(cfg.sort, ",") {
		texts = append(texts, loctext.FromLiteral(strings.TrimSpace(word)))
	}
	loctext.NewSortPredicate(level).Sort(texts)

	words := make([]string, len(texts))
	for i, text := range texts {
		words[i] = text.String()
	}
	fmt.Printf("sorted:   %s\n", strings.Join(words, ", "))
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

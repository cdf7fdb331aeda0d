package loctext

import (
	"errors"
	"reflect"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/text/unicode/bidi"
)

func TestComputeBaseDirection(t *testing.T) {
	tests := []struct {
		text string
		want Direction
	}{
		{"", LeftToRight},
		{"123 !?", LeftToRight},
		{"hello", LeftToRight},
		{"שלום world", RightToLeft},
		{"  123 مرحبا", RightToLeft},
		{"(abc) שלום", LeftToRight},
	}

	b := NewBiDi()
	for _, tt := range tests {
		if got := b.ComputeBaseDirection(tt.text); got != tt.want {
			t.Fatalf("ComputeBaseDirection(%q) = %v, want %v", tt.text, got, tt.want)
		}
		if got := ComputeBaseDirection(tt.text); got != tt.want {
			t.Fatalf("package ComputeBaseDirection(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestComputeTextDirection(t *testing.T) {
	tests := []struct {
		text string
		want Direction
	}{
		{"", LeftToRight},
		{"hello world", LeftToRight},
		{"שלום", RightToLeft},
		{"abc שלום def", Mixed},
	}

	b := NewBiDi()
	for _, tt := range tests {
		if got := b.ComputeTextDirection(tt.text); got != tt.want {
			t.Fatalf("ComputeTextDirection(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestComputeTextDirectionRuns(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		base    Direction
		wantDir Direction
		want    []DirectionRun
	}{
		{
			name:    "empty",
			text:    "",
			base:    LeftToRight,
			wantDir: LeftToRight,
			want:    nil,
		},
		{
			name:    "latin",
			text:    "hello",
			base:    LeftToRight,
			wantDir: LeftToRight,
			want:    []DirectionRun{{LeftToRight, 0, 5}},
		},
		{
			name:    "hebrew in latin",
			text:    "abc שלום def",
			base:    LeftToRight,
			wantDir: Mixed,
			want: []DirectionRun{
				{LeftToRight, 0, 4},
				{RightToLeft, 4, 4},
				{LeftToRight, 8, 4},
			},
		},
		{
			name:    "latin in right-to-left paragraph",
			text:    "abc שלום",
			base:    RightToLeft,
			wantDir: Mixed,
			want: []DirectionRun{
				{RightToLeft, 3, 5},
				{LeftToRight, 0, 3},
			},
		},
		{
			name:    "hebrew forced left-to-right",
			text:    "שלום",
			base:    LeftToRight,
			wantDir: RightToLeft,
			want:    []DirectionRun{{RightToLeft, 0, 4}},
		},
		{
			name:    "number after arabic",
			text:    "الف 123",
			base:    LeftToRight,
			wantDir: Mixed,
			want: []DirectionRun{
				{LeftToRight, 4, 3},
				{RightToLeft, 0, 4},
			},
		},
		{
			name:    "grouped number after arabic",
			text:    "الف 1,234",
			base:    LeftToRight,
			wantDir: Mixed,
			want: []DirectionRun{
				{LeftToRight, 4, 5},
				{RightToLeft, 0, 4},
			},
		},
		{
			name:    "number between arabic words",
			text:    "abc الف 123 بت def",
			base:    LeftToRight,
			wantDir: Mixed,
			want: []DirectionRun{
				{LeftToRight, 0, 4},
				{RightToLeft, 11, 3},
				{LeftToRight, 8, 3},
				{RightToLeft, 4, 4},
				{LeftToRight, 14, 4},
			},
		},
		{
			name:    "number after hebrew",
			text:    "שלום 123",
			base:    LeftToRight,
			wantDir: Mixed,
			want: []DirectionRun{
				{LeftToRight, 5, 3},
				{RightToLeft, 0, 5},
			},
		},
		{
			name:    "number after hebrew in right-to-left paragraph",
			text:    "שלום 123",
			base:    RightToLeft,
			wantDir: Mixed,
			want: []DirectionRun{
				{LeftToRight, 5, 3},
				{RightToLeft, 0, 5},
			},
		},
		{
			name:    "number after latin",
			text:    "abc 123",
			base:    LeftToRight,
			wantDir: LeftToRight,
			want:    []DirectionRun{{LeftToRight, 0, 7}},
		},
		{
			name:    "two paragraphs",
			text:    "abc\nשלום",
			base:    LeftToRight,
			wantDir: Mixed,
			want: []DirectionRun{
				{LeftToRight, 0, 4},
				{RightToLeft, 4, 4},
			},
		},
	}

	b := NewBiDi()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, runs := b.ComputeTextDirectionRuns(tt.text, tt.base)
			if dir != tt.wantDir {
				t.Fatalf("direction = %v, want %v", dir, tt.wantDir)
			}
			if !reflect.DeepEqual(runs, tt.want) {
				t.Fatalf("runs = %v, want %v", runs, tt.want)
			}
			if dir2, runs2 := ComputeTextDirectionRuns(tt.text, tt.base); dir2 != dir || !reflect.DeepEqual(runs2, runs) {
				t.Fatalf("package function disagrees: %v %v", dir2, runs2)
			}
		})
	}
}

func TestRunsCoverInput(t *testing.T) {
	inputs := []string{"abc שלום def", "مرحبا 123 hello", "a\nb\nשלום\n"}
	b := NewBiDi()
	for _, input := range inputs {
		for _, base := range []Direction{LeftToRight, RightToLeft} {
			_, runs := b.ComputeTextDirectionRuns(input, base)
			covered := make([]int, len([]rune(input)))
			for _, run := range runs {
				if run.Length <= 0 {
					t.Fatalf("%q: empty run %v", input, run)
				}
				for i := run.Start; i < run.Start+run.Length; i++ {
					covered[i]++
				}
			}
			for i, n := range covered {
				if n != 1 {
					t.Fatalf("%q (%v): rune %d covered %d times by %v", input, base, i, n, runs)
				}
			}
		}
	}
}

func TestRunsAreInVisualOrder(t *testing.T) {
	tests := []struct {
		text string
		base Direction
		want []DirectionRun
	}{
		{"مرحبا 123 hello", LeftToRight, []DirectionRun{
			{LeftToRight, 6, 3},
			{RightToLeft, 0, 6},
			{LeftToRight, 9, 6},
		}},
		{"hello مرحبا 123", LeftToRight, []DirectionRun{
			{LeftToRight, 0, 6},
			{LeftToRight, 12, 3},
			{RightToLeft, 6, 6},
		}},
		{"abc שלום def", RightToLeft, []DirectionRun{
			{LeftToRight, 9, 3},
			{RightToLeft, 3, 6},
			{LeftToRight, 0, 3},
		}},
	}

	b := NewBiDi()
	for _, tt := range tests {
		if _, runs := b.ComputeTextDirectionRuns(tt.text, tt.base); !reflect.DeepEqual(runs, tt.want) {
			t.Fatalf("%q (%v): runs = %v, want %v", tt.text, tt.base, runs, tt.want)
		}
	}
}

func TestComputeTextDirectionRange(t *testing.T) {
	text := "hello" + "abc\nשלום" + " tail"

	dir, runs := ComputeTextDirectionRange(text, 5, 8, LeftToRight)
	if dir != Mixed {
		t.Fatalf("direction = %v", dir)
	}
	want := []DirectionRun{{LeftToRight, 5, 4}, {RightToLeft, 9, 4}}
	if !reflect.DeepEqual(runs, want) {
		t.Fatalf("runs = %v, want %v", runs, want)
	}

	// clipped to the text
	_, runs = ComputeTextDirectionRange("hello", 3, 100, LeftToRight)
	if !reflect.DeepEqual(runs, []DirectionRun{{LeftToRight, 3, 2}}) {
		t.Fatalf("clipped runs = %v", runs)
	}
	if _, runs = ComputeTextDirectionRange("hello", 9, 2, LeftToRight); runs != nil {
		t.Fatalf("out of range runs = %v", runs)
	}
}

func TestInvalidBaseDirectionPanics(t *testing.T) {
	b := NewBiDi()
	expectPanic(t, "runs", func() { b.ComputeTextDirectionRuns("abc", Mixed) })
	expectPanic(t, "range", func() { b.ComputeTextDirectionRange("abc", 0, 3, Direction(7)) })
}

func TestBiDiFailureFallsBackToLeftToRight(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "loctext")
	defer teardown()

	saved := paragraphOrder
	defer func() { paragraphOrder = saved }()

	failures := map[string]func(*bidi.Paragraph) (bidi.Ordering, error){
		"error": func(*bidi.Paragraph) (bidi.Ordering, error) {
			return bidi.Ordering{}, errors.New("broken")
		},
		"panic": func(*bidi.Paragraph) (bidi.Ordering, error) {
			panic("broken")
		},
	}

	for name, failure := range failures {
		t.Run(name, func(t *testing.T) {
			paragraphOrder = failure
			dir, runs := ComputeTextDirectionRuns("abc\nשלום", RightToLeft)
			if dir != LeftToRight {
				t.Fatalf("direction = %v", dir)
			}
			if !reflect.DeepEqual(runs, []DirectionRun{{LeftToRight, 0, 8}}) {
				t.Fatalf("runs = %v", runs)
			}
		})
	}
}

func TestBiDiSkipsEmptyInput(t *testing.T) {
	saved := paragraphOrder
	defer func() { paragraphOrder = saved }()

	calls := 0
	paragraphOrder = func(p *bidi.Paragraph) (bidi.Ordering, error) {
		calls++
		return saved(p)
	}

	ComputeTextDirectionRuns("", LeftToRight)
	ComputeTextDirectionRange("abc", 1, 0, RightToLeft)
	if calls != 0 {
		t.Fatalf("paragraph ordering ran %d times for empty input", calls)
	}

	ComputeTextDirectionRuns("a\nb", LeftToRight)
	if calls != 2 {
		t.Fatalf("paragraph ordering ran %d times for two paragraphs", calls)
	}
}

func TestDirectionString(t *testing.T) {
	tests := map[Direction]string{
		LeftToRight:  "ltr",
		RightToLeft:  "rtl",
		Mixed:        "mixed",
		Direction(9): "Direction(9)",
	}
	for dir, want := range tests {
		if got := dir.String(); got != want {
			t.Fatalf("String() = %q, want %q", got, want)
		}
	}
}

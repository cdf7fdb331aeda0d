package loctext

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"golang.org/x/text/unicode/bidi"
)

// Direction is the resolved writing direction of text.
type Direction int

const (
	LeftToRight Direction = iota
	RightToLeft
	// Mixed is only ever a result. It is not a valid base direction.
	Mixed
)

func (d Direction) String() string {
	switch d {
	case LeftToRight:
		return "ltr"
	case RightToLeft:
		return "rtl"
	case Mixed:
		return "mixed"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// DirectionRun is a maximal span of one direction. Start and Length count
// runes of the analyzed string.
type DirectionRun struct {
	Direction Direction
	Start     int
	Length    int
}

const leftToRightMark = '\u200e'

// paragraphOrder resolves the levels of a prepared paragraph.
var paragraphOrder = func(p *bidi.Paragraph) (bidi.Ordering, error) {
	return p.Order()
}

// BiDi computes paragraph directions and directional runs. It keeps its
// working buffers between calls, so a BiDi must not be used by more than
// one goroutine at a time. The zero value is ready to use.
type BiDi struct {
	para   bidi.Paragraph
	runes  []rune
	buf    []byte
	levels []int8
}

// NewBiDi returns an analyzer with empty buffers.
func NewBiDi() *BiDi {
	return &BiDi{}
}

// ComputeBaseDirection returns the direction of the first strong character
// of text, LeftToRight when there is none.
func (b *BiDi) ComputeBaseDirection(text string) Direction {
	for _, r := range text {
		switch bidiClass(r) {
		case bidi.L:
			return LeftToRight
		case bidi.R, bidi.AL:
			return RightToLeft
		}
	}
	return LeftToRight
}

// ComputeTextDirection lays text out as a left-to-right paragraph and
// reports LeftToRight or RightToLeft when every run resolves to that
// direction, Mixed otherwise.
func (b *BiDi) ComputeTextDirection(text string) Direction {
	dir, _ := b.ComputeTextDirectionRuns(text, LeftToRight)
	return dir
}

// ComputeTextDirectionRuns lays text out with the given paragraph direction
// and returns the overall direction and the runs in visual order. base must
// not be Mixed.
func (b *BiDi) ComputeTextDirectionRuns(text string, base Direction) (Direction, []DirectionRun) {
	checkBaseDirection(base)
	b.loadRunes(text)
	return b.analyze(b.runes, 0, base)
}

// ComputeTextDirectionRange analyzes length runes of text starting at rune
// start. Run offsets are reported relative to the whole of text. The range
// is clipped to the text.
func (b *BiDi) ComputeTextDirectionRange(text string, start, length int, base Direction) (Direction, []DirectionRun) {
	checkBaseDirection(base)
	b.loadRunes(text)
	start = max(0, min(start, len(b.runes)))
	end := max(start, min(start+max(length, 0), len(b.runes)))
	return b.analyze(b.runes[start:end], start, base)
}

func checkBaseDirection(base Direction) {
	if base != LeftToRight && base != RightToLeft {
		panic(fmt.Sprintf("loctext: invalid base direction %v", base))
	}
}

func (b *BiDi) loadRunes(text string) {
	b.runes = b.runes[:0]
	for _, r := range text {
		b.runes = append(b.runes, r)
	}
}

// analyze splits runes into paragraphs and collects their visual runs.
// Paragraph separators take the base direction. On failure the whole input
// is reported as one left-to-right run.
func (b *BiDi) analyze(runes []rune, offset int, base Direction) (Direction, []DirectionRun) {
	if len(runes) == 0 {
		return LeftToRight, nil
	}

	var runs []DirectionRun
	for start := 0; start < len(runes); {
		end := start
		for end < len(runes) && !isParagraphSeparator(runes[end]) {
			end++
		}

		levels, err := b.paragraph(runes[start:end], base)
		if err != nil {
			tracer().Errorf("%v: %v", ErrBiDiComputation, err)
			return LeftToRight, []DirectionRun{{Direction: LeftToRight, Start: offset, Length: len(runes)}}
		}
		if end < len(runes) {
			levels = append(levels, paragraphLevel(base))
			end++
		}
		runs = append(runs, visualRuns(levels, offset+start)...)
		start = end
	}

	return overallDirection(runs), runs
}

func paragraphLevel(base Direction) int8 {
	if base == RightToLeft {
		return 1
	}
	return 0
}

// paragraph returns the embedding level of every rune of a paragraph
// without separators.
func (b *BiDi) paragraph(runes []rune, base Direction) (levels []int8, err error) {
	b.levels = b.levels[:0]
	if len(runes) == 0 {
		return b.levels, nil
	}
	defer func() {
		if r := recover(); r != nil {
			levels, err = nil, fmt.Errorf("%v", r)
		}
	}()

	// the algorithm detects the paragraph level from the first strong
	// character unless told RightToLeft, so a mark forces LeftToRight
	shift := 0
	b.buf = b.buf[:0]
	if base == LeftToRight {
		b.buf = utf8.AppendRune(b.buf, leftToRightMark)
		shift = 1
	}
	for _, r := range runes {
		b.buf = utf8.AppendRune(b.buf, r)
	}

	dir := bidi.LeftToRight
	if base == RightToLeft {
		dir = bidi.RightToLeft
	}
	if _, err := b.para.SetBytes(b.buf, bidi.DefaultDirection(dir)); err != nil {
		return nil, err
	}
	ordering, err := paragraphOrder(&b.para)
	if err != nil {
		return nil, err
	}

	// An Ordering only carries the parity of each run. Without explicit
	// embeddings an RTL paragraph resolves to levels 1 and 2, an LTR
	// paragraph to 0 and 1 plus 2 for numbers in right-to-left context.
	para := paragraphLevel(base)
	b.levels = append(b.levels, make([]int8, len(runes))...)
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		first, last := run.Pos()
		first, last = max(first-shift, 0), min(last-shift, len(runes)-1)
		var level int8
		switch {
		case run.Direction() == bidi.RightToLeft:
			level = 1
		case para == 1:
			level = 2
		}
		for j := first; j <= last; j++ {
			b.levels[j] = level
		}
	}
	if base == LeftToRight {
		raiseNumbers(runes, b.levels)
	}
	return b.levels, nil
}

// raiseNumbers moves the left-to-right numbers of an LTR paragraph that
// follow right-to-left text to level 2, taking adjacent number separators
// and terminators along.
func raiseNumbers(runes []rune, levels []int8) {
	strong := bidi.L
	for i, r := range runes {
		switch c := bidiClass(r); c {
		case bidi.L, bidi.R, bidi.AL:
			strong = c
		case bidi.AN:
			if levels[i] == 0 {
				levels[i] = 2
			}
		case bidi.EN:
			if levels[i] == 0 && strong != bidi.L {
				levels[i] = 2
			}
		}
	}

	for i := 0; i < len(runes); {
		if levels[i] != 0 || !isNumberAttached(bidiClass(runes[i])) {
			i++
			continue
		}
		j, separators := i, 0
		for j < len(runes) && levels[j] == 0 && isNumberAttached(bidiClass(runes[j])) {
			if c := bidiClass(runes[j]); c == bidi.CS || c == bidi.ES {
				separators++
			}
			j++
		}
		before := i > 0 && levels[i-1] == 2
		after := j < len(runes) && levels[j] == 2
		raise := before || after
		if separators > 0 {
			raise = before && after && j-i == 1
		}
		for ; raise && i < j; i++ {
			levels[i] = 2
		}
		i = j
	}
}

func isNumberAttached(c bidi.Class) bool {
	switch c {
	case bidi.ET, bidi.CS, bidi.ES, bidi.NSM, bidi.BN:
		return true
	}
	return false
}

func bidiClass(r rune) bidi.Class {
	props, _ := bidi.LookupRune(r)
	return props.Class()
}

// visualRuns reorders the level runs of one line (rule L2) and reports
// them left to right. Offsets are shifted by offset.
func visualRuns(levels []int8, offset int) []DirectionRun {
	type segment struct {
		level         int8
		start, length int
	}
	var segs []segment
	lowest, highest := int8(127), int8(0)
	for i, l := range levels {
		lowest, highest = min(lowest, l), max(highest, l)
		if n := len(segs); n > 0 && segs[n-1].level == l {
			segs[n-1].length++
			continue
		}
		segs = append(segs, segment{level: l, start: i, length: 1})
	}

	for level := highest; level >= lowest|1; level-- {
		for i := 0; i < len(segs); {
			if segs[i].level < level {
				i++
				continue
			}
			j := i
			for j < len(segs) && segs[j].level >= level {
				j++
			}
			slices.Reverse(segs[i:j])
			i = j
		}
	}

	var runs []DirectionRun
	for _, s := range segs {
		d := LeftToRight
		if s.level%2 == 1 {
			d = RightToLeft
		}
		runs = appendRun(runs, DirectionRun{Direction: d, Start: offset + s.start, Length: s.length})
	}
	return runs
}

// appendRun appends run, merging it into the last run when both share a
// direction and are adjacent.
func appendRun(runs []DirectionRun, run DirectionRun) []DirectionRun {
	if n := len(runs); n > 0 {
		last := &runs[n-1]
		if last.Direction == run.Direction && last.Start+last.Length == run.Start {
			last.Length += run.Length
			return runs
		}
	}
	return append(runs, run)
}

func overallDirection(runs []DirectionRun) Direction {
	if len(runs) == 0 {
		return LeftToRight
	}
	dir := runs[0].Direction
	for _, run := range runs[1:] {
		if run.Direction != dir {
			return Mixed
		}
	}
	return dir
}

func isParagraphSeparator(r rune) bool {
	return bidiClass(r) == bidi.B
}

// ComputeBaseDirection is BiDi.ComputeBaseDirection on a temporary analyzer.
func ComputeBaseDirection(text string) Direction {
	var b BiDi
	return b.ComputeBaseDirection(text)
}

// ComputeTextDirection is BiDi.ComputeTextDirection on a temporary analyzer.
func ComputeTextDirection(text string) Direction {
	var b BiDi
	return b.ComputeTextDirection(text)
}

// ComputeTextDirectionRuns is BiDi.ComputeTextDirectionRuns on a temporary
// analyzer.
func ComputeTextDirectionRuns(text string, base Direction) (Direction, []DirectionRun) {
	var b BiDi
	return b.ComputeTextDirectionRuns(text, base)
}

// ComputeTextDirectionRange is BiDi.ComputeTextDirectionRange on a
// temporary analyzer.
func ComputeTextDirectionRange(text string, start, length int, base Direction) (Direction, []DirectionRun) {
	var b BiDi
	return b.ComputeTextDirectionRange(text, start, length, base)
}

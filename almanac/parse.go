package almanac

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/seedalmanac/aoc"
)

// DefaultStages is the order in which a seed becomes a location.
var DefaultStages = []string{
	"seed-to-soil",
	"soil-to-fertilizer",
	"fertilizer-to-water",
	"water-to-light",
	"light-to-temperature",
	"temperature-to-humidity",
	"humidity-to-location",
}

// Almanac is a parsed puzzle input: the initial values and every map
// block in the order they appeared.
type Almanac struct {
	Label  string // text before the colon on the first line, e.g. "seeds"
	Seeds  []int
	Tables []*Table
}

// Table returns the table named name, or nil.
func (a *Almanac) Table(name string) *Table {
	for _, t := range a.Tables {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// SeedRanges reads Seeds as (start, length) pairs.
func (a *Almanac) SeedRanges() ([]Interval, error) {
	if len(a.Seeds)%2 != 0 {
		return nil, &ParseError{Err: ErrOddSeeds}
	}
	ranges := make([]Interval, 0, len(a.Seeds)/2)
	for i := 0; i < len(a.Seeds); i += 2 {
		start, n := a.Seeds[i], a.Seeds[i+1]
		if start > math.MaxInt-n {
			return nil, &ParseError{Err: fmt.Errorf("%w: %d+%d", ErrOverflow, start, n)}
		}
		ranges = append(ranges, Span(start, n))
	}
	return ranges, nil
}

// Pipeline builds a pipeline over a's tables in the given stage order.
func (a *Almanac) Pipeline(order []string, opts ...Option) (*Pipeline, error) {
	return NewPipeline(order, a.Tables, opts...)
}

// Parse reads a whole almanac: a "<label>: v1 v2 ..." line followed by
// blank-line-separated map blocks.
func Parse(r io.Reader) (*Almanac, error) {
	var lines []line
	s := bufio.NewScanner(r)
	s.Buffer(nil, 1<<20)
	for n := 1; s.Scan(); n++ {
		lines = append(lines, line{n, strings.TrimRight(s.Text(), "\r")})
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("almanac: reading input: %w", err)
	}

	blocks := splitBlocks(lines)
	if len(blocks) == 0 {
		return nil, &ParseError{Err: ErrEmptyInput}
	}
	a := new(Almanac)
	if err := a.parseSeeds(blocks[0]); err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	for _, b := range blocks[1:] {
		t, err := parseTable(b)
		if err != nil {
			return nil, err
		}
		if seen[t.Name] {
			return nil, &ParseError{Line: b[0].n, Text: b[0].text, Err: ErrDuplicateTable}
		}
		seen[t.Name] = true
		a.Tables = append(a.Tables, t)
	}
	return a, nil
}

// ParseString is Parse on a string.
func ParseString(s string) (*Almanac, error) {
	return Parse(strings.NewReader(s))
}

func (a *Almanac) parseSeeds(b []line) error {
	first := b[0]
	label, vals, ok := strings.Cut(first.text, ":")
	label = strings.TrimSpace(label)
	// A map header here means the values line is missing.
	if !ok || label == "" || strings.HasSuffix(label, " map") {
		return &ParseError{Line: first.n, Text: first.text, Err: ErrMissingHeader}
	}
	a.Label = label
	// Values may wrap onto following lines of the same block.
	text := vals
	for _, ln := range b[1:] {
		text += " " + ln.text
	}
	seeds, err := aoc.Ints[int](text)
	if err != nil {
		return &ParseError{Line: first.n, Text: first.text, Err: fmt.Errorf("%w: %v", ErrBadNumber, err)}
	}
	for _, v := range seeds {
		if v < 0 {
			return &ParseError{Line: first.n, Text: first.text, Err: ErrBadNumber}
		}
	}
	a.Seeds = seeds
	return nil
}

type line struct {
	n    int
	text string
}

func (l line) blank() bool { return strings.TrimSpace(l.text) == "" }

func splitLines(s string) []line {
	var lines []line
	for i, t := range strings.Split(s, "\n") {
		lines = append(lines, line{i + 1, strings.TrimRight(t, "\r")})
	}
	return lines
}

// splitBlocks groups lines into runs of non-blank lines.
func splitBlocks(lines []line) [][]line {
	var blocks [][]line
	var cur []line
	for _, ln := range lines {
		if ln.blank() {
			if len(cur) > 0 {
				blocks = append(blocks, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, ln)
	}
	if len(cur) > 0 {
		blocks = append(blocks, cur)
	}
	return blocks
}

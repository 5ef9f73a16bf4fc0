package almanac

import (
	"fmt"
	"math"
	"strings"

	"github.com/seedalmanac/aoc"
)

// Interval is the half-open range [Start, End).
type Interval struct {
	Start, End int
}

// Span returns the interval [start, start+n).
func Span(start, n int) Interval { return Interval{start, start + n} }

func (iv Interval) Len() int            { return iv.End - iv.Start }
func (iv Interval) Empty() bool         { return iv.End <= iv.Start }
func (iv Interval) Contains(v int) bool { return iv.Start <= v && v < iv.End }
func (iv Interval) String() string      { return fmt.Sprintf("[%d,%d)", iv.Start, iv.End) }

func (iv Interval) shift(off int) Interval { return Interval{iv.Start + off, iv.End + off} }

// Rule maps Src onto Dst, which has the same length.
type Rule struct {
	Src, Dst Interval
}

// NewRule returns the rule for an almanac line "dst src n".
func NewRule(dst, src, n int) Rule {
	return Rule{Src: Span(src, n), Dst: Span(dst, n)}
}

func (r Rule) offset() int { return r.Dst.Start - r.Src.Start }

// Map returns where v lands. v must be in r.Src.
func (r Rule) Map(v int) int { return v + r.offset() }

// Table is one named stage of a pipeline.
//
// When rules overlap in source space, the first one declared wins. Values
// no rule covers map to themselves.
type Table struct {
	Name  string
	Rules []Rule
}

// ResolvePoint returns the value v maps to in t.
func (t *Table) ResolvePoint(v int) int {
	for _, r := range t.Rules {
		if r.Src.Contains(v) {
			return r.Map(v)
		}
	}
	return v
}

// ResolveRange splits iv into maximal pieces that each fall inside a
// single rule or outside all of them, and returns the mapped pieces in
// ascending source order. The total length is that of iv.
func (t *Table) ResolveRange(iv Interval) []Interval {
	var out []Interval
	for cur := iv.Start; cur < iv.End; {
		end := iv.End
		i := t.ruleAt(cur)
		if i >= 0 {
			end = min(end, t.Rules[i].Src.End)
		}
		// Stop where a rule that takes priority over rules[i] (or over
		// identity, when i < 0) begins.
		lim := len(t.Rules)
		if i >= 0 {
			lim = i
		}
		for _, r := range t.Rules[:lim] {
			if s := r.Src.Start; s > cur && s < end && !r.Src.Empty() {
				end = s
			}
		}
		seg := Interval{cur, end}
		if i >= 0 {
			seg = seg.shift(t.Rules[i].offset())
		}
		out = append(out, seg)
		cur = end
	}
	return out
}

// ruleAt returns the index of the first rule containing v, or -1.
func (t *Table) ruleAt(v int) int {
	for i, r := range t.Rules {
		if r.Src.Contains(v) {
			return i
		}
	}
	return -1
}

// ParseTable parses a single "<name> map:" block.
func ParseTable(text string) (*Table, error) {
	lines := splitLines(text)
	for len(lines) > 0 && lines[0].blank() {
		lines = lines[1:]
	}
	return parseTable(lines)
}

func parseTable(lines []line) (*Table, error) {
	if len(lines) == 0 {
		return nil, &ParseError{Err: ErrMissingHeader}
	}
	hdr := lines[0]
	name, ok := strings.CutSuffix(strings.TrimSpace(hdr.text), ":")
	if ok {
		name, ok = strings.CutSuffix(name, " map")
	}
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return nil, &ParseError{Line: hdr.n, Text: hdr.text, Err: ErrMissingHeader}
	}
	t := &Table{Name: name}
	for _, ln := range lines[1:] {
		if ln.blank() {
			continue
		}
		r, err := parseRule(ln)
		if err != nil {
			return nil, err
		}
		t.Rules = append(t.Rules, r)
	}
	return t, nil
}

func parseRule(ln line) (Rule, error) {
	perr := func(err error) (Rule, error) {
		return Rule{}, &ParseError{Line: ln.n, Text: ln.text, Err: err}
	}
	f, err := aoc.Ints[int](ln.text)
	if err != nil {
		return perr(fmt.Errorf("%w: %v", ErrBadNumber, err))
	}
	if len(f) != 3 {
		return perr(ErrFieldCount)
	}
	dst, src, n := f[0], f[1], f[2]
	if dst < 0 || src < 0 || n < 0 {
		return perr(ErrBadNumber)
	}
	if n == 0 {
		return perr(ErrZeroLength)
	}
	if dst > math.MaxInt-n || src > math.MaxInt-n {
		return perr(ErrOverflow)
	}
	return NewRule(dst, src, n), nil
}

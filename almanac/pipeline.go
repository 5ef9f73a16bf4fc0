package almanac

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Pipeline pushes values through an ordered list of tables. It is not
// modified after NewPipeline and is safe for concurrent use.
type Pipeline struct {
	stages []*Table
	log    *zap.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger makes the pipeline log its range translations at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// NewPipeline resolves order against tables once. Tables not named in
// order are ignored. It returns a *MissingStageError if a name in order
// has no table.
func NewPipeline(order []string, tables []*Table, opts ...Option) (*Pipeline, error) {
	byName := make(map[string]*Table, len(tables))
	for _, t := range tables {
		if _, dup := byName[t.Name]; !dup {
			byName[t.Name] = t
		}
	}
	p := &Pipeline{log: zap.NewNop()}
	for _, name := range order {
		t, ok := byName[name]
		if !ok {
			return nil, &MissingStageError{Name: name}
		}
		p.stages = append(p.stages, t)
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// Stages returns the stage names in order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, t := range p.stages {
		names[i] = t.Name
	}
	return names
}

// TranslatePoint maps v through every stage.
func (p *Pipeline) TranslatePoint(v int) int {
	for _, t := range p.stages {
		v = t.ResolvePoint(v)
	}
	return v
}

// TranslateRange maps iv through every stage and returns the resulting
// pieces. Their lengths sum to iv.Len().
func (p *Pipeline) TranslateRange(iv Interval) []Interval {
	if iv.Empty() {
		return nil
	}
	cur := []Interval{iv}
	for _, t := range p.stages {
		next := make([]Interval, 0, len(cur))
		for _, seg := range cur {
			next = append(next, t.ResolveRange(seg)...)
		}
		if ce := p.log.Check(zap.DebugLevel, "stage"); ce != nil {
			ce.Write(zap.String("stage", t.Name), zap.Stringer("input", iv),
				zap.Int("in", len(cur)), zap.Int("out", len(next)))
		}
		cur = next
	}
	return cur
}

// MinPoint returns the smallest TranslatePoint over values.
func (p *Pipeline) MinPoint(values []int) (int, error) {
	if len(values) == 0 {
		return 0, ErrNoInputs
	}
	best := p.TranslatePoint(values[0])
	for _, v := range values[1:] {
		best = min(best, p.TranslatePoint(v))
	}
	return best, nil
}

// MinRange returns the smallest value any point of ranges maps to,
// without visiting individual points. Ranges are translated concurrently
// by up to Workers(ctx) goroutines. Empty ranges contribute nothing.
func (p *Pipeline) MinRange(ctx context.Context, ranges []Interval) (int, error) {
	type result struct {
		min int
		ok  bool
	}
	results := make([]result, len(ranges))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(Workers(ctx, runtime.NumCPU()))
	for i, iv := range ranges {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for _, seg := range p.TranslateRange(iv) {
				if r := &results[i]; !r.ok || seg.Start < r.min {
					*r = result{seg.Start, true}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	best, found := 0, false
	for _, r := range results {
		if r.ok && (!found || r.min < best) {
			best, found = r.min, true
		}
	}
	if !found {
		return 0, ErrNoInputs
	}
	p.log.Debug("range minimum", zap.Int("ranges", len(ranges)), zap.Int("min", best))
	return best, nil
}

// Package aoc is a small harness for running Advent of Code solvers.
//
// Solvers are registered by func name (day5, day5b, ...) and their doc
// comments may carry a sample: a "want=<answer>" line optionally followed
// by the sample input. A part with a sample is run on it first and the
// real input is only attempted if the answer matches.
package aoc

import (
	"bytes"
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/exp/constraints"
)

// A Solver computes one part of one day's puzzle.
type Solver func(p *Puzzle) (any, error)

type sample struct {
	input string
	want  string
}

// Registry holds registered solvers and their samples.
type Registry struct {
	puzzles []string          // in registration order
	byName  map[string]Solver // func name -> func
	samples map[string]sample
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:  map[string]Solver{},
		samples: map[string]sample{},
	}
}

var std = NewRegistry()

// Add registers solvers with the default registry.
func Add(solvers ...Solver) { std.Add(solvers...) }

// ExtractSamples reads samples for the default registry from src, the
// Go source declaring the solvers. It panics if src does not parse.
func ExtractSamples(src []byte) { MustDo(std.ExtractSamples(src)) }

// Main runs the default registry's command line and exits non-zero on
// failure.
func Main() {
	if err := std.Command().Execute(); err != nil {
		os.Exit(1)
	}
}

// Add registers solvers under their func names.
func (r *Registry) Add(solvers ...Solver) {
	for _, f := range solvers {
		name := funcName(f)
		if _, dup := r.byName[name]; !dup {
			r.puzzles = append(r.puzzles, name)
		}
		r.byName[name] = f
	}
}

var sampleRx = regexp.MustCompile(`(?sm)^\s*want=([^\n]*)(?:\s+(.+\n))?\s*`)

// parseSample reads one doc comment line or block. The returned input is
// empty when the comment only gives the answer.
func parseSample(comment string) (sample, bool) {
	text := strings.TrimPrefix(comment, "//")
	if v, ok := strings.CutPrefix(text, "/*"); ok {
		text = strings.TrimSuffix(v, "*/")
	}
	m := sampleRx.FindStringSubmatch(text)
	if m == nil {
		return sample{}, false
	}
	return sample{input: m[2], want: strings.TrimSpace(m[1])}, true
}

// ExtractSamples scans the doc comments of the func declarations in src.
// A sample without its own input reuses the previous sample's input.
func (r *Registry) ExtractSamples(src []byte) error {
	f, err := parser.ParseFile(token.NewFileSet(), "", src, parser.ParseComments)
	if err != nil {
		return fmt.Errorf("parsing source to extract samples: %w", err)
	}
	var lastInput string
	for _, d := range f.Decls {
		fd, ok := d.(*ast.FuncDecl)
		if !ok || fd.Doc == nil {
			continue
		}
		for _, c := range fd.Doc.List {
			if s, ok := parseSample(c.Text); ok {
				s.input = Or(s.input, lastInput)
				r.samples[fd.Name.Name] = s
				lastInput = s.input
				break
			}
		}
	}
	return nil
}

func funcName(f Solver) string {
	rf := runtime.FuncForPC(reflect.ValueOf(f).Pointer())
	if rf == nil {
		panic("no func found")
	}
	name := rf.Name()
	return name[strings.LastIndex(name, ".")+1:]
}

var dayRx = regexp.MustCompile(`\d+`)

func dayOf(name string) int {
	m := dayRx.FindString(name)
	if m == "" {
		return 0
	}
	return Int(m)
}

// parts returns the puzzles sel refers to. Empty means every part of the
// latest registered day, a bare number every part of that day, and
// anything else an exact func name.
func (r *Registry) parts(sel string) ([]string, error) {
	if len(r.puzzles) == 0 {
		return nil, fmt.Errorf("no puzzles registered")
	}
	day := -1
	switch {
	case sel == "":
		day = dayOf(r.puzzles[len(r.puzzles)-1])
	case isDigits(sel):
		day = Int(sel)
	default:
		if _, ok := r.byName[sel]; !ok {
			return nil, fmt.Errorf("puzzle func %v not registered", sel)
		}
		return []string{sel}, nil
	}
	var names []string
	for _, name := range r.puzzles {
		if dayOf(name) == day {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no puzzles registered for day %d", day)
	}
	return names, nil
}

func isDigits(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) }) == -1
}

// Command returns the command line for r.
func (r *Registry) Command() *cobra.Command {
	var (
		cfgPath    string
		sel        string
		file       string
		onlySample bool
		flags      Config
	)
	cmd := &cobra.Command{
		Use:          "aoc",
		Short:        "Run Advent of Code puzzle solvers",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			fl := cmd.Flags()
			if fl.Changed("verbose") {
				cfg.Verbose = flags.Verbose
			}
			if fl.Changed("workers") {
				cfg.Workers = max(flags.Workers, 1)
			}
			if fl.Changed("input-dir") {
				cfg.InputDir = flags.InputDir
			}
			if fl.Changed("skip-sample") {
				cfg.SkipSample = flags.SkipSample
			}

			// Errors are returned for cobra to print, not logged.
			log := NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
			defer func() { _ = log.Sync() }()

			names, err := r.parts(sel)
			if err != nil {
				return err
			}
			run := runner{cfg: cfg, file: file, onlySample: onlySample, log: log, out: cmd.OutOrStdout()}
			for _, name := range names {
				if err := run.part(cmd.Context(), name, r.byName[name], r.samples); err != nil {
					return err
				}
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&sel, "day", "d", "", `day number or solver func name to run; empty means the latest registered day`)
	f.StringVarP(&file, "file", "f", "", "input file (default <input-dir>/<day>.input)")
	f.StringVar(&flags.InputDir, "input-dir", "", "directory holding <day>.input files")
	f.CountVarP(&flags.Verbose, "verbose", "v", "log more; repeat for more detail")
	f.IntVarP(&flags.Workers, "workers", "w", 0, "concurrent workers for solvers that fan out")
	f.BoolVar(&flags.SkipSample, "skip-sample", false, "don't check the sample first")
	f.BoolVar(&onlySample, "only-sample", false, "only check the sample")
	f.StringVar(&cfgPath, "config", "", "YAML config file")
	return cmd
}

type runner struct {
	cfg        Config
	file       string
	onlySample bool
	log        *zap.Logger
	out        io.Writer
}

func (rn runner) part(ctx context.Context, name string, f Solver, samples map[string]sample) error {
	p := &Puzzle{
		Name:    name,
		Day:     dayOf(name),
		ctx:     ctx,
		log:     rn.log.With(zap.String("puzzle", name)),
		workers: rn.cfg.Workers,
	}
	if s, ok := samples[name]; ok && !rn.cfg.SkipSample {
		p.SampleMode = true
		p.input = []byte(s.input)
		got, err := f(p)
		if err != nil {
			return fmt.Errorf("%s sample: %w", name, err)
		}
		if g := fmt.Sprint(got); g != s.want {
			return fmt.Errorf("%s sample: got=%v; want %v", name, g, s.want)
		}
		p.log.Info("OK sample result")
	} else if !ok {
		p.log.Warn("no sample")
	}
	if rn.onlySample {
		return nil
	}

	path := rn.file
	if path == "" {
		path = filepath.Join(rn.cfg.InputDir, fmt.Sprintf("%d.input", p.Day))
	}
	in, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	p.SampleMode = false
	p.input = in
	t0 := time.Now()
	got, err := f(p)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	p.log.Info("solved", zap.Duration("took", time.Since(t0).Round(time.Microsecond)))
	_, err = fmt.Fprintln(rn.out, got)
	return err
}

// Puzzle is what a Solver is run against.
type Puzzle struct {
	Name       string
	Day        int
	SampleMode bool

	ctx     context.Context
	log     *zap.Logger
	workers int
	input   []byte
}

// NewPuzzle returns a puzzle for the solver named name reading input,
// with a no-op logger. It is meant for calling solvers directly.
func NewPuzzle(name string, input []byte) *Puzzle {
	return &Puzzle{
		Name:    name,
		Day:     dayOf(name),
		ctx:     context.Background(),
		log:     zap.NewNop(),
		workers: runtime.NumCPU(),
		input:   input,
	}
}

func (p *Puzzle) Input() []byte            { return p.input }
func (p *Puzzle) Reader() io.Reader        { return bytes.NewReader(p.input) }
func (p *Puzzle) Context() context.Context { return p.ctx }
func (p *Puzzle) Log() *zap.Logger         { return p.log }
func (p *Puzzle) Workers() int             { return p.workers }
func (p *Puzzle) String() string           { return p.Name }

// Lines returns the input split into lines, without a trailing empty one.
func (p *Puzzle) Lines() []string {
	return strings.Split(strings.TrimRight(string(p.input), "\n"), "\n")
}

// Int parses s as a decimal int. It panics on failure.
func Int(s string) int {
	return MustGet(strconv.Atoi(s))
}

// Ints returns the whitespace-separated integers in s.
func Ints[T constraints.Integer](s string) ([]T, error) {
	fields := strings.Fields(s)
	out := make([]T, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, err
		}
		v := T(n)
		if int64(v) != n || (n < 0) != (v < 0) {
			return nil, fmt.Errorf("%q out of range for %T", f, v)
		}
		out = append(out, v)
	}
	return out, nil
}

// MustDo panics if err is non-nil.
func MustDo(err error) {
	if err != nil {
		panic(err)
	}
}

// MustGet returns v as is. It panics if err is non-nil.
func MustGet[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Or returns the first non-zero element of list, or else returns the zero T.
//
// This is the proposal from
// https://github.com/golang/go/issues/60204#issuecomment-1581245334.
func Or[T comparable](list ...T) T {
	var zero T
	for _, v := range list {
		if v != zero {
			return v
		}
	}
	return zero
}

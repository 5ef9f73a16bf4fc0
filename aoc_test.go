package aoc

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSrc = `package x

/*
want=3

1 2
3 4
5 6
*/
func day7(p *Puzzle) (any, error) { return nil, nil }

// want=21
func day7b(p *Puzzle) (any, error) { return nil, nil }

// No sample here.
func day8(p *Puzzle) (any, error) { return nil, nil }
`

func day7(p *Puzzle) (any, error) { return len(p.Lines()), nil }

func day7b(p *Puzzle) (any, error) {
	sum := 0
	for _, line := range p.Lines() {
		vals, err := Ints[int](line)
		if err != nil {
			return nil, err
		}
		for _, v := range vals {
			sum += v
		}
	}
	return sum, nil
}

func day8(p *Puzzle) (any, error) { return nil, errors.New("boom") }

func newTestRegistry(t *testing.T, src string) *Registry {
	t.Helper()
	r := NewRegistry()
	require.NoError(t, r.ExtractSamples([]byte(src)))
	r.Add(day7, day7b, day8)
	return r
}

func run(t *testing.T, r *Registry, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := r.Command()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	return out.String(), err
}

func writeInput(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}

func TestExtractSamples(t *testing.T) {
	r := newTestRegistry(t, testSrc)
	assert.Equal(t, sample{input: "1 2\n3 4\n5 6\n", want: "3"}, r.samples["day7"])
	assert.Equal(t, sample{input: "1 2\n3 4\n5 6\n", want: "21"}, r.samples["day7b"])
	assert.NotContains(t, r.samples, "day8")
}

func TestParseSample(t *testing.T) {
	tests := []struct {
		comment string
		want    sample
		ok      bool
	}{
		{"// want=21", sample{want: "21"}, true},
		{"//want= 7 ", sample{want: "7"}, true},
		{"/*\nwant=3\n\n1 2\n3 4\n*/", sample{input: "1 2\n3 4\n", want: "3"}, true},
		{"// No sample here.", sample{}, false},
		{"/* wanted=3 */", sample{}, false},
	}
	for _, tt := range tests {
		got, ok := parseSample(tt.comment)
		assert.Equal(t, tt.ok, ok, "parseSample(%q)", tt.comment)
		assert.Equal(t, tt.want, got, "parseSample(%q)", tt.comment)
	}
}

func TestExtractSamplesBadSource(t *testing.T) {
	assert.Error(t, NewRegistry().ExtractSamples([]byte("not go")))
}

func TestAddUsesFuncName(t *testing.T) {
	r := newTestRegistry(t, testSrc)
	assert.Equal(t, []string{"day7", "day7b", "day8"}, r.puzzles)
	r.Add(day7)
	assert.Len(t, r.puzzles, 3)
}

func TestParts(t *testing.T) {
	r := newTestRegistry(t, testSrc)
	tests := []struct {
		sel     string
		want    []string
		wantErr bool
	}{
		{sel: "", want: []string{"day8"}},
		{sel: "7", want: []string{"day7", "day7b"}},
		{sel: "day7b", want: []string{"day7b"}},
		{sel: "9", wantErr: true},
		{sel: "day9", wantErr: true},
	}
	for _, tt := range tests {
		got, err := r.parts(tt.sel)
		if tt.wantErr {
			assert.Error(t, err, "parts(%q)", tt.sel)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "parts(%q)", tt.sel)
	}
	_, err := NewRegistry().parts("")
	assert.Error(t, err)
}

func TestCommandRunsSampleThenInput(t *testing.T) {
	path := writeInput(t, t.TempDir(), "in.txt", "10 20\n")
	out, err := run(t, newTestRegistry(t, testSrc), "-d", "7", "-f", path)
	require.NoError(t, err)
	assert.Equal(t, "1\n30\n", out)
}

func TestCommandSampleMismatch(t *testing.T) {
	src := `package x

/*
want=4

1
*/
func day7(p *Puzzle) (any, error) { return nil, nil }
`
	path := writeInput(t, t.TempDir(), "in.txt", "1\n")
	out, err := run(t, newTestRegistry(t, src), "-d", "day7", "-f", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "day7 sample: got=1; want 4")
	assert.Empty(t, out)
}

func TestCommandSkipAndOnlySample(t *testing.T) {
	dir := t.TempDir()
	path := writeInput(t, dir, "in.txt", "1\n2\n")

	out, err := run(t, newTestRegistry(t, testSrc), "-d", "7", "--only-sample")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = run(t, newTestRegistry(t, "package x\n// want=99\nfunc day7(p *Puzzle) (any, error) { return nil, nil }\n"),
		"-d", "day7", "--skip-sample", "-f", path)
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestCommandInputDir(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "7.input", "1 1\n1 1\n")
	out, err := run(t, newTestRegistry(t, testSrc), "-d", "7", "--input-dir", dir, "-vv")
	require.NoError(t, err)
	assert.Equal(t, "2\n4\n", out)
}

func TestCommandConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "7.input", "5\n")
	cfg := writeInput(t, dir, "aoc.yaml", "input_dir: "+dir+"\nworkers: 2\n")
	out, err := run(t, newTestRegistry(t, testSrc), "--config", cfg, "-d", "day7b")
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, newTestRegistry(t, testSrc), "-d", "7", "--input-dir", dir)
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := writeInput(t, dir, "in.txt", "x\n")
	_, err = run(t, newTestRegistry(t, testSrc), "-d", "8", "-f", path)
	assert.EqualError(t, err, "day8: boom")

	_, err = run(t, newTestRegistry(t, testSrc), "extra-arg")
	assert.Error(t, err)
}

func TestCommandReportsErrorOnce(t *testing.T) {
	path := writeInput(t, t.TempDir(), "in.txt", "x\n")
	var stdout, stderr bytes.Buffer
	cmd := newTestRegistry(t, testSrc).Command()
	cmd.SetArgs([]string{"-d", "8", "-f", path, "-vv"})
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	require.EqualError(t, cmd.Execute(), "day8: boom")
	assert.Empty(t, stdout.String())
	assert.Equal(t, 1, strings.Count(stderr.String(), "boom"), "stderr:\n%s", stderr.String())
	assert.Contains(t, stderr.String(), "no sample")
}

func TestNewPuzzle(t *testing.T) {
	p := NewPuzzle("day12b", []byte("a\nb\n"))
	assert.Equal(t, 12, p.Day)
	assert.Equal(t, "day12b", p.String())
	assert.Equal(t, []byte("a\nb\n"), p.Input())
	assert.Equal(t, []string{"a", "b"}, p.Lines())
	assert.NotNil(t, p.Context())
	assert.NotNil(t, p.Log())
	assert.Positive(t, p.Workers())
	got, err := io.ReadAll(p.Reader())
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", string(got))
}

func TestInts(t *testing.T) {
	got, err := Ints[int]("  1 -2\t30 ")
	require.NoError(t, err)
	assert.Equal(t, []int{1, -2, 30}, got)

	_, err = Ints[int]("1 two")
	assert.Error(t, err)
	_, err = Ints[uint8]("300")
	assert.Error(t, err)
	_, err = Ints[uint]("-1")
	assert.Error(t, err)

	u, err := Ints[uint8]("255 0")
	require.NoError(t, err)
	assert.Equal(t, []uint8{255, 0}, u)
}

func TestOr(t *testing.T) {
	assert.Equal(t, "b", Or("", "b", "c"))
	assert.Equal(t, 0, Or(0, 0))
}

func TestMustGet(t *testing.T) {
	assert.Equal(t, 3, MustGet(3, nil))
	assert.Panics(t, func() { MustGet(0, errors.New("x")) })
	assert.Panics(t, func() { Int("x") })
}

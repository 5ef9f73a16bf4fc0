// Command aoc runs the Advent of Code 2023 day 5 solvers.
//
// Usage:
//
//	aoc -d 5 -f 5.input -v
package main

import (
	_ "embed"

	"github.com/seedalmanac/aoc"
	"github.com/seedalmanac/aoc/almanac"
)

//go:embed main.go
var src []byte

func main() {
	aoc.ExtractSamples(src)
	aoc.Add(
		day5,
		day5b,
	)
	aoc.Main()
}

func load(p *aoc.Puzzle) (*almanac.Almanac, *almanac.Pipeline, error) {
	a, err := almanac.Parse(p.Reader())
	if err != nil {
		return nil, nil, err
	}
	pl, err := a.Pipeline(almanac.DefaultStages, almanac.WithLogger(p.Log()))
	if err != nil {
		return nil, nil, err
	}
	return a, pl, nil
}

/*
want=35

seeds: 79 14 55 13

seed-to-soil map:
50 98 2
52 50 48

soil-to-fertilizer map:
0 15 37
37 52 2
39 0 15

fertilizer-to-water map:
49 53 8
0 11 42
42 0 7
57 7 4

water-to-light map:
88 18 7
18 25 70

light-to-temperature map:
45 77 23
81 45 19
68 64 13

temperature-to-humidity map:
0 69 1
1 0 69

humidity-to-location map:
60 56 37
56 93 4
*/
func day5(p *aoc.Puzzle) (any, error) {
	a, pl, err := load(p)
	if err != nil {
		return nil, err
	}
	return pl.MinPoint(a.Seeds)
}

// want=46
func day5b(p *aoc.Puzzle) (any, error) {
	a, pl, err := load(p)
	if err != nil {
		return nil, err
	}
	ranges, err := a.SeedRanges()
	if err != nil {
		return nil, err
	}
	return pl.MinRange(almanac.WithWorkers(p.Context(), p.Workers()), ranges)
}

// Package almanac maps values through a chain of range-translation
// tables, as in the Advent of Code 2023 day 5 seed almanac.
//
// Each Table holds rules "dst src n" sending [src, src+n) onto
// [dst, dst+n); values outside every rule pass through unchanged. A
// Pipeline applies tables in a fixed stage order, either to single
// values (TranslatePoint) or to whole intervals, which are split at rule
// boundaries rather than expanded point by point (TranslateRange).
package almanac

package almanac

import (
	"errors"
	"fmt"
)

// Parse errors. A *ParseError wraps one of these.
var (
	ErrEmptyInput     = errors.New("empty input")
	ErrMissingHeader  = errors.New("missing map header")
	ErrFieldCount     = errors.New("want exactly three fields")
	ErrBadNumber      = errors.New("not a non-negative integer")
	ErrZeroLength     = errors.New("zero-length range")
	ErrOverflow       = errors.New("range overflows")
	ErrOddSeeds       = errors.New("odd number of values for start/length pairs")
	ErrDuplicateTable = errors.New("duplicate map")
)

// ErrMissingStage is matched by *MissingStageError.
var ErrMissingStage = errors.New("missing stage")

// ErrNoInputs is returned by the minimum reductions when there is nothing
// to reduce.
var ErrNoInputs = errors.New("no inputs")

// ParseError reports malformed almanac text.
type ParseError struct {
	Line int    // 1-based; 0 when not tied to a line
	Text string // offending line, if any
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("almanac: %v", e.Err)
	}
	return fmt.Sprintf("almanac: line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingStageError is returned by NewPipeline when a required stage
// name has no table.
type MissingStageError struct {
	Name string
}

func (e *MissingStageError) Error() string {
	return fmt.Sprintf("almanac: missing stage %q", e.Name)
}

func (e *MissingStageError) Is(target error) bool { return target == ErrMissingStage }

// Package geometry provides the shared helical geometry primitives: the
// nucleic acid profile, strand directions, and the sequence-generation
// helpers the recurrence is built on.
package geometry

import (
	"errors"
	"fmt"
	"math"
)

// ErrDirection reports a direction value outside {Up, Down}.
var ErrDirection = errors.New("invalid helix direction")

// ErrLengthMismatch reports generated angle/z/x sequences whose lengths
// disagree. It indicates a step-size or bound computation bug and is always
// fatal.
var ErrLengthMismatch = errors.New("coordinate sequence length mismatch")

// Direction is the traversal direction of a helix or point.
type Direction int

// The two strand directions. Down is the zero value so that an up strand
// check reduces to a truthiness test on the direction.
const (
	Down Direction = 0
	Up   Direction = 1
)

// Inverse returns the opposite direction.
func (d Direction) Inverse() Direction {
	if d == Up {
		return Down
	}
	return Up
}

// Validate checks that the direction is one of Up or Down.
func (d Direction) Validate() error {
	if d != Up && d != Down {
		return fmt.Errorf("%w: %d", ErrDirection, int(d))
	}
	return nil
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection parses "up" or "down".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up", "UP", "Up":
		return Up, nil
	case "down", "DOWN", "Down":
		return Down, nil
	default:
		return Down, fmt.Errorf("%w: %q", ErrDirection, s)
	}
}

// Arange generates the half-open arithmetic sequence [start, stop) with the
// given step. The upper bound is exclusive; callers that need the terminal
// sample add padding to stop. Negative steps generate descending sequences.
func Arange(start, stop, step float64) []float64 {
	n := int(math.Ceil((stop - start) / step))
	if n < 0 {
		n = 0
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// Mod is the floored modulo: the result always carries the sign of b, so
// reducing a negative coordinate by a positive period lands in [0, b).
func Mod(a, b float64) float64 {
	m := math.Mod(a, b)
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}

// Reverse reverses a coordinate array in place.
func Reverse(xs []float64) {
	for i, j := 0, len(xs)-1; i < j; i, j = i+1, j-1 {
		xs[i], xs[j] = xs[j], xs[i]
	}
}

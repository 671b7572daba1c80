package lever

import (
	"fmt"
	"math"
)

// StepTable maps detent indices to angles. The table is immutable; a
// configuration change builds a fresh one.
//
// Angles are evenly spaced from MinAngle to MaxAngle inclusive and follow
// the direction of the span, so a descending span yields a descending table.
type StepTable struct {
	angles []float64
}

// NewStepTable builds the table for the given span and detent count.
// Fewer than two steps cannot span an interval and is rejected.
func NewStepTable(minAngle, maxAngle float64, count int) (StepTable, error) {
	if count < MinStepCount {
		return StepTable{}, fmt.Errorf("%w: step table needs at least %d steps, got %d",
			ErrInvalidConfig, MinStepCount, count)
	}

	angles := make([]float64, count)
	width := (maxAngle - minAngle) / float64(count-1)
	for i := range angles {
		angles[i] = minAngle + float64(i)*width
	}

	return StepTable{angles: angles}, nil
}

// Len returns the number of detents.
func (t StepTable) Len() int {
	return len(t.angles)
}

// Angle returns the angle of detent i. The index must be in [0, Len()).
func (t StepTable) Angle(i int) float64 {
	return t.angles[i]
}

// Angles returns a copy of the full table in index order.
func (t StepTable) Angles() []float64 {
	out := make([]float64, len(t.angles))
	copy(out, t.angles)
	return out
}

// Nearest returns the detent index closest to angle. An angle equidistant
// from two detents resolves to the lower index.
func (t StepTable) Nearest(angle float64) int {
	best := 0
	bestDiff := math.Abs(angle - t.angles[0])
	for i := 1; i < len(t.angles); i++ {
		diff := math.Abs(angle - t.angles[i])
		if diff < bestDiff {
			best = i
			bestDiff = diff
		}
	}
	return best
}

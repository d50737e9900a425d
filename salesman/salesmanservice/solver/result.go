package solver

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/radekwlsk/go-salesman/salesman/salesmanservice/distance"
	"github.com/radekwlsk/go-salesman/salesman/salesmanservice/tour"
)

var (
	ErrDimensionMismatch = distance.ErrDimensionMismatch

	ErrInvalidIndex = errors.New("start index out of range")
)

// Result of a single solver run. It is owned by the caller once returned
// and nothing in this package keeps a reference to it.
type Result struct {
	Cycle     tour.Cycle    `json:"cycle"`
	Length    float64       `json:"length"`
	Elapsed   time.Duration `json:"elapsed"`
	Evaluated int           `json:"evaluated"`

	// Evaluations is the exhaustive search trace.
	Evaluations []Evaluation `json:"evaluations,omitempty"`
	// Steps is the nearest-neighbor construction trace.
	Steps []tour.Step `json:"steps,omitempty"`
}

// Evaluation is one candidate cycle checked by the exhaustive search.
// Index counts evaluations from 1.
type Evaluation struct {
	Index   int        `json:"index"`
	Cycle   tour.Cycle `json:"cycle"`
	Length  float64    `json:"length"`
	NewBest bool       `json:"newBest"`
}

func NewEmptyResult() Result {
	return Result{
		Cycle:  tour.Cycle{},
		Length: math.Inf(1),
	}
}

// BetterThan is strict, an equally long result is not better.
func (r *Result) BetterThan(o Result) bool {
	return r.Length < o.Length
}

// WithoutTrace returns a copy of r with trace records dropped.
func (r Result) WithoutTrace() Result {
	r.Evaluations = nil
	r.Steps = nil
	return r
}

func checkDimensions(points []tour.Point, d tour.Distances) (int, error) {
	size := 0
	if d != nil {
		size = d.Size()
	}
	if size != len(points) {
		return 0, fmt.Errorf("%w: %d points, %dx%d matrix", ErrDimensionMismatch, len(points), size, size)
	}
	return size, nil
}

// Factorial returns n!, saturating at math.MaxInt.
func Factorial(n int) int {
	f := 1
	for i := 2; i <= n; i++ {
		if f > math.MaxInt/i {
			return math.MaxInt
		}
		f *= i
	}
	return f
}

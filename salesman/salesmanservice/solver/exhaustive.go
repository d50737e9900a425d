package solver

import (
	"math"
	"time"

	"github.com/radekwlsk/go-salesman/salesman/salesmanservice/tour"
)

// DefaultTraceLimit is the number of leading evaluations always kept in
// the exhaustive trace.
const DefaultTraceLimit = 1000

// progressSteps is the number of progress checkpoints over an enumeration.
const progressSteps = 20

// Exhaustive finds the optimal cycle by checking every ordering of the
// points with index 0 fixed in front, (n-1)! candidates in total. A cycle and
// its reflection are both visited.
//
// The trace keeps the first TraceLimit evaluations plus every evaluation
// that improved on the best length so far. The zero value keeps new bests
// only.
type Exhaustive struct {
	TraceLimit int
	Observer   Observer
}

func NewExhaustive(traceLimit int, observer Observer) *Exhaustive {
	return &Exhaustive{
		TraceLimit: traceLimit,
		Observer:   observer,
	}
}

func (e *Exhaustive) observer() Observer {
	if e.Observer == nil {
		return NopObserver{}
	}
	return e.Observer
}

// Solve enumerates candidates in lexicographic order of the indices 1..n-1.
// Ties keep the earlier cycle. It fails only when the matrix does not match
// the points.
func (e *Exhaustive) Solve(points []tour.Point, d tour.Distances) (Result, error) {
	n, err := checkDimensions(points, d)
	if err != nil {
		return Result{}, err
	}
	obs := e.observer()
	begin := time.Now()

	if n <= 1 {
		cycle := tour.Cycle{}
		if n == 1 {
			cycle = tour.Cycle{0}
		}
		ev := Evaluation{Index: 1, Cycle: cycle, Length: 0, NewBest: true}
		obs.Improved(ev)
		obs.Progress(Progress{Evaluated: 1, Total: 1, Best: 0})
		return Result{
			Cycle:       cycle.Copy(),
			Length:      0,
			Elapsed:     time.Since(begin),
			Evaluated:   1,
			Evaluations: []Evaluation{ev},
		}, nil
	}

	var (
		total      = Factorial(n - 1)
		checkpoint = total / progressSteps
		perm       = make([]int, n-1)
		best       = math.Inf(1)
		bestCycle  tour.Cycle
		evaluated  int
		trace      []Evaluation
	)
	if checkpoint < 1 {
		checkpoint = 1
	}
	for i := range perm {
		perm[i] = i + 1
	}

	for {
		length := anchoredLength(d, perm)
		evaluated++

		improved := length < best
		if improved {
			best = length
			bestCycle = anchored(perm)
		}
		if evaluated <= e.TraceLimit || improved {
			ev := Evaluation{
				Index:   evaluated,
				Cycle:   anchored(perm),
				Length:  length,
				NewBest: improved,
			}
			trace = append(trace, ev)
			if improved {
				obs.Improved(ev)
			}
		}
		if evaluated%checkpoint == 0 {
			obs.Progress(Progress{Evaluated: evaluated, Total: total, Best: best})
		}

		if !nextPermutation(perm) {
			break
		}
	}

	return Result{
		Cycle:       bestCycle,
		Length:      best,
		Elapsed:     time.Since(begin),
		Evaluated:   evaluated,
		Evaluations: trace,
	}, nil
}

// anchoredLength is the length of the cycle 0, perm..., summed in the same
// edge order as tour.Cycle.Length.
func anchoredLength(d tour.Distances, perm []int) float64 {
	last := len(perm) - 1
	total := d.At(0, perm[0])
	for i := 0; i < last; i++ {
		total += d.At(perm[i], perm[i+1])
	}
	total += d.At(perm[last], 0)
	return total
}

func anchored(perm []int) tour.Cycle {
	cycle := make(tour.Cycle, len(perm)+1)
	copy(cycle[1:], perm)
	return cycle
}

// nextPermutation rearranges p into its lexicographic successor and reports
// false, leaving p untouched, when p is the last permutation.
func nextPermutation(p []int) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]
	for l, r := i+1, len(p)-1; l < r; l, r = l+1, r-1 {
		p[l], p[r] = p[r], p[l]
	}
	return true
}

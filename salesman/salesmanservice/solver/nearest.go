package solver

import (
	"fmt"
	"math"
	"time"

	"github.com/gonum/floats"
	"github.com/radekwlsk/go-salesman/salesman/salesmanservice/tour"
)

// NearestNeighbor builds a cycle greedily, always moving to the closest
// unvisited point. Equally close points resolve to the lowest index.
type NearestNeighbor struct {
	Observer Observer
}

func NewNearestNeighbor(observer Observer) *NearestNeighbor {
	return &NearestNeighbor{Observer: observer}
}

func (nn *NearestNeighbor) observer() Observer {
	if nn.Observer == nil {
		return NopObserver{}
	}
	return nn.Observer
}

// Solve builds the cycle starting at start. The result holds n steps, the
// last one closing the cycle back to start.
func (nn *NearestNeighbor) Solve(points []tour.Point, d tour.Distances, start int) (Result, error) {
	n, err := checkDimensions(points, d)
	if err != nil {
		return Result{}, err
	}
	if start < 0 || start >= n {
		return Result{}, fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidIndex, start, n)
	}
	begin := time.Now()
	r := nn.construct(d, n, start)
	r.Elapsed = time.Since(begin)
	return r, nil
}

// SolveAll runs Solve from every start index and returns the shortest
// cycle, the lowest start winning ties. Elapsed covers all runs and
// Evaluated counts them.
func (nn *NearestNeighbor) SolveAll(points []tour.Point, d tour.Distances) (Result, error) {
	n, err := checkDimensions(points, d)
	if err != nil {
		return Result{}, err
	}
	begin := time.Now()
	best := NewEmptyResult()
	if n == 0 {
		best.Length = 0
	}
	for start := 0; start < n; start++ {
		r := nn.construct(d, n, start)
		if r.BetterThan(best) {
			best = r
		}
	}
	best.Elapsed = time.Since(begin)
	best.Evaluated = n
	return best, nil
}

func (nn *NearestNeighbor) construct(d tour.Distances, n, start int) Result {
	var (
		obs        = nn.observer()
		visited    = make([]bool, n)
		candidates = make([]float64, n)
		cycle      = make(tour.Cycle, 1, n)
		steps      = make([]tour.Step, 0, n)
		current    = start
		total      float64
	)
	cycle[0] = start
	visited[start] = true

	for step := 1; step < n; step++ {
		for j := 0; j < n; j++ {
			if visited[j] {
				candidates[j] = math.Inf(1)
			} else {
				candidates[j] = d.At(current, j)
			}
		}
		next := floats.MinIdx(candidates)
		if visited[next] {
			next = firstUnvisited(visited)
		}
		dist := d.At(current, next)

		cycle = append(cycle, next)
		visited[next] = true
		total += dist

		s := tour.Step{
			Step:       step,
			From:       current,
			To:         next,
			Distance:   dist,
			Cumulative: total,
			Partial:    append([]int(nil), cycle...),
		}
		steps = append(steps, s)
		obs.Stepped(s)

		current = next
	}

	back := d.At(current, start)
	total += back
	closing := tour.Step{
		Step:       n,
		From:       current,
		To:         start,
		Distance:   back,
		Cumulative: total,
		Partial:    append(append([]int(nil), cycle...), start),
	}
	steps = append(steps, closing)
	obs.Stepped(closing)

	return Result{
		Cycle:     cycle,
		Length:    total,
		Evaluated: 1,
		Steps:     steps,
	}
}

// firstUnvisited is only reached when every remaining distance is +Inf.
func firstUnvisited(visited []bool) int {
	for i, v := range visited {
		if !v {
			return i
		}
	}
	return -1
}

package compare

import (
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/radekwlsk/go-salesman/salesman/salesmanservice/solver"
	"github.com/radekwlsk/go-salesman/salesman/salesmanservice/tour"
)

var ErrDegenerateInput = errors.New("optimal cycle has zero length, gap is undefined")

// Metrics compares an exhaustive result against a nearest-neighbor one.
// It is derived on demand and holds no reference to either result.
type Metrics struct {
	Points           int           `json:"points"`
	Optimal          float64       `json:"optimal"`
	Approximate      float64       `json:"approximate"`
	AbsoluteGap      float64       `json:"absoluteGap"`
	GapPercent       float64       `json:"gapPercent"`
	ExhaustiveTime   time.Duration `json:"exhaustiveTime"`
	ApproximateTime  time.Duration `json:"approximateTime"`
	Speedup          float64       `json:"speedup"`
	Evaluated        int           `json:"evaluated"`
	OptimalCycle     tour.Cycle    `json:"optimalCycle"`
	ApproximateCycle tour.Cycle    `json:"approximateCycle"`
}

// Compare fails with ErrDegenerateInput when the optimal length is zero.
// Speedup is +Inf when the nearest-neighbor run took no measurable time.
func Compare(exhaustive, nearest solver.Result) (Metrics, error) {
	if exhaustive.Length == 0 {
		return Metrics{}, ErrDegenerateInput
	}
	m := Metrics{
		Points:           len(exhaustive.Cycle),
		Optimal:          exhaustive.Length,
		Approximate:      nearest.Length,
		AbsoluteGap:      nearest.Length - exhaustive.Length,
		GapPercent:       Gap(nearest.Length, exhaustive.Length),
		ExhaustiveTime:   exhaustive.Elapsed,
		ApproximateTime:  nearest.Elapsed,
		Speedup:          Speedup(exhaustive.Elapsed, nearest.Elapsed),
		Evaluated:        exhaustive.Evaluated,
		OptimalCycle:     exhaustive.Cycle.Copy(),
		ApproximateCycle: nearest.Cycle.Copy(),
	}
	return m, nil
}

func Gap(approximate, optimal float64) float64 {
	return (approximate - optimal) / optimal * 100
}

func Speedup(slow, fast time.Duration) float64 {
	if fast <= 0 {
		return math.Inf(1)
	}
	return float64(slow) / float64(fast)
}

type Verdict string

const (
	VeryEffective Verdict = "very effective"
	Acceptable    Verdict = "acceptable"
	Suboptimal    Verdict = "suboptimal"
)

func (m Metrics) Verdict() Verdict {
	switch {
	case m.GapPercent < 5:
		return VeryEffective
	case m.GapPercent < 15:
		return Acceptable
	}
	return Suboptimal
}

// Convenient reports whether the heuristic is both close and much faster.
func (m Metrics) Convenient() bool {
	return m.GapPercent < 10 && m.Speedup > 100
}

// MarshalJSON encodes an infinite speedup as null, encoding/json rejects
// non-finite numbers.
func (m Metrics) MarshalJSON() ([]byte, error) {
	type metrics Metrics
	var speedup *float64
	if !math.IsInf(m.Speedup, 0) && !math.IsNaN(m.Speedup) {
		speedup = &m.Speedup
	}
	return json.Marshal(struct {
		metrics
		Speedup *float64 `json:"speedup"`
		Verdict Verdict  `json:"verdict"`
	}{metrics(m), speedup, m.Verdict()})
}

func (m *Metrics) UnmarshalJSON(data []byte) error {
	type metrics Metrics
	aux := struct {
		*metrics
		Speedup *float64 `json:"speedup"`
	}{metrics: (*metrics)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Speedup == nil {
		m.Speedup = math.Inf(1)
	} else {
		m.Speedup = *aux.Speedup
	}
	return nil
}

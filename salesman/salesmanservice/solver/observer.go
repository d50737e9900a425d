package solver

import (
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/radekwlsk/go-salesman/salesman/salesmanservice/tour"
)

// Progress is reported by the exhaustive search every 5% of the enumeration.
type Progress struct {
	Evaluated int
	Total     int
	Best      float64
}

func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 100
	}
	return float64(p.Evaluated) / float64(p.Total) * 100
}

// Observer receives solver checkpoints. Callbacks run synchronously on the
// solver's goroutine and must not retain the slices they are given.
type Observer interface {
	Progress(p Progress)
	Improved(e Evaluation)
	Stepped(s tour.Step)
}

type NopObserver struct{}

func (NopObserver) Progress(Progress)   {}
func (NopObserver) Improved(Evaluation) {}
func (NopObserver) Stepped(tour.Step)   {}

// NewLoggingObserver returns an Observer logging every checkpoint at debug level.
func NewLoggingObserver(logger log.Logger) Observer {
	return loggingObserver{level.Debug(logger)}
}

type loggingObserver struct {
	logger log.Logger
}

func (o loggingObserver) Progress(p Progress) {
	o.logger.Log(
		"event", "progress",
		"percent", p.Percent(),
		"evaluated", p.Evaluated,
		"total", p.Total,
		"best", p.Best,
	)
}

func (o loggingObserver) Improved(e Evaluation) {
	o.logger.Log(
		"event", "improved",
		"index", e.Index,
		"length", e.Length,
		"cycle", e.Cycle.Closed(),
	)
}

func (o loggingObserver) Stepped(s tour.Step) {
	o.logger.Log(
		"event", "step",
		"step", s.Step,
		"from", s.From,
		"to", s.To,
		"distance", s.Distance,
		"cumulative", s.Cumulative,
	)
}

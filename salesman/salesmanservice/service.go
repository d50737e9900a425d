package salesmanservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/google/uuid"
	"github.com/gregjones/httpcache"
	"github.com/radekwlsk/go-salesman/salesman/salesmanservice/compare"
	"github.com/radekwlsk/go-salesman/salesman/salesmanservice/dataset"
	"github.com/radekwlsk/go-salesman/salesman/salesmanservice/distance"
	"github.com/radekwlsk/go-salesman/salesman/salesmanservice/solver"
	"github.com/radekwlsk/go-salesman/salesman/salesmanservice/tour"
	"github.com/radekwlsk/go-salesman/utils"
)

// Service interface definition and basic service methods implementation,
// the actual actions performed by service on data.
type Service interface {
	Solve(context.Context, tour.Configuration) (Report, error)
	Datasets(context.Context) ([]dataset.Summary, error)
}

type Options struct {
	// MaxPoints bounds the exhaustive search, (MaxPoints-1)! cycles are checked.
	MaxPoints  int
	TraceLimit int
}

var DefaultOptions = Options{
	MaxPoints:  12,
	TraceLimit: solver.DefaultTraceLimit,
}

func New(logger log.Logger, opts Options, metrics *Metrics) Service {
	var s Service
	{
		s = NewService(log.With(logger, "layer", "solver"), opts)
		s = NewLoggingMiddleware(log.With(logger, "layer", "service"))(s)
		if metrics != nil {
			s = NewInstrumentingMiddleware(*metrics)(s)
		}
	}
	return s
}

var (
	ErrModeEmpty = errors.New("request points description mode must be provided as 'mode'")

	ErrBadMode = errors.New(fmt.Sprintf("points description mode is not valid, available modes are: %s",
		strings.Join(tour.ModeOptions, ", ")))

	ErrAPIKeyEmpty = errors.New("request must contain Google Maps API Key as 'apiKey' for address and name modes")

	ErrNotEnoughPoints = errors.New("request must contain at least two points")

	ErrTooManyPoints = errors.New("request contains more points than exhaustive search is allowed to handle")

	ErrAmbiguousPoints = errors.New("request must contain either 'dataset' or 'points', not both")

	ErrBadMetric = distance.ErrInvalidMetric

	ErrBadStart = solver.ErrInvalidIndex

	ErrUnknownDataset = dataset.ErrUnknownDataset
)

type ErrBadDescription struct {
	Point *tour.PointConfig
}

func (err ErrBadDescription) Error() string {
	return fmt.Sprintf("could not parse point description of %v", err.Point.Description)
}

type ErrDescriptionInaccurate struct {
	Point *tour.PointConfig
}

func (err ErrDescriptionInaccurate) Error() string {
	return fmt.Sprintf("description not accurate, no results found for %v", err.Point.Description)
}

// Report is the outcome of a Solve call.
type Report struct {
	ID              uuid.UUID        `json:"id"`
	Metric          distance.Metric  `json:"metric"`
	Points          []tour.Point     `json:"points"`
	Matrix          [][]float64      `json:"matrix"`
	Exhaustive      solver.Result    `json:"exhaustive"`
	NearestNeighbor solver.Result    `json:"nearestNeighbor"`
	OptimalRoute    string           `json:"optimalRoute"`
	HeuristicRoute  string           `json:"heuristicRoute"`
	Comparison      *compare.Metrics `json:"comparison,omitempty"`
}

type service struct {
	cacheTransport *httpcache.Transport
	opts           Options
	logger         log.Logger
}

func NewService(logger log.Logger, opts Options) Service {
	return &service{
		cacheTransport: httpcache.NewMemoryCacheTransport(),
		opts:           opts,
		logger:         logger,
	}
}

func (s *service) Solve(ctx context.Context, tc tour.Configuration) (r Report, err error) {
	if tc.Metric == "" {
		tc.Metric = string(distance.Euclidean)
	} else if !utils.StringIn(tc.Metric, distance.MetricOptions) {
		return Report{}, ErrBadMetric
	}

	var points []tour.Point
	if tc.Dataset != "" {
		if len(tc.PointsConfiguration) > 0 {
			return Report{}, ErrAmbiguousPoints
		}
		if points, err = dataset.Get(tc.Dataset); err != nil {
			return Report{}, err
		}
	} else {
		if tc.Mode == "" {
			return Report{}, ErrModeEmpty
		} else if !utils.StringIn(tc.Mode, tour.ModeOptions) {
			return Report{}, ErrBadMode
		}
		if tour.RequiresMaps(tc.Mode) && tc.APIKey == "" {
			return Report{}, ErrAPIKeyEmpty
		}
		if err = s.checkCount(len(tc.PointsConfiguration)); err != nil {
			return Report{}, err
		}
		if points, err = s.resolve(ctx, tc); err != nil {
			return Report{}, err
		}
	}

	n := len(points)
	if err = s.checkCount(n); err != nil {
		return Report{}, err
	}
	if !tc.MultiStart && (tc.Start < 0 || tc.Start >= n) {
		return Report{}, ErrBadStart
	}

	r = Report{
		ID:     uuid.New(),
		Metric: distance.Metric(tc.Metric),
		Points: points,
	}

	m, err := distance.Build(points, r.Metric)
	if err != nil {
		return Report{}, err
	}
	r.Matrix = m.Rows()

	logger := log.With(s.logger, "id", r.ID)

	var exhaustive = solver.NewExhaustive(
		s.opts.TraceLimit,
		solver.NewLoggingObserver(log.With(logger, "algorithm", "exhaustive")),
	)
	if r.Exhaustive, err = exhaustive.Solve(points, m); err != nil {
		return Report{}, err
	}

	var nearest = solver.NewNearestNeighbor(
		solver.NewLoggingObserver(log.With(logger, "algorithm", "nearest")),
	)
	if tc.MultiStart {
		r.NearestNeighbor, err = nearest.SolveAll(points, m)
	} else {
		r.NearestNeighbor, err = nearest.Solve(points, m, tc.Start)
	}
	if err != nil {
		return Report{}, err
	}

	r.OptimalRoute = r.Exhaustive.Cycle.Route(points)
	r.HeuristicRoute = r.NearestNeighbor.Cycle.Route(points)

	switch cmp, err := compare.Compare(r.Exhaustive, r.NearestNeighbor); {
	case err == nil:
		r.Comparison = &cmp
	case errors.Is(err, compare.ErrDegenerateInput):
		level.Warn(logger).Log("msg", "comparison skipped", "err", err)
	default:
		return Report{}, err
	}

	if !tc.IncludeTrace {
		r.Exhaustive = r.Exhaustive.WithoutTrace()
		r.NearestNeighbor = r.NearestNeighbor.WithoutTrace()
	}

	return r, nil
}

func (s *service) checkCount(n int) error {
	if n < 2 {
		return ErrNotEnoughPoints
	}
	if s.opts.MaxPoints > 0 && n > s.opts.MaxPoints {
		return ErrTooManyPoints
	}
	return nil
}

func (s *service) Datasets(context.Context) ([]dataset.Summary, error) {
	return dataset.Summaries(), nil
}

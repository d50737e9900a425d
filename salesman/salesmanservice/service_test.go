package salesmanservice

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics"
	"github.com/radekwlsk/go-salesman/salesman/salesmanservice/compare"
	"github.com/radekwlsk/go-salesman/salesman/salesmanservice/tour"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planeSquare() tour.Configuration {
	return tour.Configuration{
		Mode: tour.ModePlane,
		PointsConfiguration: []*tour.PointConfig{
			{Label: "A", Description: map[string]interface{}{"x": 0.0, "y": 0.0}},
			{Label: "B", Description: map[string]interface{}{"x": 0.0, "y": 1.0}},
			{Label: "C", Description: map[string]interface{}{"x": 1.0, "y": 1.0}},
			{Label: "D", Description: map[string]interface{}{"x": 1, "y": 0}},
		},
	}
}

func newTestService(opts Options) Service {
	return NewService(log.NewNopLogger(), opts)
}

func TestSolveUnitSquare(t *testing.T) {
	s := newTestService(DefaultOptions)
	r, err := s.Solve(context.Background(), planeSquare())
	require.NoError(t, err)

	assert.NotEmpty(t, r.ID.String())
	assert.Equal(t, "euclid", string(r.Metric))
	require.Len(t, r.Points, 4)
	assert.Equal(t, "D", r.Points[3].Label)
	assert.Equal(t, tour.Coordinates{Lat: 1, Lng: 0}, r.Points[3].Coords)

	assert.Equal(t, 4.0, r.Exhaustive.Length)
	assert.Equal(t, 6, r.Exhaustive.Evaluated)
	assert.Equal(t, 4.0, r.NearestNeighbor.Length)
	assert.Equal(t, tour.Cycle{0, 1, 2, 3}, r.NearestNeighbor.Cycle)
	assert.Equal(t, "A → B → C → D → A", r.OptimalRoute)

	require.NotNil(t, r.Comparison)
	assert.Equal(t, 0.0, r.Comparison.GapPercent)
	assert.Equal(t, compare.VeryEffective, r.Comparison.Verdict())

	assert.Nil(t, r.Exhaustive.Evaluations)
	assert.Nil(t, r.NearestNeighbor.Steps)
	require.Len(t, r.Matrix, 4)
	assert.Equal(t, 1.0, r.Matrix[0][1])
}

func TestSolveIncludeTrace(t *testing.T) {
	tc := planeSquare()
	tc.IncludeTrace = true
	r, err := newTestService(DefaultOptions).Solve(context.Background(), tc)
	require.NoError(t, err)

	assert.Len(t, r.Exhaustive.Evaluations, 6)
	assert.Len(t, r.NearestNeighbor.Steps, 4)
}

func TestSolveStartAndMultiStart(t *testing.T) {
	tc := planeSquare()
	tc.Start = 2
	r, err := newTestService(DefaultOptions).Solve(context.Background(), tc)
	require.NoError(t, err)
	assert.Equal(t, 2, r.NearestNeighbor.Cycle[0])
	assert.Equal(t, 1, r.NearestNeighbor.Evaluated)

	tc.Start = 99
	tc.MultiStart = true
	r, err = newTestService(DefaultOptions).Solve(context.Background(), tc)
	require.NoError(t, err)
	assert.Equal(t, 4, r.NearestNeighbor.Evaluated)
	assert.Equal(t, 4.0, r.NearestNeighbor.Length)
}

func TestSolveDataset(t *testing.T) {
	tc := tour.Configuration{Dataset: "cities7", Metric: "haversine"}
	r, err := newTestService(DefaultOptions).Solve(context.Background(), tc)
	require.NoError(t, err)

	assert.Equal(t, 720, r.Exhaustive.Evaluated)
	require.NotNil(t, r.Comparison)
	assert.GreaterOrEqual(t, r.Comparison.GapPercent, 0.0)
	assert.Contains(t, r.OptimalRoute, "Madrid → ")
	assert.True(t, r.Exhaustive.Cycle.IsPermutation(7))
	assert.True(t, r.NearestNeighbor.Cycle.IsPermutation(7))
}

func TestSolveGeo(t *testing.T) {
	tc := tour.Configuration{
		Mode:   tour.ModeGeo,
		Metric: "haversine",
		PointsConfiguration: []*tour.PointConfig{
			{Label: "Madrid", Description: map[string]interface{}{"lat": 40.4168, "lng": -3.7038}},
			{Label: "París", Description: map[string]interface{}{"lat": 48.8566, "lng": 2.3522}},
			{Description: map[string]interface{}{"lat": 51.5074, "lng": -0.1278}},
		},
	}
	r, err := newTestService(DefaultOptions).Solve(context.Background(), tc)
	require.NoError(t, err)
	assert.Equal(t, "#2", r.Points[2].Label)
	assert.Equal(t, 2, r.Exhaustive.Evaluated)
	assert.InDelta(t, r.Exhaustive.Length, r.NearestNeighbor.Length, 1e-9)
}

func TestSolveCoincidentPointsSkipsComparison(t *testing.T) {
	tc := tour.Configuration{
		Mode: tour.ModePlane,
		PointsConfiguration: []*tour.PointConfig{
			{Label: "A", Description: map[string]interface{}{"x": 1.0, "y": 1.0}},
			{Label: "B", Description: map[string]interface{}{"x": 1.0, "y": 1.0}},
		},
	}
	r, err := newTestService(DefaultOptions).Solve(context.Background(), tc)
	require.NoError(t, err)
	assert.Equal(t, 0.0, r.Exhaustive.Length)
	assert.Nil(t, r.Comparison)
}

func TestSolveValidation(t *testing.T) {
	many := tour.Configuration{Dataset: "cities12"}

	cases := map[string]struct {
		tc   tour.Configuration
		opts Options
		err  error
	}{
		"mode empty": {
			tc:  tour.Configuration{PointsConfiguration: planeSquare().PointsConfiguration},
			err: ErrModeEmpty,
		},
		"bad mode": {
			tc:  tour.Configuration{Mode: "id", PointsConfiguration: planeSquare().PointsConfiguration},
			err: ErrBadMode,
		},
		"api key": {
			tc:  tour.Configuration{Mode: tour.ModeAddress, PointsConfiguration: planeSquare().PointsConfiguration},
			err: ErrAPIKeyEmpty,
		},
		"not enough": {
			tc:  tour.Configuration{Mode: tour.ModePlane, PointsConfiguration: planeSquare().PointsConfiguration[:1]},
			err: ErrNotEnoughPoints,
		},
		"too many": {
			tc:   many,
			opts: Options{MaxPoints: 7},
			err:  ErrTooManyPoints,
		},
		"ambiguous": {
			tc:  tour.Configuration{Dataset: "cities7", PointsConfiguration: planeSquare().PointsConfiguration},
			err: ErrAmbiguousPoints,
		},
		"metric": {
			tc:  tour.Configuration{Dataset: "cities7", Metric: "manhattan"},
			err: ErrBadMetric,
		},
		"start": {
			tc:  tour.Configuration{Dataset: "cities7", Start: 7},
			err: ErrBadStart,
		},
		"negative start": {
			tc:  tour.Configuration{Dataset: "cities7", Start: -1},
			err: ErrBadStart,
		},
		"dataset": {
			tc:  tour.Configuration{Dataset: "cities99"},
			err: ErrUnknownDataset,
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			opts := c.opts
			if opts.MaxPoints == 0 {
				opts = DefaultOptions
			}
			_, err := newTestService(opts).Solve(context.Background(), c.tc)
			assert.ErrorIs(t, err, c.err)
		})
	}
}

func TestSolveBadDescriptions(t *testing.T) {
	descriptions := map[string]interface{}{
		"missing":      nil,
		"not a map":    "0,0",
		"unused key":   map[string]interface{}{"lat": 1.0, "lng": 1.0, "alt": 3.0},
		"out of range": map[string]interface{}{"lat": 91.0, "lng": 0.0},
		"wrong type":   map[string]interface{}{"lat": "north", "lng": 0.0},
		"nan":          map[string]interface{}{"lat": math.NaN(), "lng": 0.0},
		"infinite":     map[string]interface{}{"lat": 0.0, "lng": math.Inf(1)},
	}
	for name, d := range descriptions {
		t.Run(name, func(t *testing.T) {
			tc := tour.Configuration{
				Mode: tour.ModeGeo,
				PointsConfiguration: []*tour.PointConfig{
					{Label: "ok", Description: map[string]interface{}{"lat": 0.0, "lng": 0.0}},
					{Label: "bad", Description: d},
				},
			}
			_, err := newTestService(DefaultOptions).Solve(context.Background(), tc)
			var bad ErrBadDescription
			assert.True(t, errors.As(err, &bad), "got %v", err)
		})
	}
}

func TestSolveRejectsNonFinitePlanePoints(t *testing.T) {
	for _, d := range []map[string]interface{}{
		{"x": math.NaN(), "y": 0.0},
		{"x": 0.0, "y": math.Inf(-1)},
	} {
		tc := tour.Configuration{
			Mode: tour.ModePlane,
			PointsConfiguration: []*tour.PointConfig{
				{Label: "ok", Description: map[string]interface{}{"x": 0.0, "y": 0.0}},
				{Label: "bad", Description: d},
			},
		}
		_, err := newTestService(DefaultOptions).Solve(context.Background(), tc)
		var bad ErrBadDescription
		assert.True(t, errors.As(err, &bad), "got %v", err)
	}
}

func TestDatasets(t *testing.T) {
	ds, err := newTestService(DefaultOptions).Datasets(context.Background())
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, "cities12", ds[0].Name)
}

type counter struct {
	total  float64
	labels [][]string
}

func (c *counter) With(lvs ...string) metrics.Counter {
	c.labels = append(c.labels, lvs)
	return c
}

func (c *counter) Add(delta float64) { c.total += delta }

type histogram struct {
	values []float64
}

func (h *histogram) With(...string) metrics.Histogram { return h }
func (h *histogram) Observe(v float64)                { h.values = append(h.values, v) }

func TestNewWiresMiddlewares(t *testing.T) {
	var (
		requests  = &counter{}
		latency   = &histogram{}
		evaluated = &histogram{}
		gaps      = &histogram{}
	)
	s := New(log.NewNopLogger(), DefaultOptions, &Metrics{
		RequestCount:    requests,
		RequestLatency:  latency,
		CyclesEvaluated: evaluated,
		GapPercent:      gaps,
	})

	_, err := s.Solve(context.Background(), planeSquare())
	require.NoError(t, err)
	_, err = s.Solve(context.Background(), tour.Configuration{})
	require.Error(t, err)
	_, err = s.Datasets(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3.0, requests.total)
	assert.Equal(t, []string{"method", "Solve", "error", "false"}, requests.labels[0])
	assert.Equal(t, []string{"method", "Solve", "error", "true"}, requests.labels[1])
	assert.Equal(t, []string{"method", "Datasets", "error", "false"}, requests.labels[2])
	assert.Len(t, latency.values, 3)
	assert.Equal(t, []float64{6}, evaluated.values)
	assert.Equal(t, []float64{0}, gaps.values)
}

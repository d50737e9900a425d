package salesmanservice

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kit/kit/metrics"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/radekwlsk/go-salesman/salesman/salesmanservice/dataset"
	"github.com/radekwlsk/go-salesman/salesman/salesmanservice/tour"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the instruments updated by the instrumenting middleware.
type Metrics struct {
	RequestCount    metrics.Counter
	RequestLatency  metrics.Histogram
	CyclesEvaluated metrics.Histogram
	GapPercent      metrics.Histogram
}

// NewPrometheusMetrics registers the service instruments with the default
// Prometheus registry. Call it once per process.
func NewPrometheusMetrics(namespace string) *Metrics {
	fieldKeys := []string{"method", "error"}
	return &Metrics{
		RequestCount: kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "service",
			Name:      "request_count",
			Help:      "Number of requests received.",
		}, fieldKeys),
		RequestLatency: kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
			Namespace: namespace,
			Subsystem: "service",
			Name:      "request_latency_seconds",
			Help:      "Total duration of requests in seconds.",
		}, fieldKeys),
		CyclesEvaluated: kitprometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "exhaustive",
			Name:      "cycles_evaluated",
			Help:      "Cycles evaluated by the exhaustive search per request.",
			Buckets:   stdprometheus.ExponentialBuckets(1, 10, 9),
		}, []string{}),
		GapPercent: kitprometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "comparison",
			Name:      "gap_percent",
			Help:      "Nearest-neighbor excess length over the optimum, in percent.",
			Buckets:   []float64{0, 1, 2, 5, 10, 15, 25, 50, 100},
		}, []string{}),
	}
}

// NewInstrumentingMiddleware returns a service middleware that records
// request counts and latency, and the search size and gap of every report.
func NewInstrumentingMiddleware(m Metrics) Middleware {
	return func(next Service) Service {
		return instrumentingMiddleware{m, next}
	}
}

type instrumentingMiddleware struct {
	metrics Metrics
	next    Service
}

func (mw instrumentingMiddleware) observe(method string, begin time.Time, err error) {
	lvs := []string{"method", method, "error", fmt.Sprint(err != nil)}
	mw.metrics.RequestCount.With(lvs...).Add(1)
	mw.metrics.RequestLatency.With(lvs...).Observe(time.Since(begin).Seconds())
}

func (mw instrumentingMiddleware) Solve(ctx context.Context, tc tour.Configuration) (r Report, err error) {
	defer func(begin time.Time) {
		mw.observe("Solve", begin, err)
		if err == nil {
			mw.metrics.CyclesEvaluated.Observe(float64(r.Exhaustive.Evaluated))
			if r.Comparison != nil {
				mw.metrics.GapPercent.Observe(r.Comparison.GapPercent)
			}
		}
	}(time.Now())
	return mw.next.Solve(ctx, tc)
}

func (mw instrumentingMiddleware) Datasets(ctx context.Context) (ds []dataset.Summary, err error) {
	defer func(begin time.Time) {
		mw.observe("Datasets", begin, err)
	}(time.Now())
	return mw.next.Datasets(ctx)
}

package salesmanservice

import (
	"context"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/kr/pretty"
	"github.com/radekwlsk/go-salesman/salesman/salesmanservice/dataset"
	"github.com/radekwlsk/go-salesman/salesman/salesmanservice/tour"
)

// Middleware is a service middleware, similar to endpoint middleware
type Middleware func(Service) Service

// NewLoggingMiddleware given a logger returns a service middleware
// that logs service methods calls
func NewLoggingMiddleware(logger log.Logger) Middleware {
	return func(next Service) Service {
		return loggingMiddleware{logger, next}
	}
}

type loggingMiddleware struct {
	logger log.Logger
	next   Service
}

func (mw loggingMiddleware) Solve(ctx context.Context, tc tour.Configuration) (r Report, err error) {
	defer func(begin time.Time) {
		mw.logger.Log(
			"method", "Solve",
			"dataset", tc.Dataset,
			"mode", tc.Mode,
			"metric", tc.Metric,
			"input", pretty.Sprint(tc.PointsConfiguration),
			"id", r.ID,
			"optimal", r.Exhaustive.Length,
			"heuristic", r.NearestNeighbor.Length,
			"evaluated", r.Exhaustive.Evaluated,
			"err", err,
			"took", time.Since(begin),
		)
	}(time.Now())
	return mw.next.Solve(ctx, tc)
}

func (mw loggingMiddleware) Datasets(ctx context.Context) (ds []dataset.Summary, err error) {
	defer func(begin time.Time) {
		mw.logger.Log(
			"method", "Datasets",
			"count", len(ds),
			"err", err,
			"took", time.Since(begin),
		)
	}(time.Now())
	return mw.next.Datasets(ctx)
}

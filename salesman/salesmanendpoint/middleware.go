package salesmanendpoint

import (
	"context"
	"time"

	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
)

type erroneousResponse interface {
	Error() error
}

// NewLoggingMiddleware returns endpoint middleware that logs
// information about duration of each call and error if any occurred.
// Errors carried inside the response are logged as well.
func NewLoggingMiddleware(logger log.Logger) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (response interface{}, err error) {
			defer func(begin time.Time) {
				logErr := err
				if e, ok := response.(erroneousResponse); ok && logErr == nil {
					logErr = e.Error()
				}
				logger.Log(
					"err", logErr,
					"took", time.Since(begin),
				)
			}(time.Now())

			return next(ctx, request)
		}
	}
}

package salesmanendpoint

import (
	"context"

	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	"github.com/radekwlsk/go-salesman/salesman/salesmanservice"
	"github.com/radekwlsk/go-salesman/salesman/salesmanservice/dataset"
	"github.com/radekwlsk/go-salesman/salesman/salesmanservice/tour"
)

// Endpoints collects the service endpoints. It implements
// salesmanservice.Service so a remote instance can be used like a local one.
type Endpoints struct {
	SolveEndpoint    endpoint.Endpoint
	DatasetsEndpoint endpoint.Endpoint
}

func New(s salesmanservice.Service, logger log.Logger) Endpoints {
	var solveEndpoint endpoint.Endpoint
	{
		solveEndpoint = NewSolveEndpoint(s)
		solveEndpoint = NewLoggingMiddleware(log.With(logger, "method", "Solve"))(solveEndpoint)
	}
	var datasetsEndpoint endpoint.Endpoint
	{
		datasetsEndpoint = NewDatasetsEndpoint(s)
		datasetsEndpoint = NewLoggingMiddleware(log.With(logger, "method", "Datasets"))(datasetsEndpoint)
	}
	return Endpoints{
		SolveEndpoint:    solveEndpoint,
		DatasetsEndpoint: datasetsEndpoint,
	}
}

func (e Endpoints) Solve(ctx context.Context, tc tour.Configuration) (salesmanservice.Report, error) {
	response, err := e.SolveEndpoint(ctx, SolveRequest{Configuration: tc})
	if err != nil {
		return salesmanservice.Report{}, err
	}
	resp := response.(SolveResponse)
	return resp.Report, resp.Err
}

func (e Endpoints) Datasets(ctx context.Context) ([]dataset.Summary, error) {
	response, err := e.DatasetsEndpoint(ctx, DatasetsRequest{})
	if err != nil {
		return nil, err
	}
	resp := response.(DatasetsResponse)
	return resp.Datasets, resp.Err
}

func NewSolveEndpoint(s salesmanservice.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(SolveRequest)
		r, e := s.Solve(ctx, req.Configuration)
		return SolveResponse{Report: r, Err: e}, nil
	}
}

func NewDatasetsEndpoint(s salesmanservice.Service) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		ds, e := s.Datasets(ctx)
		return DatasetsResponse{Datasets: ds, Err: e}, nil
	}
}

type SolveRequest struct {
	Configuration tour.Configuration
}

type SolveResponse struct {
	salesmanservice.Report
	Err error `json:"err,omitempty"`
}

func (r SolveResponse) Error() error { return r.Err }

type DatasetsRequest struct{}

type DatasetsResponse struct {
	Datasets []dataset.Summary `json:"datasets"`
	Err      error             `json:"err,omitempty"`
}

func (r DatasetsResponse) Error() error { return r.Err }

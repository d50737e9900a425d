package salesmantransport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/radekwlsk/go-salesman/salesman/salesmanendpoint"
	"github.com/radekwlsk/go-salesman/salesman/salesmanservice"
)

var ErrMethodNotAllowed = errors.New("method not allowed")

// ErrMalformedRequest wraps a request body that could not be decoded.
type ErrMalformedRequest struct {
	Err error
}

func (err ErrMalformedRequest) Error() string {
	return "malformed request: " + err.Err.Error()
}

func (err ErrMalformedRequest) Unwrap() error { return err.Err }

func MakeHTTPHandler(endpoints salesmanendpoint.Endpoints, logger log.Logger) http.Handler {
	m := http.NewServeMux()
	options := []httptransport.ServerOption{
		httptransport.ServerErrorLogger(logger),
		httptransport.ServerErrorEncoder(errorEncoder),
	}

	m.Handle("/api/tour/", allow(http.MethodPost, httptransport.NewServer(
		endpoints.SolveEndpoint,
		decodeSolveRequest,
		encodeResponse,
		options...,
	)))
	m.Handle("/api/datasets/", allow(http.MethodGet, httptransport.NewServer(
		endpoints.DatasetsEndpoint,
		decodeDatasetsRequest,
		encodeResponse,
		options...,
	)))

	return m
}

func allow(method string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			errorEncoder(r.Context(), ErrMethodNotAllowed, w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// MakeHTTPClient returns a Service backed by the HTTP server at instance,
// given in "host:port" form or as a full URL.
func MakeHTTPClient(instance string) (salesmanservice.Service, error) {
	if !strings.HasPrefix(instance, "http") {
		instance = "http://" + instance
	}
	u, err := url.Parse(instance)
	if err != nil {
		return nil, err
	}

	var options []httptransport.ClientOption

	var solveEndpoint endpoint.Endpoint
	{
		solveEndpoint = httptransport.NewClient(
			http.MethodPost,
			copyURL(u, "/api/tour/"),
			encodeSolveRequest,
			decodeSolveResponse,
			options...,
		).Endpoint()
	}
	var datasetsEndpoint endpoint.Endpoint
	{
		datasetsEndpoint = httptransport.NewClient(
			http.MethodGet,
			copyURL(u, "/api/datasets/"),
			encodeDatasetsRequest,
			decodeDatasetsResponse,
			options...,
		).Endpoint()
	}

	return salesmanendpoint.Endpoints{
		SolveEndpoint:    solveEndpoint,
		DatasetsEndpoint: datasetsEndpoint,
	}, nil
}

func copyURL(base *url.URL, path string) *url.URL {
	next := *base
	next.Path = path
	return &next
}

func decodeSolveRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var request salesmanendpoint.SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&request.Configuration); err != nil {
		return nil, ErrMalformedRequest{err}
	}
	return request, nil
}

func decodeDatasetsRequest(context.Context, *http.Request) (interface{}, error) {
	return salesmanendpoint.DatasetsRequest{}, nil
}

func decodeSolveResponse(_ context.Context, resp *http.Response) (interface{}, error) {
	if resp.StatusCode != http.StatusOK {
		return nil, errorDecoder(resp)
	}
	var response salesmanendpoint.SolveResponse
	err := json.NewDecoder(resp.Body).Decode(&response)
	return response, err
}

func decodeDatasetsResponse(_ context.Context, resp *http.Response) (interface{}, error) {
	if resp.StatusCode != http.StatusOK {
		return nil, errorDecoder(resp)
	}
	var response salesmanendpoint.DatasetsResponse
	err := json.NewDecoder(resp.Body).Decode(&response)
	return response, err
}

func encodeSolveRequest(ctx context.Context, req *http.Request, request interface{}) error {
	return encodeRequest(ctx, req, request.(salesmanendpoint.SolveRequest).Configuration)
}

func encodeDatasetsRequest(context.Context, *http.Request, interface{}) error {
	return nil
}

type erroneousResponse interface {
	Error() error
}

func encodeResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	if e, ok := response.(erroneousResponse); ok && e.Error() != nil {
		errorEncoder(ctx, e.Error(), w)
		return nil
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(response)
}

func encodeRequest(_ context.Context, req *http.Request, request interface{}) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(request); err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Body = io.NopCloser(&buf)
	return nil
}

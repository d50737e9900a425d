package salesmantransport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/radekwlsk/go-salesman/salesman/salesmanservice"
)

// validationErrors are reported with 400 and restored by the client.
var validationErrors = []error{
	salesmanservice.ErrAPIKeyEmpty,
	salesmanservice.ErrModeEmpty,
	salesmanservice.ErrBadMode,
	salesmanservice.ErrNotEnoughPoints,
	salesmanservice.ErrTooManyPoints,
	salesmanservice.ErrAmbiguousPoints,
	salesmanservice.ErrBadMetric,
	salesmanservice.ErrBadStart,
	salesmanservice.ErrUnknownDataset,
}

func errorDecoder(r *http.Response) error {
	var w errorWrapper
	if err := json.NewDecoder(r.Body).Decode(&w); err != nil {
		return err
	}
	for _, known := range validationErrors {
		if w.Error == known.Error() {
			return known
		}
	}
	if r.StatusCode == http.StatusMethodNotAllowed && w.Error == ErrMethodNotAllowed.Error() {
		return ErrMethodNotAllowed
	}
	return errors.New(w.Error)
}

func errorEncoder(_ context.Context, err error, w http.ResponseWriter) {
	if err == nil {
		panic("encodeError with nil Error")
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(errToStatus(err))
	json.NewEncoder(w).Encode(map[string]interface{}{
		"err": err.Error(),
	})
}

func errToStatus(err error) int {
	for _, known := range validationErrors {
		if errors.Is(err, known) {
			return http.StatusBadRequest
		}
	}
	if errors.Is(err, ErrMethodNotAllowed) {
		return http.StatusMethodNotAllowed
	}
	var (
		badDescription salesmanservice.ErrBadDescription
		inaccurate     salesmanservice.ErrDescriptionInaccurate
		malformed      ErrMalformedRequest
	)
	switch {
	case errors.As(err, &badDescription),
		errors.As(err, &inaccurate),
		errors.As(err, &malformed):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

type errorWrapper struct {
	Error string `json:"err"`
}

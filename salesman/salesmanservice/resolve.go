package salesmanservice

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/mitchellh/mapstructure"
	"github.com/radekwlsk/go-salesman/salesman/salesmanservice/tour"
	"googlemaps.github.io/maps"
)

// resolve decodes every point description according to the mode and turns
// it into coordinates, geocoding through Maps when the mode needs it.
// Points keep their configuration order.
func (s *service) resolve(ctx context.Context, tc tour.Configuration) ([]tour.Point, error) {
	var c *maps.Client
	if tour.RequiresMaps(tc.Mode) {
		var err error
		c, err = maps.NewClient(maps.WithAPIKey(tc.APIKey), maps.WithHTTPClient(s.cacheTransport.Client()))
		if err != nil {
			return nil, err
		}
	}

	points := make([]tour.Point, len(tc.PointsConfiguration))

	wg := sync.WaitGroup{}
	wg.Add(len(tc.PointsConfiguration))
	errChan := make(chan error, len(tc.PointsConfiguration))
	for i, p := range tc.PointsConfiguration {
		go func(i int, point *tour.PointConfig) {
			defer wg.Done()
			description, err := decodeDescription(tc.Mode, point)
			if err != nil {
				errChan <- err
				return
			}
			coords, err := description.Coordinates(ctx, c, tc.Language)
			switch err {
			case nil:
				break
			case tour.ErrZeroResults:
				errChan <- ErrDescriptionInaccurate{point}
				return
			default:
				errChan <- err
				return
			}
			label := point.Label
			if label == "" {
				label = fmt.Sprintf("#%d", i)
			}
			points[i] = tour.Point{Label: label, Coords: coords}
			errChan <- nil
		}(i, p)
	}
	wg.Wait()
	close(errChan)
	for err := range errChan {
		if err != nil {
			return nil, err
		}
	}
	return points, nil
}

func decodeDescription(mode string, point *tour.PointConfig) (tour.Description, error) {
	if point == nil || point.Description == nil {
		return nil, ErrBadDescription{&tour.PointConfig{}}
	}
	result, ok := tour.NewDescription(mode)
	if !ok {
		return nil, ErrBadMode
	}
	config := mapstructure.DecoderConfig{ErrorUnused: true, Result: result}
	decoder, err := mapstructure.NewDecoder(&config)
	if err != nil {
		return nil, err
	}
	if err = decoder.Decode(point.Description); err != nil {
		return nil, ErrBadDescription{point}
	}
	switch d := result.(type) {
	case *tour.GeoDescription:
		if !finite(d.Lat, d.Lng) || d.Lat < -90 || d.Lat > 90 || d.Lng < -180 || d.Lng > 180 {
			return nil, ErrBadDescription{point}
		}
	case *tour.PlaneDescription:
		if !finite(d.X, d.Y) {
			return nil, ErrBadDescription{point}
		}
	case *tour.AddressDescription:
		if d.IsEmpty() {
			return nil, ErrBadDescription{point}
		}
	case *tour.NameDescription:
		if d.Name == "" {
			return nil, ErrBadDescription{point}
		}
	}
	return result, nil
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

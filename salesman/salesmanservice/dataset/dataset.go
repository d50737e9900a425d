package dataset

import (
	"errors"
	"sort"

	"github.com/radekwlsk/go-salesman/salesman/salesmanservice/tour"
)

var ErrUnknownDataset = errors.New("unknown dataset")

// Summary describes a built-in dataset without its coordinates.
type Summary struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Points      int      `json:"points"`
	Labels      []string `json:"labels"`
}

type dataset struct {
	description string
	points      []tour.Point
}

var cities7 = []tour.Point{
	tour.NewPoint("Madrid", 40.4168, -3.7038),
	tour.NewPoint("París", 48.8566, 2.3522),
	tour.NewPoint("Londres", 51.5074, -0.1278),
	tour.NewPoint("Berlín", 52.5200, 13.4050),
	tour.NewPoint("Roma", 41.9028, 12.4964),
	tour.NewPoint("Ámsterdam", 52.3676, 4.9041),
	tour.NewPoint("Bruselas", 50.8503, 4.3517),
}

var cities12 = append(append([]tour.Point(nil), cities7...),
	tour.NewPoint("Viena", 48.2082, 16.3738),
	tour.NewPoint("Praga", 50.0755, 14.4378),
	tour.NewPoint("Zúrich", 47.3769, 8.5417),
	tour.NewPoint("Copenhague", 55.6761, 12.5683),
	tour.NewPoint("Budapest", 47.4979, 19.0402),
)

var datasets = map[string]dataset{
	"cities7":  {"7 European capitals, quick", cities7},
	"cities12": {"12 European cities, scalability check, (12-1)! cycles take minutes", cities12},
}

// Get returns a copy of the named dataset's points.
func Get(name string) ([]tour.Point, error) {
	d, ok := datasets[name]
	if !ok {
		return nil, ErrUnknownDataset
	}
	return append([]tour.Point(nil), d.points...), nil
}

// Names lists dataset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(datasets))
	for name := range datasets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Summaries() []Summary {
	names := Names()
	summaries := make([]Summary, len(names))
	for i, name := range names {
		d := datasets[name]
		summaries[i] = Summary{
			Name:        name,
			Description: d.description,
			Points:      len(d.points),
			Labels:      tour.Labels(d.points),
		}
	}
	return summaries
}

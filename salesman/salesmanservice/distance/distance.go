package distance

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/radekwlsk/go-salesman/salesman/salesmanservice/tour"
	"gonum.org/v1/gonum/mat"
)

// EarthRadius is the mean Earth radius in kilometres used by Haversine.
const EarthRadius = 6371.0

type Metric string

const (
	// Euclidean is a coordinate-space distance. With lat/lng input the result
	// is in degrees and does not correspond to any real-world length.
	Euclidean Metric = "euclid"
	// Haversine is the great-circle distance in kilometres.
	Haversine Metric = "haversine"
)

var MetricOptions = []string{
	string(Euclidean),
	string(Haversine),
}

var (
	ErrInvalidMetric = errors.New(fmt.Sprintf(
		"distance metric is not valid, available metrics are: %s",
		strings.Join(MetricOptions, ", ")))

	ErrDimensionMismatch = errors.New("distance matrix size does not match the number of points")

	ErrInvalidDistance = errors.New("distances must be finite, non-negative, symmetric with zero diagonal")
)

func EuclideanDistance(a, b tour.Coordinates) float64 {
	dLat, dLng := a.Lat-b.Lat, a.Lng-b.Lng
	return math.Sqrt(dLat*dLat + dLng*dLng)
}

func HaversineDistance(a, b tour.Coordinates) float64 {
	lat1, lng1 := radians(a.Lat), radians(a.Lng)
	lat2, lng2 := radians(b.Lat), radians(b.Lng)

	dLat := lat2 - lat1
	dLng := lng2 - lng1

	h := math.Pow(math.Sin(dLat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLng/2), 2)
	// rounding can push h just past 1 for antipodal points
	h = math.Min(1, math.Max(0, h))
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadius * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func (m Metric) Func() (func(a, b tour.Coordinates) float64, error) {
	switch m {
	case Euclidean:
		return EuclideanDistance, nil
	case Haversine:
		return HaversineDistance, nil
	}
	return nil, ErrInvalidMetric
}

// Matrix is an immutable symmetric distance matrix with zero diagonal.
// The zero-size matrix holds no gonum storage.
type Matrix struct {
	matrix *mat.SymDense
	n      int
}

// Build computes pairwise distances of points under metric.
func Build(points []tour.Point, metric Metric) (*Matrix, error) {
	dist, err := metric.Func()
	if err != nil {
		return nil, err
	}
	n := len(points)
	if n == 0 {
		return &Matrix{}, nil
	}
	m := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := dist(points[i].Coords, points[j].Coords)
			if !valid(d) {
				return nil, fmt.Errorf("%w: %s to %s is %v", ErrInvalidDistance, points[i].Label, points[j].Label, d)
			}
			m.SetSym(i, j, d)
		}
	}
	return &Matrix{matrix: m, n: n}, nil
}

// NewMatrix validates rows as a distance matrix and copies them.
func NewMatrix(rows [][]float64) (*Matrix, error) {
	n := len(rows)
	for _, r := range rows {
		if len(r) != n {
			return nil, ErrDimensionMismatch
		}
	}
	if n == 0 {
		return &Matrix{}, nil
	}
	m := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		if rows[i][i] != 0 {
			return nil, fmt.Errorf("%w: d[%d][%d] = %v", ErrInvalidDistance, i, i, rows[i][i])
		}
		for j := i + 1; j < n; j++ {
			if !valid(rows[i][j]) || rows[i][j] != rows[j][i] {
				return nil, fmt.Errorf("%w: d[%d][%d] = %v, d[%d][%d] = %v",
					ErrInvalidDistance, i, j, rows[i][j], j, i, rows[j][i])
			}
			m.SetSym(i, j, rows[i][j])
		}
	}
	return &Matrix{matrix: m, n: n}, nil
}

func valid(d float64) bool {
	return d >= 0 && !math.IsInf(d, 1) && !math.IsNaN(d)
}

func (m *Matrix) At(i, j int) float64 {
	return m.matrix.At(i, j)
}

func (m *Matrix) Size() int {
	return m.n
}

// Rows returns a copy of the matrix as nested slices.
func (m *Matrix) Rows() [][]float64 {
	rows := make([][]float64, m.n)
	for i := range rows {
		rows[i] = make([]float64, m.n)
		for j := range rows[i] {
			rows[i][j] = m.matrix.At(i, j)
		}
	}
	return rows
}

// Format lets fmt verbs with precision, e.g. "%.4f", render the matrix
// through gonum's formatter.
func (m *Matrix) Format(f fmt.State, c rune) {
	if m.n == 0 {
		fmt.Fprint(f, "[]")
		return
	}
	mat.Formatted(m.matrix, mat.Squeeze()).Format(f, c)
}

// Table renders the matrix with row and column labels.
func (m *Matrix) Table(labels []string, decimals int) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, l := range labels {
		fmt.Fprintf(w, "\t%s", l)
	}
	fmt.Fprintln(w, "\t")
	for i := 0; i < m.n; i++ {
		fmt.Fprint(w, labelAt(labels, i))
		for j := 0; j < m.n; j++ {
			fmt.Fprintf(w, "\t%.*f", decimals, m.matrix.At(i, j))
		}
		fmt.Fprintln(w, "\t")
	}
	w.Flush()
	return b.String()
}

func labelAt(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return fmt.Sprintf("#%d", i)
}

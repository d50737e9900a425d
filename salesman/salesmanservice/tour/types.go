package tour

import (
	"fmt"
	"strings"
)

// Coordinates of a point. For geographic input Lat and Lng are degrees,
// plane input stores x in Lat and y in Lng.
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Point is identified by its index in the input sequence, never by label.
type Point struct {
	Label  string      `json:"label" yaml:"label"`
	Coords Coordinates `json:"coords" yaml:"coords"`
}

func NewPoint(label string, lat, lng float64) Point {
	return Point{Label: label, Coords: Coordinates{Lat: lat, Lng: lng}}
}

// Labels returns labels of points in input order.
func Labels(points []Point) []string {
	labels := make([]string, len(points))
	for i, p := range points {
		labels[i] = p.Label
	}
	return labels
}

// Distances is the read-only view of a distance matrix both solvers work on.
type Distances interface {
	At(i, j int) float64
	Size() int
}

// Cycle is a Hamiltonian cycle as point indices, the edge from the last
// index back to the first is implicit.
type Cycle []int

// Length sums the n edges of the closed cycle, closing edge last.
func (c Cycle) Length(d Distances) float64 {
	n := len(c)
	if n < 2 {
		return 0.0
	}
	var total float64
	for i := 0; i < n-1; i++ {
		total += d.At(c[i], c[i+1])
	}
	total += d.At(c[n-1], c[0])
	return total
}

// IsPermutation reports whether c visits every index in [0, n) exactly once.
func (c Cycle) IsPermutation(n int) bool {
	if len(c) != n {
		return false
	}
	seen := make([]bool, n)
	for _, i := range c {
		if i < 0 || i >= n || seen[i] {
			return false
		}
		seen[i] = true
	}
	return true
}

// Closed returns a copy of the cycle with its first index appended.
func (c Cycle) Closed() []int {
	if len(c) == 0 {
		return []int{}
	}
	closed := make([]int, len(c), len(c)+1)
	copy(closed, c)
	return append(closed, c[0])
}

func (c Cycle) Copy() Cycle {
	cp := make(Cycle, len(c))
	copy(cp, c)
	return cp
}

func (c Cycle) Equal(o Cycle) bool {
	if len(c) != len(o) {
		return false
	}
	for i := range c {
		if c[i] != o[i] {
			return false
		}
	}
	return true
}

func (c Cycle) Labels(points []Point) []string {
	labels := make([]string, len(c))
	for i, idx := range c {
		labels[i] = points[idx].Label
	}
	return labels
}

// Route renders the closed cycle as "A → B → C → A".
func (c Cycle) Route(points []Point) string {
	if len(c) == 0 {
		return ""
	}
	labels := c.Labels(points)
	return fmt.Sprintf("%s → %s", strings.Join(labels, " → "), labels[0])
}

// Step is one move of a greedy tour construction. Partial holds the tour
// built so far, including To; the closing step repeats the start at its end.
type Step struct {
	Step       int     `json:"step"`
	From       int     `json:"from"`
	To         int     `json:"to"`
	Distance   float64 `json:"distance"`
	Cumulative float64 `json:"cumulative"`
	Partial    []int   `json:"partial"`
}

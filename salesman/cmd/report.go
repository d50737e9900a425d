package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/radekwlsk/go-salesman/salesman/salesmanservice"
	"github.com/radekwlsk/go-salesman/salesman/salesmanservice/compare"
	"github.com/radekwlsk/go-salesman/salesman/salesmanservice/distance"
	"github.com/radekwlsk/go-salesman/salesman/salesmanservice/tour"
)

func printReport(out io.Writer, r salesmanservice.Report, steps bool) error {
	labels := tour.Labels(r.Points)

	m, err := distance.NewMatrix(r.Matrix)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d points, %s distances\n\n", len(r.Points), r.Metric)
	fmt.Fprintln(out, m.Table(labels, 2))

	fmt.Fprintf(out, "Optimal route:   %s (%.4f)\n", r.OptimalRoute, r.Exhaustive.Length)
	fmt.Fprintf(out, "Heuristic route: %s (%.4f)\n\n", r.HeuristicRoute, r.NearestNeighbor.Length)

	if steps && len(r.NearestNeighbor.Steps) > 0 {
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "Step\tFrom\tTo\tDistance\tCumulative\t")
		for _, s := range r.NearestNeighbor.Steps {
			fmt.Fprintf(w, "%d\t%s\t%s\t%.4f\t%.4f\t\n", s.Step, labels[s.From], labels[s.To], s.Distance, s.Cumulative)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}

	if r.Comparison == nil {
		fmt.Fprintln(out, "Optimal tour has zero length, comparison skipped.")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, row := range compare.Table(*r.Comparison) {
		fmt.Fprintf(w, "%s\t%s\n", row.Metric, row.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nNearest neighbor is %s", r.Comparison.Verdict())
	if r.Comparison.Convenient() {
		fmt.Fprint(out, " and worth using at this size")
	}
	fmt.Fprintln(out, ".")
	return nil
}

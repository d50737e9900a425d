package compare

import (
	"encoding/csv"
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Row struct {
	Metric string
	Value  string
}

var printer = message.NewPrinter(language.English)

// Table lays the metrics out as metric/value rows for console and CSV output.
func Table(m Metrics) []Row {
	return []Row{
		{"Points", fmt.Sprintf("%d", m.Points)},
		{"Optimal length", fmt.Sprintf("%.4f", m.Optimal)},
		{"Heuristic length", fmt.Sprintf("%.4f", m.Approximate)},
		{"Absolute gap", fmt.Sprintf("%.4f", m.AbsoluteGap)},
		{"Gap (%)", fmt.Sprintf("%.2f", m.GapPercent)},
		{"Exhaustive time (s)", fmt.Sprintf("%.6f", m.ExhaustiveTime.Seconds())},
		{"Heuristic time (s)", fmt.Sprintf("%.6f", m.ApproximateTime.Seconds())},
		{"Speedup (x)", fmt.Sprintf("%.2f", m.Speedup)},
		{"Cycles evaluated", printer.Sprintf("%d", m.Evaluated)},
	}
}

func WriteCSV(w io.Writer, m Metrics) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Metric", "Value"}); err != nil {
		return err
	}
	for _, r := range Table(m) {
		if err := cw.Write([]string{r.Metric, r.Value}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/kr/pretty"
	"github.com/radekwlsk/go-salesman/salesman/salesmanservice"
	"github.com/radekwlsk/go-salesman/salesman/salesmanservice/compare"
	"github.com/radekwlsk/go-salesman/salesman/salesmanservice/tour"
	"github.com/radekwlsk/go-salesman/salesman/salesmantransport"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const defaultDataset = "cities7"

var ErrPointsAndDataset = errors.New("--points and --dataset are mutually exclusive")

type solveOptions struct {
	dataset      string
	points       string
	apiKey       string
	metric       string
	start        int
	multiStart   bool
	includeTrace bool
	csv          string
	remote       string
	verbose      bool
}

func newSolveCommand(a *app) *cobra.Command {
	o := &solveOptions{}
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve a tour and compare the heuristic with the optimum",
		Long: `Solve a built-in dataset or the points listed in a YAML file.

The points file holds the same fields as the HTTP request body:

  mode: geo
  metric: haversine
  points:
    - label: Madrid
      description: {lat: 40.4168, lng: -3.7038}
    - label: Paris
      description: {lat: 48.8566, lng: 2.3522}`,
		Example: `  salesman solve --dataset cities7 --metric haversine
  salesman solve --points tour.yaml --multi-start --csv comparison.csv
  salesman solve --dataset cities12 --remote localhost:8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tc, err := o.configuration(cmd)
			if err != nil {
				return err
			}
			s, err := o.service(a)
			if err != nil {
				return err
			}
			r, err := s.Solve(cmd.Context(), tc)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if o.verbose {
				pretty.Fprintf(out, "%# v\n", r)
			}
			if err := printReport(out, r, tc.IncludeTrace); err != nil {
				return err
			}
			if o.csv != "" {
				return writeComparison(o.csv, r.Comparison)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.dataset, "dataset", "", "built-in dataset to solve (default \""+defaultDataset+"\" when --points is not given)")
	f.StringVar(&o.points, "points", "", "YAML file with the tour configuration")
	f.StringVar(&o.apiKey, "api-key", "", "Google Maps API key for address and name modes")
	f.StringVar(&o.metric, "metric", "", "distance metric, euclid or haversine")
	f.IntVar(&o.start, "start", 0, "nearest-neighbor start index")
	f.BoolVar(&o.multiStart, "multi-start", false, "run nearest-neighbor from every point and keep the best")
	f.BoolVar(&o.includeTrace, "include-trace", false, "print the nearest-neighbor construction steps")
	f.StringVar(&o.csv, "csv", "", "write the comparison table to this CSV file")
	f.StringVar(&o.remote, "remote", "", "solve on a salesman server at host:port instead of locally")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "dump the whole report")
	return cmd
}

// configuration reads the points file, if any, and applies flags set on
// the command line over it.
func (o *solveOptions) configuration(cmd *cobra.Command) (tour.Configuration, error) {
	var tc tour.Configuration
	if o.points != "" {
		if o.dataset != "" {
			return tc, ErrPointsAndDataset
		}
		var err error
		if tc, err = readConfiguration(o.points); err != nil {
			return tc, err
		}
	} else {
		tc.Dataset = o.dataset
		if tc.Dataset == "" {
			tc.Dataset = defaultDataset
		}
	}

	flags := cmd.Flags()
	if flags.Changed("api-key") {
		tc.APIKey = o.apiKey
	}
	if flags.Changed("metric") {
		tc.Metric = o.metric
	}
	if flags.Changed("start") {
		tc.Start = o.start
	}
	if flags.Changed("multi-start") {
		tc.MultiStart = o.multiStart
	}
	if flags.Changed("include-trace") {
		tc.IncludeTrace = o.includeTrace
	}
	return tc, nil
}

func (o *solveOptions) service(a *app) (salesmanservice.Service, error) {
	if o.remote != "" {
		return salesmantransport.MakeHTTPClient(o.remote)
	}
	return salesmanservice.New(a.logger, a.cfg.ServiceOptions(), nil), nil
}

func readConfiguration(path string) (tour.Configuration, error) {
	var tc tour.Configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return tc, err
	}
	if err := yaml.Unmarshal(data, &tc); err != nil {
		return tc, fmt.Errorf("parsing %s: %w", path, err)
	}
	return tc, nil
}

func writeComparison(path string, m *compare.Metrics) error {
	if m == nil {
		return compare.ErrDegenerateInput
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := compare.WriteCSV(f, *m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

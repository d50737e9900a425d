package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/radekwlsk/go-salesman/salesman/salesmanservice"
	"github.com/radekwlsk/go-salesman/salesman/salesmantransport"
	"github.com/spf13/cobra"
)

func newDatasetsCommand(a *app) *cobra.Command {
	var remote string
	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "List built-in datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				s   salesmanservice.Service
				err error
			)
			if remote != "" {
				if s, err = salesmantransport.MakeHTTPClient(remote); err != nil {
					return err
				}
			} else {
				s = salesmanservice.New(a.logger, a.cfg.ServiceOptions(), nil)
			}
			ds, err := s.Datasets(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPOINTS\tDESCRIPTION\tLABELS")
			for _, d := range ds {
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", d.Name, d.Points, d.Description, strings.Join(d.Labels, ", "))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&remote, "remote", "", "list datasets of a salesman server at host:port")
	return cmd
}

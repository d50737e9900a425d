package main

import (
	"os"

	"github.com/go-kit/kit/log"
	"github.com/radekwlsk/go-salesman/salesman/config"
	"github.com/spf13/cobra"
)

// app carries the process configuration shared by all subcommands.
type app struct {
	envFile string
	cfg     config.Config
	logger  log.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "salesman",
		Short: "Exact and nearest-neighbor solutions of small travelling salesman tours",
		Long: `salesman solves small travelling salesman instances twice: exhaustively,
checking every cycle that starts at the first point, and with the nearest-neighbor
heuristic. It reports both tours and how far the heuristic is from the optimum.

Configuration is read from SALESMAN_* environment variables and an optional .env file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.envFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = cfg.Logger(os.Stderr)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file read before the environment")

	root.AddCommand(
		newServeCommand(a),
		newSolveCommand(a),
		newDatasetsCommand(a),
	)
	return root
}

package main

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-kit/kit/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/radekwlsk/go-salesman/salesman/salesmanendpoint"
	"github.com/radekwlsk/go-salesman/salesman/salesmanservice"
	"github.com/radekwlsk/go-salesman/salesman/salesmantransport"
	"github.com/spf13/cobra"
)

func newServeCommand(a *app) *cobra.Command {
	var httpAddr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("http-addr") {
				a.cfg.HTTPAddr = httpAddr
			}
			return serve(a)
		},
	}
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":8080", "HTTP address to listen on, overrides SALESMAN_HTTP_ADDR")
	return cmd
}

func newHTTPHandler(a *app, metrics *salesmanservice.Metrics) http.Handler {
	var (
		service   = salesmanservice.New(a.logger, a.cfg.ServiceOptions(), metrics)
		endpoints = salesmanendpoint.New(service, log.With(a.logger, "layer", "endpoint"))
		api       = salesmantransport.MakeHTTPHandler(endpoints, log.With(a.logger, "component", "HTTP"))
	)
	m := http.NewServeMux()
	m.Handle("/api/", api)
	m.Handle(a.cfg.MetricsPath, promhttp.Handler())
	return m
}

func serve(a *app) error {
	logger := a.logger
	logger.Log("msg", "salesman service started")
	defer logger.Log("msg", "finished")

	httpHandler := newHTTPHandler(a, salesmanservice.NewPrometheusMetrics("salesman"))

	errs := make(chan error)
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		errs <- fmt.Errorf("%s", <-c)
	}()

	go func() {
		httpListener, err := net.Listen("tcp", a.cfg.HTTPAddr)
		if err != nil {
			errs <- err
			return
		}
		logger.Log("transport", "HTTP", "addr", a.cfg.HTTPAddr, "metrics", a.cfg.MetricsPath)
		errs <- http.Serve(httpListener, httpHandler)
	}()

	logger.Log("exit", <-errs)
	return nil
}

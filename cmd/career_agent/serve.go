package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/vagacerta/career-agent/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  "Start an HTTP server exposing the extraction and generation endpoints.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp(context.Background(), false)
	if err != nil {
		return err
	}
	if servePort > 0 {
		a.settings.Port = servePort
	}

	cfg := server.Config{
		Settings: a.settings,
		Log:      a.log,
		Closers:  []io.Closer{closerFunc(a.Close)},
	}
	// Interface fields stay nil on an unconfigured deploy so the server
	// reports 503 instead of calling through a nil agent.
	if a.extractor != nil {
		cfg.Extractor = a.extractor
	}
	if a.generator != nil {
		cfg.Generator = a.generator
	}

	return server.New(cfg).Start()
}

type closerFunc func()

func (f closerFunc) Close() error {
	f()
	return nil
}

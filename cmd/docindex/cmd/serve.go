package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/jonwraymond/docindex/internal/config"
	"github.com/jonwraymond/docindex/internal/metrics"
	"github.com/jonwraymond/docindex/server"
)

// serveOptions holds CLI flags for serve.
type serveOptions struct {
	transport   string
	addr        string
	metricsAddr string
	seed        string
}

func newServeCmd(root *rootOptions) *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the index as an MCP server",
		Long: `Serve the index over the Model Context Protocol.

The index starts empty unless a seed file is given.

Examples:
  docindex serve
  docindex serve --seed docs.yaml
  docindex serve --transport http --addr :8080 --metrics-addr :9100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			applyServeFlags(cmd, root.cfg, opts)
			if err := root.cfg.Validate(); err != nil {
				return err
			}
			return runServe(cmd.Context(), root, opts.seed)
		},
	}

	cmd.Flags().StringVarP(&opts.transport, "transport", "t", config.TransportStdio, "Transport: stdio, http")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address for the http transport")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	cmd.Flags().StringVar(&opts.seed, "seed", "", "YAML or JSON file of documents to load at startup")

	return cmd
}

// applyServeFlags lets explicitly set flags override the config file.
func applyServeFlags(cmd *cobra.Command, cfg *config.Config, opts serveOptions) {
	flags := cmd.Flags()
	if flags.Changed("transport") {
		cfg.Server.Transport = opts.transport
	}
	if flags.Changed("addr") {
		cfg.Server.Addr = opts.addr
	}
	if flags.Changed("metrics-addr") {
		cfg.Server.MetricsAddr = opts.metricsAddr
	}
}

func runServe(ctx context.Context, root *rootOptions, seedPath string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := root.cfg
	logger := root.logger

	ix, err := root.buildIndex(seedPath)
	if err != nil {
		return err
	}
	defer ix.Close()

	if cfg.Server.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		collector, err := metrics.Register(reg, ix)
		if err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}
		defer collector.Close()

		metricsServer := metrics.NewServer(cfg.Server.MetricsAddr, reg)
		go func() {
			logger.Info("serving metrics", "addr", cfg.Server.MetricsAddr)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metricsServer.Shutdown(shutdownCtx)
		}()
	}

	srv, err := server.New(ix, server.Config{
		Name:         cfg.Server.Name,
		Version:      Version,
		DefaultLimit: cfg.Server.DefaultLimit,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	if cfg.Server.Transport == config.TransportHTTP {
		return srv.RunHTTP(ctx, cfg.Server.Addr)
	}
	return srv.Run(ctx)
}

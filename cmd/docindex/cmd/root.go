// Package cmd provides the CLI commands for docindex.
package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/docindex/collect"
	"github.com/jonwraymond/docindex/index"
	"github.com/jonwraymond/docindex/internal/config"
	"github.com/jonwraymond/docindex/internal/logging"
)

// Version is set at build time with -ldflags.
var Version = "dev"

// rootOptions holds the persistent flags and the state they produce.
type rootOptions struct {
	configPath string
	debug      bool

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCmd creates the root command for the docindex CLI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "docindex",
		Short: "Searchable index of pages, bookmarks and notes",
		Long: `docindex keeps one record per URL, merging partial observations
from tabs, bookmarks, page content and notes, and serves weighted
fuzzy search over them as an MCP server.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	cmd.SetVersionTemplate("docindex version {{.Version}}\n")

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML config file")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newSearchCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.debug {
		cfg.Log.Level = "debug"
	}
	o.cfg = cfg
	o.logger = logging.Setup(cfg.Log, cmd.ErrOrStderr())
	return nil
}

// buildIndex creates and initializes an index from the loaded config and
// applies the seed file, if any.
func (o *rootOptions) buildIndex(seedPath string) (*index.Index, error) {
	query := o.cfg.Search.Options
	ix := index.New(index.Options{
		Logger:    o.logger,
		Fields:    o.cfg.Search.Fields,
		Query:     &query,
		CacheSize: o.cfg.Cache.Size,
	})
	if err := ix.Init(); err != nil {
		return nil, err
	}

	if seedPath == "" {
		seedPath = o.cfg.Seed
	}
	if seedPath == "" {
		return ix, nil
	}

	seed, err := collect.LoadSeed(seedPath)
	if err != nil {
		_ = ix.Close()
		return nil, err
	}
	if err := collect.New(ix, collect.Options{Logger: o.logger}).Apply(seed); err != nil {
		_ = ix.Close()
		return nil, fmt.Errorf("apply seed: %w", err)
	}
	return ix, nil
}

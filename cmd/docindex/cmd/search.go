package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/docindex/search"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	limit  int
	format string
	seed   string
}

func newSearchCmd(root *rootOptions) *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search a seed file from the command line",
		Long: `Load a seed file into a fresh index and run one query against it.

Examples:
  docindex search --seed docs.yaml golang
  docindex search --seed docs.yaml "tutorial !python" --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return runSearch(cmd.OutOrStdout(), root, query, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 10, "Maximum number of results (0 for all)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")
	cmd.Flags().StringVar(&opts.seed, "seed", "", "YAML or JSON file of documents to search")

	return cmd
}

func runSearch(out io.Writer, root *rootOptions, query string, opts searchOptions) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unknown format %q", opts.format)
	}

	ix, err := root.buildIndex(opts.seed)
	if err != nil {
		return err
	}
	defer ix.Close()

	results, err := ix.Search(query, opts.limit)
	if err != nil {
		return err
	}

	if opts.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	return printResults(out, results)
}

func printResults(out io.Writer, results search.Results) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(out, "No results.")
		return err
	}
	for i, r := range results {
		label := r.Document.Title
		if label == "" {
			label = r.Document.Name
		}
		if _, err := fmt.Fprintf(out, "%2d. %-8.3f %s", i+1, r.Score, r.Document.URL); err != nil {
			return err
		}
		if label != "" {
			if _, err := fmt.Fprintf(out, "  %s", label); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(out); err != nil {
			return err
		}
	}
	return nil
}

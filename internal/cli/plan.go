package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mmcdole/gallery/internal/adapter"
	"github.com/mmcdole/gallery/internal/domain"
	"github.com/mmcdole/gallery/internal/selection"
)

type planOptions struct {
	count  int
	total  int
	asJSON bool
}

func newPlanCmd(root *options) *cobra.Command {
	opts := &planOptions{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print how 'select first N' is split across pages",
		Example: `  # First 15 of 100 artworks at the default page size
  gallery plan -n 15 --total 100

  # Same request as JSON with 25 artworks per page
  gallery plan -n 60 --total 1000 --page-size 25 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pageSize := root.pageSize
			if pageSize <= 0 {
				pageSize = adapter.DefaultPageSize
			}
			return executePlan(cmd.OutOrStdout(), opts.count, opts.total, pageSize, opts.asJSON)
		},
	}

	cmd.Flags().IntVarP(&opts.count, "count", "n", 0, "number of artworks to select")
	cmd.Flags().IntVar(&opts.total, "total", 0, "records in the dataset (0 = unknown)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print JSON instead of YAML")
	_ = cmd.MarkFlagRequired("count")

	return cmd
}

// executePlan writes the page quotas for selecting the first n of total
// records, in ascending page order.
func executePlan(w io.Writer, n, total, pageSize int, asJSON bool) error {
	if n < 1 {
		return fmt.Errorf("%w: -n must be >= 1, got %d", domain.ErrInvalidCount, n)
	}
	if total < 0 {
		return fmt.Errorf("%w: --total must be >= 0, got %d", domain.ErrInvalidCount, total)
	}

	entries := selection.BuildPlan(n, total, pageSize).Entries()

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("failed to encode plan: %w", err)
		}
		return nil
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	return enc.Close()
}

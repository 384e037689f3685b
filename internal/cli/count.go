package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// CountOptions holds flags for the count command.
type CountOptions struct {
	*RootOptions
	Fixture string
	Eq      []string
}

// NewCountCommand creates the count command.
func NewCountCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CountOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "count <collection>",
		Short: "Count documents matching equality filters",
		Long: `Count documents in a collection loaded from a fixture file.

Example:
  minidoc count players --fixture store.yaml --eq team=red`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Fixture, "fixture", "", "fixture YAML file to load (required)")
	cmd.Flags().StringArrayVar(&opts.Eq, "eq", nil, "equality filter as path=value (repeatable, conjoined)")
	_ = cmd.MarkFlagRequired("fixture")

	return cmd
}

func runCount(opts *CountOptions, collection string, cmd *cobra.Command) error {
	s, err := loadStore(opts.Fixture)
	if err != nil {
		return err
	}
	filter, err := parseEqFilters(opts.Eq)
	if err != nil {
		return err
	}

	n, err := s.CountDocs(collection, filter)
	if err != nil {
		return storeError(opts.RootOptions, cmd, err)
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(map[string]any{"collection": collection, "count": n})
	}
	fmt.Fprintln(cmd.OutOrStdout(), n)
	return nil
}

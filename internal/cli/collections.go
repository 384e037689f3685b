package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// CollectionsOptions holds flags for the collections command.
type CollectionsOptions struct {
	*RootOptions
	Fixture string
	Prefix  string
}

// NewCollectionsCommand creates the collections command.
func NewCollectionsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CollectionsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "collections",
		Short: "List collections in a fixture",
		Long: `List the collection names of a store loaded from a fixture file,
optionally restricted to a name prefix.

Example:
  minidoc collections --fixture store.yaml --prefix player`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollections(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Fixture, "fixture", "", "fixture YAML file to load (required)")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "restrict to collections starting with prefix")
	_ = cmd.MarkFlagRequired("fixture")

	return cmd
}

func runCollections(opts *CollectionsOptions, cmd *cobra.Command) error {
	s, err := loadStore(opts.Fixture)
	if err != nil {
		return err
	}

	var names []string
	if opts.Prefix != "" {
		names = s.FilterCollectionsByPrefix(opts.Prefix)
	} else {
		names = s.ListCollections()
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(names)
	}
	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}

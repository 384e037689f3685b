package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/minidoc/internal/document"
	"github.com/roach88/minidoc/internal/store"
)

// FindOptions holds flags for the find command.
type FindOptions struct {
	*RootOptions
	Fixture string
	Eq      []string
	Asc     []string
	Desc    []string
	Skip    int
	Limit   int
	Select  []string
}

// NewFindCommand creates the find command.
func NewFindCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FindOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "find <collection>",
		Short: "Find documents matching equality filters",
		Long: `Find documents in a collection loaded from a fixture file.

Filters, ordering, and projection compose through flags:

Example:
  minidoc find players --fixture store.yaml --eq team=red --asc name --limit 10
  minidoc find players --fixture store.yaml --select contact.email=email`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Fixture, "fixture", "", "fixture YAML file to load (required)")
	cmd.Flags().StringArrayVar(&opts.Eq, "eq", nil, "equality filter as path=value (repeatable, conjoined)")
	cmd.Flags().StringArrayVar(&opts.Asc, "asc", nil, "sort ascending on a dot path (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Desc, "desc", nil, "sort descending on a dot path (repeatable)")
	cmd.Flags().IntVar(&opts.Skip, "skip", 0, "skip the first N results")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "cap the result count (0 = no limit)")
	cmd.Flags().StringArrayVar(&opts.Select, "select", nil, "project as path=alias (repeatable, use alias '*' to merge)")
	_ = cmd.MarkFlagRequired("fixture")

	return cmd
}

func runFind(opts *FindOptions, collection string, cmd *cobra.Command) error {
	s, err := loadStore(opts.Fixture)
	if err != nil {
		return err
	}

	filter, err := parseEqFilters(opts.Eq)
	if err != nil {
		return err
	}
	sel, hasSelect, err := parseSelect(opts.Select)
	if err != nil {
		return err
	}
	findOpts := store.FindOptions{
		Order: buildOrder(opts.Asc, opts.Desc),
		Skip:  opts.Skip,
		Limit: opts.Limit,
	}

	var entries []store.Entry
	if hasSelect {
		entries, err = s.FindPartialDocs(collection, filter, sel, findOpts)
	} else {
		entries, err = s.FindDocs(collection, filter, findOpts)
	}
	if err != nil {
		return storeError(opts.RootOptions, cmd, err)
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	formatter.VerboseLog("matched %d document(s) in %q", len(entries), collection)

	if opts.Format == "json" {
		data := make([]map[string]any, len(entries))
		for i, e := range entries {
			data[i] = map[string]any{"id": e.ID, "doc": document.ToAny(e.Doc)}
		}
		return formatter.Success(data)
	}

	for _, e := range entries {
		encoded, err := document.MarshalCanonical(e.Doc)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", e.ID, encoded)
	}
	return nil
}

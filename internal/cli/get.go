package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/minidoc/internal/document"
)

// GetOptions holds flags for the get command.
type GetOptions struct {
	*RootOptions
	Fixture string
	Select  []string
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "get <collection> <id>",
		Short: "Fetch a single document by id",
		Long: `Fetch a single document by id from a collection loaded from a fixture file.

Example:
  minidoc get players p1 --fixture store.yaml
  minidoc get players p1 --fixture store.yaml --select contact.email=email`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Fixture, "fixture", "", "fixture YAML file to load (required)")
	cmd.Flags().StringArrayVar(&opts.Select, "select", nil, "project as path=alias (repeatable, use alias '*' to merge)")
	_ = cmd.MarkFlagRequired("fixture")

	return cmd
}

func runGet(opts *GetOptions, collection, id string, cmd *cobra.Command) error {
	s, err := loadStore(opts.Fixture)
	if err != nil {
		return err
	}
	sel, hasSelect, err := parseSelect(opts.Select)
	if err != nil {
		return err
	}

	var (
		doc   document.Object
		found bool
	)
	if hasSelect {
		doc, found, err = s.GetPartialDoc(collection, id, sel)
	} else {
		doc, found, err = s.GetDoc(collection, id)
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

	if !found {
		if outErr := formatter.Error("DOCUMENT_NOT_FOUND",
			fmt.Sprintf("document %q not found in collection %q", id, collection), nil); outErr != nil {
			return outErr
		}
		return NewExitError(ExitFailure, "document not found")
	}

	if opts.Format == "json" {
		return formatter.Success(map[string]any{"id": id, "doc": document.ToAny(doc)})
	}

	encoded, err := document.MarshalCanonical(doc)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", encoded)
	return nil
}

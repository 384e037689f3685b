package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// LoadOptions holds flags for the load command.
type LoadOptions struct {
	*RootOptions
}

// NewLoadCommand creates the load command.
func NewLoadCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoadOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "load <fixture.yaml>",
		Short: "Load a fixture and report what it contains",
		Long: `Load a fixture file into a fresh in-memory store and report the
document count per collection. Use this to validate a fixture before
querying it: index violations and malformed documents fail here.

Example:
  minidoc load store.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(opts, args[0], cmd)
		},
	}

	return cmd
}

func runLoad(opts *LoadOptions, fixturePath string, cmd *cobra.Command) error {
	s, err := loadStore(fixturePath)
	if err != nil {
		return err
	}

	counts := make(map[string]any)
	for _, name := range s.ListCollections() {
		n, err := s.CountDocs(name, nil)
		if err != nil {
			return storeError(opts.RootOptions, cmd, err)
		}
		counts[name] = n
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(counts)
	}
	for _, name := range s.ListCollections() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", name, counts[name])
	}
	return nil
}

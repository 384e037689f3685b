package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/minidoc/internal/document"
	"github.com/roach88/minidoc/internal/harness"
)

// ScenarioOptions holds flags for the scenario command.
type ScenarioOptions struct {
	*RootOptions
}

// NewScenarioCommand creates the scenario command.
func NewScenarioCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScenarioOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "scenario <scenario.yaml>",
		Short: "Run a scenario file and print its snapshot",
		Long: `Run a scenario file against a fresh in-memory store and print the
resulting snapshot (per-step outcomes plus final state) as canonical JSON.

The command fails when any step's outcome contradicts its expectation.

Example:
  minidoc scenario testdata/scenarios/unique_enforcement.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(opts, args[0], cmd)
		},
	}

	return cmd
}

func runScenario(opts *ScenarioOptions, path string, cmd *cobra.Command) error {
	scenario, err := harness.LoadScenario(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}

	result, err := harness.Run(scenario)
	if err != nil {
		return WrapExitError(ExitFailure, "scenario execution failed", err)
	}

	snapshot := harness.Snapshot(scenario.Name, result)

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if opts.Format == "json" {
		if err := formatter.Success(document.ToAny(snapshot)); err != nil {
			return err
		}
	} else {
		encoded, err := document.MarshalCanonical(snapshot)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", encoded)
	}

	if !result.Pass {
		for _, msg := range result.Errors {
			formatter.VerboseLog("mismatch: %s", msg)
		}
		return NewExitError(ExitFailure,
			fmt.Sprintf("scenario %q failed with %d expectation mismatch(es)", scenario.Name, len(result.Errors)))
	}
	return nil
}

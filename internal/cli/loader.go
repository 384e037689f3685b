package cli

import (
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/minidoc/internal/document"
	"github.com/roach88/minidoc/internal/harness"
	"github.com/roach88/minidoc/internal/memstore"
	"github.com/roach88/minidoc/internal/query"
	"github.com/roach88/minidoc/internal/store"
)

// loadStore builds an in-memory store from a fixture file.
func loadStore(fixturePath string) (*memstore.MemStore, error) {
	fixture, err := harness.LoadFixture(fixturePath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load fixture", err)
	}
	s := memstore.New()
	if err := fixture.Apply(s); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to apply fixture", err)
	}
	return s, nil
}

// parseValueLiteral interprets a flag value: true/false/null, numbers,
// and quoted strings take their JSON meaning; everything else is a
// plain string.
func parseValueLiteral(s string) document.Value {
	switch s {
	case "true":
		return document.Bool(true)
	case "false":
		return document.Bool(false)
	case "null":
		return document.Null{}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return document.Number(f)
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		if unquoted, err := strconv.Unquote(s); err == nil {
			return document.String(unquoted)
		}
	}
	return document.String(s)
}

// parseEqFilters builds the conjunction of --eq path=value flags.
// Returns nil for an empty flag set (match everything).
func parseEqFilters(pairs []string) (query.Filter, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	filters := make([]query.Filter, 0, len(pairs))
	for _, pair := range pairs {
		path, value, ok := strings.Cut(pair, "=")
		if !ok || path == "" {
			return nil, NewExitError(ExitCommandError, "invalid --eq value "+strconv.Quote(pair)+" (want path=value)")
		}
		filters = append(filters, &query.Eq{Path: path, Value: parseValueLiteral(value)})
	}
	if len(filters) == 1 {
		return filters[0], nil
	}
	return query.NewAnd(filters...)
}

// parseSelect builds a projection from --select path=alias flags.
// Returns (zero Select, false) when no flags were given.
func parseSelect(pairs []string) (query.Select, bool, error) {
	if len(pairs) == 0 {
		return query.Select{}, false, nil
	}
	fields := make([]query.SelectField, 0, len(pairs))
	for _, pair := range pairs {
		path, alias, ok := strings.Cut(pair, "=")
		if !ok || path == "" || alias == "" {
			return query.Select{}, false, NewExitError(ExitCommandError,
				"invalid --select value "+strconv.Quote(pair)+" (want path=alias)")
		}
		fields = append(fields, query.SelectField{Path: path, Alias: alias})
	}
	return query.NewSelect(fields...), true, nil
}

// buildOrder chains --asc/--desc paths into an OrderBy. Ascending keys
// come first in flag order, descending keys follow as tie-breakers.
func buildOrder(asc, desc []string) query.OrderBy {
	var order query.OrderBy
	for _, path := range asc {
		order = chainOrder(order, &query.Asc{Path: path})
	}
	for _, path := range desc {
		order = chainOrder(order, &query.Desc{Path: path})
	}
	return order
}

func chainOrder(existing, next query.OrderBy) query.OrderBy {
	if existing == nil {
		return next
	}
	return &query.AndOrder{Primary: existing, Secondary: next}
}

// storeError reports a failed store operation in the configured format
// and converts it into an operation-failure exit code.
func storeError(opts *RootOptions, cmd *cobra.Command, err error) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	var storeErr *store.Error
	if errors.As(err, &storeErr) {
		if outErr := formatter.Error(string(storeErr.Code), storeErr.Message, nil); outErr != nil {
			return outErr
		}
		return &ExitError{Code: ExitFailure, Message: storeErr.Message, Err: err}
	}
	return WrapExitError(ExitFailure, "operation failed", err)
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"supplyloader/internal/binder"
	"supplyloader/internal/issue"
	"supplyloader/internal/reconcile"
	"supplyloader/internal/resolver"
	"supplyloader/pkg/types"
)

// issueStyle is the glamour style for catalog entries. "auto" degrades to
// plain text when output is not a terminal.
const issueStyle = "auto"

// ExitCodeFor maps an error to the process exit code.
func ExitCodeFor(err error) types.ExitCode {
	switch {
	case err == nil:
		return types.ExitSuccess
	case errors.Is(err, ErrUsage):
		return types.ExitUsage
	default:
		return types.ExitFailure
	}
}

// classify builds the actionable form of err and picks its catalog entry.
// The more specific kinds are checked first since a PluginLoadError may
// carry a MissingDependencyError as its cause. builtins names the plugins
// compiled into the binary.
func classify(err error, builtins []string) (*issue.ActionableError, issue.Id) {
	ec := issue.NewErrorContext().Wrap(err)

	var (
		usageErr     *UsageError
		missingErr   *resolver.MissingDependencyError
		ambiguousErr *resolver.AmbiguousDependencyError
		loadErr      *binder.PluginLoadError
		shapeErr     *binder.PluginShapeError
		mismatchErr  *reconcile.SchemaMismatchError
		opErr        *PluginOperationError
	)
	switch {
	case errors.As(err, &usageErr):
		return ec.WithOperation("parse arguments").
			WithSuggestion("Run 'supplyloader --help' for usage").
			Build(), issue.UsageId

	case errors.As(err, &missingErr):
		return ec.WithOperation("resolve dependency").
			WithResource(missingErr.Name).
			WithSuggestions(
				fmt.Sprintf("Place the unit anywhere below %s", missingErr.SearchRoot),
				"Set resolver.search_root to the directory tree that holds it",
			).Build(), issue.MissingDependencyId

	case errors.As(err, &ambiguousErr):
		return ec.WithOperation("resolve dependency").
			WithResource(ambiguousErr.Name).
			WithSuggestions(
				"Remove all but one of the candidates",
				"Set resolver.strict to false to take the first match",
			).Build(), issue.AmbiguousDependencyId

	case errors.As(err, &loadErr):
		ae := ec.WithOperation("bind plugin").
			WithResource(loadErr.Component).
			WithSuggestion("Check the plugin identifier and plugins.dir")
		if len(builtins) > 0 {
			ae = ae.WithSuggestion("Built-in plugins: " + strings.Join(builtins, ", "))
		}
		return ae.Build(), issue.PluginLoadFailedId

	case errors.As(err, &shapeErr):
		return ec.WithOperation("bind plugin").
			WithResource(shapeErr.Component).
			WithSuggestion("Rebuild the plugin against the current datamodel package").
			Build(), issue.PluginShapeMismatchId

	case errors.As(err, &mismatchErr):
		return ec.WithOperation("reconcile entities").
			WithResource(mismatchErr.Collection).
			WithSuggestion(fmt.Sprintf("Check that %s exists in %s or use a new collection", mismatchErr.Entity, mismatchErr.Collection)).
			Build(), issue.SchemaMismatchId

	case errors.As(err, &opErr):
		ae := ec.WithOperation("run " + opErr.Op).
			WithResource(opErr.Identifier)
		if errors.Is(err, context.DeadlineExceeded) {
			ae = ae.WithSuggestion("Raise timeouts.operation")
		}
		return ae.WithSuggestion("Verify the connection string").Build(), issue.PluginOperationFailedId

	default:
		return ec.WithOperation("run supplyloader").Build(), 0
	}
}

// renderError writes a failure to w. Usage errors print the reason followed
// by the usage text.
func renderError(w io.Writer, err error, verbose bool, builtins []string) {
	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		fmt.Fprintln(w, ErrorStyle.Render("✗ "+usageErr.Error()))
		fmt.Fprintln(w)
		fmt.Fprint(w, Usage())
		return
	}

	ae, id := classify(err, builtins)
	fmt.Fprintln(w, ErrorStyle.Render("✗ Error"))
	fmt.Fprintln(w, strings.TrimRight(ae.Format(verbose), "\n"))

	if id == 0 {
		return
	}
	if entry := issue.Get(id); entry != nil {
		rendered, renderErr := entry.Render(issueStyle)
		if renderErr != nil {
			slog.Warn("failed to render issue catalog entry", "issueID", id, "error", renderErr)
			return
		}
		fmt.Fprint(w, rendered)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

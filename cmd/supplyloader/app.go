// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"supplyloader/internal/binder"
	"supplyloader/internal/config"
	"supplyloader/internal/issue"
	"supplyloader/internal/logging"
	"supplyloader/internal/resolver"
	"supplyloader/pkg/datamodel"
	"supplyloader/pkg/types"
)

type (
	// App wires the CLI to its services. It is the composition root: the
	// cobra handler only forwards arguments to Run.
	App struct {
		config      config.Provider
		loadOptions config.LoadOptions
		registry    *binder.Registry
		opener      resolver.Opener
		workDir     string
		stdout      io.Writer
		stderr      io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config      config.Provider
		LoadOptions config.LoadOptions
		// Registry holds build-time plugin factories. Defaults to
		// binder.DefaultRegistry().
		Registry *binder.Registry
		// Opener loads dependency units. Defaults to the Go plugin package.
		Opener resolver.Opener
		// WorkDir replaces the working directory as the default search root
		// and plugin directory.
		WorkDir string
		Stdout  io.Writer
		Stderr  io.Writer
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Registry == nil {
		deps.Registry = binder.DefaultRegistry()
	}
	if deps.Opener == nil {
		deps.Opener = resolver.NewPluginOpener()
	}
	return &App{
		config:      deps.Config,
		loadOptions: deps.LoadOptions,
		registry:    deps.Registry,
		opener:      deps.Opener,
		workDir:     deps.WorkDir,
		stdout:      deps.Stdout,
		stderr:      deps.Stderr,
	}
}

// Run executes one invocation. It renders any failure to stderr and returns
// nil or an *ExitError carrying the exit code.
func (a *App) Run(ctx context.Context, args []string) error {
	inv, err := ParseArgs(args)
	if err != nil {
		var usageErr *UsageError
		if errors.As(err, &usageErr) && usageErr.Help {
			fmt.Fprint(a.stdout, Usage())
			return &ExitError{Code: types.ExitUsage, Err: err}
		}
		return a.fail(err, false)
	}

	cfg := a.loadConfig(ctx)
	logger := logging.New(a.stderr, cfg.Log.Level.String())
	verbose := cfg.Log.Level == config.LogLevelDebug

	summary, err := a.dispatch(ctx, inv, cfg, logger)
	if err != nil {
		return a.fail(err, verbose)
	}
	fmt.Fprintln(a.stdout, SuccessStyle.Render("✓ "+summary))
	return nil
}

// loadConfig loads configuration, falling back to defaults with a warning.
func (a *App) loadConfig(ctx context.Context) *config.Config {
	cfg, err := a.config.Load(ctx, a.loadOptions)
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, false))
		if rendered, renderErr := issue.Get(issue.ConfigLoadFailedId).Render(issueStyle); renderErr == nil {
			fmt.Fprint(a.stderr, rendered)
		}
		return config.DefaultConfig()
	}
	return cfg
}

// binder builds the per-invocation resolver and binder.
func (a *App) binder(cfg *config.Config, logger *slog.Logger) (*binder.Binder, error) {
	searchRoot := cfg.Resolver.SearchRoot
	pluginDir := cfg.Plugins.Dir
	if searchRoot == "" || pluginDir == "" {
		wd := a.workDir
		if wd == "" {
			var err error
			if wd, err = os.Getwd(); err != nil {
				return nil, issue.WrapWithOperation(err, "determine working directory")
			}
		}
		if searchRoot == "" {
			searchRoot = wd
		}
		if pluginDir == "" {
			pluginDir = wd
		}
	}

	res := resolver.New(
		resolver.WithSearchRoot(searchRoot),
		resolver.WithExtension(cfg.Resolver.Extension),
		resolver.WithStrict(cfg.Resolver.Strict),
		resolver.WithTimeout(cfg.Timeouts.Resolve),
		resolver.WithOpener(a.opener),
		resolver.WithLogger(logger),
	)
	return binder.New(res,
		binder.WithRegistry(a.registry),
		binder.WithOpener(a.opener),
		binder.WithPluginDir(pluginDir),
		binder.WithLoaderSuffix(cfg.Plugins.LoaderSuffix),
		binder.WithPluginOptions(datamodel.Options{
			BatchSize: cfg.Samples.BatchSize,
			RateLimit: cfg.Samples.RateLimit,
			Logger:    logger,
		}),
		binder.WithLogger(logger),
	), nil
}

// fail renders err and wraps it with its exit code.
func (a *App) fail(err error, verbose bool) error {
	code := ExitCodeFor(err)
	renderError(a.stderr, err, verbose, a.registry.List())
	return &ExitError{Code: code, Err: err}
}


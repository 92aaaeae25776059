// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"supplyloader/internal/config"
	"supplyloader/internal/logging"
	_ "supplyloader/internal/plugins"
	"supplyloader/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand returns the root command. Flag parsing is left to the App
// since the modes are single-dash words cobra would reject.
func NewRootCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "supplyloader <mode> <pluginIdentifier> <connectionString> [args...]",
		Short: "Drive a data-supply collector/loader plugin pair",
		Long: Usage() + `
Configuration is read from $XDG_CONFIG_HOME/supplyloader/config.cue or
./supplyloader.cue, and SUPPLYLOADER_* environment variables.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), args)
		},
	}
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI against os.Args and returns the exit code.
func Execute() types.ExitCode {
	logging.Setup(os.Stderr, string(config.LogLevelWarn))
	return execute(context.Background(), NewApp(Dependencies{}), os.Args[1:])
}

// execute runs app under fang. The cobra help, completion and man
// subcommands are disabled so every argument reaches App.Run.
func execute(ctx context.Context, app *App, args []string) types.ExitCode {
	root := NewRootCommand(app)
	root.SetArgs(args)
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)

	err := fang.Execute(
		ctx,
		root,
		fang.WithVersion(getVersionString()),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			// ExitErrors are rendered by the App already.
			var exitErr *ExitError
			if errors.As(err, &exitErr) {
				return
			}
			fang.DefaultErrorHandler(w, styles, err)
		}),
	)
	if err == nil {
		return types.ExitSuccess
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code.IsSuccess() {
		return types.ExitFailure
	}
	if vErr := exitErr.Code.Validate(); vErr != nil {
		slog.Error("unexpected exit code", "error", vErr)
		return types.ExitFailure
	}
	return exitErr.Code
}

// Main runs the CLI and exits the process with its exit code.
func Main() {
	os.Exit(int(Execute()))
}

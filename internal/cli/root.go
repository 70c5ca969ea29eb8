// Package cli implements the relnote command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ariel-frischer/relnote/internal/changelog"
	clierrors "github.com/ariel-frischer/relnote/internal/errors"
	"github.com/ariel-frischer/relnote/internal/git"
	"github.com/ariel-frischer/relnote/internal/progress"
	"github.com/spf13/cobra"
)

// options holds the flag values shared by the command tree.
type options struct {
	configPath    string
	debug         bool
	changelog     string
	beforeMessage string
	afterMessage  string
	noSend        bool
}

// newRootCmd builds the relnote command tree.
func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "relnote",
		Short: "Announce the latest changelog entry to a webhook",
		Long: `relnote reads a changelog written with version headers such as

  ## [1.2.3] - 2024-01-15

takes the entry under the first header, and posts it to one or more
Slack-compatible incoming webhooks. The webhook URL is read from
SLACK_WEBHOOK_URL, RELNOTE_WEBHOOK_URL, .relnote.yml, or a .env file.`,
		Example: `  # Announce the latest release from ./CHANGELOG.md
  relnote

  # Add a greeting and a sign-off, but only print the message
  relnote -b "relnote 1.2.3 is out!" -a "Happy shipping" --no-send

  # Print the latest entry as HTML
  relnote extract --format html`,
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(cmd.ErrOrStderr(), opts.debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnnounce(cmd, opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to config file (default: .relnote.yml)")
	pf.BoolVar(&opts.debug, "debug", false, "Print debug logging to stderr")
	pf.StringVarP(&opts.changelog, "changelog", "c", changelog.DefaultPath, "Changelog file path or http(s) URL")
	addMessageFlags(cmd, opts)

	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return withExitCode(ExitInvalidArguments, clierrors.NewArgumentError(err.Error(),
			fmt.Sprintf("Run '%s --help' for usage", cmd.CommandPath())))
	})

	cmd.AddCommand(
		newExtractCmd(opts),
		newWatchCmd(opts),
		newInitCmd(),
		newVersionCmd(),
	)

	return cmd
}

// addMessageFlags registers the flags that shape and route the message.
func addMessageFlags(cmd *cobra.Command, opts *options) {
	f := cmd.Flags()
	f.StringVarP(&opts.beforeMessage, "before-message", "b", "", "Text placed above the changelog entry")
	f.StringVarP(&opts.afterMessage, "after-message", "a", "", "Text placed below the changelog entry")
	f.BoolVarP(&opts.noSend, "no-send", "n", false, "Print the message instead of sending it")
}

// noArgs rejects positional arguments with an argument error.
func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return withExitCode(ExitInvalidArguments, clierrors.NewArgumentError(err.Error(),
			fmt.Sprintf("Run '%s --help' for usage", cmd.CommandPath())))
	}
	return nil
}

// configureLogging routes the standard logger to w when debug is set and
// discards it otherwise.
func configureLogging(w io.Writer, debug bool) {
	if !debug {
		log.SetOutput(io.Discard)
		git.SetDebugLogger(nil)
		return
	}
	log.SetOutput(w)
	log.SetFlags(log.Ltime | log.Lmicroseconds)
	git.SetDebugLogger(log.Printf)
	log.Printf("[relnote] debug: debug logging enabled")
}

// Execute runs the root command with the process arguments.
// The returned error has already been printed; pass it to ExitCode.
func Execute() error {
	return execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		printError(stderr, err)
	}
	return err
}

// printError writes err to w once, with remediation steps when available.
func printError(w io.Writer, err error) {
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		caps := progress.DetectTerminalCapabilities(w)
		clierrors.FprintError(w, cliErr, caps.SupportsColor)
		return
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}

	fmt.Fprint(w, clierrors.FormatSimpleError(err, clierrors.Runtime))
}
